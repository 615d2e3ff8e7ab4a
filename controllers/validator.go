package controllers

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/services"
)

// Validation constants
const (
	MaxPageNumber = 1000000
)

var registerOnce sync.Once

func init() {
	registerBindingValidators()
}

// RequestValidator parses query parameters and validates payloads that gin
// does not bind itself.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	_ = v.RegisterValidation("attributes", validateAttributes)
	registerBindingValidators()
	return &RequestValidator{validate: v}
}

// registerBindingValidators adds the custom rules to gin's binding engine so
// `binding:"attributes"` works in ShouldBindJSON.
func registerBindingValidators() {
	registerOnce.Do(func() {
		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = engine.RegisterValidation("attributes", validateAttributes)
		}
	})
}

func validateAttributes(fl validator.FieldLevel) bool {
	attrs, ok := fl.Field().Interface().(models.Attributes)
	if !ok {
		return false
	}
	return attrs.Validate() == nil
}

// Var validates a single value against a tag.
func (rv *RequestValidator) Var(field interface{}, tag string) error {
	return rv.validate.Var(field, tag)
}

// ParsePagination validates and parses page and limit. Missing values fall
// back to the defaults; limits above the maximum are clamped.
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageLimit)))
	if err != nil || limit < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if limit > services.MaxPageLimit {
		limit = services.MaxPageLimit
	}
	return page, limit, nil
}

// ParseProductFilter reads categoryId, search and inStock.
func (rv *RequestValidator) ParseProductFilter(c *gin.Context) (models.ProductFilter, error) {
	page, limit, err := rv.ParsePagination(c)
	if err != nil {
		return models.ProductFilter{}, err
	}
	filter := models.ProductFilter{Page: page, Limit: limit}

	if raw := strings.TrimSpace(c.Query("categoryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return models.ProductFilter{}, errors.New("invalid categoryId")
		}
		filter.CategoryID = &id
	}

	search := strings.TrimSpace(c.Query("search"))
	if err := rv.validate.Var(search, "max=100"); err != nil {
		return models.ProductFilter{}, errors.New("search is too long")
	}
	filter.Search = search

	if raw := strings.TrimSpace(c.Query("inStock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ProductFilter{}, errors.New("inStock must be true or false")
		}
		filter.InStockOnly = inStock
	}
	return filter, nil
}

// ParseOrderFilter reads status and pagination for the admin order list.
func (rv *RequestValidator) ParseOrderFilter(c *gin.Context) (models.OrderFilter, error) {
	page, limit, err := rv.ParsePagination(c)
	if err != nil {
		return models.OrderFilter{}, err
	}
	filter := models.OrderFilter{Page: page, Limit: limit}
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("status"))); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			return models.OrderFilter{}, errors.New("unknown order status")
		}
		filter.Status = &status
	}
	return filter, nil
}

// intQuery parses an integer query parameter; unparsable values read as 0 so
// the service applies its default.
func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return n
}
