package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/middleware"
	"github.com/Lari-oliv/olive-beauty/models"
)

type OrderController struct {
	service   OrderService
	validator *RequestValidator
}

func NewOrderController(service OrderService, validator *RequestValidator) *OrderController {
	return &OrderController{service: service, validator: validator}
}

// Checkout turns the caller's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid checkout payload", err)
		return
	}

	order, serr := oc.service.Checkout(c.Request.Context(), userID, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, order)
}

func (oc *OrderController) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit, err := oc.validator.ParsePagination(c)
	if err != nil {
		invalidInput(c, err.Error(), err)
		return
	}
	resp, serr := oc.service.ListMine(c.Request.Context(), userID, page, limit)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, resp)
}

// ListAll handles GET /api/orders/all?status&page&limit for admins.
func (oc *OrderController) ListAll(c *gin.Context) {
	filter, err := oc.validator.ParseOrderFilter(c)
	if err != nil {
		invalidInput(c, err.Error(), err)
		return
	}
	resp, serr := oc.service.ListAll(c.Request.Context(), filter)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, resp)
}

func (oc *OrderController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	order, serr := oc.service.Get(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, order)
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid order status", err)
		return
	}
	order, serr := oc.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, order)
}
