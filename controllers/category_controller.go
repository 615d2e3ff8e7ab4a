package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/models"
)

type CategoryController struct {
	service CategoryService
}

func NewCategoryController(service CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (cc *CategoryController) List(c *gin.Context) {
	categories, serr := cc.service.List(c.Request.Context())
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, categories)
}

func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	category, serr := cc.service.Get(c.Request.Context(), id)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, category)
}

func (cc *CategoryController) Create(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid category payload", err)
		return
	}
	category, serr := cc.service.Create(c.Request.Context(), req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, category)
}

func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid category payload", err)
		return
	}
	category, serr := cc.service.Update(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, category)
}

func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if serr := cc.service.Delete(c.Request.Context(), id); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}
