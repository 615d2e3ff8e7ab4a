package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/models"
)

type ProductController struct {
	service   ProductService
	validator *RequestValidator
}

func NewProductController(service ProductService, validator *RequestValidator) *ProductController {
	return &ProductController{service: service, validator: validator}
}

// List handles GET /api/products?page&limit&categoryId&search&inStock.
func (pc *ProductController) List(c *gin.Context) {
	filter, err := pc.validator.ParseProductFilter(c)
	if err != nil {
		invalidInput(c, err.Error(), err)
		return
	}
	resp, serr := pc.service.List(c.Request.Context(), filter)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, resp)
}

func (pc *ProductController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, serr := pc.service.Get(c.Request.Context(), id)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, view)
}

// ResolveVariant handles POST /api/products/:id/variants/resolve.
func (pc *ProductController) ResolveVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.ResolveVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid selection payload", err)
		return
	}
	res, serr := pc.service.ResolveVariant(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, res)
}

func (pc *ProductController) Create(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid product payload", err)
		return
	}
	product, serr := pc.service.Create(c.Request.Context(), req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, product)
}

func (pc *ProductController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid product payload", err)
		return
	}
	product, serr := pc.service.Update(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, product)
}

func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if serr := pc.service.Delete(c.Request.Context(), id); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

func (pc *ProductController) CreateVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid variant payload", err)
		return
	}
	v, serr := pc.service.CreateVariant(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, v)
}

func (pc *ProductController) UpdateVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := uuidParam(c, "variantId")
	if !ok {
		return
	}
	var req models.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid variant payload", err)
		return
	}
	v, serr := pc.service.UpdateVariant(c.Request.Context(), id, variantID, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, v)
}

func (pc *ProductController) DeleteVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := uuidParam(c, "variantId")
	if !ok {
		return
	}
	if serr := pc.service.DeleteVariant(c.Request.Context(), id, variantID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Variant deleted"})
}

func (pc *ProductController) AddImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid image payload", err)
		return
	}
	img, serr := pc.service.AddImage(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, img)
}

func (pc *ProductController) SetCoverImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "imageId")
	if !ok {
		return
	}
	if serr := pc.service.SetCoverImage(c.Request.Context(), id, imageID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Cover image updated"})
}

func (pc *ProductController) DeleteImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "imageId")
	if !ok {
		return
	}
	if serr := pc.service.DeleteImage(c.Request.Context(), id, imageID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Image deleted"})
}

// PresignImage handles POST /api/products/:id/images/presign.
func (pc *ProductController) PresignImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid upload request", err)
		return
	}
	upload, serr := pc.service.PresignImageUpload(c.Request.Context(), id, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, upload)
}
