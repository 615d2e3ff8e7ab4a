package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	service FavoriteService
}

func NewFavoriteController(service FavoriteService) *FavoriteController {
	return &FavoriteController{service: service}
}

func (fc *FavoriteController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	favorites, serr := fc.service.List(c.Request.Context(), userID)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, favorites)
}

// Add is idempotent: favoriting twice still answers 201.
func (fc *FavoriteController) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	if serr := fc.service.Add(c.Request.Context(), userID, productID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, gin.H{"productId": productID, "isFavorite": true})
}

func (fc *FavoriteController) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	if serr := fc.service.Remove(c.Request.Context(), userID, productID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"productId": productID, "isFavorite": false})
}

func (fc *FavoriteController) Check(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	isFavorite, serr := fc.service.IsFavorite(c.Request.Context(), userID, productID)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"productId": productID, "isFavorite": isFavorite})
}
