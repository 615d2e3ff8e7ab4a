package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Lari-oliv/olive-beauty/models"
)

type CartController struct {
	service CartService
}

func NewCartController(service CartService) *CartController {
	return &CartController{service: service}
}

// GetCart returns the current cart for a user. lastAddedItemId pins that
// item to the top of the list.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var pinned *uuid.UUID
	if raw := c.Query("lastAddedItemId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalidInput(c, "Invalid lastAddedItemId format", err)
			return
		}
		pinned = &id
	}

	cart, serr := cc.service.GetCart(c.Request.Context(), userID, pinned)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, cart)
}

// AddItem adds or merges an item in the cart
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid cart item payload", err)
		return
	}

	cart, serr := cc.service.AddItem(c.Request.Context(), userID, req)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusCreated, cart)
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid quantity payload", err)
		return
	}

	cart, serr := cc.service.UpdateItem(c.Request.Context(), userID, itemID, *req.Quantity)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, cart)
}

// RemoveItem removes a specific item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if serr := cc.service.RemoveItem(c.Request.Context(), userID, itemID); serr != nil {
		fail(c, serr)
		return
	}

	cart, serr := cc.service.GetCart(c.Request.Context(), userID, nil)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, cart)
}

func (cc *CartController) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if serr := cc.service.Clear(c.Request.Context(), userID); serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}
