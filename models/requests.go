package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	User      *User  `json:"user"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"max=2000"`
}

// ProductRequest is the payload for creating or updating a product.
// Variants and images are only read on create.
type ProductRequest struct {
	Name        string           `json:"name" binding:"required,min=2,max=255"`
	Description string           `json:"description"`
	BasePrice   decimal.Decimal  `json:"basePrice"`
	Brand       string           `json:"brand" binding:"max=120"`
	CategoryID  uuid.UUID        `json:"categoryId" binding:"required"`
	Variants    []VariantRequest `json:"variants" binding:"dive"`
	Images      []ImageRequest   `json:"images" binding:"dive"`
}

// VariantRequest is the payload for creating or updating a variant.
type VariantRequest struct {
	Attributes Attributes       `json:"attributes" binding:"attributes"`
	Price      *decimal.Decimal `json:"price"`
	Stock      int              `json:"stock" binding:"gte=0"`
}

// ImageRequest attaches an already uploaded image to a product.
type ImageRequest struct {
	URL      string `json:"url" binding:"required,url"`
	IsCover  bool   `json:"isCover"`
	Position int    `json:"position" binding:"gte=0"`
}

// PresignImageRequest asks for an upload URL for a product image.
type PresignImageRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID  *uuid.UUID
	Search      string
	InStockOnly bool
	Page        int
	Limit       int
}

// ResolveVariantRequest asks which variant a selection change lands on.
type ResolveVariantRequest struct {
	Selected Attributes `json:"selected"`
	Key      string     `json:"key" binding:"required"`
	Value    string     `json:"value" binding:"required"`
}

// AddCartItemRequest is the payload for POST /api/cart/items.
// Quantity defaults to 1 when omitted.
type AddCartItemRequest struct {
	ProductID        uuid.UUID  `json:"productId" binding:"required"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	Quantity         *int       `json:"quantity"`
}

// UpdateCartItemRequest is the payload for PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CreateOrderRequest checks out the caller's cart.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required,max=1000"`
	ShippingName    string `json:"shippingName" binding:"required,max=255"`
	ShippingPhone   string `json:"shippingPhone" binding:"required,max=40"`
}

// UpdateOrderStatusRequest is the payload for PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=PENDING PROCESSING SENT DELIVERED CANCELLED"`
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status *OrderStatus
	Page   int
	Limit  int
}
