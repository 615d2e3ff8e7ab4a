package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is created lazily, one per user.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CartItem is one line of a cart. Quantity is always positive; a line
// dropping to zero is deleted.
type CartItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"cartId"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product          *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	ProductVariantID *uuid.UUID      `gorm:"type:uuid;index" json:"productVariantId"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE" json:"productVariant,omitempty"`
	Quantity         int             `gorm:"not null;check:chk_cart_item_quantity_positive,quantity > 0" json:"quantity"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// UnitPrice is the variant price, falling back to the product base price.
func (i *CartItem) UnitPrice() decimal.Decimal {
	if i.ProductVariant != nil {
		return i.ProductVariant.Price
	}
	if i.Product != nil {
		return i.Product.BasePrice
	}
	return decimal.Zero
}

// SameLine reports whether the item holds the given product/variant pair.
func (i *CartItem) SameLine(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}
	if i.ProductVariantID == nil || variantID == nil {
		return i.ProductVariantID == nil && variantID == nil
	}
	return *i.ProductVariantID == *variantID
}

// CartView is the cart as returned to clients.
type CartView struct {
	*Cart
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}

// NewCartView derives totals from the loaded items.
func NewCartView(cart *Cart) *CartView {
	view := &CartView{Cart: cart, Subtotal: decimal.Zero}
	for i := range cart.Items {
		item := &cart.Items[i]
		view.Subtotal = view.Subtotal.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
		view.ItemCount += item.Quantity
	}
	return view
}

// PinItem moves the item with the given id to the front, keeping the order
// of the rest. Unknown ids leave the slice untouched.
func PinItem(items []CartItem, id uuid.UUID) []CartItem {
	for idx := range items {
		if items[idx].ID != id {
			continue
		}
		if idx == 0 {
			return items
		}
		out := make([]CartItem, 0, len(items))
		out = append(out, items[idx])
		out = append(out, items[:idx]...)
		out = append(out, items[idx+1:]...)
		return out
	}
	return items
}
