package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Storefront and admin clients expect currency as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category groups products.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Product is a catalog entry. Purchasable SKUs are its variants.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"basePrice"`
	Brand       string           `gorm:"type:varchar(120)" json:"brand"`
	CategoryID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category    *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CoverImage returns the image flagged as cover, else the first image.
func (p *Product) CoverImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// TotalStock sums stock across all variants.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// ProductVariant is a purchasable SKU. No two variants of one product share
// the same attribute mapping.
type ProductVariant struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_product_attributes,priority:1" json:"productId"`
	Attributes Attributes      `gorm:"type:text;not null;default:'{}';uniqueIndex:idx_variant_product_attributes,priority:2" json:"attributes"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock      int             `gorm:"not null;default:0;check:chk_variant_stock_non_negative,stock >= 0" json:"stock"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// InStock reports whether at least one unit is available.
func (v *ProductVariant) InStock() bool {
	return v.Stock > 0
}

// ProductImage belongs to a product; at most one per product has IsCover set.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	IsCover   bool      `gorm:"not null;default:false" json:"isCover"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
