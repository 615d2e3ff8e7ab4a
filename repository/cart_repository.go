package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lari-oliv/olive-beauty/models"
)

// CartRepository defines data-access operations for carts and their items.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	AddItem(ctx context.Context, cartID, productID, variantID uuid.UUID, quantity int) (*models.CartItem, error)
	SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// GetOrCreate upserts on the unique user_id so concurrent callers converge on
// one row.
func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": gorm.Expr("now()")}),
			},
			clause.Returning{},
		).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListItems returns items newest first with product, images and variant.
func (r *GormCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("ProductVariant").
		Where("cart_id = ?", cartID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem merges quantity into an existing line for the same variant or
// inserts a new one. The cart row is locked for the duration so concurrent
// adds serialize, and a merged quantity above stock leaves everything as is.
func (r *GormCartRepository) AddItem(ctx context.Context, cartID, productID, variantID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		var variant models.ProductVariant
		if err := tx.First(&variant, "id = ? AND product_id = ?", variantID, productID).Error; err != nil {
			return err
		}

		err := tx.Where("cart_id = ? AND product_id = ? AND product_variant_id = ?", cartID, productID, variantID).
			First(&item).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		next := quantity
		if exists {
			next += item.Quantity
		}
		if next > variant.Stock {
			return &StockError{VariantID: variant.ID, Requested: next, Available: variant.Stock}
		}

		if exists {
			item.Quantity = next
			return tx.Model(&item).Update("quantity", next).Error
		}

		item = models.CartItem{
			CartID:           cartID,
			ProductID:        productID,
			ProductVariantID: &variantID,
			Quantity:         next,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemQuantity overwrites the quantity of an item in the given cart.
func (r *GormCartRepository) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}
		if err := tx.First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
			return err
		}

		if item.ProductVariantID != nil {
			var variant models.ProductVariant
			if err := tx.First(&variant, "id = ?", *item.ProductVariantID).Error; err != nil {
				return err
			}
			if quantity > variant.Stock {
				return &StockError{VariantID: variant.ID, Requested: quantity, Available: variant.Stock}
			}
		}

		item.Quantity = quantity
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the item when it belongs to the cart. Missing items are
// not an error.
func (r *GormCartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{}).Error
}

func (r *GormCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

func lockCart(tx *gorm.DB, cartID uuid.UUID) error {
	var cart models.Cart
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&cart, "id = ?", cartID).Error
}
