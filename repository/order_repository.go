package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lari-oliv/olive-beauty/models"
)

// OrderRepository defines data-access operations for orders.
type OrderRepository interface {
	Checkout(ctx context.Context, userID uuid.UUID, shipping models.CreateOrderRequest) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus, allow func(current models.OrderStatus) error) (*models.Order, models.OrderStatus, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Checkout turns the user's cart into an order in one transaction. Stock is
// decremented with a conditional update per line; the first line that cannot
// be covered aborts the whole checkout with a *StockError.
func (r *GormOrderRepository) Checkout(ctx context.Context, userID uuid.UUID, shipping models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").
			Preload("ProductVariant").
			Where("cart_id = ?", cart.ID).
			Order("created_at ASC, id ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Total:           decimal.Zero,
			ShippingAddress: shipping.ShippingAddress,
			ShippingName:    shipping.ShippingName,
			ShippingPhone:   shipping.ShippingPhone,
			Items:           make([]models.OrderItem, 0, len(items)),
		}

		for i := range items {
			item := &items[i]
			if item.ProductVariantID != nil {
				if err := decrementStock(tx, item); err != nil {
					return err
				}
			}
			line := models.OrderItem{
				ProductID:        item.ProductID,
				ProductVariantID: item.ProductVariantID,
				Quantity:         item.Quantity,
				Price:            item.UnitPrice(),
			}
			order.Items = append(order.Items, line)
			order.Total = order.Total.Add(line.LineTotal())
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func decrementStock(tx *gorm.DB, item *models.CartItem) error {
	res := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", *item.ProductVariantID, item.Quantity).
		Update("stock", gorm.Expr("stock - ?", item.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available := 0
		if item.ProductVariant != nil {
			available = item.ProductVariant.Stock
		}
		return &StockError{VariantID: *item.ProductVariantID, Requested: item.Quantity, Available: available}
	}
	return nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Preload("Items.ProductVariant").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUserID retrieves orders for a specific user with pagination
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items.Product").
		Offset(offset(page, limit)).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindAll retrieves all orders with pagination, optionally by status
func (r *GormOrderRepository) FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Items").
		Offset(offset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus locks the order, asks allow whether leaving the current status
// is permitted and applies next. Cancelling returns every line's quantity to
// its variant. The previous status is returned alongside the updated order.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus, allow func(current models.OrderStatus) error) (*models.Order, models.OrderStatus, error) {
	var order models.Order
	var previous models.OrderStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", id).Error; err != nil {
			return err
		}
		previous = order.Status

		if err := allow(previous); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
			return err
		}
		if previous == next {
			return nil
		}

		if next == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if item.ProductVariantID == nil {
					continue
				}
				if err := tx.Model(&models.ProductVariant{}).
					Where("id = ?", *item.ProductVariantID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		order.Status = next
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", next).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &order, previous, nil
}
