package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/repository"
)

// CartService owns cart lookup and item mutations.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	metrics  awspkg.MetricsRecorder
	log      *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, metrics awspkg.MetricsRecorder, log *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, metrics: metrics, log: log}
}

// GetCart returns the user's cart, creating it on first access. When pinned
// names one of the items it is moved to the front of the list.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID, pinned *uuid.UUID) (*models.CartView, *ServiceError) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError(s.log, "cart.get_or_create", err)
	}

	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, storeError(s.log, "cart.list_items", err)
	}
	if pinned != nil {
		items = models.PinItem(items, *pinned)
	}
	cart.Items = items
	return models.NewCartView(cart), nil
}

// AddItem adds quantity units of a product variant, merging into an existing
// line. Without a variant the product's first variant is used.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req models.AddCartItemRequest) (*models.CartView, *ServiceError) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, invalidQuantity("quantity must be greater than zero")
	}

	variant, serr := s.resolveVariant(ctx, req.ProductID, req.ProductVariantID)
	if serr != nil {
		return nil, serr
	}
	if quantity > variant.Stock {
		return nil, invalidQuantity("quantity exceeds available stock")
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError(s.log, "cart.get_or_create", err)
	}

	item, err := s.carts.AddItem(ctx, cart.ID, req.ProductID, variant.ID, quantity)
	if err != nil {
		var stockErr *repository.StockError
		if errors.As(err, &stockErr) {
			return nil, invalidQuantity("quantity exceeds available stock")
		}
		return nil, fromStore(s.log, "cart.add_item", err, "product variant not found")
	}

	s.log.Info("cart item added",
		zap.String("user_id", userID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity", item.Quantity),
	)
	recordCount(s.metrics, awspkg.MetricCartItemsAdded)

	return s.GetCart(ctx, userID, &item.ID)
}

func (s *CartService) resolveVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*models.ProductVariant, *ServiceError) {
	if variantID != nil {
		v, err := s.products.FindVariant(ctx, productID, *variantID)
		if err != nil {
			return nil, fromStore(s.log, "cart.find_variant", err, "product variant not found")
		}
		return v, nil
	}

	v, err := s.products.FirstVariant(ctx, productID)
	if err != nil {
		return nil, fromStore(s.log, "cart.first_variant", err, "product has no purchasable variant")
	}
	return v, nil
}

// UpdateItem sets an item's quantity. Anything below one removes the item.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartView, *ServiceError) {
	if quantity < 1 {
		if serr := s.RemoveItem(ctx, userID, itemID); serr != nil {
			return nil, serr
		}
		return s.GetCart(ctx, userID, nil)
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fromStore(s.log, "cart.find", err, "cart item not found")
	}

	if _, err := s.carts.SetItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		var stockErr *repository.StockError
		if errors.As(err, &stockErr) {
			return nil, insufficientStock("insufficient stock")
		}
		return nil, fromStore(s.log, "cart.set_quantity", err, "cart item not found")
	}

	return s.GetCart(ctx, userID, nil)
}

// RemoveItem deletes an item from the user's cart. Missing carts and items
// are not errors.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeError(s.log, "cart.find", err)
	}
	if err := s.carts.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return storeError(s.log, "cart.remove_item", err)
	}
	return nil
}

// Clear empties the user's cart without creating one.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) *ServiceError {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeError(s.log, "cart.find", err)
	}
	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		return storeError(s.log, "cart.clear", err)
	}
	return nil
}
