package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/repository"
)

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   Meta           `json:"meta"`
}

type OrderService struct {
	orders  repository.OrderRepository
	events  *OrderEvents
	metrics awspkg.MetricsRecorder
	log     *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, events *OrderEvents, metrics awspkg.MetricsRecorder, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, events: events, metrics: metrics, log: log}
}

// Checkout places an order from the caller's cart.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, *ServiceError) {
	order, err := s.orders.Checkout(ctx, userID, req)
	if err != nil {
		var stockErr *repository.StockError
		switch {
		case errors.Is(err, repository.ErrEmptyCart):
			return nil, validation("cart is empty")
		case errors.As(err, &stockErr):
			recordCount(s.metrics, awspkg.MetricCheckoutFailed)
			s.log.Info("checkout rejected",
				zap.String("user_id", userID.String()),
				zap.String("variant_id", stockErr.VariantID.String()),
				zap.Int("requested", stockErr.Requested),
			)
			return nil, insufficientStock("insufficient stock for one or more items")
		default:
			recordCount(s.metrics, awspkg.MetricCheckoutFailed)
			return nil, storeError(s.log, "order.checkout", err)
		}
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	recordCount(s.metrics, awspkg.MetricOrdersCreated)
	recordValue(s.metrics, awspkg.MetricOrderAmount, order.Total.InexactFloat64())

	s.events.Publish(ctx, newOrderEvent(models.OrderEventCreated, order, ""))
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, *ServiceError) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, storeError(s.log, "order.list_mine", err)
	}
	return &OrderListResponse{Orders: orders, Meta: newMeta(page, limit, total)}, nil
}

func (s *OrderService) ListAll(ctx context.Context, filter models.OrderFilter) (*OrderListResponse, *ServiceError) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, validation("unknown order status")
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	orders, total, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "order.list_all", err)
	}
	return &OrderListResponse{Orders: orders, Meta: newMeta(filter.Page, filter.Limit, total)}, nil
}

// Get returns an order. Non-admins only see their own orders; others look
// missing.
func (s *OrderService) Get(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore(s.log, "order.get", err, "order not found")
	}
	if !isAdmin && order.UserID != userID {
		return nil, notFound("order not found")
	}
	return order, nil
}

// UpdateStatus moves an order to next. Cancelled orders are final, delivered
// orders can only be re-marked delivered.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, *ServiceError) {
	if !next.Valid() {
		return nil, validation("unknown order status")
	}

	order, previous, err := s.orders.UpdateStatus(ctx, id, next, transitionCheck(next))
	if err != nil {
		var serr *ServiceError
		if errors.As(err, &serr) {
			return nil, serr
		}
		return nil, fromStore(s.log, "order.update_status", err, "order not found")
	}

	if previous != next {
		s.log.Info("order status changed",
			zap.String("order_id", order.ID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(next)),
		)
		if next == models.OrderStatusCancelled {
			recordCount(s.metrics, awspkg.MetricOrdersCancelled)
		}
		s.events.Publish(ctx, newOrderEvent(models.OrderEventStatusChanged, order, previous))
	}
	return order, nil
}

func transitionCheck(next models.OrderStatus) func(current models.OrderStatus) error {
	return func(current models.OrderStatus) error {
		switch {
		case current == models.OrderStatusCancelled && next != models.OrderStatusCancelled:
			return conflict("cancelled orders cannot change status")
		case current == models.OrderStatusDelivered && next != models.OrderStatusDelivered:
			return conflict("delivered orders cannot change status")
		}
		return nil
	}
}
