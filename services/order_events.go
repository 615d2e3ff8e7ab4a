package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
)

// Broadcaster pushes a payload to every connected live client.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// CacheInvalidator drops cached aggregates after writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// OrderEvents fans an order event out to SNS, the live admin feed and the
// dashboard cache. Every target is optional.
type OrderEvents struct {
	sns      awspkg.SNSPublisher
	topicARN string
	hub      Broadcaster
	cache    CacheInvalidator
	log      *zap.Logger
}

func NewOrderEvents(sns awspkg.SNSPublisher, topicARN string, hub Broadcaster, cache CacheInvalidator, log *zap.Logger) *OrderEvents {
	return &OrderEvents{sns: sns, topicARN: topicARN, hub: hub, cache: cache, log: log}
}

func newOrderEvent(eventType string, order *models.Order, previous models.OrderStatus) models.OrderEvent {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return models.OrderEvent{
		EventType:      eventType,
		OrderID:        order.ID.String(),
		UserID:         order.UserID.String(),
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total,
		ItemCount:      count,
		Timestamp:      time.Now().UTC(),
	}
}

// Publish is best-effort: failures are logged and never reach the caller.
func (e *OrderEvents) Publish(ctx context.Context, evt models.OrderEvent) {
	if e == nil {
		return
	}

	if e.cache != nil {
		e.cache.Invalidate(ctx)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		e.log.Error("failed to marshal order event", zap.Error(err))
		return
	}

	if e.hub != nil {
		e.hub.Broadcast(payload)
	}

	if e.sns != nil && e.topicARN != "" {
		attrs := map[string]string{"eventType": evt.EventType, "status": string(evt.Status)}
		if err := e.sns.Publish(ctx, e.topicARN, payload, attrs); err != nil {
			e.log.Warn("SNS publish failed",
				zap.String("event_type", evt.EventType),
				zap.String("order_id", evt.OrderID),
				zap.Error(err),
			)
			return
		}
		e.log.Debug("SNS published", zap.String("event_type", evt.EventType), zap.String("order_id", evt.OrderID))
	}
}
