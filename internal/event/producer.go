// Package event publishes the service's domain events to Kafka. Publish
// failures are logged and never propagate into request handling.
package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/pkg/kafka"
	"github.com/quickeats/quickeats/pkg/logger"
)

// Topics carrying the service's domain events.
const (
	TopicOrderSettled   = "quickeats.order.settled"
	TopicPointsCredited = "quickeats.points.credited"
	TopicReviewCreated  = "quickeats.review.created"
)

const source = "quickeats"

// Producer publishes domain events.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer creates a Producer.
func NewProducer(producer *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: logger}
}

// OrderSettledPayload is the payload of order.settled events.
type OrderSettledPayload struct {
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  int64     `json:"order_number"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	DeliveryType string    `json:"delivery_type"`
	Total        int64     `json:"total"`
}

// PointsCreditedPayload is the payload of points.credited events.
type PointsCreditedPayload struct {
	UserID      uuid.UUID  `json:"user_id"`
	Points      int        `json:"points"`
	Action      string     `json:"action"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
}

// ReviewCreatedPayload is the payload of review.created events.
type ReviewCreatedPayload struct {
	ReviewID     uuid.UUID `json:"review_id"`
	OrderID      uuid.UUID `json:"order_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Rating       int       `json:"rating"`
}

// OrderSettled publishes an order.settled event keyed by user.
func (p *Producer) OrderSettled(ctx context.Context, order *domain.Order) {
	p.publish(ctx, TopicOrderSettled, "order.settled", order.UserID.String(), OrderSettledPayload{
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		DeliveryType: string(order.DeliveryType),
		Total:        order.Total,
	})
}

// PointsCredited publishes a points.credited event keyed by user.
func (p *Producer) PointsCredited(ctx context.Context, entry *domain.PointsEntry) {
	p.publish(ctx, TopicPointsCredited, "points.credited", entry.UserID.String(), PointsCreditedPayload{
		UserID:      entry.UserID,
		Points:      entry.Points,
		Action:      string(entry.Action),
		ReferenceID: entry.ReferenceID,
	})
}

// ReviewCreated publishes a review.created event keyed by restaurant, so
// consumers recomputing aggregates see one restaurant's reviews in order.
func (p *Producer) ReviewCreated(ctx context.Context, review *domain.Review) {
	p.publish(ctx, TopicReviewCreated, "review.created", review.RestaurantID.String(), ReviewCreatedPayload{
		ReviewID:     review.ID,
		OrderID:      review.OrderID,
		RestaurantID: review.RestaurantID,
		Rating:       review.Rating,
	})
}

func (p *Producer) publish(ctx context.Context, topic, eventType, key string, payload any) {
	if p == nil || p.producer == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, source, logger.CorrelationIDFromContext(ctx), payload)
	if err != nil {
		p.logger.Error("build event", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}

	if err := p.producer.Publish(ctx, topic, key, evt); err != nil {
		p.logger.Error("publish event",
			slog.String("topic", topic),
			slog.String("type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
