// Package events publishes order lifecycle events to Kafka so
// downstream consumers (notifications, analytics) can react without
// coupling to the API database.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"go-storefront-api/internal/model"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the wire shape of every order event.
type OrderEvent struct {
	Type          string            `json:"type"`
	OrderID       string            `json:"order_id"`
	SellerEmail   string            `json:"seller_email"`
	CustomerEmail string            `json:"customer_email"`
	Status        model.OrderStatus `json:"status"`
	PrevStatus    model.OrderStatus `json:"prev_status,omitempty"`
	TotalAmount   float64           `json:"total_amount"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// Publisher writes order events to a single topic, keyed by order id so
// per-order ordering is preserved across partitions. A nil Publisher is
// valid and drops every event, which keeps the broker optional in
// development.
type Publisher struct {
	w *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
	}
}

func (p *Publisher) publish(ev OrderEvent) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal %s: %v", ev.Type, err)
		return
	}
	msg := kafka.Message{Key: []byte(ev.OrderID), Value: payload}
	if err := p.w.WriteMessages(context.Background(), msg); err != nil {
		log.Printf("events: publish %s: %v", ev.Type, err)
	}
}

// OrderPlaced announces a freshly created order.
func (p *Publisher) OrderPlaced(o *model.Order) {
	p.publish(OrderEvent{
		Type:          TypeOrderPlaced,
		OrderID:       o.ID.String(),
		SellerEmail:   o.SellerEmail,
		CustomerEmail: o.CustomerInfo.Email,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		OccurredAt:    time.Now(),
	})
}

// OrderStatusChanged announces a lifecycle transition.
func (p *Publisher) OrderStatusChanged(o *model.Order, prev model.OrderStatus) {
	p.publish(OrderEvent{
		Type:          TypeOrderStatusChanged,
		OrderID:       o.ID.String(),
		SellerEmail:   o.SellerEmail,
		CustomerEmail: o.CustomerInfo.Email,
		Status:        o.Status,
		PrevStatus:    prev,
		TotalAmount:   o.TotalAmount,
		OccurredAt:    time.Now(),
	})
}

// Close flushes buffered messages and closes the writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
