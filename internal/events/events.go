package events

import (
	"time"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
)

// OrderCreatedEvent is published after a checkout persists its order.
// Consumers (fulfilment, notifications) are outside this service.
type OrderCreatedEvent struct {
	EventID   string             `json:"event_id"`
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Total     float64            `json:"total"`
	Items     []domain.OrderItem `json:"items"`
	Status    string             `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	RequestID string             `json:"request_id"`
}
