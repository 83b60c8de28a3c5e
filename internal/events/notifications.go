package events

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/storage"
)

// NotificationQueue receives events for order mutations that bypassed the
// remote service. Downstream systems drain it independently.
const NotificationQueue = "order-notifications"

const (
	TypeOrderCreated       = "order-created"
	TypeOrderUpdated       = "order-updated"
	TypeOrderStatusUpdated = "order-status-updated"
	TypeOrderDeleted       = "order-deleted"
)

type OrderCreated struct {
	Type       string  `json:"type"`
	OrderID    string  `json:"orderId"`
	CustomerID string  `json:"customerId"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
}

type OrderUpdated struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrderStatusUpdated struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrderDeleted struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
}

// Notifier publishes order mutation events onto the notification queue.
type Notifier struct {
	queue storage.Queue
}

func NewNotifier(queue storage.Queue) *Notifier {
	return &Notifier{queue: queue}
}

func (n *Notifier) OrderCreated(ctx context.Context, o *model.Order) error {
	return n.queue.Enqueue(ctx, NotificationQueue, OrderCreated{
		Type:       TypeOrderCreated,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.TotalPrice,
	})
}

func (n *Notifier) OrderUpdated(ctx context.Context, o *model.Order) error {
	return n.queue.Enqueue(ctx, NotificationQueue, OrderUpdated{
		Type:    TypeOrderUpdated,
		OrderID: o.ID,
		Status:  o.Status,
	})
}

func (n *Notifier) OrderStatusUpdated(ctx context.Context, orderID, status string) error {
	return n.queue.Enqueue(ctx, NotificationQueue, OrderStatusUpdated{
		Type:    TypeOrderStatusUpdated,
		OrderID: orderID,
		Status:  status,
	})
}

func (n *Notifier) OrderDeleted(ctx context.Context, orderID string) error {
	return n.queue.Enqueue(ctx, NotificationQueue, OrderDeleted{
		Type:    TypeOrderDeleted,
		OrderID: orderID,
	})
}
