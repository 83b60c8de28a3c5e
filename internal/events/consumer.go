package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/retail-backoffice/internal/storage"
	"go.uber.org/zap"
)

// envelope covers every notification type; only type and orderId are
// present on all of them.
type envelope struct {
	Type       string  `json:"type"`
	OrderID    string  `json:"orderId"`
	CustomerID string  `json:"customerId"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
}

// Consumer drains the notification queue and hands each event to the
// systems that missed a mutation because it bypassed the remote service.
// Here that is a structured log line; deployments fan out from it.
type Consumer struct {
	queue storage.Queue
	log   *zap.Logger
}

func NewConsumer(queue storage.Queue, log *zap.Logger) *Consumer {
	return &Consumer{queue: queue, log: log}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.log.Info("notification consumer started", zap.String("queue", NotificationQueue))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := c.queue.Dequeue(ctx, NotificationQueue)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Warn("dequeue failed, backing off", zap.Error(err))
			sleepWithContext(ctx, 500*time.Millisecond)
			continue
		}
		if payload == nil {
			// Queue empty. Redis BRPOP already blocked for its timeout; the
			// in-memory queue returns immediately.
			sleepWithContext(ctx, 100*time.Millisecond)
			continue
		}

		c.handle(payload)
	}
}

func (c *Consumer) handle(payload []byte) {
	var ev envelope
	if err := json.Unmarshal(payload, &ev); err != nil {
		c.log.Error("dropping malformed notification", zap.Error(err), zap.ByteString("payload", payload))
		return
	}

	fields := []zap.Field{
		zap.String("type", ev.Type),
		zap.String("order_id", ev.OrderID),
	}
	switch ev.Type {
	case TypeOrderCreated:
		fields = append(fields,
			zap.String("customer_id", ev.CustomerID),
			zap.String("status", ev.Status),
			zap.Float64("total", ev.Total),
		)
	case TypeOrderUpdated, TypeOrderStatusUpdated:
		fields = append(fields, zap.String("status", ev.Status))
	case TypeOrderDeleted:
	default:
		c.log.Warn("unknown notification type", fields...)
		return
	}
	c.log.Info("order notification received", fields...)
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
