package service

import (
	"context"

	"github.com/retail-backoffice/internal/events"
	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/observability"
	"go.uber.org/zap"
)

// OrderAPI is the remote service surface for orders.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error)
	UpdateOrder(ctx context.Context, o *model.Order) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error
}

// OrderStore is the direct storage fallback for orders.
type OrderStore interface {
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	Update(ctx context.Context, o *model.Order) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderNotifier publishes order mutation events. It only runs on the
// fallback path; the remote service owns notifications for its own writes.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, o *model.Order) error
	OrderUpdated(ctx context.Context, o *model.Order) error
	OrderStatusUpdated(ctx context.Context, orderID, status string) error
	OrderDeleted(ctx context.Context, orderID string) error
}

type Orders struct {
	remote   OrderAPI
	store    OrderStore
	notifier OrderNotifier
	p        pipeline
}

func NewOrders(remote OrderAPI, store OrderStore, notifier OrderNotifier, log *zap.Logger, metrics *observability.Metrics) *Orders {
	return &Orders{
		remote:   remote,
		store:    store,
		notifier: notifier,
		p:        pipeline{kind: model.PartitionOrder, log: log, metrics: metrics},
	}
}

func (s *Orders) List(ctx context.Context) ([]model.Order, error) {
	return attemptList(ctx, s.p, "list", s.remote.ListOrders, s.store.List)
}

func (s *Orders) Get(ctx context.Context, id string) (*model.Order, error) {
	return attemptGet(ctx, s.p, "get",
		func(ctx context.Context) (*model.Order, error) { return s.remote.GetOrder(ctx, id) },
		func(ctx context.Context) (*model.Order, error) { return s.store.Get(ctx, id) },
	)
}

func (s *Orders) Create(ctx context.Context, o *model.Order, actor string) (*model.Order, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "create",
		func(ctx context.Context) (*model.Order, error) { return s.remote.CreateOrder(ctx, o) },
		func(ctx context.Context) (*model.Order, error) { return s.store.Create(ctx, o) },
		func(ctx context.Context, created *model.Order) error {
			if err := s.notifier.OrderCreated(ctx, created); err != nil {
				return err
			}
			s.p.metrics.ObserveNotification(events.TypeOrderCreated)
			return nil
		},
	)
}

func (s *Orders) Update(ctx context.Context, o *model.Order, actor string) (*model.Order, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "update",
		func(ctx context.Context) (*model.Order, error) { return s.remote.UpdateOrder(ctx, o) },
		func(ctx context.Context) (*model.Order, error) { return s.store.Update(ctx, o) },
		func(ctx context.Context, updated *model.Order) error {
			if err := s.notifier.OrderUpdated(ctx, updated); err != nil {
				return err
			}
			s.p.metrics.ObserveNotification(events.TypeOrderUpdated)
			return nil
		},
	)
}

// UpdateStatus is the one partial patch in the contract: only the status
// field changes, everything else is preserved.
func (s *Orders) UpdateStatus(ctx context.Context, id, status, actor string) error {
	return attemptExec(ctx, s.p.withActor(actor), "update-status",
		func(ctx context.Context) error { return s.remote.UpdateOrderStatus(ctx, id, status) },
		func(ctx context.Context) error {
			_, err := s.store.UpdateStatus(ctx, id, status)
			return err
		},
		func(ctx context.Context) error {
			if err := s.notifier.OrderStatusUpdated(ctx, id, status); err != nil {
				return err
			}
			s.p.metrics.ObserveNotification(events.TypeOrderStatusUpdated)
			return nil
		},
	)
}

func (s *Orders) Delete(ctx context.Context, id, actor string) error {
	return attemptExec(ctx, s.p.withActor(actor), "delete",
		func(ctx context.Context) error { return s.remote.DeleteOrder(ctx, id) },
		func(ctx context.Context) error { return s.store.Delete(ctx, id) },
		func(ctx context.Context) error {
			if err := s.notifier.OrderDeleted(ctx, id); err != nil {
				return err
			}
			s.p.metrics.ObserveNotification(events.TypeOrderDeleted)
			return nil
		},
	)
}
