package service

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/observability"
	"go.uber.org/zap"
)

// CustomerAPI is the remote service surface for customers.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// CustomerStore is the direct storage fallback for customers.
type CustomerStore interface {
	List(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

type Customers struct {
	remote CustomerAPI
	store  CustomerStore
	p      pipeline
}

func NewCustomers(remote CustomerAPI, store CustomerStore, log *zap.Logger, metrics *observability.Metrics) *Customers {
	return &Customers{
		remote: remote,
		store:  store,
		p:      pipeline{kind: model.PartitionCustomer, log: log, metrics: metrics},
	}
}

func (s *Customers) List(ctx context.Context) ([]model.Customer, error) {
	return attemptList(ctx, s.p, "list", s.remote.ListCustomers, s.store.List)
}

func (s *Customers) Get(ctx context.Context, id string) (*model.Customer, error) {
	return attemptGet(ctx, s.p, "get",
		func(ctx context.Context) (*model.Customer, error) { return s.remote.GetCustomer(ctx, id) },
		func(ctx context.Context) (*model.Customer, error) { return s.store.Get(ctx, id) },
	)
}

func (s *Customers) Create(ctx context.Context, c *model.Customer, actor string) (*model.Customer, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "create",
		func(ctx context.Context) (*model.Customer, error) { return s.remote.CreateCustomer(ctx, c) },
		func(ctx context.Context) (*model.Customer, error) { return s.store.Create(ctx, c) },
		nil,
	)
}

func (s *Customers) Update(ctx context.Context, c *model.Customer, actor string) (*model.Customer, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "update",
		func(ctx context.Context) (*model.Customer, error) { return s.remote.UpdateCustomer(ctx, c) },
		func(ctx context.Context) (*model.Customer, error) { return s.store.Update(ctx, c) },
		nil,
	)
}

func (s *Customers) Delete(ctx context.Context, id, actor string) error {
	return attemptExec(ctx, s.p.withActor(actor), "delete",
		func(ctx context.Context) error { return s.remote.DeleteCustomer(ctx, id) },
		func(ctx context.Context) error { return s.store.Delete(ctx, id) },
		nil,
	)
}
