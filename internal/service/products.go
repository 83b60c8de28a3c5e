package service

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/observability"
	"go.uber.org/zap"
)

// ProductAPI is the remote service surface for products.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductStore is the direct storage fallback for products.
type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type Products struct {
	remote ProductAPI
	store  ProductStore
	p      pipeline
}

func NewProducts(remote ProductAPI, store ProductStore, log *zap.Logger, metrics *observability.Metrics) *Products {
	return &Products{
		remote: remote,
		store:  store,
		p:      pipeline{kind: model.PartitionProduct, log: log, metrics: metrics},
	}
}

func (s *Products) List(ctx context.Context) ([]model.Product, error) {
	return attemptList(ctx, s.p, "list", s.remote.ListProducts, s.store.List)
}

func (s *Products) Get(ctx context.Context, id string) (*model.Product, error) {
	return attemptGet(ctx, s.p, "get",
		func(ctx context.Context) (*model.Product, error) { return s.remote.GetProduct(ctx, id) },
		func(ctx context.Context) (*model.Product, error) { return s.store.Get(ctx, id) },
	)
}

func (s *Products) Create(ctx context.Context, p *model.Product, actor string) (*model.Product, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "create",
		func(ctx context.Context) (*model.Product, error) { return s.remote.CreateProduct(ctx, p) },
		func(ctx context.Context) (*model.Product, error) { return s.store.Create(ctx, p) },
		nil,
	)
}

func (s *Products) Update(ctx context.Context, p *model.Product, actor string) (*model.Product, error) {
	return attemptWrite(ctx, s.p.withActor(actor), "update",
		func(ctx context.Context) (*model.Product, error) { return s.remote.UpdateProduct(ctx, p) },
		func(ctx context.Context) (*model.Product, error) { return s.store.Update(ctx, p) },
		nil,
	)
}

func (s *Products) Delete(ctx context.Context, id, actor string) error {
	return attemptExec(ctx, s.p.withActor(actor), "delete",
		func(ctx context.Context) error { return s.remote.DeleteProduct(ctx, id) },
		func(ctx context.Context) error { return s.store.Delete(ctx, id) },
		nil,
	)
}
