package fallback

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/storage"
)

type Products struct {
	table storage.Table
}

func NewProducts(table storage.Table) *Products {
	return &Products{table: table}
}

func (f *Products) List(ctx context.Context) ([]model.Product, error) {
	return listPartition[model.Product](ctx, f.table, model.PartitionProduct)
}

func (f *Products) Get(ctx context.Context, id string) (*model.Product, error) {
	raw, err := f.table.Get(ctx, model.PartitionProduct, id)
	return decodeOne[model.Product](raw, err)
}

func (f *Products) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	out := *p
	out.Partition = model.PartitionProduct
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if err := f.table.Insert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Products) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	out := *p
	out.Partition = model.PartitionProduct
	if err := f.table.Upsert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Products) Delete(ctx context.Context, id string) error {
	return f.table.Delete(ctx, model.PartitionProduct, id)
}
