package fallback

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/storage"
)

type Customers struct {
	table storage.Table
}

func NewCustomers(table storage.Table) *Customers {
	return &Customers{table: table}
}

func (f *Customers) List(ctx context.Context) ([]model.Customer, error) {
	return listPartition[model.Customer](ctx, f.table, model.PartitionCustomer)
}

func (f *Customers) Get(ctx context.Context, id string) (*model.Customer, error) {
	raw, err := f.table.Get(ctx, model.PartitionCustomer, id)
	return decodeOne[model.Customer](raw, err)
}

// Create generates an identifier before the write when none was supplied,
// so the persisted and returned records agree.
func (f *Customers) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	out := *c
	out.Partition = model.PartitionCustomer
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if err := f.table.Insert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Customers) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	out := *c
	out.Partition = model.PartitionCustomer
	if err := f.table.Upsert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Customers) Delete(ctx context.Context, id string) error {
	return f.table.Delete(ctx, model.PartitionCustomer, id)
}
