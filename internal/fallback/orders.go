package fallback

import (
	"context"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/storage"
)

type Orders struct {
	table storage.Table
}

func NewOrders(table storage.Table) *Orders {
	return &Orders{table: table}
}

func (f *Orders) List(ctx context.Context) ([]model.Order, error) {
	return listPartition[model.Order](ctx, f.table, model.PartitionOrder)
}

func (f *Orders) Get(ctx context.Context, id string) (*model.Order, error) {
	raw, err := f.table.Get(ctx, model.PartitionOrder, id)
	return decodeOne[model.Order](raw, err)
}

func (f *Orders) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	out := *o
	out.Partition = model.PartitionOrder
	if out.ID == "" {
		out.ID = model.NewID()
	}
	if err := f.table.Insert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Orders) Update(ctx context.Context, o *model.Order) (*model.Order, error) {
	out := *o
	out.Partition = model.PartitionOrder
	if err := f.table.Upsert(ctx, out.Partition, out.ID, out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus overwrites only the status field via read-modify-write.
// There is no transactional guarantee; a concurrent writer can interleave.
// Accepted: this path only runs while the remote service is down.
func (f *Orders) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	existing, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Status = status
	if err := f.table.Upsert(ctx, model.PartitionOrder, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (f *Orders) Delete(ctx context.Context, id string) error {
	return f.table.Delete(ctx, model.PartitionOrder, id)
}
