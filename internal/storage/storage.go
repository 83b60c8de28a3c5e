package storage

import (
	"context"
	"encoding/json"
)

// Table is the addressable entity store. Records are keyed by
// (partition, id) and carry an opaque JSON body; implementations return
// model.ErrNotFound for missing keys.
type Table interface {
	List(ctx context.Context, partition string) ([]json.RawMessage, error)
	Get(ctx context.Context, partition, id string) (json.RawMessage, error)
	Insert(ctx context.Context, partition, id string, body any) error
	Upsert(ctx context.Context, partition, id string, body any) error
	Delete(ctx context.Context, partition, id string) error
}

// Queue is the durable message queue side of the storage backend.
// Delivery is at-least-once; consumers must tolerate duplicates.
type Queue interface {
	Enqueue(ctx context.Context, queue string, payload any) error
	// Dequeue blocks briefly and returns (nil, nil) when the queue is empty.
	Dequeue(ctx context.Context, queue string) ([]byte, error)
}
