package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/retail-backoffice/internal/model"
)

// Table is an in-memory storage.Table for local development and tests.
type Table struct {
	mu         sync.RWMutex
	partitions map[string]map[string]json.RawMessage
}

func NewTable() *Table {
	return &Table{partitions: make(map[string]map[string]json.RawMessage)}
}

func (t *Table) List(ctx context.Context, partition string) ([]json.RawMessage, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := t.partitions[partition]
	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, rows[id])
	}
	return out, nil
}

func (t *Table) Get(ctx context.Context, partition, id string) (json.RawMessage, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	body, ok := t.partitions[partition][id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return body, nil
}

func (t *Table) Insert(ctx context.Context, partition, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows, ok := t.partitions[partition]
	if !ok {
		rows = make(map[string]json.RawMessage)
		t.partitions[partition] = rows
	}
	if _, exists := rows[id]; exists {
		return fmt.Errorf("entity %s/%s already exists", partition, id)
	}
	rows[id] = data
	return nil
}

func (t *Table) Upsert(ctx context.Context, partition, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rows, ok := t.partitions[partition]
	if !ok {
		rows = make(map[string]json.RawMessage)
		t.partitions[partition] = rows
	}
	rows[id] = data
	return nil
}

func (t *Table) Delete(ctx context.Context, partition, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.partitions[partition]
	if _, ok := rows[id]; !ok {
		return model.ErrNotFound
	}
	delete(rows, id)
	return nil
}

// Queue is an in-memory storage.Queue. Messages are kept in FIFO order.
type Queue struct {
	mu     sync.Mutex
	queues map[string][][]byte
}

func NewQueue() *Queue {
	return &Queue{queues: make(map[string][][]byte)}
}

func (q *Queue) Enqueue(ctx context.Context, queue string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.queues[queue] = append(q.queues[queue], data)
	return nil
}

func (q *Queue) Dequeue(ctx context.Context, queue string) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msgs := q.queues[queue]
	if len(msgs) == 0 {
		return nil, nil
	}
	q.queues[queue] = msgs[1:]
	return msgs[0], nil
}

// Len reports the number of pending messages, for tests.
func (q *Queue) Len(queue string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queues[queue])
}
