package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/retail-backoffice/internal/model"
)

// Table stores entity bodies as JSONB rows keyed by (partition_key, id).
type Table struct {
	db *sql.DB
}

func NewTable(db *sql.DB) *Table {
	return &Table{db: db}
}

func (t *Table) List(ctx context.Context, partition string) ([]json.RawMessage, error) {
	query := `SELECT body FROM entities WHERE partition_key = $1 ORDER BY id`
	rows, err := t.db.QueryContext(ctx, query, partition)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bodies []json.RawMessage
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		bodies = append(bodies, json.RawMessage(body))
	}
	return bodies, rows.Err()
}

func (t *Table) Get(ctx context.Context, partition, id string) (json.RawMessage, error) {
	query := `SELECT body FROM entities WHERE partition_key = $1 AND id = $2`
	var body []byte
	err := t.db.QueryRowContext(ctx, query, partition, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (t *Table) Insert(ctx context.Context, partition, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	query := `INSERT INTO entities (partition_key, id, body) VALUES ($1, $2, $3)`
	_, err = t.db.ExecContext(ctx, query, partition, id, data)
	return err
}

func (t *Table) Upsert(ctx context.Context, partition, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	query := `INSERT INTO entities (partition_key, id, body) VALUES ($1, $2, $3)
		ON CONFLICT (partition_key, id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	_, err = t.db.ExecContext(ctx, query, partition, id, data)
	return err
}

func (t *Table) Delete(ctx context.Context, partition, id string) error {
	query := `DELETE FROM entities WHERE partition_key = $1 AND id = $2`
	res, err := t.db.ExecContext(ctx, query, partition, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
