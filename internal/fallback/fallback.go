// Package fallback performs entity operations directly against the storage
// backend when the remote service cannot be reached. The adapters mirror
// the remote contract operation for operation so the resilient layer can
// substitute them transparently.
package fallback

import (
	"context"
	"encoding/json"

	"github.com/retail-backoffice/internal/storage"
)

func decodeList[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeOne[T any](raw json.RawMessage, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func listPartition[T any](ctx context.Context, t storage.Table, partition string) ([]T, error) {
	raws, err := t.List(ctx, partition)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raws)
}
