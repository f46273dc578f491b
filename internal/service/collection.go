package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maintdesk/workorder-service/internal/kv"
)

// Ключи коллекций в локальном хранилище.
const (
	KeyWorkOrders = "maint.workOrders"
	KeyVendors    = "maint.vendors"
)

const collectionVersion = 1

// envelope — версионированная обёртка сохранённой коллекции, чтобы будущие
// изменения формата мигрировались детерминированно.
type envelope[T any] struct {
	Version int `json:"version"`
	Records []T `json:"records"`
}

func loadCollection[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 {
		if env.Version > collectionVersion {
			return nil, fmt.Errorf("load %s: unsupported collection version %d", key, env.Version)
		}
		return env.Records, nil
	}

	// Legacy-формат: голый массив без обёртки. Принимаем при чтении,
	// следующая запись сохранит уже с версией.
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return records, nil
}

func saveCollection[T any](ctx context.Context, store kv.Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(envelope[T]{Version: collectionVersion, Records: records})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
