// Package kv — локальное хранилище сериализованных коллекций: плоские блобы
// под фиксированными ключами. Логика импорта и CRUD работает только через
// этот интерфейс и не знает, что за ним стоит.
package kv

import "context"

type Store interface {
	// Get возвращает блоб и признак его существования.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
