// Package storage persists PortalRoom snapshots in a key-value table.
//
// The table layout mirrors the browser storage the application started on:
// one row per top-level key (users, allLinks, currentUser, failedAttempts,
// theme) holding a JSON or plain-text value. SQLite is the default medium;
// Postgres and an in-memory map are also available.
package storage

import "context"

// Repository is a flat key-value store. Clear removes every key.
type Repository interface {
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
