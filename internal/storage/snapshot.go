package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/dbx"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// Keys of the persisted layout.
const (
	KeyUsers          = "users"
	KeyAllLinks       = "allLinks"
	KeyCurrentUser    = "currentUser"
	KeyFailedAttempts = "failedAttempts"
	KeyTheme          = "theme"
)

// SnapshotStore loads and saves whole snapshots through a Repository.
// Saves are atomic: either every key is written or none is.
type SnapshotStore struct {
	read  Repository
	batch func(ctx context.Context, fn func(Repository) error) error
	log   logging.Logger
}

// NewSQLSnapshotStore stores snapshots in db using driver's dialect.
func NewSQLSnapshotStore(db *sql.DB, driver string, log logging.Logger) *SnapshotStore {
	newRepo := repositoryFor(driver)
	return &SnapshotStore{
		read: newRepo(db),
		batch: func(ctx context.Context, fn func(Repository) error) error {
			return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
				return fn(newRepo(tx))
			})
		},
		log: log,
	}
}

// NewMemorySnapshotStore keeps snapshots in process memory.
func NewMemorySnapshotStore(log logging.Logger) *SnapshotStore {
	repo := NewMemoryRepository()
	return &SnapshotStore{read: repo, batch: repo.batch, log: log}
}

// Load reads the snapshot. A key holding malformed JSON is logged and
// treated as empty; only failures of the medium itself are returned.
func (s *SnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	values, err := s.read.List(ctx)
	if err != nil {
		return nil, common.StorageError("load", err)
	}

	snap := models.EmptySnapshot()
	snap.Users = decode(ctx, s.log, values, KeyUsers, snap.Users)
	snap.AllLinks = decode(ctx, s.log, values, KeyAllLinks, snap.AllLinks)
	snap.FailedAttempts = decode(ctx, s.log, values, KeyFailedAttempts, snap.FailedAttempts)
	if snap.Users == nil {
		snap.Users = map[string]*models.Account{}
	}
	if snap.AllLinks == nil {
		snap.AllLinks = []*models.Link{}
	}
	if snap.FailedAttempts == nil {
		snap.FailedAttempts = map[string]models.FailedAttempt{}
	}

	snap.CurrentUser = string(values[KeyCurrentUser])
	switch theme := string(values[KeyTheme]); theme {
	case models.ThemeDark, models.ThemeLight:
		snap.Theme = theme
	}

	return snap, nil
}

// decode returns the JSON value under key, or empty when the key is missing
// or malformed.
func decode[T any](ctx context.Context, log logging.Logger, values map[string][]byte, key string, empty T) T {
	raw, ok := values[key]
	if !ok || len(raw) == 0 {
		return empty
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn(ctx, "corrupt persisted value, starting empty", "key", key, "error", err)
		return empty
	}
	return v
}

// Save writes every key of snap in one batch.
func (s *SnapshotStore) Save(ctx context.Context, snap *models.Snapshot) error {
	encoded := make(map[string][]byte, 5)
	for key, v := range map[string]any{
		KeyUsers:          snap.Users,
		KeyAllLinks:       snap.AllLinks,
		KeyFailedAttempts: snap.FailedAttempts,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return common.StorageError("encode "+key, err)
		}
		encoded[key] = b
	}
	encoded[KeyTheme] = []byte(snap.Theme)

	err := s.batch(ctx, func(repo Repository) error {
		for key, value := range encoded {
			if err := repo.Set(ctx, key, value); err != nil {
				return err
			}
		}
		if snap.CurrentUser == "" {
			return repo.Delete(ctx, KeyCurrentUser)
		}
		return repo.Set(ctx, KeyCurrentUser, []byte(snap.CurrentUser))
	})
	if err != nil {
		return common.StorageError("save", fmt.Errorf("write snapshot: %w", err))
	}
	return nil
}

// Reset deletes every key in one batch.
func (s *SnapshotStore) Reset(ctx context.Context) error {
	err := s.batch(ctx, func(repo Repository) error {
		return repo.Clear(ctx)
	})
	if err != nil {
		return common.StorageError("reset", fmt.Errorf("clear snapshot: %w", err))
	}
	return nil
}
