package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// ExportVersion is written to every export document.
const ExportVersion = "2.0"

// exportDocument is the backup format. Users and AllLinks are embedded JSON
// on export; on import they may also be JSON strings holding the JSON, as
// the browser application wrote them.
type exportDocument struct {
	Users       json.RawMessage `json:"users"`
	AllLinks    json.RawMessage `json:"allLinks"`
	CurrentUser *string         `json:"currentUser"`
	ExportDate  string          `json:"exportDate"`
	Version     string          `json:"version"`
}

// Export produces a full backup document.
func (s *Store) Export() ([]byte, error) {
	var (
		out []byte
		err error
	)
	s.view(func(st *state) {
		snap := st.snapshot()

		var doc exportDocument
		if doc.Users, err = json.Marshal(snap.Users); err != nil {
			return
		}
		if doc.AllLinks, err = json.Marshal(snap.AllLinks); err != nil {
			return
		}
		if snap.CurrentUser != "" {
			cu := snap.CurrentUser
			doc.CurrentUser = &cu
		}
		doc.ExportDate = s.now().UTC().Format(time.RFC3339)
		doc.Version = ExportVersion

		out, err = json.MarshalIndent(doc, "", "  ")
	})
	if err != nil {
		return nil, common.StorageError("export", err)
	}
	return out, nil
}

// Import replaces users and links with those in data. Links are kept when
// the document has no allLinks. Lockout state and theme are kept; the
// session is kept only if its user still exists.
// Malformed documents are rejected without any change.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}

	var users map[string]*models.Account
	if err := decodeEmbedded(doc.Users, &users); err != nil || users == nil {
		return fmt.Errorf("%w: users: %v", common.ErrInvalidBackup, errOrMissing(err))
	}
	var links []*models.Link
	if err := decodeEmbedded(doc.AllLinks, &links); err != nil {
		return fmt.Errorf("%w: allLinks: %v", common.ErrInvalidBackup, err)
	}

	err := s.update(ctx, func(tx *txn) error {
		// A backup without allLinks only replaces the users.
		if links == nil {
			links = tx.links
		}
		imported := newState(&models.Snapshot{
			Users:          users,
			AllLinks:       links,
			CurrentUser:    tx.currentUser,
			FailedAttempts: tx.failed,
			Theme:          tx.theme,
		})
		tx.state = imported
		tx.emit(Event{Type: EventDataImported, Detail: fmt.Sprintf("%d users, %d links", len(imported.accounts), len(imported.links))})
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "data imported", "users", len(users), "links", len(links))
	return nil
}

// Reset deletes all persisted data and leaves the store empty. The theme
// returns to light.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.persist.Reset(ctx); err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "failed to reset state", "error", err)
		if !errors.Is(err, common.ErrStorage) {
			err = common.StorageError("reset", err)
		}
		return err
	}
	s.st = newState(models.EmptySnapshot())
	now := s.now()
	s.mu.Unlock()

	s.notifier.Notify(ctx, Event{Type: EventDataReset, At: now})
	s.log.Info(ctx, "data reset")
	return nil
}

// decodeEmbedded unmarshals raw into v, unwrapping one level of JSON string
// encoding if present. A missing or null value leaves v untouched.
func decodeEmbedded(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		raw = []byte(inner)
	}
	return json.Unmarshal(raw, v)
}

func errOrMissing(err error) error {
	if err != nil {
		return err
	}
	return errors.New("missing")
}
