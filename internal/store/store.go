package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

// Persistence loads and saves whole snapshots. Save must be all-or-nothing.
// Reset deletes everything persisted.
type Persistence interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
	Reset(ctx context.Context) error
}

// Settings are the tunable rules of the store.
type Settings struct {
	LockoutThreshold int
	LockoutDuration  time.Duration
	KarmaPerLink     int
	KarmaPerComment  int
	FeedSize         int
}

func DefaultSettings() Settings {
	return Settings{
		LockoutThreshold: 5,
		LockoutDuration:  15 * time.Minute,
		KarmaPerLink:     5,
		KarmaPerComment:  1,
		FeedSize:         50,
	}
}

type Option func(*Store)

func WithSettings(s Settings) Option {
	return func(st *Store) { st.settings = s }
}

func WithNotifier(n Notifier) Option {
	return func(st *Store) { st.notifier = n }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithIDGenerator replaces models.NewID, mostly for tests.
func WithIDGenerator(gen func() models.ID) Option {
	return func(st *Store) { st.newID = gen }
}

type Store struct {
	mu       sync.Mutex
	st       *state
	persist  Persistence
	log      logging.Logger
	settings Settings
	notifier Notifier
	now      func() time.Time
	newID    func() models.ID
}

// New loads the persisted snapshot and returns a ready store.
func New(ctx context.Context, p Persistence, log logging.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		persist:  p,
		log:      log,
		settings: DefaultSettings(),
		notifier: nopNotifier{},
		now:      time.Now,
		newID:    models.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.st = newState(snap)
	s.log.Info(ctx, "state loaded", "users", len(s.st.accounts), "links", len(s.st.links))
	return s, nil
}

// txn is the working copy handed to a mutation.
type txn struct {
	*state
	now    time.Time
	events []Event
}

func (t *txn) emit(e Event) {
	e.At = t.now
	t.events = append(t.events, e)
}

// update runs fn against a clone of the state and commits the clone only if
// fn succeeds and the snapshot is saved.
func (s *Store) update(ctx context.Context, fn func(tx *txn) error) error {
	events, err := s.commit(ctx, fn)
	if err != nil {
		return err
	}
	for _, e := range events {
		s.notifier.Notify(ctx, e)
	}
	return nil
}

func (s *Store) commit(ctx context.Context, fn func(tx *txn) error) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{state: s.st.clone(), now: s.now()}
	if err := fn(tx); err != nil {
		return nil, err
	}
	if err := s.persist.Save(ctx, tx.snapshot()); err != nil {
		s.log.Error(ctx, "failed to save state", "error", err)
		if !errors.Is(err, common.ErrStorage) {
			err = common.StorageError("save", err)
		}
		return nil, err
	}
	s.st = tx.state
	return tx.events, nil
}

// view runs fn under the lock against the current state.
func (s *Store) view(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// actor returns the named account or ErrNotAuthenticated. Actors are
// always resolved through it so that a stale or forged username cannot act.
func (st *state) actor(username string) (*models.Account, error) {
	acc, ok := st.accounts[username]
	if !ok || username == "" {
		return nil, common.ErrNotAuthenticated
	}
	return acc, nil
}

func (st *state) link(id models.ID) (*models.Link, error) {
	l, ok := st.byID[id]
	if !ok {
		return nil, common.ErrLinkNotFound
	}
	return l, nil
}
