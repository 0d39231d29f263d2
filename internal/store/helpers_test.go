package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// flakyPersistence wraps another Persistence and fails saves on demand.
type flakyPersistence struct {
	Persistence
	failSave bool
	saves    int
}

func (f *flakyPersistence) Save(ctx context.Context, snap *models.Snapshot) error {
	if f.failSave {
		return errors.New("quota exceeded")
	}
	f.saves++
	return f.Persistence.Save(ctx, snap)
}

func (f *flakyPersistence) Reset(ctx context.Context) error {
	if f.failSave {
		return errors.New("quota exceeded")
	}
	return f.Persistence.Reset(ctx)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	store   *Store
	persist *flakyPersistence
	clock   *fakeClock
	events  *recorder
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		persist: &flakyPersistence{Persistence: storage.NewMemorySnapshotStore(logging.Nop())},
		clock:   newFakeClock(),
		events:  &recorder{},
	}
	opts = append([]Option{WithClock(env.clock.Now), WithNotifier(env.events)}, opts...)
	s, err := New(context.Background(), env.persist, logging.Nop(), opts...)
	require.NoError(t, err)
	env.store = s
	return env
}

// reopen builds a second store over the same persisted data.
func (env *testEnv) reopen(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), env.persist, logging.Nop(), WithClock(env.clock.Now))
	require.NoError(t, err)
	return s
}

func (env *testEnv) register(t *testing.T, username string) {
	t.Helper()
	_, err := env.store.Register(context.Background(), username, "secret1")
	require.NoError(t, err)
}

func (env *testEnv) submit(t *testing.T, author, url string) *models.Link {
	t.Helper()
	l, err := env.store.SubmitLink(context.Background(), author, LinkInput{URL: url, Title: "Title " + url})
	require.NoError(t, err)
	return l
}

// projectionMatches asserts that every account's projected links equal the
// global links it authored.
func projectionMatches(t *testing.T, s *Store) {
	t.Helper()
	s.view(func(st *state) {
		snap := st.snapshot()
		for username, acc := range snap.Users {
			var want []models.ID
			for _, l := range snap.AllLinks {
				if l.Author == username {
					want = append(want, l.ID)
				}
			}
			var got []models.ID
			for _, l := range acc.Links {
				got = append(got, l.ID)
			}
			require.Equal(t, want, got, "projection for %s", username)
		}
	})
}
