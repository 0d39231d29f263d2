package remote

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/cryptox"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/dmitrijs2005/portalroom/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlob struct {
	data []byte
}

func (m *memBlob) Push(_ context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memBlob) Pull(context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, ErrNoBackup
	}
	return m.data, nil
}

func (m *memBlob) Location() string { return "memory" }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), storage.NewMemorySnapshotStore(logging.Nop()), logging.Nop())
	require.NoError(t, err)
	return s
}

func TestSyncer_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
	}{
		{"plain", ""},
		{"sealed", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			src := newStore(t)
			_, err := src.Register(ctx, "alice", "secret1")
			require.NoError(t, err)
			_, err = src.SubmitLink(ctx, "alice", store.LinkInput{URL: "https://example.com", Title: "Example"})
			require.NoError(t, err)

			blob := &memBlob{}
			res, err := NewSyncer(src, blob, tt.passphrase, logging.Nop()).Push(ctx)
			require.NoError(t, err)
			assert.Equal(t, PushResult{Location: "memory"}, res)
			assert.Equal(t, tt.passphrase != "", cryptox.IsSealed(blob.data))

			dst := newStore(t)
			require.NoError(t, NewSyncer(dst, blob, tt.passphrase, logging.Nop()).Pull(ctx))
			assert.Len(t, dst.Links(store.LinkFilter{}), 1)
		})
	}
}

func TestSyncer_PushReportsCreatedGist(t *testing.T) {
	ctx := context.Background()
	g, _ := newGistFixture(t, "")
	s := NewSyncer(newStore(t), g, "", logging.Nop())

	res, err := s.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, PushResult{Location: "gist new-gist", CreatedGist: "new-gist"}, res)

	res, err = s.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, PushResult{Location: "gist new-gist"}, res)
}

func TestSyncer_PullErrors(t *testing.T) {
	ctx := context.Background()
	dst := newStore(t)

	err := NewSyncer(dst, &memBlob{}, "", logging.Nop()).Pull(ctx)
	require.ErrorIs(t, err, ErrNoBackup)

	sealed, err := cryptox.Seal([]byte(`{"users":{}}`), "pw")
	require.NoError(t, err)
	blob := &memBlob{data: sealed}

	err = NewSyncer(dst, blob, "", logging.Nop()).Pull(ctx)
	require.ErrorIs(t, err, ErrPassphraseRequired)

	err = NewSyncer(dst, blob, "wrong", logging.Nop()).Pull(ctx)
	require.ErrorIs(t, err, common.ErrValidation)

	err = NewSyncer(dst, &memBlob{data: []byte("garbage")}, "", logging.Nop()).Pull(ctx)
	require.ErrorIs(t, err, common.ErrInvalidBackup)
}
