package store

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	env.register(t, "bob")
	a := env.submit(t, "alice", "https://a.example")
	b := env.submit(t, "bob", "https://b.example")

	list, err := env.store.CreateList(ctx, "alice", ListInput{Name: " Reading ", Description: "later", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, "Reading", list.Name)
	assert.Equal(t, "alice", list.Author)
	assert.Empty(t, list.Links)

	require.NoError(t, env.store.AddLinkToList(ctx, list.ID, a.ID, "alice"))
	require.NoError(t, env.store.AddLinkToList(ctx, list.ID, b.ID, "alice"))
	require.ErrorIs(t, env.store.AddLinkToList(ctx, list.ID, a.ID, "alice"), common.ErrAlreadyInList)
	require.ErrorIs(t, env.store.AddLinkToList(ctx, list.ID, "missing", "alice"), common.ErrLinkNotFound)
	require.ErrorIs(t, env.store.AddLinkToList(ctx, "missing", a.ID, "alice"), common.ErrListNotFound)

	_, links, err := env.store.ResolveList(list.ID, "alice")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, a.ID, links[0].ID)
	assert.Equal(t, b.ID, links[1].ID)

	require.NoError(t, env.store.RemoveLinkFromList(ctx, list.ID, a.ID, "alice"))
	require.ErrorIs(t, env.store.RemoveLinkFromList(ctx, list.ID, a.ID, "alice"), common.ErrLinkNotInList)

	lists, err := env.store.Lists("alice")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, []models.ID{b.ID}, lists[0].Links)

	require.NoError(t, env.store.DeleteList(ctx, list.ID, "alice"))
	require.ErrorIs(t, env.store.DeleteList(ctx, list.ID, "alice"), common.ErrListNotFound)
	lists, err = env.store.Lists("alice")
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestLists_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	env.register(t, "bob")
	l := env.submit(t, "alice", "https://a.example")
	list, err := env.store.CreateList(ctx, "alice", ListInput{Name: "Mine"})
	require.NoError(t, err)

	require.ErrorIs(t, env.store.AddLinkToList(ctx, list.ID, l.ID, "bob"), common.ErrListNotFound)
	require.ErrorIs(t, env.store.DeleteList(ctx, list.ID, "bob"), common.ErrListNotFound)
	_, _, err = env.store.ResolveList(list.ID, "bob")
	require.ErrorIs(t, err, common.ErrListNotFound)

	_, err = env.store.CreateList(ctx, "alice", ListInput{Name: "  "})
	require.ErrorIs(t, err, common.ErrMissingListName)
	_, err = env.store.CreateList(ctx, "", ListInput{Name: "x"})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestAccount_HidesPrivateLists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	_, err := env.store.CreateList(ctx, "alice", ListInput{Name: "public", IsPublic: true})
	require.NoError(t, err)
	_, err = env.store.CreateList(ctx, "alice", ListInput{Name: "private"})
	require.NoError(t, err)

	own, err := env.store.Account("alice", "alice")
	require.NoError(t, err)
	assert.Len(t, own.Lists, 2)

	other, err := env.store.Account("alice", "bob")
	require.NoError(t, err)
	require.Len(t, other.Lists, 1)
	assert.Equal(t, "public", other.Lists[0].Name)

	_, err = env.store.Account("nobody", "")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	env.register(t, "bob")

	acc, err := env.store.UpdateProfile(ctx, "alice", "  Reader of things ")
	require.NoError(t, err)
	assert.Equal(t, "Reader of things", acc.Profile.Bio)

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'é'
	}
	_, err = env.store.UpdateProfile(ctx, "alice", string(long))
	require.ErrorIs(t, err, common.ErrBioTooLong)

	require.ErrorIs(t, env.store.Follow(ctx, "alice", "alice"), common.ErrSelfFollow)
	require.ErrorIs(t, env.store.Follow(ctx, "alice", "nobody"), common.ErrUserNotFound)
	require.NoError(t, env.store.Follow(ctx, "alice", "bob"))
	require.NoError(t, env.store.Follow(ctx, "alice", "bob"))

	alice, err := env.store.Account("alice", "")
	require.NoError(t, err)
	bob, err := env.store.Account("bob", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, alice.Profile.Following)
	assert.Equal(t, []string{"alice"}, bob.Profile.Followers)

	require.NoError(t, env.store.Unfollow(ctx, "alice", "bob"))
	require.NoError(t, env.store.Unfollow(ctx, "alice", "bob"))
	bob, err = env.store.Account("bob", "")
	require.NoError(t, err)
	assert.Empty(t, bob.Profile.Followers)
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	assert.Equal(t, models.ThemeLight, env.store.Theme())

	require.NoError(t, env.store.SetTheme(ctx, models.ThemeDark))
	require.ErrorIs(t, env.store.SetTheme(ctx, "blue"), common.ErrInvalidTheme)
	assert.Equal(t, models.ThemeDark, env.reopen(t).Theme())
}
