package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/dmitrijs2005/portalroom/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	store  *store.Store
	hub    *Hub
	server *Server
	router *gin.Engine
}

func newFixture(t *testing.T, opts ...store.Option) *fixture {
	t.Helper()
	hub := NewHub(logging.Nop())
	opts = append([]store.Option{store.WithNotifier(hub)}, opts...)
	st, err := store.New(context.Background(), storage.NewMemorySnapshotStore(logging.Nop()), logging.Nop(), opts...)
	require.NoError(t, err)

	srv := NewServer(st, hub, logging.Nop(), Options{
		SecretKey: "test-secret",
		TokenTTL:  time.Hour,
		PublicURL: "http://portalroom.test",
	})
	return &fixture{store: st, hub: hub, server: srv, router: srv.Router()}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) register(t *testing.T, username string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/register", "", credentialsRequest{Username: username, Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (f *fixture) submit(t *testing.T, token, url string) models.Link {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/links", token, linkRequest{URL: url, Title: "Title", Tags: []string{"Go"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var l models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	return l
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	w := f.do(t, http.MethodPost, "/api/register", "", credentialsRequest{Username: "alice", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/api/register", "", credentialsRequest{Username: "al", Password: "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/login", "", credentialsRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/login", "", credentialsRequest{Username: "alice", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[tokenResponse](t, w)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Lockout(t *testing.T) {
	settings := store.DefaultSettings()
	settings.LockoutThreshold = 2
	f := newFixture(t, store.WithSettings(settings))
	f.register(t, "bob")

	for range 2 {
		w := f.do(t, http.MethodPost, "/api/login", "", credentialsRequest{Username: "bob", Password: "wrong"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := f.do(t, http.MethodPost, "/api/login", "", credentialsRequest{Username: "bob", Password: "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/links", "", linkRequest{URL: "https://example.com", Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/links", "garbage", linkRequest{URL: "https://example.com", Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A valid token for an account that does not exist cannot act.
	tok := f.register(t, "alice")
	other := newFixture(t)
	w = other.do(t, http.MethodPost, "/api/links", tok, linkRequest{URL: "https://example.com", Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_TokenExpiryFollowsServerClock(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	hub := NewHub(logging.Nop())
	st, err := store.New(context.Background(), storage.NewMemorySnapshotStore(logging.Nop()), logging.Nop(),
		store.WithNotifier(hub), store.WithClock(clock))
	require.NoError(t, err)
	srv := NewServer(st, hub, logging.Nop(), Options{SecretKey: "test-secret", TokenTTL: time.Hour, Now: clock})
	f := &fixture{store: st, hub: hub, server: srv, router: srv.Router()}

	tok := f.register(t, "alice")
	w := f.do(t, http.MethodGet, "/api/bookmarks", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	now = now.Add(2 * time.Hour)
	w = f.do(t, http.MethodGet, "/api/bookmarks", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLinks(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	l := f.submit(t, alice, "https://example.com")
	assert.Equal(t, []string{"go"}, l.Tags)
	assert.Equal(t, "alice", l.Author)

	w := f.do(t, http.MethodPost, "/api/links", bob, linkRequest{URL: "https://example.com", Title: "dup"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = f.do(t, http.MethodPost, "/api/links", bob, linkRequest{URL: "ftp://example.com", Title: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/links/"+string(l.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[models.Link](t, w).Views)
	w = f.do(t, http.MethodGet, "/api/links/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/links?q=title&tag=go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Link](t, w), 1)
	w = f.do(t, http.MethodGet, "/api/links?author=bob", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = f.do(t, http.MethodPut, "/api/links/"+string(l.ID), bob, linkRequest{Title: "mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do(t, http.MethodPut, "/api/links/"+string(l.ID), alice, linkRequest{Title: "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode[models.Link](t, w).Title)

	w = f.do(t, http.MethodPost, "/api/links/"+string(l.ID)+"/vote", bob, voteRequest{Direction: models.VoteUp})
	require.Equal(t, http.StatusOK, w.Code)
	vote := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, vote["score"])
	assert.EqualValues(t, 6, vote["authorKarma"])
	assert.Equal(t, "up", vote["state"])

	w = f.do(t, http.MethodPost, "/api/links/"+string(l.ID)+"/vote", bob, voteRequest{Direction: "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/trending?n=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Link](t, w), 1)

	w = f.do(t, http.MethodDelete, "/api/links/"+string(l.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do(t, http.MethodDelete, "/api/links/"+string(l.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, "/api/links/"+string(l.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarksAndComments(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	l := f.submit(t, alice, "https://example.com")
	base := "/api/links/" + string(l.ID)

	w := f.do(t, http.MethodPost, base+"/bookmark", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookmarked":true}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/bookmarks", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Link](t, w), 1)

	w = f.do(t, http.MethodPost, base+"/comments", bob, commentRequest{Text: "nice"})
	require.Equal(t, http.StatusCreated, w.Code)
	c := decode[models.Comment](t, w)
	assert.Equal(t, "bob", c.Author)

	w = f.do(t, http.MethodPost, base+"/comments", bob, commentRequest{Text: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, base+"/comments/"+string(c.ID), alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do(t, http.MethodDelete, base+"/comments/"+string(c.ID), bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodDelete, base+"/comments/"+string(c.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	l := f.submit(t, alice, "https://example.com")

	w := f.do(t, http.MethodPost, "/api/lists", alice, listRequest{Name: "Reading", IsPublic: true})
	require.Equal(t, http.StatusCreated, w.Code)
	list := decode[models.List](t, w)

	path := "/api/lists/" + string(list.ID)
	w = f.do(t, http.MethodPost, path+"/links/"+string(l.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodPost, path+"/links/"+string(l.ID), alice, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = f.do(t, http.MethodPost, path+"/links/"+string(l.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode[struct {
		List  models.List   `json:"list"`
		Links []models.Link `json:"links"`
	}](t, w)
	assert.Equal(t, "Reading", resolved.List.Name)
	require.Len(t, resolved.Links, 1)

	w = f.do(t, http.MethodGet, "/api/lists", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.List](t, w), 1)

	w = f.do(t, http.MethodDelete, path+"/links/"+string(l.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, path, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersProfileAndFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	f.register(t, "carol")
	f.submit(t, bob, "https://bob.example")

	_, err := f.store.CreateList(context.Background(), "alice", store.ListInput{Name: "secret"})
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/users/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	anon := decode[models.Account](t, w)
	assert.Empty(t, anon.Lists)
	assert.Empty(t, anon.Password)

	w = f.do(t, http.MethodGet, "/api/users/alice", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.Account](t, w).Lists, 1)

	w = f.do(t, http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/profile", alice, profileRequest{Bio: "hi there"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi there", decode[models.Account](t, w).Profile.Bio)

	w = f.do(t, http.MethodPost, "/api/users/alice/follow", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(t, http.MethodPost, "/api/users/bob/follow", alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/api/feed", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed := decode[[]models.Link](t, w)
	require.Len(t, feed, 1)
	assert.Equal(t, "bob", feed[0].Author)

	w = f.do(t, http.MethodDelete, "/api/users/bob/follow", alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRSS(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	l := f.submit(t, alice, "https://example.com/post")

	w := f.do(t, http.MethodGet, "/feed.rss", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, w.Body.String(), "<link>https://example.com/post</link>")
	assert.Contains(t, w.Body.String(), string(l.ID))
	assert.Contains(t, w.Body.String(), "<link>http://portalroom.test</link>")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{common.ErrMissingTitle, http.StatusBadRequest},
		{common.ErrInvalidCredentials, http.StatusUnauthorized},
		{common.ErrNotAuthenticated, http.StatusUnauthorized},
		{common.ErrTokenExpired, http.StatusUnauthorized},
		{common.ErrNotAuthor, http.StatusForbidden},
		{common.ErrLinkNotFound, http.StatusNotFound},
		{common.ErrDuplicateURL, http.StatusConflict},
		{&common.LockedError{Username: "bob"}, http.StatusTooManyRequests},
		{common.StorageError("save", context.Canceled), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
