package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// GistStore keeps the backup as a file of a private GitHub gist. A store
// without a gist ID creates the gist on its first push.
type GistStore struct {
	gists  *github.GistsService
	client *github.Client
	gistID string
	file   string
}

func NewGistStore(ctx context.Context, token, gistID string) *GistStore {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	c := github.NewClient(hc)
	return &GistStore{gists: c.Gists, client: c, gistID: gistID, file: BackupFile}
}

// SetBaseURL points the client at another API root, such as GitHub
// Enterprise or a test server.
func (g *GistStore) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	g.client.BaseURL = u
	return nil
}

// GistID is the gist in use; it is empty until the first push when none
// was configured.
func (g *GistStore) GistID() string {
	return g.gistID
}

func (g *GistStore) Location() string {
	if g.gistID == "" {
		return "gist (new)"
	}
	return "gist " + g.gistID
}

func (g *GistStore) Push(ctx context.Context, data []byte) error {
	files := map[github.GistFilename]github.GistFile{
		github.GistFilename(g.file): {Content: github.String(string(data))},
	}

	if g.gistID == "" {
		created, _, err := g.gists.Create(ctx, &github.Gist{
			Description: github.String("PortalRoom backup"),
			Public:      github.Bool(false),
			Files:       files,
		})
		if err != nil {
			return fmt.Errorf("cannot create gist: %w", err)
		}
		g.gistID = created.GetID()
		return nil
	}

	if _, _, err := g.gists.Edit(ctx, g.gistID, &github.Gist{Files: files}); err != nil {
		return fmt.Errorf("cannot update gist %s: %w", g.gistID, err)
	}
	return nil
}

func (g *GistStore) Pull(ctx context.Context) ([]byte, error) {
	if g.gistID == "" {
		return nil, ErrNoBackup
	}
	gist, resp, err := g.gists.Get(ctx, g.gistID)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNoBackup
		}
		return nil, fmt.Errorf("cannot fetch gist %s: %w", g.gistID, err)
	}
	f, ok := gist.Files[github.GistFilename(g.file)]
	if !ok || f.GetContent() == "" {
		return nil, ErrNoBackup
	}
	return []byte(f.GetContent()), nil
}
