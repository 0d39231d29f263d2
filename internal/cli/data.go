package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/feed"
	"github.com/dmitrijs2005/portalroom/internal/filex"
	"github.com/dmitrijs2005/portalroom/internal/store"
)

var errNoRemote = errors.New("no remote backend configured")

// Theme prints the stored theme or replaces it.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, a.store.Theme())
		return nil
	}
	if err := a.store.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme set to %s\n", args[0])
	return nil
}

// writeOut writes data to path, or to the terminal when path is empty.
func (a *App) writeOut(args []string, data []byte) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(a.out, string(data))
		return err
	}
	if err := filex.WriteFile(args[0], data); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Written to %s\n", args[0])
	return nil
}

func (a *App) Export(_ context.Context, args []string) error {
	data, err := a.store.Export()
	if err != nil {
		return err
	}
	return a.writeOut(args, data)
}

// Import replaces all users and links with a backup file after confirmation.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("import", "<file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "This replaces all local users and links. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.store.Import(ctx, data); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Imported")
	return nil
}

func (a *App) publicURL() string {
	if a.config == nil {
		return ""
	}
	return a.config.PublicURL
}

// RSS writes the most recent links as an RSS 2.0 document.
func (a *App) RSS(_ context.Context, args []string) error {
	links := a.store.Links(store.LinkFilter{Limit: feed.DefaultLimit})
	out, err := feed.RSS(links, feed.Channel{Link: a.publicURL()}, time.Now())
	if err != nil {
		return err
	}
	return a.writeOut(args, []byte(out))
}

// Push uploads a backup. A newly created gist is reported so that its ID can
// be saved in the configuration.
func (a *App) Push(ctx context.Context, _ []string) error {
	if a.syncer == nil {
		return errNoRemote
	}
	res, err := a.syncer.Push(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup uploaded to %s\n", res.Location)
	if res.CreatedGist != "" {
		fmt.Fprintf(a.out, "Created gist %s. Set gist_id or PORTALROOM_GIST_ID to it so later pushes update this gist.\n", res.CreatedGist)
	}
	return nil
}

// Reset deletes all local data after confirmation.
func (a *App) Reset(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "This deletes all local users, links and settings. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All local data deleted")
	return nil
}

// Pull replaces local data with the remote backup after confirmation.
func (a *App) Pull(ctx context.Context, _ []string) error {
	if a.syncer == nil {
		return errNoRemote
	}
	ok, err := Confirm(a.reader, "This replaces all local users and links. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.syncer.Pull(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Backup restored")
	return nil
}
