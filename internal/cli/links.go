package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/dmitrijs2005/portalroom/internal/scrape"
	"github.com/dmitrijs2005/portalroom/internal/store"
)

// prefill fetches page metadata for url. Failures only cost the defaults.
func (a *App) prefill(ctx context.Context, url string) scrape.Metadata {
	if a.fetcher == nil {
		return scrape.Metadata{}
	}
	md, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.log.Warn(ctx, "metadata fetch failed", "url", url, "error", err)
		fmt.Fprintln(a.out, "Could not fetch page details, enter them manually")
		return scrape.Metadata{}
	}
	return *md
}

// linkDraft prompts for the editable link fields, offering cur as defaults.
func (a *App) linkDraft(cur store.LinkInput) (store.LinkInput, error) {
	var err error
	in := cur
	if in.Title, err = GetWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return in, err
	}
	if in.Description, err = GetWithDefault(a.reader, "Description", cur.Description, a.out); err != nil {
		return in, err
	}
	tags, err := GetWithDefault(a.reader, "Tags (comma separated)", strings.Join(cur.Tags, ", "), a.out)
	if err != nil {
		return in, err
	}
	in.Tags = SplitTags(tags)
	if in.Category, err = GetWithDefault(a.reader, "Category", cur.Category, a.out); err != nil {
		return in, err
	}
	return in, nil
}

// Submit shares a new link. The title and description are pre-filled from
// the page when scraping is enabled.
func (a *App) Submit(ctx context.Context, args []string) error {
	var url string
	if len(args) > 0 {
		url = args[0]
	} else {
		var err error
		if url, err = getSimpleText(a.reader, "Enter URL", a.out); err != nil {
			return err
		}
	}

	md := a.prefill(ctx, url)
	in, err := a.linkDraft(store.LinkInput{URL: url, Title: md.Title, Description: md.Description})
	if err != nil {
		return err
	}

	l, err := a.store.SubmitLink(ctx, a.user(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Submitted %s\n", l.ID)
	return nil
}

// Edit changes the title, description, tags and category of an own link.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "edit", "<link>")
	if err != nil {
		return err
	}
	l, err := a.store.Link(id)
	if err != nil {
		return err
	}
	in, err := a.linkDraft(store.LinkInput{
		URL:         l.URL,
		Title:       l.Title,
		Description: l.Description,
		Tags:        l.Tags,
		Category:    l.Category,
	})
	if err != nil {
		return err
	}
	if _, err := a.store.EditLink(ctx, id, a.user(), in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "delete", "<link>")
	if err != nil {
		return err
	}
	if err := a.store.DeleteLink(ctx, id, a.user()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// Show prints a link with its comments and counts the view.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "show", "<link>")
	if err != nil {
		return err
	}
	if _, err := a.store.IncrementViews(ctx, id); err != nil {
		return err
	}
	l, err := a.store.Link(id)
	if err != nil {
		return err
	}
	printLinkDetails(a.out, l, a.user())
	return nil
}

func (a *App) Vote(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "vote", "<link> up|down")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError("vote", "<link> up|down")
	}
	res, err := a.store.Vote(ctx, id, a.user(), models.VoteDirection(strings.ToLower(args[1])))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Score %+d (%d up, %d down), your vote: %s\n", res.Score, res.Up, res.Down, res.State)
	return nil
}

func (a *App) Bookmark(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "bookmark", "<link>")
	if err != nil {
		return err
	}
	on, err := a.store.ToggleBookmark(ctx, id, a.user())
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintln(a.out, "Bookmarked")
	} else {
		fmt.Fprintln(a.out, "Bookmark removed")
	}
	return nil
}

// Comment adds a comment. Without inline text the body is read as
// multi-line input.
func (a *App) Comment(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "comment", "<link> [text]")
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if text == "" {
		if text, err = GetMultiline(a.reader, "Enter comment", a.out); err != nil {
			return err
		}
	}
	c, err := a.store.AddComment(ctx, id, a.user(), text)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s added\n", c.ID)
	return nil
}

func (a *App) Uncomment(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "uncomment", "<link> <comment>")
	if err != nil {
		return err
	}
	cid, err := idArg(args, 1, "uncomment", "<link> <comment>")
	if err != nil {
		return err
	}
	if err := a.store.DeleteComment(ctx, id, cid, a.user()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment deleted")
	return nil
}

// parseFilter turns search arguments into a filter. tag:, cat: and by:
// prefixes select exact fields, everything else is free text.
func parseFilter(args []string) store.LinkFilter {
	var (
		f     store.LinkFilter
		words []string
	)
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "tag:"):
			f.Tag = strings.TrimPrefix(arg, "tag:")
		case strings.HasPrefix(arg, "cat:"):
			f.Category = strings.TrimPrefix(arg, "cat:")
		case strings.HasPrefix(arg, "by:"):
			f.Author = strings.TrimPrefix(arg, "by:")
		default:
			words = append(words, arg)
		}
	}
	f.Query = strings.Join(words, " ")
	return f
}

func (a *App) Search(_ context.Context, args []string) error {
	printLinks(a.out, a.store.Links(parseFilter(args)))
	return nil
}

func (a *App) Trending(_ context.Context, args []string) error {
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return usageError("trending", "[n]")
		}
		n = v
	}
	printLinks(a.out, a.store.Trending(n))
	return nil
}

// Feed shows links from followed users.
func (a *App) Feed(_ context.Context, _ []string) error {
	printLinks(a.out, a.store.Feed(a.user()))
	return nil
}

func (a *App) Bookmarks(_ context.Context, _ []string) error {
	links, err := a.store.Bookmarks(a.user())
	if err != nil {
		return err
	}
	printLinks(a.out, links)
	return nil
}
