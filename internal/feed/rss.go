// Package feed renders the link collection as an RSS 2.0 document.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/models"
	"github.com/gorilla/feeds"
)

const (
	DefaultTitle = "PortalRoom"
	DefaultLimit = 50
)

type Channel struct {
	Title       string
	Link        string
	Description string
	// Limit caps the number of items; zero means DefaultLimit.
	Limit int
}

func (c Channel) withDefaults() Channel {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Description == "" {
		c.Description = "Recently shared links"
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	return c
}

// Build converts links, newest first, into a feed. Links beyond the
// channel limit are dropped.
func Build(links []*models.Link, ch Channel, now time.Time) *feeds.Feed {
	ch = ch.withDefaults()
	f := &feeds.Feed{
		Title:       ch.Title,
		Link:        &feeds.Link{Href: ch.Link},
		Description: ch.Description,
		Created:     now,
	}
	for i, l := range links {
		if i == ch.Limit {
			break
		}
		f.Items = append(f.Items, &feeds.Item{
			Id:          l.ID.String(),
			Title:       l.Title,
			Link:        &feeds.Link{Href: l.URL},
			Description: describe(l),
			Author:      &feeds.Author{Name: l.Author},
			Created:     l.Timestamp,
		})
	}
	return f
}

// RSS renders Build's result as RSS 2.0 XML.
func RSS(links []*models.Link, ch Channel, now time.Time) (string, error) {
	out, err := Build(links, ch, now).ToRss()
	if err != nil {
		return "", fmt.Errorf("render rss: %w", err)
	}
	return out, nil
}

func describe(l *models.Link) string {
	var b strings.Builder
	b.WriteString(l.Description)
	if len(l.Tags) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("[" + strings.Join(l.Tags, ", ") + "]")
	}
	return b.String()
}
