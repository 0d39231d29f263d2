package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func printLinks(w io.Writer, links []*models.Link) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No links")
		return
	}
	for _, l := range links {
		printLink(w, l)
	}
}

func printLink(w io.Writer, l *models.Link) {
	fmt.Fprintf(w, "%s  %+d  %s\n", l.ID, l.Votes.Score(), l.Title)
	fmt.Fprintf(w, "    %s\n", l.URL)
	fmt.Fprintf(w, "    by %s in %s, %d comments, %d views", l.Author, l.Category, len(l.Comments), l.Views)
	if len(l.Tags) > 0 {
		fmt.Fprintf(w, " [%s]", strings.Join(l.Tags, ", "))
	}
	fmt.Fprintln(w)
}

// printLinkDetails prints a link with its description and comments, and
// the viewer's own vote when there is one.
func printLinkDetails(w io.Writer, l *models.Link, viewer string) {
	printLink(w, l)
	if l.Description != "" {
		fmt.Fprintf(w, "\n%s\n", l.Description)
	}
	if viewer != "" {
		fmt.Fprintf(w, "\nYour vote: %s\n", l.Votes.Of(viewer))
	}
	if len(l.Comments) == 0 {
		return
	}
	fmt.Fprintln(w, "\nComments:")
	for _, c := range l.Comments {
		fmt.Fprintf(w, "  %s  %s (%s): %s\n", c.ID, c.Author, c.Timestamp.Local().Format(timeLayout), c.Text)
	}
}

func printList(w io.Writer, l *models.List) {
	visibility := "private"
	if l.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(w, "%s  %s (%s, %d links)\n", l.ID, l.Name, visibility, len(l.Links))
	if l.Description != "" {
		fmt.Fprintf(w, "    %s\n", l.Description)
	}
}

func printAccount(w io.Writer, acc *models.Account) {
	p := acc.Profile
	fmt.Fprintf(w, "[%s] %s\n", p.Avatar, acc.Username)
	fmt.Fprintf(w, "  %s\n", p.Bio)
	fmt.Fprintf(w, "  joined %s, karma %d\n", acc.JoinedAt.Local().Format(time.DateOnly), p.Karma)
	fmt.Fprintf(w, "  badges: %s\n", strings.Join(p.Badges, ", "))
	fmt.Fprintf(w, "  %d links, %d following, %d followers\n", len(acc.Links), len(p.Following), len(p.Followers))
	for _, l := range acc.Lists {
		printList(w, l)
	}
}
