package cli

import (
	"fmt"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/models"
)

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "[username]", run: a.Register},
		{name: "login", usage: "[username]", run: a.Login},
		{name: "logout", auth: true, run: a.Logout},

		{name: "submit", usage: "[url]", auth: true, run: a.Submit},
		{name: "edit", usage: "<link>", auth: true, run: a.Edit},
		{name: "delete", usage: "<link>", auth: true, run: a.Delete},
		{name: "show", usage: "<link>", run: a.Show},
		{name: "vote", usage: "<link> up|down", auth: true, run: a.Vote},
		{name: "bookmark", usage: "<link>", auth: true, run: a.Bookmark},
		{name: "comment", usage: "<link> [text]", auth: true, run: a.Comment},
		{name: "uncomment", usage: "<link> <comment>", auth: true, run: a.Uncomment},

		{name: "links", usage: "[words] [tag:x] [cat:x] [by:user]", run: a.Search},
		{name: "search", usage: "[words] [tag:x] [cat:x] [by:user]", run: a.Search},
		{name: "trending", usage: "[n]", run: a.Trending},
		{name: "feed", auth: true, run: a.Feed},
		{name: "bookmarks", auth: true, run: a.Bookmarks},

		{name: "lists", auth: true, run: a.Lists},
		{name: "newlist", auth: true, run: a.NewList},
		{name: "showlist", usage: "<list>", auth: true, run: a.ShowList},
		{name: "addtolist", usage: "<list> <link>", auth: true, run: a.AddToList},
		{name: "rmfromlist", usage: "<list> <link>", auth: true, run: a.RemoveFromList},
		{name: "dellist", usage: "<list>", auth: true, run: a.DeleteList},

		{name: "profile", usage: "[username]", run: a.Profile},
		{name: "bio", usage: "[text]", auth: true, run: a.Bio},
		{name: "follow", usage: "<username>", auth: true, run: a.Follow},
		{name: "unfollow", usage: "<username>", auth: true, run: a.Unfollow},

		{name: "theme", usage: "[dark|light]", run: a.Theme},
		{name: "export", usage: "[file]", run: a.Export},
		{name: "import", usage: "<file>", run: a.Import},
		{name: "rss", usage: "[file]", run: a.RSS},
		{name: "push", run: a.Push},
		{name: "pull", run: a.Pull},
		{name: "reset", run: a.Reset},
	}
}

// usageError reports a malformed command line.
func usageError(name, usage string) error {
	return fmt.Errorf("%w: usage: %s %s", common.ErrValidation, name, usage)
}

// idArg returns args[i] as an ID or a usage error.
func idArg(args []string, i int, name, usage string) (models.ID, error) {
	if len(args) <= i {
		return "", usageError(name, usage)
	}
	return models.ID(args[i]), nil
}

func (a *App) user() string {
	return a.store.CurrentUser()
}
