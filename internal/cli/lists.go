package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/portalroom/internal/store"
)

func (a *App) Lists(_ context.Context, _ []string) error {
	lists, err := a.store.Lists(a.user())
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		fmt.Fprintln(a.out, "No lists")
		return nil
	}
	for _, l := range lists {
		printList(a.out, l)
	}
	return nil
}

// NewList prompts for the list name, description and visibility.
func (a *App) NewList(ctx context.Context, _ []string) error {
	var (
		in  store.ListInput
		err error
	)
	if in.Name, err = getSimpleText(a.reader, "List name", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.IsPublic, err = Confirm(a.reader, "Public?", a.out); err != nil {
		return err
	}
	l, err := a.store.CreateList(ctx, a.user(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created list %s\n", l.ID)
	return nil
}

// ShowList prints a list with the links that still exist.
func (a *App) ShowList(_ context.Context, args []string) error {
	id, err := idArg(args, 0, "showlist", "<list>")
	if err != nil {
		return err
	}
	l, links, err := a.store.ResolveList(id, a.user())
	if err != nil {
		return err
	}
	printList(a.out, l)
	printLinks(a.out, links)
	return nil
}

func (a *App) AddToList(ctx context.Context, args []string) error {
	listID, err := idArg(args, 0, "addtolist", "<list> <link>")
	if err != nil {
		return err
	}
	linkID, err := idArg(args, 1, "addtolist", "<list> <link>")
	if err != nil {
		return err
	}
	if err := a.store.AddLinkToList(ctx, listID, linkID, a.user()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Added")
	return nil
}

func (a *App) RemoveFromList(ctx context.Context, args []string) error {
	listID, err := idArg(args, 0, "rmfromlist", "<list> <link>")
	if err != nil {
		return err
	}
	linkID, err := idArg(args, 1, "rmfromlist", "<list> <link>")
	if err != nil {
		return err
	}
	if err := a.store.RemoveLinkFromList(ctx, listID, linkID, a.user()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed")
	return nil
}

func (a *App) DeleteList(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "dellist", "<list>")
	if err != nil {
		return err
	}
	if err := a.store.DeleteList(ctx, id, a.user()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "List deleted")
	return nil
}
