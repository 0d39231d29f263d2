package cli

import (
	"context"
	"fmt"
	"strings"
)

// Profile prints an account. Without an argument it shows the current user.
func (a *App) Profile(_ context.Context, args []string) error {
	username := a.user()
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		return usageError("profile", "[username]")
	}
	acc, err := a.store.Account(username, a.user())
	if err != nil {
		return err
	}
	printAccount(a.out, acc)
	return nil
}

func (a *App) Bio(ctx context.Context, args []string) error {
	bio := strings.Join(args, " ")
	if bio == "" {
		var err error
		if bio, err = getSimpleText(a.reader, "Enter bio", a.out); err != nil {
			return err
		}
	}
	if _, err := a.store.UpdateProfile(ctx, a.user(), bio); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) Follow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("follow", "<username>")
	}
	if err := a.store.Follow(ctx, a.user(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Following %s\n", args[0])
	return nil
}

func (a *App) Unfollow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("unfollow", "<username>")
	}
	if err := a.store.Unfollow(ctx, a.user(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unfollowed %s\n", args[0])
	return nil
}
