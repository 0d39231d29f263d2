package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// credentials reads a username (unless given as the first argument) and a
// password. Without a terminal the password is read as a plain line.
func (a *App) credentials(args []string) (string, []byte, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return "", nil, err
		}
	}

	if isTerminal(int(os.Stdin.Fd())) {
		pw, err := getPassword(a.out)
		return username, pw, err
	}
	pw, err := getSimpleText(a.reader, "Enter password", a.out)
	return username, []byte(pw), err
}

// Register creates an account and logs it in.
func (a *App) Register(ctx context.Context, args []string) error {
	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.store.Register(ctx, username, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s! Badges: %v\n", acc.Username, acc.Profile.Badges)
	return nil
}

// Login authenticates and makes the user the current session. A locked
// account reports when the lock lifts.
func (a *App) Login(ctx context.Context, args []string) error {
	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.store.Authenticate(ctx, username, string(password))
	var locked *common.LockedError
	if errors.As(err, &locked) {
		return fmt.Errorf("too many failed attempts, try again at %s: %w",
			locked.Until.Local().Format(time.Kitchen), err)
	}
	if err != nil {
		return err
	}
	if sess.Upgraded {
		fmt.Fprintln(a.out, "Stored password upgraded to the current scheme")
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", sess.Username)
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
