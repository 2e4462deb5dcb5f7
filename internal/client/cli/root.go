package cli

import (
	"context"
	"fmt"
)

func (a *App) status() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	if u.Role.IsAdmin() {
		return fmt.Sprintf("(%s admin)", name)
	}
	return fmt.Sprintf("(%s)", name)
}

// Root runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to cmsadmin CLI (type 'help' for commands)")
	if u := a.currentUser(); u != nil {
		a.printf("Resuming session of %s\n", u.Email)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}
