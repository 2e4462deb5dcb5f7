package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Categories(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Content(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Overview(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: whoami, overview, categories [page], content [page], search <title> [category-id], show <id>, logout, help, exit"
	helpAdmin     = "Admin commands: category add | category rename <id> | category delete <id>, content add | content edit <id> | content photo <id> | content delete <id>"
)

// adminSubcommands are the subcommands of category/content that require
// the ADMIN role.
var adminSubcommands = map[string]bool{
	"add":    true,
	"rename": true,
	"edit":   true,
	"photo":  true,
	"delete": true,
}

func needsAdmin(cmd string, args []string) bool {
	switch cmd {
	case "category":
		return true
	case "content":
		return len(args) > 0 && adminSubcommands[args[0]]
	}
	return false
}

// runREPL reads commands from reader until EOF or exit/quit and
// dispatches them to a. Handler errors are reported by the handlers
// themselves; the loop only enforces which commands are available.
//
//	Not logged in:
//	  - help, register, login, exit | quit
//
//	Logged in:
//	  - whoami, overview, categories [page], content [page],
//	    search <title> [category-id], show <id>, logout
//
//	ADMIN role:
//	  - category add | rename <id> | delete <id>
//	  - content add | edit <id> | photo <id> | delete <id>
//
// Commands and prompts share reader, so interactive handlers consume
// exactly the lines that follow their command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "cms %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				fmt.Fprintln(w, helpLoggedOut)
			case a.isAdmin():
				fmt.Fprintln(w, helpLoggedIn)
				fmt.Fprintln(w, helpAdmin)
			default:
				fmt.Fprintln(w, helpLoggedIn)
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first (type 'login')")
			continue
		}
		if needsAdmin(cmd, args) && !a.isAdmin() {
			fmt.Fprintln(w, "Permission denied: this command requires the ADMIN role")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "overview":
			_ = a.Overview(ctx)
		case "categories":
			_ = a.Categories(ctx, args)
		case "category":
			_ = a.Category(ctx, args)
		case "content":
			_ = a.Content(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
