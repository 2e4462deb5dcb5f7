// Package cli provides the interactive cmsadmin command-line client.
//
// It wires configuration, the session store, the authenticated API client
// and the services into a REPL. Typical flow: log in, browse and search
// content, and (for administrators) manage categories and content items.
//
// Key features:
//   - Login / Register / Logout / Whoami
//   - Paged category and content listings, content search
//   - Admin-only create, rename, edit and delete commands
//   - Overview, which loads categories and content concurrently
//
// App implements client.Navigator: when a token refresh fails the session
// is dropped, a single "session expired" notice is printed and the prompt
// returns to the logged-out command set.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
