package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
)

const sessionExpiredNotice = "Session expired, please log in again"

// RedirectToLogin drops the local user after a terminal auth failure.
// The failing command reports the error itself.
func (a *App) RedirectToLogin(context.Context) {
	a.setUser(nil)
}

// SessionExpired prints the notice once per failed refresh and drops the
// local user.
func (a *App) SessionExpired(context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	if !a.expiredShown {
		a.expiredShown = true
		a.println(sessionExpiredNotice)
	}
}

// report prints the outcome of a failed command. Auth failures already
// announced by SessionExpired are not repeated.
func (a *App) report(ctx context.Context, action string, err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		a.mu.Lock()
		shown := a.expiredShown
		a.mu.Unlock()
		if !shown {
			a.println("Authentication failed, please log in again")
		}
		return
	}

	a.logger.Debug(ctx, "command failed", "action", action, "error", err)

	msg := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg = client.UserMessage(err, "Error "+action+" data")
	}
	a.printf("Error %s: %s\n", action, msg)
}
