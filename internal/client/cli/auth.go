package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
)

// Register prompts for the registration form and creates the account.
// The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	var reg models.Registration
	var err error

	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter name", &reg.Name},
		{"Enter username", &reg.Username},
		{"Enter email", &reg.Email},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.text, a.out); err != nil {
			return err
		}
	}

	gender, err := getSimpleText(a.reader, "Gender (male, female, prefer not to say)", a.out)
	if err != nil {
		return err
	}
	reg.Gender = parseGender(gender)

	if reg.Photo, err = getSimpleText(a.reader, "Photo file (optional)", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	reg.Password, reg.ConfirmPassword = string(password), string(confirmation)

	if err := a.authService.Register(ctx, reg); err != nil {
		a.report(ctx, "registering", err)
		return err
	}

	a.println("Success! You can now log in.")
	return nil
}

func parseGender(s string) models.Gender {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "male", "m":
		return models.GenderMale
	case "female", "f":
		return models.GenderFemale
	default:
		return models.GenderPreferNotToSay
	}
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == client.KindAuth {
			msg := "invalid credentials"
			if m, ok := apiErr.Payload.(map[string]any); ok {
				if s, ok := m["message"].(string); ok && s != "" {
					msg = s
				}
			}
			a.printf("Login unsuccessful: %s\n", msg)
			return err
		}
		a.report(ctx, "logging in", err)
		return err
	}

	a.setUser(user)
	a.printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(ctx, "logging out", err)
		return err
	}
	a.setUser(nil)
	a.println("Logged out")
	return nil
}

// WhoAmI prints the signed-in user and what the access token says about
// itself.
func (a *App) WhoAmI(ctx context.Context) error {
	st, err := a.authService.Status(ctx)
	if err != nil {
		a.report(ctx, "reading session", err)
		return err
	}
	if !st.Authenticated {
		a.println("Not logged in")
		return nil
	}

	if st.User != nil {
		a.printf("User:    %s <%s>\n", st.User.Name, st.User.Email)
		a.printf("Role:    %s\n", st.User.Role)
	}
	if !st.SavedAt.IsZero() {
		a.printf("Session: saved %s\n", st.SavedAt.Local().Format(time.DateTime))
	}
	switch {
	case st.TokenErr != nil:
		a.println("Token:   opaque")
	case st.Token.ExpiresAt.IsZero():
		a.println("Token:   no expiry")
	case st.Token.Expired(time.Now()):
		a.printf("Token:   expired at %s (will refresh on next call)\n", st.Token.ExpiresAt.Local().Format(time.DateTime))
	default:
		a.printf("Token:   valid until %s\n", st.Token.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
