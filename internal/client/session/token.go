package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenInfo is what the CLI shows about the current access token.
type TokenInfo struct {
	Subject   string
	Role      models.Role
	ExpiresAt time.Time
}

// Expired reports whether the token is past its exp claim at now. Tokens
// without exp never expire locally.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// InspectToken reads the claims of a JWT without verifying its signature.
// The server remains the authority; this only feeds status output.
func InspectToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var info TokenInfo

	switch sub := claims["sub"].(type) {
	case string:
		info.Subject = sub
	case float64:
		info.Subject = strconv.FormatFloat(sub, 'f', -1, 64)
	}
	if info.Subject == "" {
		if id, ok := claims["id"].(float64); ok {
			info.Subject = strconv.FormatFloat(id, 'f', -1, 64)
		}
	}

	if role, ok := claims["role"].(string); ok {
		info.Role = models.Role(role)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
