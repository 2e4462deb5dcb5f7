package models

import "strings"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsAdmin reports whether r grants access to the admin screens.
func (r Role) IsAdmin() bool {
	return strings.EqualFold(string(r), string(RoleAdmin))
}

type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderPreferNotToSay Gender = "PREFERNOTTOSAY"
)

type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    Gender `json:"gender,omitempty"`
	Photo     string `json:"photo,omitempty"`
	Role      Role   `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is sent as multipart form data; Photo is an optional local
// file path uploaded alongside the fields.
type Registration struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Gender          Gender
	Role            Role
	Photo           string
}

// AuthResult is the responseObject of a successful login.
type AuthResult struct {
	User         User   `json:"users"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the body of the token refresh call.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResult is the responseObject of a token refresh. RefreshToken is
// empty when the server keeps the old one.
type RefreshResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
