package auth

import (
	"fmt"
	"strings"
)

// Session is the authenticated caller. It is passed explicitly into every
// service entry point.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// RequireAdmin returns ErrForbidden unless the session carries the admin role.
func RequireAdmin(s Session) error {
	if !s.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

type Credential struct {
	Username     string
	Role         string
	PasswordHash string
}

// ParseCredentials reads "user:role:bcrypt-hash" entries separated by commas.
func ParseCredentials(raw string) ([]Credential, error) {
	var out []Credential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: entry %q needs user:role:hash", ErrMalformedUsers, entry)
		}
		cred := Credential{
			Username:     strings.TrimSpace(parts[0]),
			Role:         strings.ToLower(strings.TrimSpace(parts[1])),
			PasswordHash: strings.TrimSpace(parts[2]),
		}
		if cred.Username == "" || cred.PasswordHash == "" {
			return nil, fmt.Errorf("%w: entry %q has an empty field", ErrMalformedUsers, entry)
		}
		if !ValidRole(cred.Role) {
			return nil, fmt.Errorf("%w: unknown role %q for %s", ErrMalformedUsers, cred.Role, cred.Username)
		}
		out = append(out, cred)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no users configured", ErrMalformedUsers)
	}
	return out, nil
}

// Gate authenticates against a fixed credential set.
type Gate struct {
	users map[string]Credential
}

func NewGate(creds []Credential) (*Gate, error) {
	users := make(map[string]Credential, len(creds))
	for _, cred := range creds {
		if _, dup := users[cred.Username]; dup {
			return nil, fmt.Errorf("%w: duplicate user %s", ErrMalformedUsers, cred.Username)
		}
		users[cred.Username] = cred
	}
	return &Gate{users: users}, nil
}

func (g *Gate) Authenticate(username, password string) (Session, error) {
	cred, ok := g.users[strings.TrimSpace(username)]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(cred.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: cred.Username, Role: cred.Role}, nil
}
