// Package user resolves the person running the CLI to a stored user.
package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	osuser "os/user"
	"strings"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrUnknownUser is returned when the OS login matches no stored user
var ErrUnknownUser = errors.New("no user matches the current login; pass an explicit user ID")

// Lister lists stored users
type Lister interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
}

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := osuser.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// Resolve returns explicitID when it is set. Otherwise it looks for the
// user whose email local part or first name equals login, ignoring case.
func Resolve(ctx context.Context, users Lister, explicitID int, login string) (int, error) {
	if explicitID > 0 {
		return explicitID, nil
	}

	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return 0, ErrUnknownUser
	}

	candidates, err := users.ListUsers(ctx, models.UserFilter{Search: login})
	if err != nil {
		return 0, fmt.Errorf("failed to look up %q: %w", login, err)
	}
	for _, u := range candidates {
		if matches(u, login) {
			return u.ID, nil
		}
	}
	return 0, fmt.Errorf("%w (login %q)", ErrUnknownUser, login)
}

func matches(u models.User, login string) bool {
	local, _, _ := strings.Cut(strings.ToLower(u.Email), "@")
	if local == login {
		return true
	}
	first, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(u.Name)), " ")
	return first == login
}
