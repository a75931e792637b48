package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/user"
)

// LoginEnv overrides the OS login when matching the caller to a user
const LoginEnv = "TABLERO_USER"

// AddOutputFlags adds the --json and --quiet flags every command takes
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrDataFormat, raw)
	}
	return t, nil
}

// Truncate shortens s to n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// FormatDate renders t as YYYY-MM-DD, or "-" when unset
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// ParseID parses a positional record ID
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, &CodedError{Code: ExitUsage, Err: fmt.Errorf("invalid ID %q: must be a positive integer", raw)}
	}
	return id, nil
}

// CurrentUserID returns explicitID when set, otherwise the stored user
// matching $TABLERO_USER or the OS login
func CurrentUserID(ctx context.Context, c *CLI, explicitID int) (int, error) {
	login := os.Getenv(LoginEnv)
	if login == "" {
		login = user.GetCurrentUsername()
	}
	id, err := user.Resolve(ctx, c.App.UserService, explicitID, login)
	if errors.Is(err, user.ErrUnknownUser) {
		return 0, &CodedError{Code: ExitUsage, Err: err}
	}
	return id, err
}

// StdinIsTerminal reports whether interactive prompts can be shown
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
