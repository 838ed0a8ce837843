// Package joincode generates and validates workspace invite codes.
// Codes are short and human-typeable: six characters drawn from A-Z0-9,
// always stored and compared uppercased. Uniqueness is enforced by the
// database; callers regenerate on collision.
package joincode

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// Length is the number of characters in an invite code.
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// New generates a random invite code.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, Length)
	for i, b := range buf {
		code[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(code), nil
}

// Normalize uppercases and trims a user-supplied code so lookups are
// case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValid reports whether a normalized code has the expected shape.
func IsValid(code string) bool {
	return codeRegex.MatchString(code)
}
