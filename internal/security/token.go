// Package security provides token masking and credential sanitization.
package security

import (
	"fmt"
	"os"
)

const (
	// Tokens shorter than this are fully redacted.
	minTokenLengthForPartialMask = 8
	// Trailing characters left visible on longer tokens.
	maskShowChars = 4
	maskEmpty     = "[empty]"
	maskRedacted  = "[redacted]"
)

// SecureToken holds an API token whose formatted forms are always masked,
// so it can be passed to loggers and fmt verbs without leaking.
//
//	token := NewSecureToken("ghp_secret123456")
//	fmt.Printf("%v", token) // [token:****3456]
type SecureToken struct {
	value string
}

// NewSecureToken wraps a raw token.
func NewSecureToken(token string) SecureToken {
	return SecureToken{value: token}
}

// TokenFromEnv returns the first non-empty token among the given environment
// variables along with the variable it came from.
func TokenFromEnv(names ...string) (SecureToken, string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return NewSecureToken(v), name
		}
	}
	return SecureToken{}, ""
}

// String implements fmt.Stringer with a masked value.
func (t SecureToken) String() string {
	switch {
	case t.value == "":
		return maskEmpty
	case len(t.value) < minTokenLengthForPartialMask:
		return maskRedacted
	default:
		return fmt.Sprintf("[token:****%s]", t.value[len(t.value)-maskShowChars:])
	}
}

// GoString keeps %#v masked as well.
func (t SecureToken) GoString() string {
	return t.String()
}

// Value returns the raw token. Only pass it to the HTTP authentication layer.
func (t SecureToken) Value() string {
	return t.value
}

// IsEmpty reports whether no token is set.
func (t SecureToken) IsEmpty() bool {
	return t.value == ""
}
