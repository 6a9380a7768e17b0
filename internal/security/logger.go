package security

import (
	"fmt"

	"github.com/sgaunet/bullets"
)

// DebugAuth logs which credential is in use without revealing it.
//
//	DebugAuth(logger, "GITHUB_TOKEN", token)
//	// Using GitHub token from GITHUB_TOKEN: [token:****abcd]
func DebugAuth(logger *bullets.Logger, source string, token SecureToken) {
	if logger == nil {
		return
	}
	if token.IsEmpty() {
		logger.Debug("No GitHub token configured")
		return
	}
	logger.Debug(fmt.Sprintf("Using GitHub token from %s: %s", source, token))
}
