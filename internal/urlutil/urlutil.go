// Package urlutil parses GitHub repository references.
//
// It accepts the forms a repository is usually named in:
//   - slug: owner/repo
//   - HTTPS: https://github.com/owner/repo(.git)
//   - SSH colon: git@github.com:owner/repo(.git)
//   - SSH protocol: ssh://git@github.com/owner/repo(.git)
package urlutil

import (
	"errors"
	"fmt"
	"strings"
)

const repositoryParts = 2

var errInvalidRepository = errors.New("invalid repository reference")

// ErrInvalidRepository is returned when a reference does not name owner/repo.
var ErrInvalidRepository = errInvalidRepository

// ParseRepository extracts owner and repository name from ref.
func ParseRepository(ref string) (string, string, error) {
	path := repositoryPath(strings.TrimSuffix(strings.TrimSpace(ref), "/"))
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != repositoryParts || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", errInvalidRepository, ref)
	}
	return parts[0], parts[1], nil
}

// repositoryPath returns the owner/repo part of a reference.
func repositoryPath(ref string) string {
	switch {
	case strings.HasPrefix(ref, "git@"):
		// git@host:owner/repo
		_, path, found := strings.Cut(ref, ":")
		if !found {
			return ""
		}
		return path
	case strings.Contains(ref, "://"):
		// scheme://[user@]host/owner/repo
		_, rest, _ := strings.Cut(ref, "://")
		_, path, found := strings.Cut(rest, "/")
		if !found {
			return ""
		}
		return path
	default:
		return ref
	}
}
