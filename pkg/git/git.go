// Package git reads the local repository to find which GitHub repository
// the tool acts on when none is given explicitly.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/sgaunet/auto-close/internal/logger"
	"github.com/sgaunet/auto-close/internal/urlutil"
	"github.com/sgaunet/bullets"
)

// DefaultRemote is the remote consulted when none is named.
const DefaultRemote = "origin"

var errNoRemoteURL = errors.New("no URLs found for remote")

// ErrNoRemoteURL is returned when a remote has no URL configured.
var ErrNoRemoteURL = errNoRemoteURL

// Repository is an opened local git repository.
type Repository struct {
	repo *git.Repository
	log  *bullets.Logger
}

// OpenRepository opens the repository containing path, walking up parent
// directories until a .git is found.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{repo: repo, log: logger.NoLogger()}, nil
}

// SetLogger sets the logger for the repository.
func (r *Repository) SetLogger(l *bullets.Logger) {
	r.log = l
}

// RemoteURL returns the first URL of the named remote.
func (r *Repository) RemoteURL(remoteName string) (string, error) {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", errNoRemoteURL, remoteName)
	}

	return urls[0], nil
}

// GitHubRepository returns the owner and name of the repository the named
// remote points to.
func (r *Repository) GitHubRepository(remoteName string) (string, string, error) {
	url, err := r.RemoteURL(remoteName)
	if err != nil {
		return "", "", err
	}

	owner, name, err := urlutil.ParseRepository(url)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse remote %s: %w", remoteName, err)
	}

	r.log.Debug(fmt.Sprintf("Detected repository %s/%s from remote %s", owner, name, remoteName))
	return owner, name, nil
}
