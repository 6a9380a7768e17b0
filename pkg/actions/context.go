// Package actions reads the GitHub Actions runtime environment: the
// triggering event, the agent output items and the step output files.
package actions

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/auto-close/internal/urlutil"
	"github.com/sgaunet/auto-close/pkg/entity"
)

const defaultServerURL = "https://github.com"

var errReadEvent = errors.New("failed to read event payload")

// webhookEvents maps workflow event names to the webhook type used to decode
// their payload. Other events carry no closable entity.
var webhookEvents = map[string]string{
	"issues":                      "issues",
	"issue_comment":               "issue_comment",
	"pull_request":                "pull_request",
	"pull_request_target":         "pull_request",
	"pull_request_review":         "pull_request_review",
	"pull_request_review_comment": "pull_request_review_comment",
	"discussion":                  "discussion",
	"discussion_comment":          "discussion_comment",
}

// Context describes the workflow run that invoked the tool.
type Context struct {
	EventName string
	Owner     string
	Repo      string
	ServerURL string

	entities map[string]int
}

// NewContext builds a Context for eventName from a raw event payload.
// An empty payload or an event without entities yields an empty entity set.
func NewContext(eventName string, payload []byte) (*Context, error) {
	c := &Context{
		EventName: eventName,
		ServerURL: defaultServerURL,
		entities:  make(map[string]int),
	}

	webhookType, ok := webhookEvents[eventName]
	if !ok || len(payload) == 0 {
		return c, nil
	}

	event, err := github.ParseWebHook(webhookType, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", eventName, err)
	}

	switch e := event.(type) {
	case *github.IssuesEvent:
		c.setEntity("issue", e.GetIssue().GetNumber())
	case *github.IssueCommentEvent:
		c.setEntity("issue", e.GetIssue().GetNumber())
	case *github.PullRequestEvent:
		c.setEntity("pull_request", e.GetPullRequest().GetNumber())
	case *github.PullRequestReviewEvent:
		c.setEntity("pull_request", e.GetPullRequest().GetNumber())
	case *github.PullRequestReviewCommentEvent:
		c.setEntity("pull_request", e.GetPullRequest().GetNumber())
	case *github.DiscussionEvent:
		c.setEntity("discussion", e.GetDiscussion().GetNumber())
	case *github.DiscussionCommentEvent:
		c.setEntity("discussion", e.GetDiscussion().GetNumber())
	}

	return c, nil
}

// NewStaticContext builds a Context from already-known entity numbers,
// keyed by payload key ("issue", "pull_request", "discussion").
func NewStaticContext(eventName string, entities map[string]int) *Context {
	c := &Context{
		EventName: eventName,
		ServerURL: defaultServerURL,
		entities:  make(map[string]int, len(entities)),
	}
	for k, v := range entities {
		c.setEntity(k, v)
	}
	return c
}

// LoadContext reads the runtime environment variables set by GitHub Actions.
// Outside of Actions every field is empty and no entity is available.
func LoadContext() (*Context, error) {
	var payload []byte
	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		// #nosec G304 - the path is provided by the Actions runner
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errReadEvent, err)
		}
		payload = data
	}

	c, err := NewContext(os.Getenv("GITHUB_EVENT_NAME"), payload)
	if err != nil {
		return nil, err
	}

	if serverURL := os.Getenv("GITHUB_SERVER_URL"); serverURL != "" {
		c.ServerURL = serverURL
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		owner, repo, err := urlutil.ParseRepository(slug)
		if err != nil {
			return nil, fmt.Errorf("invalid GITHUB_REPOSITORY: %w", err)
		}
		c.SetRepository(owner, repo)
	}

	return c, nil
}

// SetRepository sets the repository the run acts on.
func (c *Context) SetRepository(owner, repo string) {
	c.Owner = owner
	c.Repo = repo
}

// EntityNumber returns the number of the payload entity stored under key.
func (c *Context) EntityNumber(key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	n, ok := c.entities[key]
	return n, ok
}

// InContext reports whether the triggering event is one that carries e.
func (c *Context) InContext(e entity.Config) bool {
	if c == nil {
		return false
	}
	return e.InContext(c.EventName)
}

func (c *Context) setEntity(key string, number int) {
	if number > 0 {
		c.entities[key] = number
	}
}
