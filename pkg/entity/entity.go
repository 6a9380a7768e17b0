// Package entity describes the closable GitHub entity kinds.
//
// Each kind has one immutable [Config] carrying the vocabulary that shared
// closing logic needs: the item field holding the candidate number, the
// payload key of the triggering event, the display strings used in messages
// and the environment prefix its filters are read from.
package entity

import (
	"fmt"
	"slices"
	"strings"
)

// Config is the static descriptor of one entity kind.
type Config struct {
	EntityType      string // "issue", "pull_request" or "discussion"
	ItemType        string // agent output item type, e.g. "close_issue"
	ItemTypeDisplay string // human-facing item type, e.g. "close-issue"
	NumberField     string // item field carrying the number, e.g. "issue_number"
	ContextKey      string // event payload object holding the entity
	URLPath         string // path segment in html URLs
	EnvPrefix       string // prefix of the filter environment variables
	Command         string // CLI subcommand name

	contextEvents []string
	aliases       []string
}

// Issue describes GitHub issues.
var Issue = Config{
	EntityType:      "issue",
	ItemType:        "close_issue",
	ItemTypeDisplay: "close-issue",
	NumberField:     "issue_number",
	ContextKey:      "issue",
	URLPath:         "issues",
	EnvPrefix:       "AUTO_CLOSE_ISSUE",
	Command:         "issue",
	contextEvents:   []string{"issues", "issue_comment"},
	aliases:         []string{"issues"},
}

// PullRequest describes GitHub pull requests.
var PullRequest = Config{
	EntityType:      "pull_request",
	ItemType:        "close_pull_request",
	ItemTypeDisplay: "close-pull-request",
	NumberField:     "pull_request_number",
	ContextKey:      "pull_request",
	URLPath:         "pull",
	EnvPrefix:       "AUTO_CLOSE_PR",
	Command:         "pull-request",
	contextEvents: []string{
		"pull_request",
		"pull_request_review",
		"pull_request_review_comment",
		"pull_request_target",
	},
	aliases: []string{"pr", "pull_request", "pulls"},
}

// Discussion describes GitHub discussions.
var Discussion = Config{
	EntityType:      "discussion",
	ItemType:        "close_discussion",
	ItemTypeDisplay: "close-discussion",
	NumberField:     "discussion_number",
	ContextKey:      "discussion",
	URLPath:         "discussions",
	EnvPrefix:       "AUTO_CLOSE_DISCUSSION",
	Command:         "discussion",
	contextEvents:   []string{"discussion", "discussion_comment"},
	aliases:         []string{"discussions"},
}

// All returns the descriptors of every supported entity kind.
func All() []Config {
	return []Config{Issue, PullRequest, Discussion}
}

// ContextEvents returns the event names whose payload carries this entity.
func (c Config) ContextEvents() []string {
	return slices.Clone(c.contextEvents)
}

// Aliases returns the alternative CLI names of the subcommand.
func (c Config) Aliases() []string {
	return slices.Clone(c.aliases)
}

// InContext reports whether eventName is one of the events whose payload
// carries this entity.
func (c Config) InContext(eventName string) bool {
	return slices.Contains(c.contextEvents, eventName)
}

// HTMLURL builds the browser URL of an entity from a server URL such as
// https://github.com.
func (c Config) HTMLURL(serverURL, owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s/%s/%s/%d", strings.TrimSuffix(serverURL, "/"), owner, repo, c.URLPath, number)
}
