package entity_test

import (
	"testing"

	"github.com/sgaunet/auto-close/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestIssueConfig(t *testing.T) {
	assert.Equal(t, "issue", entity.Issue.EntityType)
	assert.Equal(t, "close_issue", entity.Issue.ItemType)
	assert.Equal(t, "close-issue", entity.Issue.ItemTypeDisplay)
	assert.Equal(t, "issue_number", entity.Issue.NumberField)
	assert.Equal(t, []string{"issues", "issue_comment"}, entity.Issue.ContextEvents())
	assert.Equal(t, "issues", entity.Issue.URLPath)
	assert.Equal(t, "issue", entity.Issue.Command)
}

func TestPullRequestConfig(t *testing.T) {
	assert.Equal(t, "pull_request", entity.PullRequest.EntityType)
	assert.Equal(t, "close_pull_request", entity.PullRequest.ItemType)
	assert.Equal(t, "close-pull-request", entity.PullRequest.ItemTypeDisplay)
	assert.Equal(t, "pull_request_number", entity.PullRequest.NumberField)
	assert.Contains(t, entity.PullRequest.ContextEvents(), "pull_request")
	assert.Contains(t, entity.PullRequest.ContextEvents(), "pull_request_review_comment")
	assert.Equal(t, "pull", entity.PullRequest.URLPath)
	assert.Contains(t, entity.PullRequest.Aliases(), "pr")
}

func TestDiscussionConfig(t *testing.T) {
	assert.Equal(t, "discussion", entity.Discussion.EntityType)
	assert.Equal(t, "close_discussion", entity.Discussion.ItemType)
	assert.Equal(t, "discussion_number", entity.Discussion.NumberField)
	assert.Equal(t, "discussion", entity.Discussion.ContextKey)
	assert.Equal(t, "discussions", entity.Discussion.URLPath)
}

func TestNumberFieldsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range entity.All() {
		assert.False(t, seen[c.NumberField], "duplicate number field %s", c.NumberField)
		seen[c.NumberField] = true
	}
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range entity.All() {
		for _, name := range append([]string{c.Command}, c.Aliases()...) {
			assert.False(t, seen[name], "duplicate command name %s", name)
			seen[name] = true
		}
	}
}

func TestDescriptorsCannotBeModified(t *testing.T) {
	events := entity.Issue.ContextEvents()
	events[0] = "push"
	assert.True(t, entity.Issue.InContext("issues"))
	assert.False(t, entity.Issue.InContext("push"))

	all := entity.All()
	all[0].ContextEvents()[0] = "push"
	assert.Equal(t, []string{"issues", "issue_comment"}, entity.All()[0].ContextEvents())

	aliases := entity.PullRequest.Aliases()
	aliases[0] = "merge"
	assert.Equal(t, "pr", entity.PullRequest.Aliases()[0])
}

func TestInContext(t *testing.T) {
	assert.True(t, entity.Issue.InContext("issues"))
	assert.True(t, entity.Issue.InContext("issue_comment"))
	assert.False(t, entity.Issue.InContext("pull_request"))
	assert.True(t, entity.PullRequest.InContext("pull_request_target"))
	assert.False(t, entity.Discussion.InContext(""))
}

func TestHTMLURL(t *testing.T) {
	assert.Equal(t, "https://github.com/o/r/issues/4",
		entity.Issue.HTMLURL("https://github.com/", "o", "r", 4))
	assert.Equal(t, "https://github.com/o/r/pull/9",
		entity.PullRequest.HTMLURL("https://github.com", "o", "r", 9))
	assert.Equal(t, "https://ghe.example.com/o/r/discussions/2",
		entity.Discussion.HTMLURL("https://ghe.example.com", "o", "r", 2))
}
