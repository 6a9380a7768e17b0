package github

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/auto-close/pkg/closer"
)

// IssueCapabilities closes issues through the REST API.
type IssueCapabilities struct {
	c *Client
}

// NewIssueCapabilities creates issue capabilities backed by c.
func NewIssueCapabilities(c *Client) *IssueCapabilities {
	return &IssueCapabilities{c: c}
}

// GetDetails implements closer.Capabilities.
func (a *IssueCapabilities) GetDetails(ctx context.Context, owner, repo string, number int) (*closer.Details, error) {
	a.c.log.Debug(fmt.Sprintf("Getting issue #%d from %s/%s", number, owner, repo))

	var issue *github.Issue
	err := a.c.withRetry(ctx, "get issue", func() error {
		var err error
		issue, _, err = a.c.client.Issues.Get(ctx, owner, repo, number)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}
	if issue.IsPullRequest() {
		return nil, fmt.Errorf("#%d %w", number, errNotAnIssue)
	}

	return &closer.Details{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Labels: convertLabels(issue.Labels),
		URL:    issue.GetHTMLURL(),
		State:  issue.GetState(),
		NodeID: issue.GetNodeID(),
	}, nil
}

// AddComment implements closer.Capabilities.
func (a *IssueCapabilities) AddComment(ctx context.Context, owner, repo string, number int, body string) (*closer.Comment, error) {
	return addIssueComment(ctx, a.c, owner, repo, number, body)
}

// CloseEntity implements closer.Capabilities.
func (a *IssueCapabilities) CloseEntity(ctx context.Context, owner, repo string, number int) (*closer.Closed, error) {
	a.c.log.Debug(fmt.Sprintf("Closing issue #%d in %s/%s", number, owner, repo))

	issue, _, err := a.c.client.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.Ptr(stateClosed),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to close issue #%d: %w", number, err)
	}

	return &closer.Closed{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
		Title:  issue.GetTitle(),
	}, nil
}

// addIssueComment posts a comment through the issue comments endpoint,
// which serves pull requests as well.
func addIssueComment(ctx context.Context, c *Client, owner, repo string, number int, body string) (*closer.Comment, error) {
	c.log.Debug(fmt.Sprintf("Commenting on #%d in %s/%s", number, owner, repo))

	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment to #%d: %w", number, err)
	}

	return &closer.Comment{
		ID:  strconv.FormatInt(comment.GetID(), 10),
		URL: comment.GetHTMLURL(),
	}, nil
}

func convertLabels(in []*github.Label) []closer.Label {
	out := make([]closer.Label, 0, len(in))
	for _, l := range in {
		out = append(out, closer.Label{Name: l.GetName()})
	}
	return out
}

var _ closer.Capabilities = (*IssueCapabilities)(nil)
