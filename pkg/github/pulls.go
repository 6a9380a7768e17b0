package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/auto-close/pkg/closer"
)

// PullRequestCapabilities closes pull requests through the REST API.
// Merged pull requests report state "closed".
type PullRequestCapabilities struct {
	c *Client
}

// NewPullRequestCapabilities creates pull request capabilities backed by c.
func NewPullRequestCapabilities(c *Client) *PullRequestCapabilities {
	return &PullRequestCapabilities{c: c}
}

// GetDetails implements closer.Capabilities.
func (a *PullRequestCapabilities) GetDetails(ctx context.Context, owner, repo string, number int) (*closer.Details, error) {
	a.c.log.Debug(fmt.Sprintf("Getting pull request #%d from %s/%s", number, owner, repo))

	var pr *github.PullRequest
	err := a.c.withRetry(ctx, "get pull request", func() error {
		var err error
		pr, _, err = a.c.client.PullRequests.Get(ctx, owner, repo, number)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}

	return &closer.Details{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Labels: convertLabels(pr.Labels),
		URL:    pr.GetHTMLURL(),
		State:  pr.GetState(),
		NodeID: pr.GetNodeID(),
	}, nil
}

// AddComment implements closer.Capabilities.
func (a *PullRequestCapabilities) AddComment(ctx context.Context, owner, repo string, number int, body string) (*closer.Comment, error) {
	return addIssueComment(ctx, a.c, owner, repo, number, body)
}

// CloseEntity implements closer.Capabilities.
func (a *PullRequestCapabilities) CloseEntity(ctx context.Context, owner, repo string, number int) (*closer.Closed, error) {
	a.c.log.Debug(fmt.Sprintf("Closing pull request #%d in %s/%s", number, owner, repo))

	pr, _, err := a.c.client.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		State: github.Ptr(stateClosed),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to close pull request #%d: %w", number, err)
	}

	return &closer.Closed{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		Title:  pr.GetTitle(),
	}, nil
}

var _ closer.Capabilities = (*PullRequestCapabilities)(nil)
