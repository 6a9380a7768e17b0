package github

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sgaunet/auto-close/pkg/closer"
)

const discussionQuery = `query($owner: String!, $repo: String!, $num: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    discussion(number: $num) {
      id
      title
      url
      labels(first: 100, after: $cursor) {
        nodes { name }
        pageInfo { hasNextPage endCursor }
      }
    }
  }
}`

const addDiscussionCommentMutation = `mutation($dId: ID!, $body: String!) {
  addDiscussionComment(input: { discussionId: $dId, body: $body }) {
    comment { id url }
  }
}`

const closeDiscussionMutation = `mutation($dId: ID!) {
  closeDiscussion(input: { discussionId: $dId }) {
    discussion { id url }
  }
}`

type discussionNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Labels struct {
		Nodes    []closer.Label `json:"nodes"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"labels"`
}

type discussionQueryData struct {
	Repository *struct {
		Discussion *discussionNode `json:"discussion"`
	} `json:"repository"`
}

type addCommentData struct {
	AddDiscussionComment *struct {
		Comment struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"comment"`
	} `json:"addDiscussionComment"`
}

type closeDiscussionData struct {
	CloseDiscussion *struct {
		Discussion struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"discussion"`
	} `json:"closeDiscussion"`
}

type discussionRef struct {
	nodeID string
	title  string
}

// DiscussionCapabilities closes discussions through the GraphQL API.
//
// Discussions are addressed by node ID. GetDetails resolves it and caches it
// per owner/repo/number so that commenting and closing do not refetch.
// The API used exposes no open/closed flag, so State is always "open".
type DiscussionCapabilities struct {
	c *Client

	mu   sync.Mutex
	refs map[string]discussionRef
}

// NewDiscussionCapabilities creates discussion capabilities backed by c.
func NewDiscussionCapabilities(c *Client) *DiscussionCapabilities {
	return &DiscussionCapabilities{
		c:    c,
		refs: make(map[string]discussionRef),
	}
}

// GetDetails implements closer.Capabilities. All label pages are fetched
// before returning.
func (a *DiscussionCapabilities) GetDetails(ctx context.Context, owner, repo string, number int) (*closer.Details, error) {
	a.c.log.Debug(fmt.Sprintf("Getting discussion #%d from %s/%s", number, owner, repo))

	var (
		details *closer.Details
		cursor  any
	)
	for page := 0; ; page++ {
		if page == maxLabelPages {
			return nil, fmt.Errorf("%w: discussion #%d has more than %d labels",
				errTooManyLabelPages, number, maxLabelPages*labelsPerPage)
		}

		vars := map[string]any{
			"owner":  owner,
			"repo":   repo,
			"num":    number,
			"cursor": cursor,
		}
		var data discussionQueryData
		err := a.c.withRetry(ctx, "get discussion", func() error {
			data = discussionQueryData{}
			return a.c.graphQL(ctx, discussionQuery, vars, &data)
		})
		if errors.Is(err, errGraphQLNotFound) {
			return nil, discussionNotFound(owner, repo, number)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get discussion #%d: %w", number, err)
		}
		if data.Repository == nil || data.Repository.Discussion == nil {
			return nil, discussionNotFound(owner, repo, number)
		}

		d := data.Repository.Discussion
		if details == nil {
			details = &closer.Details{
				Number: number,
				Title:  d.Title,
				Labels: []closer.Label{},
				URL:    d.URL,
				State:  stateOpen,
				NodeID: d.ID,
			}
		}
		details.Labels = append(details.Labels, d.Labels.Nodes...)

		if !d.Labels.PageInfo.HasNextPage {
			break
		}
		cursor = d.Labels.PageInfo.EndCursor
	}

	a.c.log.Debug(fmt.Sprintf("Discussion #%d has %d labels", number, len(details.Labels)))
	a.remember(owner, repo, number, discussionRef{nodeID: details.NodeID, title: details.Title})
	return details, nil
}

// AddComment implements closer.Capabilities.
func (a *DiscussionCapabilities) AddComment(ctx context.Context, owner, repo string, number int, body string) (*closer.Comment, error) {
	ref, err := a.lookup(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	a.c.log.Debug(fmt.Sprintf("Commenting on discussion #%d", number))
	var data addCommentData
	vars := map[string]any{"dId": ref.nodeID, "body": body}
	if err := a.c.graphQL(ctx, addDiscussionCommentMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to add comment to discussion #%d: %w", number, err)
	}
	if data.AddDiscussionComment == nil {
		return nil, fmt.Errorf("failed to add comment to discussion #%d: %w", number, errEmptyMutation)
	}

	return &closer.Comment{
		ID:  data.AddDiscussionComment.Comment.ID,
		URL: data.AddDiscussionComment.Comment.URL,
	}, nil
}

// CloseEntity implements closer.Capabilities.
func (a *DiscussionCapabilities) CloseEntity(ctx context.Context, owner, repo string, number int) (*closer.Closed, error) {
	ref, err := a.lookup(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	a.c.log.Debug(fmt.Sprintf("Closing discussion #%d", number))
	var data closeDiscussionData
	if err := a.c.graphQL(ctx, closeDiscussionMutation, map[string]any{"dId": ref.nodeID}, &data); err != nil {
		return nil, fmt.Errorf("failed to close discussion #%d: %w", number, err)
	}
	if data.CloseDiscussion == nil {
		return nil, fmt.Errorf("failed to close discussion #%d: %w", number, errEmptyMutation)
	}

	return &closer.Closed{
		Number: number,
		URL:    data.CloseDiscussion.Discussion.URL,
		Title:  ref.title,
	}, nil
}

func (a *DiscussionCapabilities) lookup(ctx context.Context, owner, repo string, number int) (discussionRef, error) {
	a.mu.Lock()
	ref, ok := a.refs[refKey(owner, repo, number)]
	a.mu.Unlock()
	if ok {
		return ref, nil
	}

	d, err := a.GetDetails(ctx, owner, repo, number)
	if err != nil {
		return discussionRef{}, err
	}
	return discussionRef{nodeID: d.NodeID, title: d.Title}, nil
}

func (a *DiscussionCapabilities) remember(owner, repo string, number int, ref discussionRef) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refs[refKey(owner, repo, number)] = ref
}

func refKey(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

// NotFoundError reports a discussion missing from a repository.
type NotFoundError struct {
	Owner  string
	Repo   string
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Discussion #%d not found in %s/%s", e.Number, e.Owner, e.Repo)
}

// Is makes errors.Is(err, ErrDiscussionNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == errDiscussionNotFound
}

func discussionNotFound(owner, repo string, number int) error {
	return &NotFoundError{Owner: owner, Repo: repo, Number: number}
}

var _ closer.Capabilities = (*DiscussionCapabilities)(nil)
