package github_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	ghpkg "github.com/sgaunet/auto-close/pkg/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type graphQLServer struct {
	queries atomic.Int32

	mu        sync.Mutex
	mutations []string
	lastVars  map[string]any
}

func (s *graphQLServer) record(mutation string, vars map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations = append(s.mutations, mutation)
	s.lastVars = vars
}

func (s *graphQLServer) last() ([]string, map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.mutations...), s.lastVars
}

func discussionPage(labels []string, hasNext bool, cursor string) map[string]any {
	nodes := make([]map[string]any, 0, len(labels))
	for _, l := range labels {
		nodes = append(nodes, map[string]any{"name": l})
	}
	return map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"discussion": map[string]any{
					"id":    "D_kwDO42",
					"title": "Old announcement",
					"url":   "https://github.com/testowner/testrepo/discussions/42",
					"labels": map[string]any{
						"nodes":    nodes,
						"pageInfo": map[string]any{"hasNextPage": hasNext, "endCursor": cursor},
					},
				},
			},
		},
	}
}

// newDiscussionMux serves a discussion with two label pages.
func newDiscussionMux(t *testing.T, s *graphQLServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		query, _ := body["query"].(string)
		vars, _ := body["variables"].(map[string]any)

		switch {
		case strings.Contains(query, "addDiscussionComment"):
			s.record("addDiscussionComment", vars)
			writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]any{
				"addDiscussionComment": map[string]any{"comment": map[string]any{
					"id": "DC_1", "url": "https://github.com/testowner/testrepo/discussions/42#discussioncomment-1",
				}},
			}})
		case strings.Contains(query, "closeDiscussion"):
			s.record("closeDiscussion", vars)
			writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]any{
				"closeDiscussion": map[string]any{"discussion": map[string]any{
					"id": "D_kwDO42", "url": "https://github.com/testowner/testrepo/discussions/42",
				}},
			}})
		default:
			s.queries.Add(1)
			assert.Equal(t, "testowner", vars["owner"])
			assert.Equal(t, "testrepo", vars["repo"])
			assert.InDelta(t, 42, vars["num"], 0)
			if vars["cursor"] == nil {
				writeJSON(t, w, http.StatusOK, discussionPage([]string{"announcement", "stale"}, true, "c1"))
				return
			}
			assert.Equal(t, "c1", vars["cursor"])
			writeJSON(t, w, http.StatusOK, discussionPage([]string{"wontfix"}, false, "c2"))
		}
	})
	return mux
}

func TestDiscussionCapabilities_GetDetailsPaginatesLabels(t *testing.T) {
	s := &graphQLServer{}
	caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, newDiscussionMux(t, s)))

	d, err := caps.GetDetails(context.Background(), owner, repo, 42)

	require.NoError(t, err)
	assert.Equal(t, int32(2), s.queries.Load())
	assert.Equal(t, []string{"announcement", "stale", "wontfix"}, d.LabelNames())
	assert.Equal(t, 42, d.Number)
	assert.Equal(t, "Old announcement", d.Title)
	assert.Equal(t, "open", d.State)
	assert.Equal(t, "D_kwDO42", d.NodeID)
	assert.Equal(t, "https://github.com/testowner/testrepo/discussions/42", d.URL)
}

func TestDiscussionCapabilities_MutationsReuseNodeID(t *testing.T) {
	s := &graphQLServer{}
	caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, newDiscussionMux(t, s)))
	ctx := context.Background()

	_, err := caps.GetDetails(ctx, owner, repo, 42)
	require.NoError(t, err)

	c, err := caps.AddComment(ctx, owner, repo, 42, "Closing, outdated")
	require.NoError(t, err)
	assert.Equal(t, "DC_1", c.ID)
	_, vars := s.last()
	assert.Equal(t, "Closing, outdated", vars["body"])
	assert.Equal(t, "D_kwDO42", vars["dId"])

	closed, err := caps.CloseEntity(ctx, owner, repo, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, closed.Number)
	assert.Equal(t, "Old announcement", closed.Title)
	assert.Equal(t, "https://github.com/testowner/testrepo/discussions/42", closed.URL)

	assert.Equal(t, int32(2), s.queries.Load(), "details are not refetched")
	mutations, _ := s.last()
	assert.Equal(t, []string{"addDiscussionComment", "closeDiscussion"}, mutations)
}

func TestDiscussionCapabilities_CloseWithoutDetailsFetchesNodeID(t *testing.T) {
	s := &graphQLServer{}
	caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, newDiscussionMux(t, s)))

	closed, err := caps.CloseEntity(context.Background(), owner, repo, 42)

	require.NoError(t, err)
	assert.Equal(t, "Old announcement", closed.Title)
	assert.Equal(t, int32(2), s.queries.Load())
	_, vars := s.last()
	assert.Equal(t, "D_kwDO42", vars["dId"])
}

func TestDiscussionCapabilities_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]any
	}{
		{
			name: "null discussion",
			response: map[string]any{"data": map[string]any{
				"repository": map[string]any{"discussion": nil},
			}},
		},
		{
			name: "NOT_FOUND error",
			response: map[string]any{
				"data": map[string]any{"repository": map[string]any{"discussion": nil}},
				"errors": []map[string]any{{
					"type":    "NOT_FOUND",
					"message": "Could not resolve to a Discussion with the number of 5.",
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, tt.response)
			})

			caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, mux))
			_, err := caps.GetDetails(context.Background(), owner, repo, 5)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ghpkg.ErrDiscussionNotFound))
			assert.Equal(t, "Discussion #5 not found in testowner/testrepo", err.Error())
		})
	}
}

func TestDiscussionCapabilities_GraphQLErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"errors": []map[string]any{{"type": "FORBIDDEN", "message": "Resource not accessible by integration"}},
		})
	})

	caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, mux))
	_, err := caps.CloseEntity(context.Background(), owner, repo, 42)

	require.ErrorIs(t, err, ghpkg.ErrGraphQL)
	assert.Contains(t, err.Error(), "Resource not accessible by integration")
}

func TestDiscussionCapabilities_LabelPagesAreBounded(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, discussionPage([]string{"x"}, true, "next"))
	})

	caps := ghpkg.NewDiscussionCapabilities(newTestClient(t, mux))
	_, err := caps.GetDetails(context.Background(), owner, repo, 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many label pages")
	assert.Equal(t, int32(100), calls.Load())
}
