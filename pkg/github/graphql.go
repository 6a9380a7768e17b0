package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// graphQLPath is resolved against the REST base URL: api.github.com/graphql
// on github.com and <host>/api/graphql on GitHub Enterprise Server.
const graphQLPath = "../graphql"

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// graphQL posts query through the go-github transport and decodes the
// "data" member into out. A non-empty "errors" member is returned as an
// error wrapping errGraphQL, or errGraphQLNotFound when every error is NOT_FOUND.
func (c *Client) graphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	req, err := c.client.NewRequest(http.MethodPost, graphQLPath, graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to build GraphQL request: %w", err)
	}

	var resp graphQLResponse
	if _, err := c.client.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("failed to execute GraphQL request: %w", err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		notFound := true
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
			if e.Type != "NOT_FOUND" {
				notFound = false
			}
		}
		if notFound {
			return fmt.Errorf("%w: %s", errGraphQLNotFound, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %s", errGraphQL, strings.Join(msgs, "; "))
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode GraphQL data: %w", err)
	}
	return nil
}
