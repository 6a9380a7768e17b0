package github

import "errors"

// Error definitions for GitHub API operations.
var (
	errTokenRequired      = errors.New("GITHUB_TOKEN or GH_TOKEN environment variable is required")
	errInvalidBaseURL     = errors.New("invalid GitHub API base URL")
	errNotAnIssue         = errors.New("is a pull request, not an issue")
	errDiscussionNotFound = errors.New("discussion not found")
	errGraphQL            = errors.New("GraphQL request failed")
	errGraphQLNotFound    = errors.New("GraphQL resource not found")
	errTooManyLabelPages  = errors.New("too many label pages")
	errEmptyMutation      = errors.New("GraphQL mutation returned no data")

	// ErrTokenRequired is returned when no GitHub token is available.
	ErrTokenRequired = errTokenRequired
	// ErrNotAnIssue is returned when an issue number refers to a pull request.
	ErrNotAnIssue = errNotAnIssue
	// ErrDiscussionNotFound is returned when a discussion does not exist in the repository.
	ErrDiscussionNotFound = errDiscussionNotFound
	// ErrGraphQL is returned when a GraphQL response carries errors.
	ErrGraphQL = errGraphQL
)
