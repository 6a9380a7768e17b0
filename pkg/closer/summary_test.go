package closer_test

import (
	"testing"

	"github.com/sgaunet/auto-close/pkg/closer"
	"github.com/sgaunet/auto-close/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	results := []closer.Result{
		{Success: true, Number: 1},
		{Success: true, Number: 2, AlreadyClosed: true},
		{Number: 3, Skipped: true},
		{Number: 4, Error: "boom"},
		{Error: "No issue number available"},
	}

	got := closer.Count(results)
	assert.Equal(t, closer.Tally{Closed: 1, AlreadyClosed: 1, Skipped: 1, Failed: 2}, got)
}

func TestRenderSummary(t *testing.T) {
	results := []closer.Result{
		{Success: true, Number: 1, Title: "[bot] Stale (old)", URL: "https://github.com/o/r/issues/1"},
		{Success: true, Number: 2, AlreadyClosed: true, Title: "Done"},
		{Number: 3, Error: "Missing required labels: stale"},
		{Error: "No issue number available"},
	}

	out := closer.RenderSummary(entity.Issue, results)

	assert.Contains(t, out, "## close-issue")
	assert.Contains(t, out, "Closed: 1, already closed: 1, skipped: 0, failed: 2")
	assert.Contains(t, out, `- closed: [#1 \[bot\] Stale \(old\)](https://github.com/o/r/issues/1)`)
	assert.Contains(t, out, "- already closed: #2 Done")
	assert.Contains(t, out, "- failed: #3: Missing required labels: stale")
	assert.Contains(t, out, "- failed: No issue number available")
}

func TestRenderSummary_EscapesErrors(t *testing.T) {
	results := []closer.Result{
		{Number: 3, Error: "GraphQL error: see [docs](https://evil.example)"},
		{Error: "bad [link](x)"},
	}

	out := closer.RenderSummary(entity.Discussion, results)

	assert.Contains(t, out, `- failed: #3: GraphQL error: see \[docs\]\(https://evil.example\)`)
	assert.Contains(t, out, `- failed: bad \[link\]\(x\)`)
	assert.NotContains(t, out, "[docs](")
}

func TestCount_MatchesResultFailed(t *testing.T) {
	results := []closer.Result{
		{Success: true},
		{Skipped: true, Error: "close declined"},
		{Error: "boom"},
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	assert.Equal(t, failed, closer.Count(results).Failed)
}
