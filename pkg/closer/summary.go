package closer

import (
	"fmt"
	"strings"

	"github.com/sgaunet/auto-close/pkg/entity"
)

// Tally counts results by outcome.
type Tally struct {
	Closed        int
	AlreadyClosed int
	Skipped       int
	Failed        int
}

// Count tallies results.
func Count(results []Result) Tally {
	var t Tally
	for _, r := range results {
		switch {
		case r.AlreadyClosed:
			t.AlreadyClosed++
		case r.Success:
			t.Closed++
		case r.Failed():
			t.Failed++
		default:
			t.Skipped++
		}
	}
	return t
}

// RenderSummary renders results as a markdown step summary. Titles and
// error messages are escaped so they cannot inject links.
func RenderSummary(e entity.Config, results []Result) string {
	var b strings.Builder
	t := Count(results)

	fmt.Fprintf(&b, "## %s\n\n", e.ItemTypeDisplay)
	fmt.Fprintf(&b, "Closed: %d, already closed: %d, skipped: %d, failed: %d\n\n",
		t.Closed, t.AlreadyClosed, t.Skipped, t.Failed)

	for _, r := range results {
		ref := fmt.Sprintf("#%d", r.Number)
		if r.Title != "" {
			ref += " " + EscapeMarkdownTitle(r.Title)
		}
		if r.URL != "" {
			ref = fmt.Sprintf("[%s](%s)", ref, r.URL)
		}

		switch {
		case r.AlreadyClosed:
			fmt.Fprintf(&b, "- already closed: %s\n", ref)
		case r.Success:
			fmt.Fprintf(&b, "- closed: %s\n", ref)
		case r.Skipped:
			fmt.Fprintf(&b, "- skipped: %s\n", ref)
		case r.Number > 0:
			fmt.Fprintf(&b, "- failed: %s: %s\n", ref, EscapeMarkdownTitle(r.Error))
		default:
			fmt.Fprintf(&b, "- failed: %s\n", EscapeMarkdownTitle(r.Error))
		}
	}
	return b.String()
}
