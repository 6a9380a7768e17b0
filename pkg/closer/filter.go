package closer

import (
	"strings"

	"github.com/sgaunet/auto-close/internal/labels"
)

// CheckLabelFilter reports whether the entity carries at least one of the
// required labels. An empty requirement always passes.
func CheckLabelFilter(have []Label, required []string) bool {
	names := make([]string, 0, len(have))
	for _, l := range have {
		names = append(names, l.Name)
	}
	return labels.ContainsAny(names, required)
}

// CheckTitlePrefixFilter reports whether title starts with prefix, compared
// byte for byte. An empty prefix always passes.
func CheckTitlePrefixFilter(title, prefix string) bool {
	return strings.HasPrefix(title, prefix)
}

var markdownTitleEscaper = strings.NewReplacer(
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
)

// EscapeMarkdownTitle backslash-escapes brackets and parentheses so an
// untrusted title cannot form links when embedded in markdown.
func EscapeMarkdownTitle(title string) string {
	return markdownTitleEscaper.Replace(title)
}
