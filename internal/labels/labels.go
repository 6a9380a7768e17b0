// Package labels provides helpers for comma-separated label lists and
// label-set matching.
package labels

import "strings"

// ParseList splits a comma-separated label list.
// Entries are trimmed and empty entries dropped; an empty input yields an
// empty, non-nil slice.
func ParseList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		result = append(result, name)
	}
	return result
}

// ContainsAny reports whether have and want share at least one name.
// An empty want matches everything. Comparison is exact.
func ContainsAny(have, want []string) bool {
	if len(want) == 0 {
		return true
	}

	set := make(map[string]struct{}, len(have))
	for _, name := range have {
		set[name] = struct{}{}
	}

	for _, name := range want {
		if _, found := set[name]; found {
			return true
		}
	}
	return false
}

// Join renders a label list for messages.
func Join(names []string) string {
	return strings.Join(names, ", ")
}
