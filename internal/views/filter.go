package views

import "strings"

// matchesFold is the case-insensitive substring match used by every
// free-text search filter.
func matchesFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// selectionAllows implements the inclusive multi-select rule: an empty
// selection filters nothing.
func selectionAllows(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
