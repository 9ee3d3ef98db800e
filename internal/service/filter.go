package service

import (
	"slices"
	"strings"

	"stream_finder/internal/domain"
)

// Matches reports whether entry's title contains term, ignoring case, and its
// display name is not blocked. term and blocked must already be lower-case.
func Matches(entry domain.StreamEntry, term string, blocked []string) bool {
	if slices.Contains(blocked, strings.ToLower(entry.DisplayName)) {
		return false
	}
	return strings.Contains(strings.ToLower(entry.Title), term)
}
