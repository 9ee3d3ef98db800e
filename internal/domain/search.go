package domain

import "time"

// SearchStats holds statistics about a search run.
type SearchStats struct {
	CategoryID string
	Term       string
	Found      int
	Total      int
	Pages      int
	Duration   time.Duration
}
