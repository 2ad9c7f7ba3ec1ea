package planner

import (
	"strings"

	"github.com/avikram/studysync/internal/shared/types"
)

// Visible projects the subset of sessions matching a search term and
// filter set. The projection is pure: the input slice is never
// modified and the result is freshly allocated. Sessions with no
// title are dropped as malformed.
func Visible(sessions []types.Session, term string, filters types.Filters) []types.Session {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]types.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Title == "" {
			continue
		}
		if term != "" && !matchesTerm(s, term) {
			continue
		}
		if filters.Priority != "all" && filters.Priority != "" && string(s.Priority) != filters.Priority {
			continue
		}
		if filters.Status != "all" && filters.Status != "" && string(s.Status) != filters.Status {
			continue
		}
		if filters.Bookmarked && !s.Bookmarked {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesTerm(s types.Session, term string) bool {
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.Subject), term) ||
		strings.Contains(strings.ToLower(s.Topics), term)
}
