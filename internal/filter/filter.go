package filter

import (
	"slices"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// Criteria is the full set of predicates the board applies to its job list.
// Categories and Locations are checkbox selections matched exactly; the search
// fields are free text matched as case-insensitive substrings. Empty values
// place no constraint.
type Criteria struct {
	Categories []string
	Locations  []string
	Search     model.SearchFilter
}

// Match returns true if the job satisfies every active predicate.
func (c Criteria) Match(job model.Job) bool {
	if len(c.Categories) > 0 && !slices.Contains(c.Categories, job.Category) {
		return false
	}
	if len(c.Locations) > 0 && !slices.Contains(c.Locations, job.Location) {
		return false
	}
	if c.Search.Title != "" && !containsFold(job.Title, c.Search.Title) {
		return false
	}
	if c.Search.Location != "" && !containsFold(job.Location, c.Search.Location) {
		return false
	}
	return true
}

// Apply returns the jobs matching c, newest first. The source list is assumed
// to be append-ordered, so newest first is simply reverse order. The input
// slice is not modified and the result is never nil.
func Apply(jobs []model.Job, c Criteria) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for i := len(jobs) - 1; i >= 0; i-- {
		if c.Match(jobs[i]) {
			out = append(out, jobs[i])
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
