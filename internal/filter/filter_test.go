package filter

import (
	"testing"

	"github.com/amishk599/jobboard/internal/model"
)

func job(id, title, category, location string) model.Job {
	return model.Job{ID: id, Title: title, Category: category, Location: location}
}

func TestCriteria_Match(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		job       model.Job
		wantMatch bool
	}{
		{
			name:      "empty criteria pass all",
			criteria:  Criteria{},
			job:       job("1", "Any Role", "Anything", "Anywhere"),
			wantMatch: true,
		},
		{
			name:      "category selected and matches",
			criteria:  Criteria{Categories: []string{"Programming", "Designing"}},
			job:       job("1", "Go Developer", "Programming", "Mumbai"),
			wantMatch: true,
		},
		{
			name:      "category selected and misses",
			criteria:  Criteria{Categories: []string{"Marketing"}},
			job:       job("1", "Go Developer", "Programming", "Mumbai"),
			wantMatch: false,
		},
		{
			name:      "category membership is exact",
			criteria:  Criteria{Categories: []string{"programming"}},
			job:       job("1", "Go Developer", "Programming", "Mumbai"),
			wantMatch: false,
		},
		{
			name:      "location selected and misses",
			criteria:  Criteria{Locations: []string{"Chennai"}},
			job:       job("1", "Go Developer", "Programming", "Mumbai"),
			wantMatch: false,
		},
		{
			name:      "search title is case insensitive",
			criteria:  Criteria{Search: model.SearchFilter{Title: "ENGINEER"}},
			job:       job("1", "Senior Engineer", "Programming", "Mumbai"),
			wantMatch: true,
		},
		{
			name:      "search title is a substring match",
			criteria:  Criteria{Search: model.SearchFilter{Title: "data"}},
			job:       job("1", "Big Data Analyst", "Data Science", "Mumbai"),
			wantMatch: true,
		},
		{
			name:      "search location is substring and case insensitive",
			criteria:  Criteria{Search: model.SearchFilter{Location: "new"}},
			job:       job("1", "Designer", "Designing", "New York"),
			wantMatch: true,
		},
		{
			name:      "search location misses",
			criteria:  Criteria{Search: model.SearchFilter{Location: "LA"}},
			job:       job("1", "Designer", "Designing", "NYC"),
			wantMatch: false,
		},
		{
			name: "all predicates must hold",
			criteria: Criteria{
				Categories: []string{"Programming"},
				Locations:  []string{"Mumbai"},
				Search:     model.SearchFilter{Title: "go"},
			},
			job:       job("1", "Java Developer", "Programming", "Mumbai"),
			wantMatch: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.criteria.Match(tt.job)
			if got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func ids(jobs []model.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_ReversesWithoutCriteria(t *testing.T) {
	jobs := []model.Job{
		job("A", "a", "Eng", "NYC"),
		job("B", "b", "Sales", "LA"),
		job("C", "c", "Eng", "LA"),
	}

	got := ids(Apply(jobs, Criteria{}))
	want := []string{"C", "B", "A"}
	if !equalIDs(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
	if jobs[0].ID != "A" {
		t.Error("Apply must not reorder the input slice")
	}
}

func TestApply_Scenario(t *testing.T) {
	jobs := []model.Job{
		job("A", "a", "Eng", "NYC"),
		job("B", "b", "Sales", "LA"),
		job("C", "c", "Eng", "LA"),
	}

	c := Criteria{Categories: []string{"Eng"}}
	if got := ids(Apply(jobs, c)); !equalIDs(got, []string{"C", "A"}) {
		t.Errorf("category Eng: got %v, want [C A]", got)
	}

	c.Search.Location = "LA"
	if got := ids(Apply(jobs, c)); !equalIDs(got, []string{"C"}) {
		t.Errorf("category Eng + location LA: got %v, want [C]", got)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, Criteria{Categories: []string{"Eng"}})
	if got == nil {
		t.Fatal("Apply(nil) returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Apply(nil) returned %d jobs, want 0", len(got))
	}
}
