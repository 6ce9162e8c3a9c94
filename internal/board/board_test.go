package board

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/jobboard/internal/appstate"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/listing"
	"github.com/amishk599/jobboard/internal/model"
)

var testBoard = config.BoardConfig{
	Categories: []string{"Eng", "Sales"},
	Locations:  []string{"NYC", "LA"},
}

func testJobs(n int) []model.Job {
	jobs := make([]model.Job, n)
	for i := range jobs {
		jobs[i] = model.Job{
			ID:       fmt.Sprintf("job-%02d", i),
			Title:    fmt.Sprintf("Engineer %d", i),
			Category: "Eng",
			Location: "NYC",
		}
	}
	return jobs
}

func newTestModel(t *testing.T, jobs []model.Job, width int) boardModel {
	t.Helper()
	st := appstate.New()
	st.SetJobs(jobs)
	m := newBoardModel(st, testBoard, "local")
	t.Cleanup(m.ctrl.Close)
	return press(m, tea.WindowSizeMsg{Width: width, Height: 40})
}

func press(m boardModel, msgs ...tea.Msg) boardModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(boardModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestColumnsFor(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{40, 1},
		{69, 1},
		{70, 2},
		{104, 2},
		{105, 3},
		{200, 3},
	}
	for _, tt := range tests {
		if got := columnsFor(tt.width); got != tt.want {
			t.Errorf("columnsFor(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestRenderPagination(t *testing.T) {
	if got := renderPagination(1, 0); got != "" {
		t.Errorf("renderPagination with no pages = %q, want empty", got)
	}
	out := renderPagination(2, 3)
	for _, want := range []string{"‹", "1", "2", "3", "›"} {
		if !strings.Contains(out, want) {
			t.Errorf("pagination %q missing %q", out, want)
		}
	}
}

func TestRenderChecklist(t *testing.T) {
	out := renderChecklist([]string{"Eng", "Sales"}, func(s string) bool { return s == "Sales" }, 0, true)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "[ ] Eng") || !strings.Contains(lines[0], ">") {
		t.Errorf("line 0 = %q, want unchecked Eng under the cursor", lines[0])
	}
	if !strings.Contains(lines[1], "[x] Sales") {
		t.Errorf("line 1 = %q, want checked Sales", lines[1])
	}
}

func TestRenderChips(t *testing.T) {
	if got := renderChips(nil, 0, false); got != "" {
		t.Errorf("renderChips(nil) = %q, want empty", got)
	}
	out := renderChips([]listing.Chip{{Kind: listing.ChipTitle, Value: "go"}, {Kind: listing.ChipLocation, Value: "LA"}}, 0, false)
	if !strings.Contains(out, "go ✕") || !strings.Contains(out, "LA ✕") {
		t.Errorf("chips = %q", out)
	}
}

func TestRenderCards_Empty(t *testing.T) {
	if out := renderCards(nil, 80, 0, true); !strings.Contains(out, "No jobs match") {
		t.Errorf("empty cards = %q", out)
	}
}

func TestPreview(t *testing.T) {
	short := "short text"
	if got := preview(short, 150); got != short {
		t.Errorf("preview(short) = %q", got)
	}
	long := strings.Repeat("a", 200)
	got := preview(long, 150)
	if len([]rune(got)) != 151 || !strings.HasSuffix(got, "…") {
		t.Errorf("preview(long) has %d runes, want 150 + ellipsis", len([]rune(got)))
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("the quick brown fox jumps", 10)
	want := "the quick\nbrown fox\njumps"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
	if wordWrap("   ", 10) != "" {
		t.Error("wordWrap of blank text should be empty")
	}
}

func TestBoard_Paging(t *testing.T) {
	m := newTestModel(t, testJobs(13), 120)

	if got := m.ctrl.TotalPages(); got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}
	m = press(m, runes("l"))
	if got := m.ctrl.Page(); got != 2 {
		t.Errorf("after next page: page = %d, want 2", got)
	}
	m = press(m, runes("9"))
	if got := m.ctrl.Page(); got != 3 {
		t.Errorf("after jumping past the end: page = %d, want 3", got)
	}
	if got := len(m.ctrl.PageSlice()); got != 1 {
		t.Errorf("last page has %d jobs, want 1", got)
	}
	m = press(m, runes("h"), runes("h"), runes("h"))
	if got := m.ctrl.Page(); got != 1 {
		t.Errorf("after prev past the start: page = %d, want 1", got)
	}
}

func TestBoard_SearchSubmitAndClearChip(t *testing.T) {
	jobs := []model.Job{
		{ID: "A", Title: "Backend Engineer", Category: "Eng", Location: "NYC"},
		{ID: "B", Title: "Account Executive", Category: "Sales", Location: "LA"},
		{ID: "C", Title: "Senior Engineer", Category: "Eng", Location: "LA"},
	}
	m := newTestModel(t, jobs, 120)

	m = press(m, runes("/"))
	if m.focus != focusSearch {
		t.Fatalf("focus = %v, want search", m.focus)
	}
	m = press(m, runes("engineer"), keyEnter)

	if !m.state.IsSearched() {
		t.Error("state not marked as searched after enter")
	}
	if got := m.state.SearchFilter().Title; got != "engineer" {
		t.Errorf("search title = %q, want engineer", got)
	}
	var ids []string
	for _, j := range m.ctrl.Filtered() {
		ids = append(ids, j.ID)
	}
	if strings.Join(ids, ",") != "C,A" {
		t.Errorf("filtered = %v, want [C A]", ids)
	}
	if m.focus != focusJobs {
		t.Errorf("focus after submit = %v, want jobs", m.focus)
	}

	chips := m.ctrl.ActiveChips()
	if len(chips) != 1 || chips[0].Value != "engineer" {
		t.Fatalf("chips = %+v", chips)
	}

	m.focus = focusChips
	m = press(m, keySpace)
	if got := m.state.SearchFilter().Title; got != "" {
		t.Errorf("title after clearing chip = %q", got)
	}
	if got := m.titleInput.Value(); got != "" {
		t.Errorf("title input after clearing chip = %q", got)
	}
	if got := len(m.ctrl.Filtered()); got != 3 {
		t.Errorf("filtered after clearing chip = %d jobs, want 3", got)
	}
	if m.focus != focusJobs {
		t.Errorf("focus after last chip cleared = %v, want jobs", m.focus)
	}
}

func TestBoard_SearchEscRestoresInputs(t *testing.T) {
	m := newTestModel(t, testJobs(3), 120)

	m = press(m, runes("/"), runes("draft"), keyEsc)
	if m.focus != focusJobs {
		t.Errorf("focus = %v, want jobs", m.focus)
	}
	if m.state.IsSearched() {
		t.Error("esc should not submit the search")
	}
	if got := m.titleInput.Value(); got != "" {
		t.Errorf("title input = %q, want abandoned edit dropped", got)
	}
}

func TestBoard_SearchTabSwitchesInput(t *testing.T) {
	m := newTestModel(t, testJobs(3), 120)

	m = press(m, runes("/"), runes("eng"), keyTab, runes("ny"), keyEnter)
	f := m.state.SearchFilter()
	if f.Title != "eng" || f.Location != "ny" {
		t.Errorf("filter = %+v, want title eng, location ny", f)
	}
}

func TestBoard_ToggleCategory(t *testing.T) {
	jobs := []model.Job{
		{ID: "A", Title: "Dev", Category: "Eng", Location: "NYC"},
		{ID: "B", Title: "Rep", Category: "Sales", Location: "LA"},
	}
	m := newTestModel(t, jobs, 120)

	m.focus = focusCategories
	m = press(m, runes("j"), keySpace)
	if !m.ctrl.CategorySelected("Sales") {
		t.Fatal("Sales not selected after toggle")
	}
	if got := m.ctrl.Filtered(); len(got) != 1 || got[0].ID != "B" {
		t.Errorf("filtered = %+v, want only B", got)
	}

	m = press(m, keyEnter)
	if m.ctrl.CategorySelected("Sales") {
		t.Error("enter on a checked box should uncheck it")
	}
}

func TestBoard_NarrowFilterPanel(t *testing.T) {
	m := newTestModel(t, testJobs(2), 60)

	if m.filtersVisible() {
		t.Fatal("filters visible on a narrow screen before toggling")
	}
	for _, f := range m.focusOrder() {
		if f == focusCategories {
			t.Fatal("hidden categories reachable by tab")
		}
	}
	if strings.Contains(m.View(), "Search by Categories") {
		t.Error("hidden filter lists rendered")
	}

	m = press(m, runes("f"))
	if !m.filtersVisible() {
		t.Fatal("filters hidden after toggling")
	}
	if !strings.Contains(m.View(), "Search by Categories") {
		t.Error("filter lists not rendered after toggling")
	}

	wide := newTestModel(t, testJobs(2), 120)
	if !wide.filtersVisible() {
		t.Error("filters hidden on a wide screen")
	}
}

func TestBoard_DetailView(t *testing.T) {
	m := newTestModel(t, testJobs(3), 120)

	m = press(m, runes("j"), keyEnter)
	if m.view != viewDetail {
		t.Fatal("enter on a job did not open the detail view")
	}
	if m.detailJob.ID != "job-01" {
		t.Errorf("detail job = %s, want job-01 (second newest)", m.detailJob.ID)
	}
	if !strings.Contains(m.View(), m.detailJob.Title) {
		t.Error("detail view missing job title")
	}

	m = press(m, keyEsc)
	if m.view != viewList {
		t.Error("esc did not return to the list")
	}
}

func TestBoard_QuitAndBack(t *testing.T) {
	m := newTestModel(t, testJobs(1), 120)

	next, cmd := m.Update(runes("q"))
	if !next.(boardModel).wantQuit || cmd == nil {
		t.Error("q should quit the app")
	}

	next, cmd = m.Update(keyEsc)
	if next.(boardModel).wantQuit || cmd == nil {
		t.Error("esc should exit the board without quitting")
	}
}

func TestBoard_ViewShowsHeadingAndPagination(t *testing.T) {
	m := newTestModel(t, testJobs(7), 120)

	out := m.View()
	for _, want := range []string{"Latest Jobs", "Get your desired job from top companies", "Engineer 6", "page 1/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	empty := newTestModel(t, nil, 120)
	if out := empty.View(); !strings.Contains(out, "No jobs match") {
		t.Error("empty board should say nothing matches")
	}
}

func TestPicker_Navigation(t *testing.T) {
	m := pickerModel{
		catalogs: []config.CatalogConfig{{Name: "a", File: "a.yaml"}, {Name: "b", URL: "https://x"}},
		chosen:   pickerPending,
	}

	next, _ := m.Update(runes("j"))
	next, cmd := next.Update(keyEnter)
	if got := next.(pickerModel).chosen; got != 1 || cmd == nil {
		t.Errorf("chosen = %d, want 1", got)
	}

	next, _ = m.Update(runes("q"))
	if got := next.(pickerModel).chosen; got != pickerQuit {
		t.Errorf("chosen after q = %d, want quit", got)
	}

	if !strings.Contains(m.View(), "b (https://x)") {
		t.Error("picker view missing remote catalog URL")
	}
}

func TestLoader_Done(t *testing.T) {
	m := newLoader("test", nil)
	want := []model.Job{{ID: "1"}}

	next, cmd := m.Update(fetchDoneMsg{jobs: want})
	lm := next.(loaderModel)
	if !lm.done || cmd == nil || len(lm.result) != 1 {
		t.Errorf("loader after fetch: done=%v result=%v", lm.done, lm.result)
	}
	if lm.ctx.Err() == nil {
		t.Error("fetch context not cancelled after completion")
	}
}

func TestLoader_CtrlC(t *testing.T) {
	m := newLoader("test", nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if err := next.(loaderModel).err; err != ErrCancelled {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}
