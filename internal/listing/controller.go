// Package listing implements the state behind the job list view: checkbox
// selections, the derived filtered list, and the page cursor.
package listing

import (
	"slices"

	"github.com/amishk599/jobboard/internal/appstate"
	"github.com/amishk599/jobboard/internal/filter"
	"github.com/amishk599/jobboard/internal/model"
)

// PageSize is the number of jobs shown per page.
const PageSize = 6

// ChipKind identifies which search field a chip clears.
type ChipKind int

const (
	ChipTitle ChipKind = iota
	ChipLocation
)

// Chip is a clearable tag for an active free-text search term.
type Chip struct {
	Kind  ChipKind
	Value string
}

// Controller is not safe for concurrent use; it is owned by the UI loop.
type Controller struct {
	state       *appstate.State
	unsubscribe func()

	categories []string
	locations  []string
	filtered   []model.Job
	page       int
	panelOpen  bool

	onChange func()
}

// New creates a controller bound to state and computes the initial list.
func New(state *appstate.State) *Controller {
	c := &Controller{state: state, page: 1}
	c.unsubscribe = state.Subscribe(c.Recompute)
	c.Recompute()
	return c
}

// Close detaches the controller from its state.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// OnChange sets the function called after every recompute or page change.
func (c *Controller) OnChange(fn func()) {
	c.onChange = fn
}

// ToggleCategory adds category to the selection if absent, removes it otherwise.
func (c *Controller) ToggleCategory(category string) {
	c.categories = toggle(c.categories, category)
	c.Recompute()
}

// ToggleLocation adds location to the selection if absent, removes it otherwise.
func (c *Controller) ToggleLocation(location string) {
	c.locations = toggle(c.locations, location)
	c.Recompute()
}

// CategorySelected reports whether category is checked.
func (c *Controller) CategorySelected(category string) bool {
	return slices.Contains(c.categories, category)
}

// LocationSelected reports whether location is checked.
func (c *Controller) LocationSelected(location string) bool {
	return slices.Contains(c.locations, location)
}

// SelectedCategories returns the checked categories in selection order.
func (c *Controller) SelectedCategories() []string {
	return slices.Clone(c.categories)
}

// SelectedLocations returns the checked locations in selection order.
func (c *Controller) SelectedLocations() []string {
	return slices.Clone(c.locations)
}

// Recompute rebuilds the filtered list from the full job list and resets the
// page cursor to 1.
func (c *Controller) Recompute() {
	c.filtered = filter.Apply(c.state.Jobs(), filter.Criteria{
		Categories: c.categories,
		Locations:  c.locations,
		Search:     c.state.SearchFilter(),
	})
	c.page = 1
	c.changed()
}

// Filtered returns the current filtered list, newest first.
func (c *Controller) Filtered() []model.Job {
	return slices.Clone(c.filtered)
}

// Page returns the 1-based page cursor.
func (c *Controller) Page() int {
	return c.page
}

// TotalPages returns ceil(len(filtered)/PageSize), or 0 when nothing matches.
func (c *Controller) TotalPages() int {
	return (len(c.filtered) + PageSize - 1) / PageSize
}

// SetPage moves the cursor to n clamped into [1, TotalPages()].
func (c *Controller) SetPage(n int) {
	n = min(n, c.TotalPages())
	n = max(n, 1)
	if n == c.page {
		return
	}
	c.page = n
	c.changed()
}

// PrevPage moves one page back, stopping at the first page.
func (c *Controller) PrevPage() {
	c.SetPage(c.page - 1)
}

// NextPage moves one page forward, stopping at the last page.
func (c *Controller) NextPage() {
	c.SetPage(c.page + 1)
}

// PageSlice returns the jobs on the current page.
func (c *Controller) PageSlice() []model.Job {
	start := (c.page - 1) * PageSize
	if start >= len(c.filtered) {
		return []model.Job{}
	}
	end := min(start+PageSize, len(c.filtered))
	return slices.Clone(c.filtered[start:end])
}

// ShowPagination reports whether the pagination controls should be drawn.
func (c *Controller) ShowPagination() bool {
	return len(c.filtered) > 0
}

// ClearSearchTitle empties the title part of the shared search filter.
func (c *Controller) ClearSearchTitle() {
	f := c.state.SearchFilter()
	f.Title = ""
	c.state.SetSearchFilter(f)
}

// ClearSearchLocation empties the location part of the shared search filter.
func (c *Controller) ClearSearchLocation() {
	f := c.state.SearchFilter()
	f.Location = ""
	c.state.SetSearchFilter(f)
}

// ActiveChips returns the chips for the non-empty search fields. No chips are
// shown until a search has been submitted.
func (c *Controller) ActiveChips() []Chip {
	if !c.state.IsSearched() {
		return nil
	}
	f := c.state.SearchFilter()
	var chips []Chip
	if f.Title != "" {
		chips = append(chips, Chip{Kind: ChipTitle, Value: f.Title})
	}
	if f.Location != "" {
		chips = append(chips, Chip{Kind: ChipLocation, Value: f.Location})
	}
	return chips
}

// ClearChip clears the search field the chip stands for.
func (c *Controller) ClearChip(chip Chip) {
	switch chip.Kind {
	case ChipTitle:
		c.ClearSearchTitle()
	case ChipLocation:
		c.ClearSearchLocation()
	}
}

// ToggleFilterPanel flips the visibility of the filter lists on narrow screens.
func (c *Controller) ToggleFilterPanel() {
	c.panelOpen = !c.panelOpen
	c.changed()
}

// FilterPanelVisible reports whether the filter lists are open on narrow screens.
func (c *Controller) FilterPanelVisible() bool {
	return c.panelOpen
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
