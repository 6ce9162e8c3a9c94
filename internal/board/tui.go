package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/appstate"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/listing"
	"github.com/amishk599/jobboard/internal/model"
)

const (
	// Below this width the filter lists collapse behind the "f" toggle.
	narrowWidth = 80
	sideWidth   = 30
	// Heading (2) + search bar (1) + chips (1) + pagination (1) + status (1) + help (1).
	chromeHeight = 7
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

type focus int

const (
	focusSearch focus = iota
	focusChips
	focusCategories
	focusLocations
	focusJobs
)

type boardModel struct {
	state *appstate.State
	ctrl  *listing.Controller
	keys  keyMap
	help  help.Model

	catalog    string
	categories []string
	locations  []string

	focus        focus
	chipCursor   int
	catCursor    int
	locCursor    int
	jobCursor    int
	titleInput   textinput.Model
	whereInput   textinput.Model
	inputOnWhere bool

	jobsViewport   viewport.Model
	detailViewport viewport.Model
	view           viewState
	detailJob      model.Job

	width  int
	height int
	ready  bool

	wantQuit bool
}

func newBoardModel(state *appstate.State, cfg config.BoardConfig, catalog string) boardModel {
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories
	}
	locations := cfg.Locations
	if len(locations) == 0 {
		locations = config.DefaultLocations
	}

	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "Search for jobs"
	title.CharLimit = 64
	title.Width = 24

	where := textinput.New()
	where.Prompt = "Location: "
	where.Placeholder = "Location"
	where.CharLimit = 64
	where.Width = 20

	f := state.SearchFilter()
	title.SetValue(f.Title)
	where.SetValue(f.Location)

	return boardModel{
		state:      state,
		ctrl:       listing.New(state),
		keys:       defaultKeys(),
		help:       help.New(),
		catalog:    catalog,
		categories: categories,
		locations:  locations,
		focus:      focusJobs,
		titleInput: title,
		whereInput: where,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateListView(msg)
	}
	return m, nil
}

func (m boardModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.wantQuit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.wantQuit = false
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.recalcLayout()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.focusSearchBar()
	case key.Matches(msg, m.keys.Filters):
		m.ctrl.ToggleFilterPanel()
		if !m.filtersVisible() && (m.focus == focusCategories || m.focus == focusLocations) {
			m.focus = focusJobs
		}
		m.recalcLayout()
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		if m.focus == focusSearch {
			return m.focusSearchBar()
		}
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		if m.focus == focusSearch {
			return m.focusSearchBar()
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.ctrl.PrevPage()
		m.jobCursor = 0
		m.jobsViewport.GotoTop()
	case key.Matches(msg, m.keys.NextPage):
		m.ctrl.NextPage()
		m.jobCursor = 0
		m.jobsViewport.GotoTop()
	case key.Matches(msg, m.keys.PageNumber):
		n, _ := strconv.Atoi(msg.String())
		m.ctrl.SetPage(n)
		m.jobCursor = 0
		m.jobsViewport.GotoTop()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleAtCursor()
	case key.Matches(msg, m.keys.Open):
		if m.focus == focusJobs {
			return m.openDetailView()
		}
		m.toggleAtCursor()
	default:
		var cmd tea.Cmd
		m.jobsViewport, cmd = m.jobsViewport.Update(msg)
		return m, cmd
	}

	m.clampCursors()
	m.recalcContent()
	return m, nil
}

// updateSearch routes keys to the search inputs until the search is submitted
// with enter or abandoned with esc.
func (m boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc":
		m.blurSearch()
		m.syncInputs()
		return m, nil
	case "tab", "shift+tab":
		m.inputOnWhere = !m.inputOnWhere
		var cmd tea.Cmd
		if m.inputOnWhere {
			m.titleInput.Blur()
			cmd = m.whereInput.Focus()
		} else {
			m.whereInput.Blur()
			cmd = m.titleInput.Focus()
		}
		return m, cmd
	case "enter":
		m.state.Search(model.SearchFilter{
			Title:    strings.TrimSpace(m.titleInput.Value()),
			Location: strings.TrimSpace(m.whereInput.Value()),
		})
		m.blurSearch()
		m.syncInputs()
		m.jobCursor = 0
		m.jobsViewport.GotoTop()
		m.recalcContent()
		return m, nil
	}

	var cmd tea.Cmd
	if m.inputOnWhere {
		m.whereInput, cmd = m.whereInput.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m boardModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m boardModel) focusSearchBar() (tea.Model, tea.Cmd) {
	m.focus = focusSearch
	m.inputOnWhere = false
	m.whereInput.Blur()
	cmd := m.titleInput.Focus()
	m.recalcContent()
	return m, cmd
}

func (m *boardModel) blurSearch() {
	m.titleInput.Blur()
	m.whereInput.Blur()
	m.inputOnWhere = false
	m.focus = focusJobs
}

// syncInputs mirrors the stored search filter into the inputs, so cleared
// chips and abandoned edits show what is actually applied.
func (m *boardModel) syncInputs() {
	f := m.state.SearchFilter()
	m.titleInput.SetValue(f.Title)
	m.whereInput.SetValue(f.Location)
}

func (m *boardModel) focusOrder() []focus {
	order := []focus{focusSearch}
	if len(m.ctrl.ActiveChips()) > 0 {
		order = append(order, focusChips)
	}
	if m.filtersVisible() {
		order = append(order, focusCategories, focusLocations)
	}
	return append(order, focusJobs)
}

func (m *boardModel) cycleFocus(delta int) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	m.focus = order[(idx+delta+len(order))%len(order)]
}

func (m *boardModel) moveCursor(delta int) {
	switch m.focus {
	case focusChips:
		m.chipCursor += delta
	case focusCategories:
		m.catCursor += delta
	case focusLocations:
		m.locCursor += delta
	case focusJobs:
		m.jobCursor += delta
	}
	m.clampCursors()
	if m.focus == focusJobs {
		m.recalcContent()
		m.ensureCursorVisible()
	}
}

func (m *boardModel) toggleAtCursor() {
	switch m.focus {
	case focusCategories:
		m.ctrl.ToggleCategory(m.categories[m.catCursor])
	case focusLocations:
		m.ctrl.ToggleLocation(m.locations[m.locCursor])
	case focusChips:
		chips := m.ctrl.ActiveChips()
		if len(chips) == 0 {
			return
		}
		m.ctrl.ClearChip(chips[m.chipCursor])
		m.syncInputs()
		if len(m.ctrl.ActiveChips()) == 0 {
			m.focus = focusJobs
		}
	default:
		return
	}
	m.jobCursor = 0
	m.jobsViewport.GotoTop()
}

func (m *boardModel) clampCursors() {
	m.chipCursor = clamp(m.chipCursor, 0, max(len(m.ctrl.ActiveChips())-1, 0))
	m.catCursor = clamp(m.catCursor, 0, max(len(m.categories)-1, 0))
	m.locCursor = clamp(m.locCursor, 0, max(len(m.locations)-1, 0))
	m.jobCursor = clamp(m.jobCursor, 0, max(len(m.ctrl.PageSlice())-1, 0))
}

func (m boardModel) openDetailView() (tea.Model, tea.Cmd) {
	jobs := m.ctrl.PageSlice()
	if len(jobs) == 0 {
		return m, nil
	}
	m.view = viewDetail
	m.detailJob = jobs[m.jobCursor]
	m.detailViewport = viewport.New(max(m.width-4, 20), max(m.height-4, 5))
	m.detailViewport.SetContent(renderDetail(m.detailJob, m.width))
	return m, nil
}

func (m boardModel) narrow() bool {
	return m.width < narrowWidth
}

func (m boardModel) filtersVisible() bool {
	return !m.narrow() || m.ctrl.FilterPanelVisible()
}

// mainWidth is the width available to the job cards.
func (m boardModel) mainWidth() int {
	if m.narrow() {
		return max(m.width-2, 20)
	}
	return max(m.width-sideWidth-3, 20)
}

func (m *boardModel) recalcLayout() {
	height := max(m.height-chromeHeight, 5)
	if m.help.ShowAll {
		height = max(height-3, 5)
	}
	if m.narrow() && m.ctrl.FilterPanelVisible() {
		height = max(height-len(m.categories)-len(m.locations)-4, 3)
	}

	if !m.ready {
		m.jobsViewport = viewport.New(m.mainWidth(), height)
		m.ready = true
	} else {
		m.jobsViewport.Width = m.mainWidth()
		m.jobsViewport.Height = height
	}
	if m.view == viewDetail {
		m.detailViewport.Width = max(m.width-4, 20)
		m.detailViewport.Height = max(m.height-4, 5)
		m.detailViewport.SetContent(renderDetail(m.detailJob, m.width))
	}
	m.recalcContent()
}

func (m *boardModel) recalcContent() {
	if !m.ready {
		return
	}
	m.jobsViewport.SetContent(renderCards(m.ctrl.PageSlice(), m.mainWidth(), m.jobCursor, m.focus == focusJobs))
}

func (m *boardModel) ensureCursorVisible() {
	jobs := m.ctrl.PageSlice()
	if len(jobs) == 0 {
		return
	}
	rows := renderCardRows(jobs, m.mainWidth(), m.jobCursor, true)
	row := m.jobCursor / columnsFor(m.mainWidth())

	top := 0
	for _, r := range rows[:row] {
		top += lipgloss.Height(r)
	}
	bottom := top + lipgloss.Height(rows[row]) - 1

	vp := &m.jobsViewport
	if top < vp.YOffset {
		vp.SetYOffset(top)
	} else if bottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(bottom - vp.Height + 1)
	}
}

func (m boardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m boardModel) viewList() string {
	var sections []string

	sections = append(sections,
		headingStyle.Render("Latest Jobs")+"  "+subheadingStyle.UnsetMarginBottom().Render("Get your desired job from top companies"),
		m.titleInput.View()+"   "+m.whereInput.View(),
	)

	chipsLine := ""
	if chips := m.ctrl.ActiveChips(); len(chips) > 0 {
		chipsLine = m.sectionTitle(focusChips).UnsetMarginBottom().Render("Current Search: ") +
			renderChips(chips, m.chipCursor, m.focus == focusChips)
	}
	sections = append(sections, chipsLine)

	main := m.jobsViewport.View()
	switch {
	case !m.filtersVisible():
	case m.narrow():
		sections = append(sections, m.renderFilters())
	default:
		side := lipgloss.NewStyle().Width(sideWidth).Render(m.renderFilters())
		main = lipgloss.JoinHorizontal(lipgloss.Top, side, " ", main)
	}
	sections = append(sections, main)

	if m.ctrl.ShowPagination() {
		sections = append(sections, renderPagination(m.ctrl.Page(), m.ctrl.TotalPages()))
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, m.statusBar(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m boardModel) renderFilters() string {
	cats := m.sectionTitle(focusCategories).Render("Search by Categories") + "\n" +
		renderChecklist(m.categories, m.ctrl.CategorySelected, m.catCursor, m.focus == focusCategories)
	locs := m.sectionTitle(focusLocations).Render("Search by Location") + "\n" +
		renderChecklist(m.locations, m.ctrl.LocationSelected, m.locCursor, m.focus == focusLocations)
	return cats + "\n\n" + locs
}

func (m boardModel) sectionTitle(f focus) lipgloss.Style {
	if m.focus == f {
		return activeSectionTitleStyle
	}
	return sectionTitleStyle
}

func (m boardModel) statusBar() string {
	total := len(m.ctrl.Filtered())
	status := fmt.Sprintf(" %s · %d of %d jobs", m.catalog, total, len(m.state.Jobs()))
	if pages := m.ctrl.TotalPages(); pages > 0 {
		status += fmt.Sprintf(" · page %d/%d", m.ctrl.Page(), pages)
	}
	if m.narrow() && !m.ctrl.FilterPanelVisible() {
		status += " · f: filters"
	}
	return statusBarStyle.Width(m.width).Render(status)
}

func (m boardModel) viewDetail() string {
	status := statusBarStyle.Width(m.width).Render(" esc back · ↑/↓ scroll · q quit")
	return activeBorderStyle.Width(max(m.width-2, 20)).Render(m.detailViewport.View()) + "\n" + status
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run launches the interactive board over the jobs held in state.
// It returns wantQuit=true when the user quit, false when they went back.
func Run(state *appstate.State, cfg config.BoardConfig, catalog string) (bool, error) {
	m := newBoardModel(state, cfg, catalog)
	defer m.ctrl.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running board: %w", err)
	}
	return result.(boardModel).wantQuit, nil
}
