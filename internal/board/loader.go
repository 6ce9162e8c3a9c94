package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/model"
)

const fetchTimeout = 2 * time.Minute

// ErrCancelled is returned by RunLoader when the user aborts the fetch.
var ErrCancelled = errors.New("cancelled")

type fetchDoneMsg struct {
	jobs []model.Job
	err  error
}

type loaderModel struct {
	name    string
	fetch   func(ctx context.Context) ([]model.Job, error)
	ctx     context.Context
	cancel  context.CancelFunc
	spinner spinner.Model
	result  []model.Job
	err     error
	done    bool
}

func newLoader(name string, fetch func(ctx context.Context) ([]model.Job, error)) loaderModel {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	return loaderModel{
		name:   name,
		fetch:  fetch,
		ctx:    ctx,
		cancel: cancel,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
		),
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.spinner.Tick)
}

func (m loaderModel) doFetch() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		jobs, err := fetch(ctx)
		return fetchDoneMsg{jobs: jobs, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		if m.done {
			return m, nil
		}
		m.result = msg.jobs
		m.err = msg.err
		m.done = true
		m.cancel()
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Fetching jobs from %s...\n", m.spinner.View(), m.name)
}

// RunLoader shows a spinner while fetch runs. It renders inline (no alt screen).
func RunLoader(name string, fetch func(ctx context.Context) ([]model.Job, error)) ([]model.Job, error) {
	p := tea.NewProgram(newLoader(name, fetch))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
