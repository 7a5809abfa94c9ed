package ui

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// taskDoneMsg signals that the background task finished.
type taskDoneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	label   string
	task    func() error
	err     error
}

func newSpinnerModel(label string, task func() error) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	return spinnerModel{spinner: sp, label: label, task: task}
}

func (m spinnerModel) Init() tea.Cmd {
	run := func() tea.Msg {
		return taskDoneMsg{err: m.task()}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.label
}

// RunWithSpinner runs task on a background goroutine while an animated
// spinner keeps the terminal responsive. This is scheduling convenience
// only; the task itself stays strictly sequential and runs at most once,
// even when the terminal cannot host the spinner.
func RunWithSpinner(label string, task func() error) error {
	var once sync.Once
	var taskErr error
	guarded := func() error {
		once.Do(func() { taskErr = task() })
		return taskErr
	}

	model := newSpinnerModel(label, guarded)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		// No usable TTY; run without the spinner.
		return guarded()
	}
	if m, ok := final.(spinnerModel); ok {
		return m.err
	}
	return nil
}
