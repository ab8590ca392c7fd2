package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by RunLoader when the user presses ctrl+c.
var ErrCancelled = errors.New("cancelled")

type progressMsg string

type workDoneMsg struct{}

type loaderModel struct {
	spinner spinner.Model
	status  string
	err     error
	done    bool
}

func (m loaderModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case progressMsg:
		m.status = string(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.status)
}

// RunLoader shows a spinner while work runs. work reports progress through
// the supplied callback; the latest message replaces the spinner label. It
// renders inline (no alt screen).
func RunLoader(label string, work func(ctx context.Context, progress func(string))) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	p := tea.NewProgram(loaderModel{spinner: s, status: label})
	go func() {
		work(ctx, func(status string) { p.Send(progressMsg(status)) })
		p.Send(workDoneMsg{})
	}()

	result, err := p.Run()
	if err != nil {
		return err
	}
	return result.(loaderModel).err
}
