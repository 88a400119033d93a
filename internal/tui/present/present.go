// Package present is the full-screen terminal rendering of an entry in
// Presenting mode, meant for a screen on the gym wall.
package present

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/and161185/wodcal/internal/editor"
)

type theme struct {
	Title   lipgloss.Style
	Focused lipgloss.Style
	Dimmed  lipgloss.Style
	Heading lipgloss.Style
	Footer  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FACC15")).
			MarginBottom(1),
		Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FACC15")).Padding(0, 2),
		Dimmed: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("240")).Padding(0, 2),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
		Footer:  lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}

// Model is the bubbletea model over an editor in Presenting mode.
type Model struct {
	ed     *editor.Editor
	theme  theme
	width  int
	height int
}

// New returns the model for ed.
func New(ed *editor.Editor) Model {
	return Model{ed: ed, theme: defaultTheme()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "down", "l", "j", " ":
			m.ed.Next()
		case "left", "up", "h", "k":
			m.ed.Prev()
		case "a":
			m.ed.ToggleShowAll()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	e := m.ed.Entry()
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(strings.ToUpper(e.Title)))
	b.WriteString("\n")

	if len(e.Sections) == 0 {
		b.WriteString(m.theme.Dimmed.Render("Sin secciones"))
	}
	focus, all := m.ed.Focused(), m.ed.ShowAll()
	boxWidth := 0
	if m.width > 8 {
		boxWidth = m.width - 4
	}
	blocks := make([]string, 0, len(e.Sections))
	for i, s := range e.Sections {
		style := m.theme.Dimmed
		if all || i == focus {
			style = m.theme.Focused
		}
		if boxWidth > 0 {
			style = style.Width(boxWidth)
		}
		blocks = append(blocks, style.Render(m.theme.Heading.Render(s.Title)+"\n"+s.Content))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, blocks...))

	mode := "una sección"
	if all {
		mode = "todas"
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Render(fmt.Sprintf("%d/%d · ←/→ navegar · a: %s · q: salir",
		min(focus+1, len(e.Sections)), len(e.Sections), mode)))
	return b.String()
}

// Run enters Presenting mode and blocks until the user leaves it.
func Run(ed *editor.Editor, opts ...tea.ProgramOption) error {
	if err := ed.Present(); err != nil {
		return err
	}
	defer func() { _ = ed.ExitPresent() }()
	_, err := tea.NewProgram(New(ed), opts...).Run()
	return err
}
