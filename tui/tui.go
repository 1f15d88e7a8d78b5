// Package tui implements the interactive terminal tree for scoping a
// documentation project.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/docscope/docscope"
	"github.com/docscope/docscope/session"
	"github.com/docscope/docscope/view"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	includedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mixedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type loadedMsg struct {
	err error
}

type expandDoneMsg struct {
	path string
	err  error
}

type saveDoneMsg struct {
	err error
}

// Model is the bubbletea model for the scoping screen.
type Model struct {
	ctrl *session.Controller
	view *view.Model

	cursor int
	offset int
	width  int
	height int

	loaded    bool
	saving    bool
	filtering bool
	filter    string
	status    string
	err       error
}

// New creates a Model over an unloaded session.
func New(ctrl *session.Controller) Model {
	return Model{
		ctrl: ctrl,
		view: view.New(ctrl.Engine(), ctrl.Cache()),
	}
}

// Run drives the TUI to completion.
func Run(ctrl *session.Controller) error {
	_, err := tea.NewProgram(New(ctrl), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.ctrl.Load(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded = true
		m.err = nil
		return m, nil

	case expandDoneMsg:
		m.view.FinishExpand(msg.path, msg.err)
		if msg.err != nil {
			m.status = "load failed: " + docscope.ErrorMessage(msg.err)
		}
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + docscope.ErrorMessage(msg.err)
			return m, nil
		}
		m.status = "saved"
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter = ""
		m.view.SetFilter("")
	case "enter":
		m.filtering = false
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.view.SetFilter(m.filter)
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.filter += string(msg.Runes)
			m.view.SetFilter(m.filter)
		}
	}
	m.clampCursor()
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.cursor++
		m.clampCursor()

	case "k", "up":
		m.cursor--
		m.clampCursor()

	case "enter", "l", "right":
		row, ok := m.currentRow()
		if !ok || !row.Node.IsDir() {
			break
		}
		if m.view.ToggleExpand(row.Node.Path) {
			return m, m.expandCmd(row.Node.Path)
		}

	case "h", "left":
		if row, ok := m.currentRow(); ok && row.Node.IsDir() {
			m.view.Collapse(row.Node.Path)
		}

	case " ":
		if row, ok := m.currentRow(); ok {
			on := row.State != docscope.StateIncluded
			m.ctrl.Engine().Toggle(row.Node.Path, on)
			m.status = ""
		}

	case "a":
		m.ctrl.Engine().SelectAll()

	case "n":
		m.ctrl.Engine().ClearAll()

	case "E":
		m.view.ExpandAll()

	case "C":
		m.view.CollapseAll()
		m.cursor = 0
		m.offset = 0

	case "/":
		m.filtering = true
		m.filter = ""
		m.view.SetFilter("")

	case "esc":
		m.filter = ""
		m.view.SetFilter("")
		m.clampCursor()

	case "s":
		if m.saving {
			break
		}
		m.saving = true
		m.status = "saving..."
		return m, func() tea.Msg {
			return saveDoneMsg{err: m.ctrl.Save(context.Background())}
		}
	}

	return m, nil
}

func (m Model) expandCmd(path string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ctrl.Cache().Children(context.Background(), path)
		return expandDoneMsg{path: path, err: err}
	}
}

func (m *Model) currentRow() (view.Row, bool) {
	rows := m.view.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return view.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.view.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to load session: "+docscope.ErrorMessage(m.err)) +
			dimStyle.Render("\n\npress q to quit\n")
	}
	if !m.loaded {
		return dimStyle.Render("loading...\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("docscope"))
	if m.filtering || m.filter != "" {
		b.WriteString(dimStyle.Render("  filter: ") + m.filter)
		if m.filtering {
			b.WriteString(cursorStyle.Render(" "))
		}
	}
	b.WriteString("\n\n")

	rows := m.view.Rows()
	visible := m.visibleWindow(len(rows))
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (no matches)\n"))
	}

	b.WriteString("\n")
	if m.status != "" {
		if strings.HasPrefix(m.status, "save failed") || strings.HasPrefix(m.status, "load failed") {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(dimStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("space toggle · enter expand · a all · n none · / filter · s save · q quit"))
	return b.String()
}

type window struct {
	start, end int
}

// visibleWindow keeps the cursor inside the scrolled viewport.
func (m Model) visibleWindow(total int) window {
	avail := m.height - 6
	if avail < 1 || avail >= total {
		return window{0, total}
	}
	start := m.offset
	if m.cursor < start {
		start = m.cursor
	}
	if m.cursor >= start+avail {
		start = m.cursor - avail + 1
	}
	return window{start, start + avail}
}

func (m Model) renderRow(row view.Row, selected bool) string {
	checkbox := "[ ]"
	switch row.State {
	case docscope.StateIncluded:
		checkbox = includedStyle.Render("[x]")
	case docscope.StateMixed:
		checkbox = mixedStyle.Render("[~]")
	}

	affordance := "  "
	if row.Node.IsDir() {
		switch {
		case row.Loading:
			affordance = dimStyle.Render("… ")
		case row.Expanded:
			affordance = "▾ "
		case row.Node.HasChildren:
			affordance = "▸ "
		}
	}

	name := row.Node.Name
	if row.Node.IsDir() {
		name += "/"
	}
	if selected {
		name = cursorStyle.Render(name)
	}

	indent := strings.Repeat("  ", row.Depth)
	return fmt.Sprintf("  %s%s%s %s", indent, affordance, checkbox, name)
}
