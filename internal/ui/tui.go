// Package ui provides the interactive terminal task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasker/internal/output"
	"tasker/internal/task"
)

// NothingToClear is the status shown when clear finds no completed tasks.
const NothingToClear = "No completed tasks to clear!"

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeConfirmClear
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Run starts the TUI over tasks, reading keys from in and drawing to out.
func Run(ctx context.Context, tasks task.Manager, in io.Reader, out io.Writer) error {
	m := newModel(ctx, tasks)
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return m.saveErr
}

type model struct {
	ctx     context.Context
	tasks   task.Manager
	items   []task.Task
	cursor  int
	mode    mode
	editID  int64
	input   textinput.Model
	status  string
	saveErr error // last blob store failure, reported on exit
}

func newModel(ctx context.Context, tasks task.Manager) *model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	m := &model{
		ctx:    ctx,
		tasks:  tasks,
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
	}
	m.reload()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg.String())
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m *model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.items))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.items))
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.status = "Add: type the text and press Enter"
		return m, m.input.Focus()
	case "e", "enter":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = t.ID
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		m.status = "Edit: change the text and press Enter"
		return m, m.input.Focus()
	case " ", "x":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		if _, err := m.tasks.ToggleCompleted(m.ctx, t.ID); err != nil {
			m.fail("toggle", err)
		} else {
			m.status = "Toggled task"
		}
		m.reload()
	case "d":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case "c":
		n := len(m.tasks.Completed())
		if n == 0 {
			m.status = NothingToClear
			return m, nil
		}
		m.mode = modeConfirmClear
		m.status = fmt.Sprintf("Delete %d completed? y/n", n)
	}
	return m, nil
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput("Cancelled")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Text cannot be empty"
			return m, nil
		}
		if m.mode == modeAdd {
			t, err := m.tasks.Create(m.ctx, text)
			m.reload()
			if err != nil {
				m.fail("save", err)
			} else {
				m.status = "Added task"
				m.cursor = m.indexOf(t.ID)
			}
		} else {
			if _, err := m.tasks.Rename(m.ctx, m.editID, text); err != nil {
				m.fail("save", err)
			} else {
				m.status = "Updated task"
			}
			m.reload()
		}
		m.leaveInput(m.status)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.mode == modeConfirmDelete {
			if t, ok := m.current(); ok {
				if _, err := m.tasks.Delete(m.ctx, t.ID); err != nil {
					m.fail("delete", err)
				} else {
					m.status = "Deleted task"
				}
			}
		} else {
			if _, err := m.tasks.ClearCompleted(m.ctx); err != nil {
				m.fail("clear", err)
			} else {
				m.status = "Cleared completed tasks"
			}
		}
		m.reload()
		m.mode = modeList
	case "n", "N", "esc":
		m.status = "Cancelled"
		m.mode = modeList
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.\n")
	}
	for i, t := range m.items {
		cursor := "  "
		if i == m.cursor && m.mode != modeAdd {
			cursor = cursorStyle.Render("> ")
		}
		mark := output.OpenMark
		text := t.Text
		if t.Completed {
			mark = output.DoneMark
			text = doneStyle.Render(text)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, text)
	}

	b.WriteString("\n")
	b.WriteString(output.Counter(m.tasks.Counts()))
	b.WriteString("\n\n")

	if m.mode == modeAdd || m.mode == modeEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move • a add • e edit • space toggle • d delete • c clear completed • q quit"))
	return b.String()
}

func (m *model) current() (task.Task, bool) {
	if len(m.items) == 0 {
		return task.Task{}, false
	}
	return m.items[m.cursor], true
}

func (m *model) indexOf(id int64) int {
	for i, t := range m.items {
		if t.ID == id {
			return i
		}
	}
	return m.cursor
}

func (m *model) reload() {
	m.items = m.tasks.All()
	m.cursor = clampCursor(m.cursor, len(m.items))
}

func (m *model) leaveInput(status string) {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
}

func (m *model) fail(action string, err error) {
	m.saveErr = err
	m.status = fmt.Sprintf("%s failed: %v", action, err)
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
