// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Junsious/yuko/internal/config"
	"github.com/Junsious/yuko/internal/logging"
	"github.com/Junsious/yuko/internal/task"
	"github.com/Junsious/yuko/internal/utils"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	session *logging.SessionLogger
	logger  *log.Logger
}

// WithSessionLogger attaches a session event log. A nil logger disables
// event logging.
func WithSessionLogger(session *logging.SessionLogger) TUIOption {
	return func(c *tuiConfig) {
		c.session = session
	}
}

// WithLogger sets the console logger used for non-fatal warnings.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI loads the task snapshot and runs the full-screen editor until the
// user quits or ctx is cancelled.
func RunTUI(ctx context.Context, cfg *config.Config, tasksPath string, opts ...TUIOption) error {
	c := &tuiConfig{}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	path := tasksPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	list, err := task.LoadOrNew(path)
	if err != nil {
		return err
	}

	model := newTUIModel(cfg, path, list, c.session, c.logger)
	return runProgram(ctx, model)
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok {
		if m.quitErr != nil {
			return m.quitErr
		}
	}
	return nil
}

// mode is the input mode of the editor. Exactly one mode is active at a
// time; every mode but modeNormal captures all key events.
type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeEditing
	modeConfirmDelete
)

type tuiModel struct {
	cfg       *config.Config
	tasksPath string
	list      *task.List
	session   *logging.SessionLogger
	logger    *log.Logger

	mode    mode
	cursor  int
	editID  string
	input   textinput.Model
	editor  textarea.Model
	styles  styles
	status  string
	width   int
	height  int
	quitErr error
}

type statusMsg string

func newTUIModel(cfg *config.Config, tasksPath string, list *task.List, session *logging.SessionLogger, logger *log.Logger) *tuiModel {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 256
	input.Width = 48

	editor := textarea.New()
	editor.SetHeight(3)
	editor.SetWidth(60)
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	return &tuiModel{
		cfg:       cfg,
		tasksPath: tasksPath,
		list:      list,
		session:   session,
		logger:    logger,
		input:     input,
		editor:    editor,
		styles:    newStyles(cfg.Theme),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clamp(msg.Width-8, 20, 60)
		m.editor.SetWidth(clamp(msg.Width-10, 20, 72))
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.mode {
		case modeAdding:
			return m.updateAdding(msg)
		case modeEditing:
			return m.updateEditing(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m *tuiModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.list.Tasks)-1 {
			m.cursor++
		}
		return m, nil
	case "a":
		m.mode = modeAdding
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	case "enter", "e":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.list.BeginEdit(t.ID)
		m.editID = t.ID
		m.editor.SetValue(t.Text)
		m.editor.Focus()
		m.mode = modeEditing
		m.logEvent(logging.Event{Op: "begin_edit", TaskID: t.ID, OK: true})
		return m, textarea.Blink
	case " ", "x":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.list.ToggleComplete(t.ID)
		completed := t.Completed
		m.persist()
		m.logEvent(logging.Event{Op: "toggle", TaskID: t.ID, Completed: &completed, OK: true})
		if completed {
			m.status = "completed " + t.ID
		} else {
			m.status = "reopened " + t.ID
		}
		return m, nil
	case "d":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		if m.cfg.ConfirmDelete {
			m.mode = modeConfirmDelete
			return m, nil
		}
		m.deleteSelected()
		return m, nil
	case "c":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		return m, copyToClipboard(t.Text)
	}

	return m, nil
}

func (m *tuiModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		t, ok := m.list.Add(m.input.Value())
		if !ok {
			// Blank input never creates a task and never consumes an id.
			m.status = "nothing to add"
			m.logEvent(logging.Event{Op: "add", OK: false})
			return m, nil
		}
		m.cursor = len(m.list.Tasks) - 1
		m.mode = modeNormal
		m.input.Blur()
		m.persist()
		m.logEvent(logging.Event{Op: "add", TaskID: t.ID, Text: t.Text, OK: true})
		m.status = "added " + t.ID
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.list.CancelEdit(m.editID)
		m.logEvent(logging.Event{Op: "cancel_edit", TaskID: m.editID, OK: true})
		m.leaveEditMode()
		m.status = ""
		return m, nil
	case "ctrl+s":
		id := m.editID
		text := m.editor.Value()
		if m.list.CommitEdit(id, text) {
			m.persist()
			m.logEvent(logging.Event{Op: "commit_edit", TaskID: id, Text: text, OK: true})
			m.status = "saved " + id
		}
		m.leaveEditMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	switch msg.String() {
	case "y", "Y":
		m.deleteSelected()
	default:
		m.status = ""
	}
	return m, nil
}

// selected returns the task under the cursor, or nil when the list is empty.
func (m *tuiModel) selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.list.Tasks) {
		return nil
	}
	return &m.list.Tasks[m.cursor]
}

func (m *tuiModel) deleteSelected() {
	t := m.selected()
	if t == nil {
		return
	}
	id := t.ID
	m.list.Delete(id)
	if m.cursor >= len(m.list.Tasks) && m.cursor > 0 {
		m.cursor--
	}
	m.persist()
	m.logEvent(logging.Event{Op: "delete", TaskID: id, OK: true})
	m.status = "deleted " + id
}

func (m *tuiModel) leaveEditMode() {
	m.mode = modeNormal
	m.editID = ""
	m.editor.Blur()
	m.editor.Reset()
}

// persist writes the snapshot after a mutation. Failures surface in the
// status line and the console log but never stop the editor.
func (m *tuiModel) persist() {
	if !m.cfg.AutoSave {
		return
	}
	if err := m.list.Save(m.tasksPath); err != nil {
		m.status = "save failed: " + err.Error()
		if m.logger != nil {
			m.logger.Warn("snapshot save failed", "path", m.tasksPath, "error", err)
		}
	}
}

func (m *tuiModel) logEvent(ev logging.Event) {
	if err := m.session.Log(ev); err != nil && m.logger != nil {
		m.logger.Warn("session log write failed", "error", err)
	}
}

// quit leaves the editor. With autosave off the snapshot is written once
// here instead of after each mutation.
func (m *tuiModel) quit() (tea.Model, tea.Cmd) {
	if !m.cfg.AutoSave {
		m.quitErr = m.list.Save(m.tasksPath)
	}
	return m, tea.Quit
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)
	m.writeTasks(&b)
	switch m.mode {
	case modeAdding:
		m.writeInput(&b)
	case modeConfirmDelete:
		m.writeConfirm(&b)
	}
	m.writeStatus(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeHeader(b *strings.Builder) {
	open, done := m.list.Counts()
	b.WriteString(m.styles.title.Render("yuko") + "\n")
	b.WriteString(m.styles.counts.Render(fmt.Sprintf("%d open, %d done", open, done)) + "\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	if len(m.list.Tasks) == 0 {
		b.WriteString("  No tasks. Press a to add one.\n")
		return
	}

	for i := range m.list.Tasks {
		t := &m.list.Tasks[i]

		marker := "  "
		if i == m.cursor {
			marker = m.styles.cursor.Render(">") + " "
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s  ", marker, checkbox, m.styles.taskID.Render(t.ID)))

		if t.Editing && m.mode == modeEditing {
			b.WriteString("\n" + m.styles.editBox.Render(m.editor.View()) + "\n")
			continue
		}

		text := utils.FirstLine(t.Text)
		if len(text) > 72 {
			text = text[:69] + "..."
		} else if strings.Contains(t.Text, "\n") {
			text += " ..."
		}
		switch {
		case t.Completed:
			text = m.styles.done.Render(text)
		case i == m.cursor:
			text = m.styles.selected.Render(text)
		}
		b.WriteString(text + "\n")
	}
}

func (m *tuiModel) writeInput(b *strings.Builder) {
	b.WriteString("\n  " + m.input.View() + "\n")
}

func (m *tuiModel) writeConfirm(b *strings.Builder) {
	t := m.selected()
	if t == nil {
		return
	}
	b.WriteString("\n  " + m.styles.danger.Render(fmt.Sprintf("delete %s? (y/n)", t.ID)) + "\n")
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	b.WriteString("\n" + m.styles.status.Render("  "+m.status) + "\n")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	var help string
	switch m.mode {
	case modeAdding:
		help = "enter add • esc cancel"
	case modeEditing:
		help = "ctrl+s save • esc cancel"
	case modeConfirmDelete:
		help = "y delete • any other key keeps the task"
	default:
		help = "j/k move • a add • enter edit • space toggle • d delete • c copy • q quit"
	}
	b.WriteString("\n" + m.styles.help.Render("  "+help) + "\n")
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg("copy failed: " + err.Error())
		}
		return statusMsg("copied to clipboard")
	}
}

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
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
