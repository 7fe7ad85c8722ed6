package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/rodo/internal/models"
	"github.com/desertthunder/rodo/internal/shared"
)

// TaskManager is the subset of the task lifecycle the TUI drives.
type TaskManager interface {
	List() ([]models.Task, error)
	Add(content string) (models.Task, error)
	Start(ids ...int) error
	Complete(ids ...int) error
	Reopen(ids ...int) error
	Remove(ids ...int) error
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	AddView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	manager TaskManager
	logger  *log.Logger
	view    ViewState
	width   int
	height  int
	list    list.Model
	input   textinput.Model
	pending *models.Task
	notice  string
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over manager. Logs go to logger, which must not write to the terminal.
func NewModel(manager TaskManager, logger *log.Logger) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Tasks"
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 512

	return &Model{
		manager: manager,
		logger:  logger,
		view:    ListView,
		width:   80,
		height:  24,
		list:    l,
		input:   input,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(manager TaskManager, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(manager, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Init loads the task list from the store.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AddView:
			return m.handleAddKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTasksLoaded:
		data := msg.data.(tasksLoaded)
		if data.err != nil && !errors.Is(data.err, shared.ErrNoTasks) {
			m.err = data.err
			return m, nil
		}
		return m, m.list.SetItems(toItems(data.tasks))

	case MsgTaskChanged:
		data := msg.data.(taskChanged)
		m.err = data.err
		if data.err == nil {
			m.notice = data.notice
		} else {
			m.notice = ""
			m.logger.Warn("task operation failed", "error", data.err)
		}
		return m, m.loadTasks()
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.view = AddView
		m.input.Reset()
		m.input.Focus()
		return m, nil
	case key.Matches(msg, m.keys.start):
		return m, m.changeSelected("started", m.manager.Start)
	case key.Matches(msg, m.keys.done):
		return m, m.changeSelected("completed", m.manager.Complete)
	case key.Matches(msg, m.keys.reopen):
		return m, m.changeSelected("reopened", m.manager.Reopen)
	case key.Matches(msg, m.keys.remove):
		if task, ok := m.selected(); ok {
			m.pending = &task
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.view = ListView
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		m.input.Blur()
		m.view = ListView
		return m, m.addTask(content)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.yes):
		task := m.pending
		m.pending = nil
		m.view = ListView
		if task == nil {
			return m, nil
		}
		return m, m.change(fmt.Sprintf("deleted #%d", task.ID), m.manager.Remove, task.ID)
	case key.Matches(msg, m.keys.no):
		m.pending = nil
		m.view = ListView
	}
	return m, nil
}

func (m *Model) selected() (models.Task, bool) {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return models.Task{}, false
	}
	return item.task, true
}

func (m *Model) changeSelected(verb string, op func(...int) error) tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	return m.change(fmt.Sprintf("%s #%d", verb, task.ID), op, task.ID)
}

func (m *Model) change(notice string, op func(...int) error, id int) tea.Cmd {
	return func() tea.Msg {
		m.logger.Debug("applying change", "task", id, "change", notice)
		return taskChangedMsg(notice, op(id))
	}
}

func (m *Model) addTask(content string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.manager.Add(content)
		if err != nil {
			return taskChangedMsg("", err)
		}
		m.logger.Debug("task added", "task", task.ID)
		return taskChangedMsg(fmt.Sprintf("added #%d", task.ID), nil)
	}
}

func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.manager.List()
		return tasksLoadedMsg(tasks, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case AddView:
		return m.renderAdd()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return m.renderList()
	}
}

func (m *Model) renderList() string {
	var b strings.Builder

	if len(m.list.Items()) == 0 {
		b.WriteString(styles.title.Render("Tasks"))
		b.WriteString("\n")
		b.WriteString(styles.warn.Render("No tasks found, press a to add one"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderAdd() string {
	title := styles.title.Render("New task")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.input.View(), helpView)
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Delete task #%d?", m.pending.ID))
	info := styles.Status(m.pending.Status).Render(m.pending.Content)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.notice != "":
		return styles.ok.Render("✓ " + m.notice)
	}
	return ""
}
