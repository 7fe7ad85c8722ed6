package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/rodo/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTasksLoaded MsgKind = iota
	MsgTaskChanged
)

type tasksLoaded struct {
	tasks []models.Task
	err   error
}

type taskChanged struct {
	notice string
	err    error
}

// tasksLoadedMsg is the constructor for [MsgTasksLoaded]
func tasksLoadedMsg(tasks []models.Task, err error) Msg {
	return Msg{kind: MsgTasksLoaded, data: tasksLoaded{tasks, err}}
}

// taskChangedMsg is the constructor for [MsgTaskChanged]
func taskChangedMsg(notice string, err error) Msg {
	return Msg{kind: MsgTaskChanged, data: taskChanged{notice, err}}
}
