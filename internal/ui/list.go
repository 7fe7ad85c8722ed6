package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/rodo/internal/formatter"
	"github.com/desertthunder/rodo/internal/models"
)

var _ list.Item = taskItem{}

// taskItem wraps [models.Task] to implement [list.Item].
type taskItem struct {
	task models.Task
}

func (i taskItem) FilterValue() string { return i.task.Content }
func (i taskItem) Title() string {
	return fmt.Sprintf("%s %s", formatter.StatusMarker(i.task.Status), i.task.Content)
}
func (i taskItem) Description() string {
	return fmt.Sprintf("#%d • %s", i.task.ID, styles.Status(i.task.Status).Render(i.task.Status.String()))
}

func toItems(tasks []models.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	return items
}
