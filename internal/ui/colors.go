package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/rodo/internal/models"
)

// Colors names the hex colors a [Palette] is built from.
type Colors struct {
	Accent  string
	Success string
	Danger  string
	Warning string
	Muted   string
}

var styles = NewPalette(Colors{
	Accent:  "#7D56F4",
	Success: "#04B575",
	Danger:  "#FF0000",
	Warning: "#FFA500",
	Muted:   "#626262",
})

// Palette holds the [lipgloss.Style] values used by the views, including one per task status.
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	todo   lipgloss.Style
	active lipgloss.Style
	done   lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title:  bold(c.Accent).MarginBottom(1),
		ok:     bold(c.Success),
		err:    bold(c.Danger),
		warn:   fg(c.Warning),
		help:   fg(c.Muted).Italic(true),
		todo:   lipgloss.NewStyle(),
		active: bold(c.Warning),
		done:   fg(c.Success).Strikethrough(true),
	}
}

// Status returns the style for text describing a task in status s.
//
// Unrecognized statuses are rendered muted.
func (p *Palette) Status(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusTodo:
		return p.todo
	case models.StatusInProgress:
		return p.active
	case models.StatusDone:
		return p.done
	case models.StatusDeleted:
		return p.err
	default:
		return p.help
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
