package tui

import (
	"fmt"

	"github.com/forecastflow/forecastflow/models"
	"github.com/charmbracelet/bubbles/spinner"
)

// filterMode cycles through "all", "active only", "completed only".
type filterMode int

const (
	filterAll filterMode = iota
	filterActive
	filterCompleted
)

func (f filterMode) next() filterMode {
	return (f + 1) % 3
}

func (f filterMode) label() string {
	switch f {
	case filterActive:
		return "невыполненные"
	case filterCompleted:
		return "выполненные"
	default:
		return "все"
	}
}

// completedFilter returns the filter applied to the server list request.
func (f filterMode) completedFilter() models.TaskFilter {
	switch f {
	case filterActive:
		completed := false
		return models.TaskFilter{Completed: &completed}
	case filterCompleted:
		completed := true
		return models.TaskFilter{Completed: &completed}
	default:
		return models.TaskFilter{}
	}
}

type listModel struct {
	items   []models.Task
	idx     int
	loading bool
	filter  filterMode
	status  string
	spinner spinner.Model
}

func newListModel() listModel {
	return listModel{spinner: spinner.New()}
}

func (m listModel) current() (models.Task, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Task{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) View() string {
	out := viewTitle("ЗАДАЧИ") + "\n"
	out += fmt.Sprintf("Фильтр: %s\n\n", m.filter.label())

	switch {
	case m.loading:
		out += m.spinner.View() + " Загрузка...\n"
	case len(m.items) == 0:
		out += "Нет задач. Нажмите n, чтобы добавить.\n"
	default:
		for i, task := range m.items {
			line := fmt.Sprintf("%s %s  @ %s  %s",
				checkbox(task.IsCompleted),
				fitText(task.Title, 30),
				fitText(task.LocationName, 20),
				task.TaskTime.Format("02.01.2006 15:04"),
			)
			if i == m.idx {
				line = selectedRowStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			out += line + "\n"
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render(joinHotKeys(
		"enter детали", "n новая", "e редакт.", "d удалить",
		"f фильтр", "r обновить", "l выход из аккаунта", "q выход"))
	return out
}
