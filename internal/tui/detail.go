package tui

import (
	"fmt"

	"github.com/forecastflow/forecastflow/models"
)

type detailModel struct {
	item   models.Task
	status string
}

func priorityLabel(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}

func (m detailModel) View() string {
	out := fmt.Sprintf("%s  %s\n\n", titleStyle.Render(m.item.Title), checkbox(m.item.IsCompleted))

	out += fmt.Sprintf("Место:       %s\n", m.item.LocationName)
	out += fmt.Sprintf("Координаты:  %.4f, %.4f\n", m.item.Latitude, m.item.Longitude)
	out += fmt.Sprintf("Время:       %s\n", m.item.TaskTime.Format("02.01.2006 15:04"))
	out += fmt.Sprintf("Категория:   %s\n", valueOrDash(m.item.Category))
	out += fmt.Sprintf("Приоритет:   %s\n", priorityLabel(m.item.Priority))
	if m.item.ReminderTime != nil {
		out += fmt.Sprintf("Напоминание: %s\n", m.item.ReminderTime.Format("02.01.2006 15:04"))
	}
	out += fmt.Sprintf("Описание:    %s\n", valueOrDash(m.item.Description))

	out += "\n" + helpStyle.Render(joinHotKeys(
		"e редакт.", "d удалить", "space готово/не готово",
		"c копир. координаты", "esc назад"))

	if m.status != "" {
		out += "\n\n" + m.status
	}

	return out
}

// copyValue returns the text placed on the clipboard from the detail screen:
// the task coordinates in "lat, lon" form, ready to paste into a map search.
func copyValue(item models.Task) string {
	return fmt.Sprintf("%.6f, %.6f", item.Latitude, item.Longitude)
}
