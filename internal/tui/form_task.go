package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forecastflow/forecastflow/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const taskTimeLayout = "2006-01-02 15:04"

var errBadTaskForm = errors.New("bad task form")

const (
	taskFieldTitle = iota
	taskFieldLocation
	taskFieldLatitude
	taskFieldLongitude
	taskFieldTime
	taskFieldCategory
	taskFieldPriority
	taskFieldDescription
	taskFieldCount
)

type formTaskModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	taskID     int64
	completed  bool
	submitting bool
}

func newFormTaskModel(item *models.Task) formTaskModel {
	inputs := make([]textinput.Model, taskFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[taskFieldTitle].Placeholder = "название"
	inputs[taskFieldLocation].Placeholder = "место"
	inputs[taskFieldLatitude].Placeholder = "широта, напр. 55.7558"
	inputs[taskFieldLongitude].Placeholder = "долгота, напр. 37.6173"
	inputs[taskFieldTime].Placeholder = taskTimeLayout
	inputs[taskFieldCategory].Placeholder = "категория (можно пусто)"
	inputs[taskFieldPriority].Placeholder = "приоритет 1-5 (можно пусто)"
	inputs[taskFieldDescription].Placeholder = "описание (можно пусто)"
	inputs[taskFieldTitle].Focus()

	m := formTaskModel{inputs: inputs}
	if item == nil {
		return m
	}

	m.editing = true
	m.taskID = item.ID
	m.completed = item.IsCompleted
	m.inputs[taskFieldTitle].SetValue(item.Title)
	m.inputs[taskFieldLocation].SetValue(item.LocationName)
	m.inputs[taskFieldLatitude].SetValue(strconv.FormatFloat(item.Latitude, 'f', -1, 64))
	m.inputs[taskFieldLongitude].SetValue(strconv.FormatFloat(item.Longitude, 'f', -1, 64))
	m.inputs[taskFieldTime].SetValue(item.TaskTime.Format(taskTimeLayout))
	if item.Category != nil {
		m.inputs[taskFieldCategory].SetValue(*item.Category)
	}
	if item.Priority != nil {
		m.inputs[taskFieldPriority].SetValue(strconv.Itoa(*item.Priority))
	}
	if item.Description != nil {
		m.inputs[taskFieldDescription].SetValue(*item.Description)
	}
	return m
}

// toRequest validates the form and converts it to the API payload. The
// returned error text is shown to the user as is.
func (m formTaskModel) toRequest() (models.TaskRequest, error) {
	title := strings.TrimSpace(m.inputs[taskFieldTitle].Value())
	location := strings.TrimSpace(m.inputs[taskFieldLocation].Value())
	if title == "" || location == "" {
		return models.TaskRequest{}, fmt.Errorf("%w: название и место обязательны", errBadTaskForm)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[taskFieldLatitude].Value()), 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return models.TaskRequest{}, fmt.Errorf("%w: широта должна быть числом от -90 до 90", errBadTaskForm)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[taskFieldLongitude].Value()), 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return models.TaskRequest{}, fmt.Errorf("%w: долгота должна быть числом от -180 до 180", errBadTaskForm)
	}

	taskTime, err := time.ParseInLocation(taskTimeLayout, strings.TrimSpace(m.inputs[taskFieldTime].Value()), time.Local)
	if err != nil {
		return models.TaskRequest{}, fmt.Errorf("%w: время в формате %s", errBadTaskForm, taskTimeLayout)
	}

	req := models.TaskRequest{
		Title:        title,
		LocationName: location,
		Latitude:     latitude,
		Longitude:    longitude,
		TaskTime:     taskTime,
		IsCompleted:  m.completed,
	}

	if category := strings.TrimSpace(m.inputs[taskFieldCategory].Value()); category != "" {
		req.Category = &category
	}
	if rawPriority := strings.TrimSpace(m.inputs[taskFieldPriority].Value()); rawPriority != "" {
		priority, err := strconv.Atoi(rawPriority)
		if err != nil {
			return models.TaskRequest{}, fmt.Errorf("%w: приоритет должен быть числом", errBadTaskForm)
		}
		req.Priority = &priority
	}
	if description := strings.TrimSpace(m.inputs[taskFieldDescription].Value()); description != "" {
		req.Description = &description
	}

	return req, nil
}

func (m formTaskModel) View() string {
	title := "Новая задача"
	if m.editing {
		title = "Редактирование: " + m.inputs[taskFieldTitle].Value()
	}

	out := viewTitle(title) + "\n"
	out += "Название:    [" + m.inputs[taskFieldTitle].View() + "]\n"
	out += "Место:       [" + m.inputs[taskFieldLocation].View() + "]\n"
	out += "Широта:      [" + m.inputs[taskFieldLatitude].View() + "]\n"
	out += "Долгота:     [" + m.inputs[taskFieldLongitude].View() + "]\n"
	out += "Время:       [" + m.inputs[taskFieldTime].View() + "]\n"
	out += "Категория:   [" + m.inputs[taskFieldCategory].View() + "]\n"
	out += "Приоритет:   [" + m.inputs[taskFieldPriority].View() + "]\n"
	out += "Описание:    [" + m.inputs[taskFieldDescription].View() + "]\n\n"

	if m.submitting {
		out += "[Сохранить...]\n"
	} else {
		out += "[Сохранить]\n"
	}

	out += "\n" + helpStyle.Render(joinHotKeys("esc отмена", "tab следующее поле", "enter сохранить"))
	return out
}
