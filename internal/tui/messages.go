package tui

import (
	"github.com/forecastflow/forecastflow/models"
)

type loginDoneMsg struct {
	ok bool
}

type registerDoneMsg struct {
	username string
	err      error
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskSavedMsg struct {
	err error
}

type taskDeletedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
