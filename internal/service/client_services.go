package service

import (
	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
)

// ClientServices groups the client-side services into a single value that the
// terminal UI receives.
type ClientServices struct {
	SessionManager SessionManager
	TaskService    ClientTaskService
}

// NewClientServices wires the client services to the server adapter and the
// local session store.
func NewClientServices(serverAdapter adapter.ServerAdapter, sessionStore store.SessionStore, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		SessionManager: NewSessionManager(serverAdapter, sessionStore, logger),
		TaskService:    NewClientTaskService(serverAdapter, logger),
	}
}
