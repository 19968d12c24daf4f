package tui

import (
	"context"
	"errors"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

// TUI is the terminal front end of the client. It owns two Bubble Tea
// programs: the login flow shown until a session exists, and the main loop
// with the task list.
type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// LoginFlow runs the welcome/login/register screens until the user is
// authenticated. Returns [ErrUserQuit] when the user exits instead.
func (t *TUI) LoginFlow(ctx context.Context) error {
	model := newLoginAppModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.err != nil {
		return result.err
	}

	return nil
}

// MainLoop runs the task list screens. Returns logout=true when the user
// logged out and wants to return to the login flow.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainAppModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}

	return result.logout, result.err
}
