package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenList
	screenDetail
	screenForm
)

type appMode int

const (
	modeLogin appMode = iota
	modeMain
)

type appModel struct {
	ctx           context.Context
	services      *service.ClientServices
	mode          appMode
	currentScreen screen

	welcome  welcomeModel
	login    loginModel
	register registerModel
	list     listModel
	detail   detailModel
	form     formTaskModel

	err           error
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete int64
	logout        bool
}

func newLoginAppModel(ctx context.Context, services *service.ClientServices) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		mode:          modeLogin,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		list:          newListModel(),
	}
}

func newMainAppModel(ctx context.Context, services *service.ClientServices) appModel {
	m := newLoginAppModel(ctx, services)
	m.mode = modeMain
	m.currentScreen = screenList
	m.list.loading = true
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeMain {
		return tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == 0 {
					return m, nil
				}
				return m, m.cmdDeleteTask(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = 0
			}
			return m, nil
		}
	case loginDoneMsg:
		m.setSubmitting(false)
		if !msg.ok {
			m.showErrorf("Неверный логин или пароль, либо сервер недоступен")
			return m, nil
		}
		// Session established, hand control back to the main loop.
		return m, tea.Quit
	case registerDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.currentScreen = screenWelcome
		m.welcome.status = "Пользователь " + msg.username + " успешно зарегистрирован"
		return m, nil
	case tasksLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.list.items = msg.tasks
		if m.list.idx >= len(m.list.items) {
			m.list.idx = len(m.list.items) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case taskSavedMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, m.cmdLoadList()
	case taskDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.pendingDelete = 0
		m.currentScreen = screenList
		m.list.loading = true
		return m, m.cmdLoadList()
	case copiedMsg:
		if m.currentScreen == screenDetail {
			m.detail.status = "Скопировано!"
		}
		m.list.status = "Скопировано!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.list.loading {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.login.submitting = v
	m.register.submitting = v
	m.form.submitting = v
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.currentScreen = screenLogin
		} else {
			m.currentScreen = screenRegister
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if username == "" || password == "" {
				m.showErrorf("Логин и пароль обязательны")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.register.inputs[0].Value())
			email := strings.TrimSpace(m.register.inputs[1].Value())
			password := m.register.inputs[2].Value()
			repeat := m.register.inputs[3].Value()
			if username == "" || email == "" || password == "" {
				m.showErrorf("Логин, email и пароль обязательны")
				return m, nil
			}
			if password != repeat {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdRegister(username, email, password)
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{item: item}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.newItem):
		m.form = newFormTaskModel(nil)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.edit):
		item, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.form = newFormTaskModel(&item)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.delete):
		item, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = item.Title
		m.pendingDelete = item.ID
	case key.Matches(keyMsg, keys.filter):
		m.list.filter = m.list.filter.next()
		m.list.loading = true
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.refresh):
		m.list.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.edit):
		item := m.detail.item
		m.form = newFormTaskModel(&item)
		m.currentScreen = screenForm
		return m, nil
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = m.detail.item.Title
		m.pendingDelete = m.detail.item.ID
		return m, nil
	case key.Matches(keyMsg, keys.done):
		return m, m.cmdToggleDone(m.detail.item)
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(copyValue(m.detail.item))
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.form.editing {
				m.currentScreen = screenDetail
			} else {
				m.currentScreen = screenList
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = focusNextForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = focusPrevForm(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			req, err := m.form.toRequest()
			if err != nil {
				m.showErrorf(err.Error())
				return m, nil
			}
			m.form.submitting = true
			if m.form.editing {
				return m, m.cmdUpdateTask(m.form.taskID, req)
			}
			return m, m.cmdCreateTask(req)
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLogin(username, password string) tea.Cmd {
	ctx := m.ctx
	sessions := m.services.SessionManager
	return func() tea.Msg {
		return loginDoneMsg{ok: sessions.Login(ctx, username, password)}
	}
}

func (m appModel) cmdRegister(username, email, password string) tea.Cmd {
	ctx := m.ctx
	sessions := m.services.SessionManager
	return func() tea.Msg {
		err := sessions.Register(ctx, username, email, password)
		return registerDoneMsg{username: username, err: err}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	sessions := m.services.SessionManager
	return func() tea.Msg {
		sessions.Logout(ctx)
		return tea.Quit()
	}
}

func (m appModel) cmdLoadList() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	filter := m.list.filter.completedFilter()
	return func() tea.Msg {
		items, err := tasks.List(ctx, filter)
		return tasksLoadedMsg{tasks: items, err: err}
	}
}

func (m appModel) cmdCreateTask(req models.TaskRequest) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		_, err := tasks.Create(ctx, req)
		return taskSavedMsg{err: err}
	}
}

func (m appModel) cmdUpdateTask(taskID int64, req models.TaskRequest) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		_, err := tasks.Update(ctx, taskID, req)
		return taskSavedMsg{err: err}
	}
}

func (m appModel) cmdToggleDone(item models.Task) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService

	req := models.TaskRequest{
		Title:        item.Title,
		Description:  item.Description,
		LocationName: item.LocationName,
		Latitude:     item.Latitude,
		Longitude:    item.Longitude,
		TaskTime:     item.TaskTime,
		IsCompleted:  !item.IsCompleted,
		Priority:     item.Priority,
		Category:     item.Category,
		ReminderTime: item.ReminderTime,
	}

	return func() tea.Msg {
		_, err := tasks.Update(ctx, item.ID, req)
		return taskSavedMsg{err: err}
	}
}

func (m appModel) cmdDeleteTask(taskID int64) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		err := tasks.Delete(ctx, taskID)
		return taskDeletedMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return taskSavedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextForm(m formTaskModel) formTaskModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevForm(m formTaskModel) formTaskModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
