// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "логин"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "пароль"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{usernameInput, passwordInput}}
}

func (m loginModel) View() string {
	out := viewTitle("ВХОД") + "\n"
	out += "Логин:  [" + m.inputs[0].View() + "]\n"
	out += "Пароль: [" + m.inputs[1].View() + "]\n\n"

	if m.submitting {
		out += "[Войти...]\n"
	} else {
		out += "[Войти]\n"
	}

	out += "\n" + helpStyle.Render(joinHotKeys("esc назад", "tab след. поле", "enter подтвердить"))
	return out
}
