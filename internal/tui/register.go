// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "логин"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40
	usernameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 128
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "пароль (мин. 6 символов)"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	repeatInput := textinput.New()
	repeatInput.Placeholder = "повтор пароля"
	repeatInput.CharLimit = 256
	repeatInput.Width = 40
	repeatInput.EchoMode = textinput.EchoPassword
	repeatInput.EchoCharacter = '*'

	return registerModel{inputs: []textinput.Model{usernameInput, emailInput, passwordInput, repeatInput}}
}

func (m registerModel) View() string {
	out := viewTitle("РЕГИСТРАЦИЯ") + "\n"
	out += "Логин:   [" + m.inputs[0].View() + "]\n"
	out += "Email:   [" + m.inputs[1].View() + "]\n"
	out += "Пароль:  [" + m.inputs[2].View() + "]\n"
	out += "Повтор:  [" + m.inputs[3].View() + "]\n\n"

	if m.submitting {
		out += "[Зарегистрироваться...]\n"
	} else {
		out += "[Зарегистрироваться]\n"
	}

	out += "\n" + helpStyle.Render(joinHotKeys("esc назад", "tab след. поле", "enter подтвердить"))
	return out
}
