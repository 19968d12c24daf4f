package tui

type welcomeModel struct {
	items  []string
	idx    int
	status string
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Войти", "Зарегистрироваться"}}
}

func (m welcomeModel) View() string {
	out := titleStyle.Render("ForecastFlow") + "\n\nВыберите действие:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	if m.status != "" {
		out += "\nOK: " + m.status + "\n"
	}
	out += "\n" + helpStyle.Render("q выход")
	return out
}
