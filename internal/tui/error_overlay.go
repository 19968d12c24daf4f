package tui

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorTitleStyle.Render("Ошибка") + "\n\n" + m.message + "\n\nenter / esc закрыть"
	return overlayBoxStyle.Render(content)
}
