package tui

import (
	"fmt"
	"strings"
)

const uiDivider = "──────────────────────────────────────────────────────"

func viewTitle(title string) string {
	return fmt.Sprintf("%s\n%s\n", title, uiDivider)
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func joinHotKeys(parts ...string) string {
	return strings.Join(parts, "  ")
}
