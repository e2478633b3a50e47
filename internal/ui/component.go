package ui

import (
	"verse-tui/internal/action"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is a panel driven by the App. HandleKey turns a key press into
// at most one action; Update applies an action delivered to every
// component and may return one follow-up; View renders from the
// component's own state only.
type Component interface {
	HandleKey(msg tea.KeyMsg) action.Action
	Update(a action.Action) (action.Action, error)
	View(focused bool, width, height int) string
}

// InputCapturer is implemented by components that sometimes consume every
// key as text, so global shortcuts must not fire.
type InputCapturer interface {
	CapturingInput() bool
}

func capturing(c Component) bool {
	ic, ok := c.(InputCapturer)
	return ok && ic.CapturingInput()
}

// pane renders content inside a bordered box of exactly width x height cells.
func pane(style lipgloss.Style, width, height int, content string) string {
	w := max(width-style.GetHorizontalBorderSize(), 1)
	h := max(height-style.GetVerticalBorderSize(), 1)
	return style.Width(w).Height(h).MaxHeight(height).Render(content)
}

// innerSize is the content area left inside style's border and padding.
func innerSize(style lipgloss.Style, width, height int) (int, int) {
	return max(width-style.GetHorizontalFrameSize(), 1), max(height-style.GetVerticalFrameSize(), 1)
}
