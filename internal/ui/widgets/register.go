package widgets

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	registerOnce sync.Once
	registered   *lipgloss.Renderer
)

// Register binds the widgets to a lipgloss renderer. main calls it once
// before the program starts; later calls are no-ops. Without it the default
// renderer is used.
func Register(r *lipgloss.Renderer) {
	registerOnce.Do(func() {
		if r == nil {
			r = lipgloss.DefaultRenderer()
		}
		registered = r
	})
}

func renderer() *lipgloss.Renderer {
	if registered == nil {
		return lipgloss.DefaultRenderer()
	}
	return registered
}
