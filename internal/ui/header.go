package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/racingicemen/photogroove/internal/gallery"
)

// renderHeader renders the top status bar: logo, load state, and the
// render host's activity string verbatim.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{styles.Logo.Render("photogroove")}

	switch m.core.Status.Kind {
	case gallery.StatusLoading:
		parts = append(parts, styles.WarningText.Render("loading"))
	case gallery.StatusErrored:
		parts = append(parts, styles.DangerText.Render(m.core.Status.Message))
	case gallery.StatusLoaded:
		parts = append(parts, styles.SuccessText.Render(
			fmt.Sprintf("%d photos", len(m.core.Status.Photos))))
		if selected, ok := m.core.SelectedPhoto(); ok {
			parts = append(parts, styles.Text.Render(selected.Title))
		}
	}

	if m.core.Activity != "" {
		parts = append(parts, styles.MutedText.Render(m.core.Activity))
	}

	line := parts[0]
	for _, p := range parts[1:] {
		line += sep + p
	}
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(line)
	}
	return line
}
