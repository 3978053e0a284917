package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/racingicemen/photogroove/internal/gallery"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		"",
		m.renderBody(),
		"",
		m.renderSliders(),
		m.renderSizes(),
		"",
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()

	switch m.core.Status.Kind {
	case gallery.StatusLoading:
		return styles.WarningText.Render("Loading photos...")
	case gallery.StatusErrored:
		return styles.DangerText.Render(m.core.Status.Message)
	case gallery.StatusLoaded:
		return m.renderGrid()
	default:
		return ""
	}
}

// cardContentWidth maps the chosen thumbnail size to a card width.
func cardContentWidth(size gallery.ThumbnailSize) int {
	switch size {
	case gallery.Small:
		return 10
	case gallery.Large:
		return 26
	default:
		return 18
	}
}

func (m Model) renderGrid() string {
	styles := m.theme.Styles()
	photos := m.core.Status.Photos

	contentWidth := cardContentWidth(m.core.ChosenSize)
	// Borders and padding add four cells to each card.
	perRow := m.width / (contentWidth + 4)
	if perRow < 1 {
		perRow = 1
	}

	// The card width includes its padding, so text gets two cells less.
	textWidth := contentWidth - 2

	cards := make([]string, len(photos))
	for i, p := range photos {
		style := styles.Card
		if p.URL == m.core.Status.SelectedURL {
			style = styles.SelectedCard
		}
		content := truncate(p.Title, textWidth) + "\n" +
			truncate(formatBytes(p.Size), textWidth)
		cards[i] = style.Width(contentWidth).Render(content)
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSliders() string {
	styles := m.theme.Styles()

	lines := make([]string, 0, 3)
	for _, s := range []gallery.Slider{gallery.Hue, gallery.Ripple, gallery.Noise} {
		value := m.core.SliderValue(s)
		label := fmt.Sprintf("%-6s", s.String())
		bar := styles.SliderFill.Render(strings.Repeat("█", value)) +
			styles.SliderTrack.Render(strings.Repeat("░", gallery.SliderMax-value))
		lines = append(lines, fmt.Sprintf("%s %s %2d",
			styles.Text.Render(label), bar, value))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSizes() string {
	styles := m.theme.Styles()

	parts := make([]string, 0, 3)
	for i, size := range []gallery.ThumbnailSize{gallery.Small, gallery.Medium, gallery.Large} {
		label := fmt.Sprintf("[%d] %s", i+1, size)
		if size == m.core.ChosenSize {
			parts = append(parts, styles.AccentText.Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	return styles.Text.Render("size: ") + strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	title := m.theme.Styles().Logo.Render("photogroove keys")
	return title + "\n\n" + h.View(m.keys) + "\n\n" +
		m.theme.Styles().MutedText.Render("press any key to close")
}

// truncate cuts s to at most width runes, ellipsized.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// formatBytes renders a photo size compactly. Feed sizes are small, so
// two units cover the realistic range.
func formatBytes(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
