package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/tui/styles"
)

// RenderArtworkCard renders the current artwork with its title and artist.
// Cover mode stretches the card across the available width.
func RenderArtworkCard(art domain.Artwork, pinned bool, mode domain.BgSizeMode, width int) string {
	inner := max(width-12, 10)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(art.Title, inner)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(art.Artist, inner)))
	if art.URL != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render(styles.Truncate(art.URL, inner)))
	}

	card := styles.CardStyle
	if pinned {
		card = styles.PinnedCardStyle
	}
	if mode == domain.BgSizeCover {
		card = card.Width(max(width-2, 10))
	}
	return card.Render(b.String())
}

// RenderBadges renders the pin and fit indicators
func RenderBadges(pinned bool, mode domain.BgSizeMode) string {
	pin := styles.DimBadgeStyle.Render("unpinned")
	if pinned {
		pin = styles.BadgeStyle.Render("pinned")
	}
	return pin + " " + styles.DimBadgeStyle.Render("fit: "+string(mode))
}

// FormatTimeSpent renders a seconds total as "1h 02m", "3m 05s" or "42s"
func FormatTimeSpent(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// RenderError renders an error message
func RenderError(err error, width int) string {
	msg := wordWrap(err.Error(), width-4)
	return styles.ErrorStyle.Render("Error: " + msg)
}

// renderHelp renders the help screen
func renderHelp(searchable bool) string {
	rows := []struct{ key, desc string }{
		{"s/space", "Shuffle to another artwork"},
		{"p", "Pin or unpin the current artwork"},
		{"f", "Toggle cover/contain fit"},
		{"d", "Download the current artwork"},
		{"a", "Open parallax.kr"},
	}
	if searchable {
		rows = append(rows, struct{ key, desc string }{"/", "Search the gallery"})
	}
	rows = append(rows,
		struct{ key, desc string }{"?", "Toggle help"},
		struct{ key, desc string }{"q", "Quit"},
	)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(fmt.Sprintf("  %-9s", r.key)))
		b.WriteString(styles.HelpDescStyle.Render(r.desc))
		b.WriteString("\n")
	}
	return styles.ModalStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// wordWrap wraps text to the given width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
