package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/parallax/internal/gallery"
	"github.com/mmcdole/parallax/internal/tui/styles"
)

const maxSearchResults = 8

// SearchModal is the fuzzy search over the built-in pool
type SearchModal struct {
	input     textinput.Model
	pool      *gallery.Pool
	results   []gallery.SearchResult
	cursor    int
	visible   bool
	prevQuery string
}

// NewSearchModal creates a search modal over pool
func NewSearchModal(pool *gallery.Pool) SearchModal {
	ti := textinput.New()
	ti.Placeholder = "Title or artist..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchModal{input: ti, pool: pool}
}

// Show makes the modal visible and focuses the input
func (s *SearchModal) Show() {
	s.visible = true
	s.input.SetValue("")
	s.input.Focus()
	s.results = nil
	s.cursor = 0
	s.prevQuery = ""
}

// Hide hides the modal
func (s *SearchModal) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns whether the modal is visible
func (s SearchModal) IsVisible() bool {
	return s.visible
}

// Results returns the current matches
func (s SearchModal) Results() []gallery.SearchResult {
	return s.results
}

// Selected returns the pool index under the cursor
func (s SearchModal) Selected() (int, bool) {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return 0, false
	}
	return s.results[s.cursor].Index, true
}

// MoveCursor moves the selection by delta, clamped to the results
func (s *SearchModal) MoveCursor(delta int) {
	s.cursor += delta
	limit := min(len(s.results), maxSearchResults)
	if s.cursor >= limit {
		s.cursor = limit - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Update forwards input to the text field and re-runs the search on change
func (s SearchModal) Update(msg tea.Msg) (SearchModal, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if q := s.input.Value(); q != s.prevQuery {
		s.prevQuery = q
		s.results = s.pool.Search(q)
		s.cursor = 0
	}
	return s, cmd
}

// View renders the modal
func (s SearchModal) View(width int) string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Search the gallery"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.input.Value() == "":
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d artworks", s.pool.Len())))
	case len(s.results) == 0:
		b.WriteString(styles.DimStyle.Render("No matches"))
	default:
		for i, r := range s.results {
			if i >= maxSearchResults {
				b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(s.results)-maxSearchResults)))
				break
			}
			base := styles.NormalItemStyle.UnsetPadding()
			prefix := "  "
			if i == s.cursor {
				base = styles.SelectedItemStyle.UnsetPadding()
				prefix = styles.AccentStyle.Render("> ")
			}
			b.WriteString(prefix)
			b.WriteString(styles.Highlight(r.Label, r.MatchedIndexes, base))
			b.WriteString("\n")
		}
	}

	modalWidth := min(max(width-8, 30), 72)
	return styles.ModalStyle.Width(modalWidth).Render(b.String())
}
