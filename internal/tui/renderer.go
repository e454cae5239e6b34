package tui

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/parallax/internal/domain"
)

// ProgramRenderer adapts domain.Renderer to Bubble Tea messages. Engines call
// it from their own goroutines, including background refills, so every call
// becomes a message for the program's update loop.
type ProgramRenderer struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var _ domain.Renderer = (*ProgramRenderer)(nil)

// NewProgramRenderer creates a renderer. Calls made before Attach are dropped.
func NewProgramRenderer() *ProgramRenderer {
	return &ProgramRenderer{}
}

// Attach routes messages to p
func (r *ProgramRenderer) Attach(p *tea.Program) {
	r.AttachFunc(p.Send)
}

// AttachFunc routes messages to send
func (r *ProgramRenderer) AttachFunc(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

func (r *ProgramRenderer) emit(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (r *ProgramRenderer) ApplyArtwork(art domain.Artwork) { r.emit(ArtworkMsg{Artwork: art}) }

func (r *ProgramRenderer) ShowLoading() { r.emit(LoadingMsg{}) }

func (r *ProgramRenderer) ShowUnavailable() { r.emit(UnavailableMsg{}) }

func (r *ProgramRenderer) ApplyBackgroundSize(mode domain.BgSizeMode) {
	r.emit(BgSizeMsg{Mode: mode})
}

func (r *ProgramRenderer) SetPinned(pinned bool) { r.emit(PinnedMsg{Pinned: pinned}) }

// TextRenderer writes one line per render call, for headless runs
type TextRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ domain.Renderer = (*TextRenderer)(nil)

// NewTextRenderer creates a renderer writing to w
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *TextRenderer) ApplyArtwork(art domain.Artwork) {
	r.printf("%s - %s\n  %s", art.Title, art.Artist, art.URL)
}

func (r *TextRenderer) ShowLoading() { r.printf("loading...") }

func (r *TextRenderer) ShowUnavailable() { r.printf("%s", domain.Unavailable.Title) }

func (r *TextRenderer) ApplyBackgroundSize(mode domain.BgSizeMode) { r.printf("fit: %s", mode) }

func (r *TextRenderer) SetPinned(pinned bool) {
	if pinned {
		r.printf("pinned")
	}
}
