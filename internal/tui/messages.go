package tui

import "github.com/mmcdole/parallax/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Renderer messages, sent by ProgramRenderer from engine goroutines

// ArtworkMsg shows an artwork
type ArtworkMsg struct {
	Artwork domain.Artwork
}

// LoadingMsg shows the loading state
type LoadingMsg struct{}

// UnavailableMsg shows the no-artwork placeholder
type UnavailableMsg struct{}

// BgSizeMsg applies a fit mode
type BgSizeMsg struct {
	Mode domain.BgSizeMode
}

// PinnedMsg updates the pin indicator
type PinnedMsg struct {
	Pinned bool
}

// Command results

// ResolvedMsg signals that the initial artwork was resolved
type ResolvedMsg struct {
	Artwork domain.Artwork
}

// ShuffledMsg signals that a shuffle completed. A zero artwork means the
// cache was empty and a refill will deliver the next one.
type ShuffledMsg struct {
	Artwork domain.Artwork
}

// PinToggledMsg carries the new pin state
type PinToggledMsg struct {
	Pinned bool
}

// DownloadedMsg signals that the current artwork was saved
type DownloadedMsg struct {
	Path string
}

// AboutOpenedMsg signals that the about link was handed to the opener
type AboutOpenedMsg struct{}

// TimeTickMsg carries today's updated active time
type TimeTickMsg struct {
	Tracking domain.TimeTracking
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
