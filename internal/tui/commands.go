package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/service"
)

// Command factories for async operations. Engine calls take the session
// context so that background refills outlive the command.

// ResolveCmd picks the artwork for a fresh load
func ResolveCmd(ctx context.Context, engine service.Engine) tea.Cmd {
	return func() tea.Msg {
		art, err := engine.Resolve(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading artwork"}
		}
		return ResolvedMsg{Artwork: art}
	}
}

// ShuffleCmd advances to another artwork
func ShuffleCmd(ctx context.Context, engine service.Engine) tea.Cmd {
	return func() tea.Msg {
		art, err := engine.Shuffle(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "shuffling"}
		}
		return ShuffledMsg{Artwork: art}
	}
}

// TogglePinCmd pins or unpins the current artwork
func TogglePinCmd(engine service.Engine) tea.Cmd {
	return func() tea.Msg {
		pinned, err := engine.TogglePin()
		if err != nil {
			return ErrMsg{Err: err, Context: "pinning"}
		}
		return PinToggledMsg{Pinned: pinned}
	}
}

// ToggleFitCmd flips the background fit mode
func ToggleFitCmd(engine service.Engine) tea.Cmd {
	return func() tea.Msg {
		return BgSizeMsg{Mode: engine.ToggleBackgroundSize()}
	}
}

// ShowIndexCmd displays a pool entry chosen from search
func ShowIndexCmd(ctx context.Context, browser Browser, index int) tea.Cmd {
	return func() tea.Msg {
		art, err := browser.Show(ctx, index)
		if err != nil {
			return ErrMsg{Err: err, Context: "showing artwork"}
		}
		return ShuffledMsg{Artwork: art}
	}
}

// DownloadCmd saves the artwork on screen
func DownloadCmd(ctx context.Context, d Downloader, art domain.Artwork) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		path, err := d.Download(ctx, art)
		if err != nil {
			return ErrMsg{Err: err, Context: "downloading"}
		}
		return DownloadedMsg{Path: path}
	}
}

// OpenAboutCmd opens the project page
func OpenAboutCmd(o Opener) tea.Cmd {
	return func() tea.Msg {
		if err := o.OpenAbout(); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return AboutOpenedMsg{}
	}
}

// TrackTimeCmd records active time once a second
func TrackTimeCmd(tracker TimeTracker) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TimeTickMsg{Tracking: tracker.Update()}
	})
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
