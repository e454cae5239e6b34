package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/gallery"
	"github.com/mmcdole/parallax/internal/service"
	"github.com/mmcdole/parallax/internal/tui/styles"
)

// Downloader saves an artwork locally
type Downloader interface {
	Download(ctx context.Context, art domain.Artwork) (string, error)
}

// Opener opens the about link
type Opener interface {
	OpenAbout() error
}

// Browser is an engine whose artworks can be searched and shown directly
type Browser interface {
	Pool() *gallery.Pool
	Show(ctx context.Context, index int) (domain.Artwork, error)
}

// TimeTracker accumulates active time
type TimeTracker interface {
	Init() domain.TimeTracking
	Update() domain.TimeTracking
}

// ApplicationState represents the current modal state
type ApplicationState int

const (
	StateViewing ApplicationState = iota
	StateSearching
	StateHelp
)

const statusTimeout = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Engine     service.Engine
	Tracker    TimeTracker
	Downloader Downloader
	Opener     Opener
	browser    Browser // nil unless the engine serves the fixed pool

	// UI Components
	Search SearchModal

	// Display state, driven by renderer messages
	Artwork     domain.Artwork
	Pinned      bool
	BgSize      domain.BgSizeMode
	Loading     bool
	Unavailable bool
	TimeSpent   int64

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	ctx context.Context
}

// NewModel creates a new application model. ctx bounds engine work,
// including background refills, for the lifetime of the program.
func NewModel(
	ctx context.Context,
	engine service.Engine,
	tracker TimeTracker,
	downloader Downloader,
	opener Opener,
) Model {
	m := Model{
		State:      StateViewing,
		Engine:     engine,
		Tracker:    tracker,
		Downloader: downloader,
		Opener:     opener,
		BgSize:     engine.BackgroundSize(),
		Pinned:     engine.IsPinned(),
		Loading:    true,
		ctx:        ctx,
	}
	if tracker != nil {
		m.TimeSpent = tracker.Init().TimeSpent
	}
	if b, ok := engine.(Browser); ok {
		m.browser = b
		m.Search = NewSearchModal(b.Pool())
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		ResolveCmd(m.ctx, m.Engine),
		TickCmd(100 * time.Millisecond),
	}
	if m.Tracker != nil {
		cmds = append(cmds, TrackTimeCmd(m.Tracker))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case TimeTickMsg:
		m.TimeSpent = msg.Tracking.TimeSpent
		return m, TrackTimeCmd(m.Tracker)

	// Renderer messages
	case ArtworkMsg:
		m.Artwork = msg.Artwork
		m.Loading = false
		m.Unavailable = false
		return m, nil

	case LoadingMsg:
		m.Loading = true
		m.Unavailable = false
		return m, nil

	case UnavailableMsg:
		m.Artwork = domain.Unavailable
		m.Loading = false
		m.Unavailable = true
		return m, nil

	case BgSizeMsg:
		m.BgSize = msg.Mode
		return m, nil

	case PinnedMsg:
		m.Pinned = msg.Pinned
		return m, nil

	// Command results
	case ResolvedMsg, ShuffledMsg:
		return m, nil

	case PinToggledMsg:
		m.Pinned = msg.Pinned
		if msg.Pinned {
			return m.setStatus("Pinned", false)
		}
		return m.setStatus("Unpinned", false)

	case DownloadedMsg:
		return m.setStatus("Saved to "+msg.Path, false)

	case AboutOpenedMsg:
		return m, nil

	case ErrMsg:
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		return m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateSearching:
		return m.handleSearchKey(msg)
	case StateHelp:
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		m.State = StateViewing
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Shuffle):
		return m, ShuffleCmd(m.ctx, m.Engine)

	case key.Matches(msg, Keys.Pin):
		return m, TogglePinCmd(m.Engine)

	case key.Matches(msg, Keys.Fit):
		return m, ToggleFitCmd(m.Engine)

	case key.Matches(msg, Keys.Download):
		if m.Downloader == nil || m.Artwork.IsZero() {
			return m.setStatus("Nothing to download", true)
		}
		return m.setStatus("Downloading...", false, DownloadCmd(m.ctx, m.Downloader, m.Artwork))

	case key.Matches(msg, Keys.About):
		if m.Opener == nil {
			return m, nil
		}
		return m, OpenAboutCmd(m.Opener)

	case key.Matches(msg, Keys.Search):
		if m.browser == nil {
			return m.setStatus("Search is only available for the built-in gallery", true)
		}
		m.State = StateSearching
		m.Search.Show()
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Search.Hide()
		m.State = StateViewing
		return m, nil

	case key.Matches(msg, Keys.Enter):
		index, ok := m.Search.Selected()
		m.Search.Hide()
		m.State = StateViewing
		if !ok {
			return m, nil
		}
		return m, ShowIndexCmd(m.ctx, m.browser, index)

	case key.Matches(msg, Keys.Up):
		m.Search.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Search.MoveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	return m, cmd
}

func (m Model) setStatus(text string, isErr bool, cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	cmds = append(cmds, ClearStatusCmd(statusTimeout))
	return m, tea.Batch(cmds...)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var body string
	switch {
	case m.State == StateHelp:
		body = renderHelp(m.browser != nil)
	case m.State == StateSearching:
		body = m.Search.View(m.Width)
	case m.Loading:
		body = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Finding artwork...")
	case m.Unavailable:
		body = styles.CardStyle.Render(styles.SubtitleStyle.Render(domain.Unavailable.Title))
	default:
		body = RenderArtworkCard(m.Artwork, m.Pinned, m.BgSize, m.Width)
	}

	contentHeight := max(m.Height-1, 1)
	content := lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + m.renderFooter()
}

func (m Model) renderFooter() string {
	// Left side: status message, or badges and today's time
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else {
		left = RenderBadges(m.Pinned, m.BgSize) + " " +
			styles.DimStyle.Render("today "+FormatTimeSpent(m.TimeSpent))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
