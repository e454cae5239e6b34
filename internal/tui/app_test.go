package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/gallery"
	"github.com/mmcdole/parallax/internal/service"
)

type fakeEngine struct {
	shuffles int
	pinned   bool
	mode     domain.BgSizeMode
	shown    []int
	pool     *gallery.Pool
}

func (e *fakeEngine) Resolve(context.Context) (domain.Artwork, error) {
	return domain.Artwork{URL: "u", Title: "t"}, nil
}

func (e *fakeEngine) Shuffle(context.Context) (domain.Artwork, error) {
	e.shuffles++
	return domain.Artwork{URL: "u2", Title: "t2"}, nil
}

func (e *fakeEngine) TogglePin() (bool, error) {
	e.pinned = !e.pinned
	return e.pinned, nil
}

func (e *fakeEngine) IsPinned() bool { return e.pinned }

func (e *fakeEngine) ToggleBackgroundSize() domain.BgSizeMode {
	e.mode = e.mode.Toggle()
	return e.mode
}

func (e *fakeEngine) BackgroundSize() domain.BgSizeMode { return e.mode }

func (e *fakeEngine) Session() service.Session { return service.Session{} }

// browsingEngine adds pool search to fakeEngine
type browsingEngine struct{ *fakeEngine }

func (e browsingEngine) Pool() *gallery.Pool { return e.pool }

func (e browsingEngine) Show(_ context.Context, index int) (domain.Artwork, error) {
	e.shown = append(e.shown, index)
	art, _ := e.pool.At(index)
	return art, nil
}

type fakeTracker struct{ spent int64 }

func (t *fakeTracker) Init() domain.TimeTracking { return domain.TimeTracking{TimeSpent: t.spent} }

func (t *fakeTracker) Update() domain.TimeTracking {
	t.spent++
	return domain.TimeTracking{TimeSpent: t.spent}
}

func runeKey(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runCmd executes an engine command and feeds its result back into the model
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	m, _ = update(m, cmd())
	return m
}

func newTestModel(engine service.Engine) Model {
	m := NewModel(context.Background(), engine, &fakeTracker{spent: 7}, nil, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestModel_RendererMessages(t *testing.T) {
	m := newTestModel(&fakeEngine{mode: domain.BgSizeContain})
	if !m.Loading {
		t.Fatal("Loading = false before first artwork")
	}
	if m.TimeSpent != 7 {
		t.Fatalf("TimeSpent = %d, want 7 from tracker Init", m.TimeSpent)
	}

	art := domain.Artwork{URL: "https://img/a.jpg", Title: "The Kiss", Artist: "Gustav Klimt"}
	m, _ = update(m, ArtworkMsg{Artwork: art})
	if m.Loading || m.Artwork != art {
		t.Fatalf("after ArtworkMsg: loading=%v artwork=%#v", m.Loading, m.Artwork)
	}
	view := m.View()
	if !strings.Contains(view, "The Kiss") || !strings.Contains(view, "Gustav Klimt") {
		t.Fatalf("View does not show the artwork:\n%s", view)
	}

	m, _ = update(m, UnavailableMsg{})
	if !m.Unavailable || !strings.Contains(m.View(), domain.Unavailable.Title) {
		t.Fatal("UnavailableMsg did not switch to the placeholder")
	}
}

func TestModel_ShuffleKeys(t *testing.T) {
	e := &fakeEngine{mode: domain.BgSizeContain}
	m := newTestModel(e)

	m, cmd := update(m, runeKey("s"))
	m = runCmd(t, m, cmd)
	m, cmd = update(m, runeKey(" "))
	runCmd(t, m, cmd)
	if e.shuffles != 2 {
		t.Fatalf("shuffles = %d, want 2", e.shuffles)
	}
}

func TestModel_PinAndFit(t *testing.T) {
	e := &fakeEngine{mode: domain.BgSizeContain}
	m := newTestModel(e)

	m, cmd := update(m, runeKey("p"))
	m = runCmd(t, m, cmd)
	if !m.Pinned || m.StatusMsg != "Pinned" {
		t.Fatalf("after p: pinned=%v status=%q", m.Pinned, m.StatusMsg)
	}
	if !strings.Contains(m.View(), "Pinned") {
		t.Fatalf("footer does not show the status:\n%s", m.View())
	}

	m, cmd = update(m, runeKey("f"))
	m = runCmd(t, m, cmd)
	if m.BgSize != domain.BgSizeCover {
		t.Fatalf("after f: BgSize = %q, want cover", m.BgSize)
	}
}

func TestModel_SearchRequiresPool(t *testing.T) {
	m := newTestModel(&fakeEngine{mode: domain.BgSizeContain})

	m, _ = update(m, runeKey("/"))
	if m.State != StateViewing || !m.StatusIsErr {
		t.Fatalf("state=%v statusErr=%v, want search refused", m.State, m.StatusIsErr)
	}
}

func TestModel_SearchShowsSelection(t *testing.T) {
	pool := gallery.NewPool([]domain.Artwork{
		{URL: "https://img/1.jpg", Title: "Water Lilies", Artist: "Claude Monet"},
		{URL: "https://img/2.jpg", Title: "The Starry Night", Artist: "Vincent van Gogh"},
	})
	e := browsingEngine{&fakeEngine{mode: domain.BgSizeContain, pool: pool}}
	m := newTestModel(e)

	m, _ = update(m, runeKey("/"))
	if m.State != StateSearching {
		t.Fatalf("State = %v, want searching", m.State)
	}
	for _, r := range "starry" {
		m, _ = update(m, runeKey(string(r)))
	}
	if len(m.Search.Results()) == 0 {
		t.Fatal("no search results for 'starry'")
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State != StateViewing {
		t.Fatalf("State = %v after enter, want viewing", m.State)
	}
	runCmd(t, m, cmd)
	if len(e.shown) != 1 || e.shown[0] != 1 {
		t.Fatalf("shown = %v, want [1]", e.shown)
	}
}

func TestModel_ErrorStatus(t *testing.T) {
	m := newTestModel(&fakeEngine{mode: domain.BgSizeContain})

	m, _ = update(m, ErrMsg{Err: domain.ErrNoArtwork, Context: "shuffling"})
	if !m.StatusIsErr || !strings.Contains(m.StatusMsg, "shuffling") {
		t.Fatalf("status = %q (err=%v)", m.StatusMsg, m.StatusIsErr)
	}

	m, _ = update(m, ErrMsg{Err: context.Canceled})
	if !strings.Contains(m.StatusMsg, "shuffling") {
		t.Fatal("cancellation replaced the status message")
	}

	m, _ = update(m, ClearStatusMsg{})
	if m.StatusMsg != "" {
		t.Fatal("ClearStatusMsg left a status message")
	}
}

func TestProgramRenderer_SendsMessages(t *testing.T) {
	var got []tea.Msg
	r := NewProgramRenderer()
	r.ShowLoading() // dropped before attach

	r.AttachFunc(func(msg tea.Msg) { got = append(got, msg) })
	r.ApplyArtwork(domain.Artwork{URL: "u"})
	r.SetPinned(true)
	r.ApplyBackgroundSize(domain.BgSizeCover)
	r.ShowUnavailable()

	if len(got) != 4 {
		t.Fatalf("sent %d messages, want 4", len(got))
	}
	if _, ok := got[0].(ArtworkMsg); !ok {
		t.Fatalf("first message = %T, want ArtworkMsg", got[0])
	}
	if msg, ok := got[2].(BgSizeMsg); !ok || msg.Mode != domain.BgSizeCover {
		t.Fatalf("third message = %#v, want cover BgSizeMsg", got[2])
	}
}

func TestFormatTimeSpent(t *testing.T) {
	tests := map[int64]string{
		0:    "0s",
		42:   "42s",
		185:  "3m 05s",
		3720: "1h 02m",
	}
	for in, want := range tests {
		if got := FormatTimeSpent(in); got != want {
			t.Fatalf("FormatTimeSpent(%d) = %q, want %q", in, got, want)
		}
	}
}
