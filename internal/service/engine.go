package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

// Engine is the wallpaper policy for one session. PoolEngine serves the fixed
// pool and CatalogEngine serves the remote catalog.
type Engine interface {
	// Resolve picks and renders the artwork for a fresh load
	Resolve(ctx context.Context) (domain.Artwork, error)
	// Shuffle advances to a different artwork and clears any pin
	Shuffle(ctx context.Context) (domain.Artwork, error)
	// TogglePin pins the current artwork or clears the pin; returns the new state
	TogglePin() (bool, error)
	IsPinned() bool
	ToggleBackgroundSize() domain.BgSizeMode
	BackgroundSize() domain.BgSizeMode
	// Session returns a copy of the in-memory session state
	Session() Session
}

// Session is the transient per-load state derived from the store
type Session struct {
	Current      domain.Artwork
	CurrentIndex int // fixed pool only; -1 when unset
	Pinned       bool
	BgSize       domain.BgSizeMode
	Loading      bool
	Unavailable  bool
}

// HasArtwork returns true when an artwork is on screen
func (s Session) HasArtwork() bool {
	return !s.Current.IsZero()
}

// base holds what both engines share
type base struct {
	mu        sync.Mutex // guards session and every store read-modify-write
	session   Session
	state     stateRepo
	validator domain.Validator
	renderer  domain.Renderer
	logger    *slog.Logger
	now       func() time.Time
}

func (b *base) init(store domain.Store, validator domain.Validator, renderer domain.Renderer, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = domain.NopRenderer{}
	}
	b.state = stateRepo{store: store, logger: logger}
	b.validator = validator
	b.renderer = renderer
	b.logger = logger
	b.now = time.Now
	b.session = Session{
		CurrentIndex: -1,
		BgSize:       b.state.bgSizeMode(),
	}
}

func (b *base) Session() Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// BackgroundSize returns the persisted fit mode, defaulting to contain
func (b *base) BackgroundSize() domain.BgSizeMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.bgSizeMode()
}

// ToggleBackgroundSize flips between cover and contain, persists and applies it
func (b *base) ToggleBackgroundSize() domain.BgSizeMode {
	b.mu.Lock()
	mode := b.state.bgSizeMode().Toggle()
	b.state.save(domain.KeyBgSizeMode, mode)
	b.session.BgSize = mode
	b.mu.Unlock()

	b.renderer.ApplyBackgroundSize(mode)
	return mode
}

// clearPinLocked removes any pin. Caller holds mu.
func (b *base) clearPinLocked() {
	if _, ok := b.state.pinned(); ok {
		b.state.remove(domain.KeyPinnedArt)
	}
	b.session.Pinned = false
}

func (b *base) today() string {
	return Today(b.now())
}

// validate wraps the validator and logs failures
func (b *base) validate(ctx context.Context, art domain.Artwork) error {
	if err := b.validator.Validate(ctx, art.URL); err != nil {
		if ctx.Err() == nil {
			b.logger.Warn("failed to load artwork", "title", art.Title, "url", art.URL, "error", err)
		}
		return err
	}
	return nil
}
