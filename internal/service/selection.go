package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/gallery"
)

// PoolEngine runs the selection and rotation policy over a fixed pool
type PoolEngine struct {
	base
	pool *gallery.Pool
	intN func(n int) int
}

var _ Engine = (*PoolEngine)(nil)

// NewPoolEngine creates an engine for a fixed pool
func NewPoolEngine(
	pool *gallery.Pool,
	store domain.Store,
	validator domain.Validator,
	renderer domain.Renderer,
	logger *slog.Logger,
) *PoolEngine {
	e := &PoolEngine{pool: pool, intN: rand.IntN}
	e.init(store, validator, renderer, logger)
	_, e.session.Pinned = e.pinnedIndexLocked()
	return e
}

// pinnedIndexLocked returns the pinned pool index. A pin without an index or
// outside the pool does not count. Caller holds mu.
func (e *PoolEngine) pinnedIndexLocked() (int, bool) {
	pin, ok := e.state.pinned()
	if !ok || pin.ArtIndex == nil || !inRange(*pin.ArtIndex, e.pool.Len()) {
		return -1, false
	}
	return *pin.ArtIndex, true
}

// IsPinned reports whether a usable pin overrides selection
func (e *PoolEngine) IsPinned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pinnedIndexLocked()
	return ok
}

// Pool returns the engine's artwork pool
func (e *PoolEngine) Pool() *gallery.Pool {
	return e.pool
}

// Resolve chooses the artwork for a fresh load: pin, then today's saved
// selection, then the day-of-year index. Candidates that fail validation are
// skipped in pool order, at most Len attempts in total.
func (e *PoolEngine) Resolve(ctx context.Context) (domain.Artwork, error) {
	n := e.pool.Len()

	e.mu.Lock()
	pin, _ := e.state.pinned()
	daily, _ := e.state.dailySelection()
	start := InitialIndex(pin, daily, e.now(), n)
	_, pinned := e.pinnedIndexLocked()
	e.session.Pinned = pinned
	e.mu.Unlock()

	e.renderer.SetPinned(pinned)

	for attempt := 0; attempt < n; attempt++ {
		idx := (start + attempt) % n
		art, _ := e.pool.At(idx)

		if err := e.validate(ctx, art); err != nil {
			if ctx.Err() != nil {
				return domain.Artwork{}, ctx.Err()
			}
			continue
		}

		e.commit(idx, art)
		e.logger.Info("resolved artwork", "index", idx, "title", art.Title, "attempts", attempt+1)
		return art, nil
	}

	e.markUnavailable()
	e.logger.Error("all artwork failed to load", "poolSize", n)
	return domain.Unavailable, fmt.Errorf("resolve: %w", domain.ErrNoArtwork)
}

// Show validates and displays the artwork at index, clearing any pin
func (e *PoolEngine) Show(ctx context.Context, index int) (domain.Artwork, error) {
	art, ok := e.pool.At(index)
	if !ok {
		return domain.Artwork{}, fmt.Errorf("artwork index %d out of range", index)
	}
	if err := e.validate(ctx, art); err != nil {
		return domain.Artwork{}, err
	}

	e.mu.Lock()
	e.clearPinLocked()
	e.mu.Unlock()
	e.renderer.SetPinned(false)

	e.commit(index, art)
	return art, nil
}

// TogglePin pins the current index or clears an existing pin. An unusable
// stored pin is replaced.
func (e *PoolEngine) TogglePin() (bool, error) {
	e.mu.Lock()
	if _, ok := e.pinnedIndexLocked(); ok {
		e.clearPinLocked()
		e.mu.Unlock()
		e.renderer.SetPinned(false)
		e.logger.Info("unpinned artwork")
		return false, nil
	}

	idx := e.session.CurrentIndex
	if !inRange(idx, e.pool.Len()) {
		e.mu.Unlock()
		return false, fmt.Errorf("pin: %w", domain.ErrNoArtwork)
	}
	pinned := idx
	if err := e.state.store.Set(domain.KeyPinnedArt, domain.PinnedArt{ArtIndex: &pinned}); err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("pin: %w", err)
	}
	e.session.Pinned = true
	e.mu.Unlock()

	e.renderer.SetPinned(true)
	e.logger.Info("pinned artwork", "index", idx)
	return true, nil
}

// commit makes idx current, saves it as today's selection and renders it
func (e *PoolEngine) commit(idx int, art domain.Artwork) {
	e.mu.Lock()
	e.session.CurrentIndex = idx
	e.session.Current = art
	e.session.Unavailable = false
	e.state.save(domain.KeyTodayArt, domain.DailySelection{Date: e.today(), ArtIndex: idx})
	e.mu.Unlock()

	e.renderer.ApplyArtwork(art)
}

func (e *PoolEngine) markUnavailable() {
	e.mu.Lock()
	e.session.CurrentIndex = -1
	e.session.Current = domain.Artwork{}
	e.session.Unavailable = true
	e.mu.Unlock()

	e.renderer.ShowUnavailable()
}
