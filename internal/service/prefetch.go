package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

// PrefetchConfig bounds the look-ahead cache and its refill loop
type PrefetchConfig struct {
	Size            int           // maximum cached artworks
	MaxFillAttempts int           // failed rounds tolerated per fill
	BaseBackoff     time.Duration // delay after the first failed round, doubled each time
	MaxBackoff      time.Duration
}

// DefaultPrefetchConfig returns the standard cache settings
func DefaultPrefetchConfig() PrefetchConfig {
	return PrefetchConfig{
		Size:            10,
		MaxFillAttempts: 30,
		BaseBackoff:     250 * time.Millisecond,
		MaxBackoff:      8 * time.Second,
	}
}

// CatalogEngine runs the selection policy over a remote catalog with a
// look-ahead cache of validated candidates. The cache head is the artwork on
// screen; shuffling drops it and promotes the next entry.
type CatalogEngine struct {
	base
	catalog domain.Catalog
	cfg     PrefetchConfig

	fillMu sync.Mutex     // held for the duration of a fill
	fills  sync.WaitGroup // background fills in flight
	closed bool           // set by Shutdown under mu; no fills start afterwards
}

var _ Engine = (*CatalogEngine)(nil)

// NewCatalogEngine creates an engine backed by catalog
func NewCatalogEngine(
	catalog domain.Catalog,
	cfg PrefetchConfig,
	store domain.Store,
	validator domain.Validator,
	renderer domain.Renderer,
	logger *slog.Logger,
) *CatalogEngine {
	def := DefaultPrefetchConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.MaxFillAttempts <= 0 {
		cfg.MaxFillAttempts = def.MaxFillAttempts
	}
	if cfg.BaseBackoff < 0 {
		cfg.BaseBackoff = 0
	}
	if cfg.MaxBackoff < cfg.BaseBackoff {
		cfg.MaxBackoff = cfg.BaseBackoff
	}
	e := &CatalogEngine{catalog: catalog, cfg: cfg}
	e.init(store, validator, renderer, logger)
	_, e.session.Pinned = e.pinnedArtworkLocked()
	return e
}

// pinnedArtworkLocked returns the pinned artwork. An index-only pin does not
// count. Caller holds mu.
func (e *CatalogEngine) pinnedArtworkLocked() (domain.Artwork, bool) {
	pin, ok := e.state.pinned()
	if !ok || pin.Artwork == nil || pin.Artwork.IsZero() {
		return domain.Artwork{}, false
	}
	return *pin.Artwork, true
}

// IsPinned reports whether a pinned artwork overrides selection
func (e *CatalogEngine) IsPinned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pinnedArtworkLocked()
	return ok
}

// Cache returns a copy of the persisted look-ahead cache
func (e *CatalogEngine) Cache() []domain.Artwork {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cacheLocked()
}

// cacheLocked reads the cache and persists it again when stored state broke
// the size or uniqueness bound. Caller holds mu.
func (e *CatalogEngine) cacheLocked() []domain.Artwork {
	cache, changed := e.state.imageCache(e.cfg.Size)
	if changed {
		e.logger.Warn("normalized persisted image cache", "cached", len(cache))
		e.state.save(domain.KeyImageCache, cache)
	}
	return cache
}

// Wait blocks until background refills have finished
func (e *CatalogEngine) Wait() {
	e.fills.Wait()
}

// Shutdown stops new background refills from starting and waits for the
// running ones. The engine stays usable but no longer refills on its own.
func (e *CatalogEngine) Shutdown() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.fills.Wait()
}

// Resolve picks the artwork for a fresh load: pin, then the persisted current
// artwork, then the cache head. An empty cache is filled before returning.
func (e *CatalogEngine) Resolve(ctx context.Context) (domain.Artwork, error) {
	e.mu.Lock()
	art, pinned := e.pinnedArtworkLocked()
	current, hasCurrent := e.state.currentArtwork()
	e.session.Pinned = pinned
	e.mu.Unlock()

	e.renderer.SetPinned(pinned)

	if pinned {
		e.commit(art)
		e.logger.Info("resolved pinned artwork", "title", art.Title)
		e.triggerFill(ctx)
		return art, nil
	}

	if hasCurrent {
		if err := e.validate(ctx, current); err == nil {
			e.commit(current)
			e.logger.Info("resolved saved artwork", "title", current.Title)
			e.triggerFill(ctx)
			return current, nil
		} else if ctx.Err() != nil {
			return domain.Artwork{}, ctx.Err()
		}
		e.dropFromCache(current)
	}

	if err := e.InitCache(ctx); err != nil && ctx.Err() != nil {
		return domain.Artwork{}, ctx.Err()
	}

	art, err := e.promoteHead(ctx)
	if err != nil {
		return domain.Unavailable, err
	}
	e.triggerFill(ctx)
	return art, nil
}

// Shuffle clears any pin, drops the current artwork from the cache and shows
// the next cached entry. With an empty cache it shows the loading state and
// the background refill renders the first artwork it finds.
func (e *CatalogEngine) Shuffle(ctx context.Context) (domain.Artwork, error) {
	e.mu.Lock()
	e.clearPinLocked()
	current, _ := e.state.currentArtwork()
	if !e.session.Current.IsZero() {
		current = e.session.Current
	}
	cache := removeByURL(e.cacheLocked(), current.URL)
	e.state.save(domain.KeyImageCache, cache)

	var next domain.Artwork
	if len(cache) > 0 {
		next = cache[0]
		e.setCurrentLocked(next)
	} else {
		e.state.remove(domain.KeyCurrentArtwork)
		e.session.Current = domain.Artwork{}
		e.session.Loading = true
	}
	e.mu.Unlock()

	e.renderer.SetPinned(false)
	if next.IsZero() {
		e.logger.Info("cache empty on shuffle, waiting for refill")
		e.renderer.ShowLoading()
	} else {
		e.renderer.ApplyArtwork(next)
		e.logger.Info("shuffled artwork", "title", next.Title, "cached", len(cache))
	}

	e.triggerFill(ctx)
	return next, nil
}

// TogglePin pins the current artwork or clears an existing pin. An unusable
// stored pin is replaced.
func (e *CatalogEngine) TogglePin() (bool, error) {
	e.mu.Lock()
	if _, ok := e.pinnedArtworkLocked(); ok {
		e.clearPinLocked()
		e.mu.Unlock()
		e.renderer.SetPinned(false)
		e.logger.Info("unpinned artwork")
		return false, nil
	}

	current := e.session.Current
	if current.IsZero() {
		e.mu.Unlock()
		return false, fmt.Errorf("pin: %w", domain.ErrNoArtwork)
	}
	if err := e.state.store.Set(domain.KeyPinnedArt, domain.PinnedArt{Artwork: &current}); err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("pin: %w", err)
	}
	e.session.Pinned = true
	e.mu.Unlock()

	e.renderer.SetPinned(true)
	e.logger.Info("pinned artwork", "title", current.Title)
	return true, nil
}

// InitCache blocks on a full fill when the cache is empty. Otherwise it
// starts a background refill and returns immediately.
func (e *CatalogEngine) InitCache(ctx context.Context) error {
	if len(e.Cache()) == 0 {
		return e.FillCache(ctx)
	}
	e.triggerFill(ctx)
	return nil
}

// FillCache tops the cache up to its size with validated, de-duplicated
// candidates. Each one is persisted as soon as it is accepted. Failed rounds
// back off exponentially and the fill gives up after MaxFillAttempts of them.
// Concurrent callers wait for the running fill.
func (e *CatalogEngine) FillCache(ctx context.Context) error {
	e.fillMu.Lock()
	defer e.fillMu.Unlock()
	return e.fill(ctx)
}

// triggerFill starts a background fill unless one is already running or the
// engine has been shut down
func (e *CatalogEngine) triggerFill(ctx context.Context) {
	e.mu.Lock()
	if e.closed || ctx.Err() != nil {
		e.mu.Unlock()
		return
	}
	e.fills.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.fills.Done()
		if !e.fillMu.TryLock() {
			return
		}
		defer e.fillMu.Unlock()

		if err := e.fill(ctx); err != nil && ctx.Err() == nil {
			e.logger.Warn("background refill stopped", "error", err)
		}
	}()
}

func (e *CatalogEngine) fill(ctx context.Context) error {
	failures := 0
	backoff := e.cfg.BaseBackoff

	fail := func(reason string, err error) error {
		failures++
		e.logger.Debug("prefetch round failed", "reason", reason, "error", err, "failures", failures)
		if failures >= e.cfg.MaxFillAttempts {
			return fmt.Errorf("fill cache after %d failures: %w", failures, domain.ErrFillExhausted)
		}
		if backoff <= 0 {
			return nil
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
		if backoff > e.cfg.MaxBackoff {
			backoff = e.cfg.MaxBackoff
		}
		return nil
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(e.Cache()) >= e.cfg.Size {
			return nil
		}

		candidate, err := e.catalog.FetchCandidate(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if ferr := fail("fetch", err); ferr != nil {
				return ferr
			}
			continue
		}

		if e.isKnown(candidate) {
			if ferr := fail("duplicate", nil); ferr != nil {
				return ferr
			}
			continue
		}

		if err := e.validate(ctx, candidate); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if ferr := fail("validation", err); ferr != nil {
				return ferr
			}
			continue
		}

		e.appendCandidate(candidate)
		backoff = e.cfg.BaseBackoff
	}
}

// isKnown reports whether art is cached or on screen
func (e *CatalogEngine) isKnown(art domain.Artwork) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if art.URL == e.session.Current.URL {
		return true
	}
	return indexByURL(e.cacheLocked(), art.URL) >= 0
}

// appendCandidate persists art at the tail of the cache. When a shuffle left
// the screen in the loading state, the new head is shown right away.
func (e *CatalogEngine) appendCandidate(art domain.Artwork) {
	e.mu.Lock()
	cache := e.cacheLocked()
	if len(cache) >= e.cfg.Size || indexByURL(cache, art.URL) >= 0 {
		e.mu.Unlock()
		return
	}
	cache = append(cache, art)
	e.state.save(domain.KeyImageCache, cache)

	show := e.session.Loading
	if show {
		e.setCurrentLocked(cache[0])
	}
	head := cache[0]
	size := len(cache)
	e.mu.Unlock()

	e.logger.Debug("prefetched artwork", "title", art.Title, "cached", size)
	if show {
		e.renderer.ApplyArtwork(head)
	}
}

// promoteHead shows the first cached artwork that still validates
func (e *CatalogEngine) promoteHead(ctx context.Context) (domain.Artwork, error) {
	for _, art := range e.Cache() {
		if err := e.validate(ctx, art); err != nil {
			if ctx.Err() != nil {
				return domain.Artwork{}, ctx.Err()
			}
			e.dropFromCache(art)
			continue
		}
		e.commit(art)
		e.logger.Info("resolved cached artwork", "title", art.Title)
		return art, nil
	}

	e.mu.Lock()
	e.session.Current = domain.Artwork{}
	e.session.Loading = false
	e.session.Unavailable = true
	e.mu.Unlock()

	e.renderer.ShowUnavailable()
	e.logger.Error("no cached artwork available")
	return domain.Artwork{}, fmt.Errorf("resolve: %w", domain.ErrNoArtwork)
}

// commit persists art as current and renders it
func (e *CatalogEngine) commit(art domain.Artwork) {
	e.mu.Lock()
	e.setCurrentLocked(art)
	e.mu.Unlock()
	e.renderer.ApplyArtwork(art)
}

// setCurrentLocked records art as current. Caller holds mu.
func (e *CatalogEngine) setCurrentLocked(art domain.Artwork) {
	e.session.Current = art
	e.session.Loading = false
	e.session.Unavailable = false
	e.state.save(domain.KeyCurrentArtwork, art)
}

func (e *CatalogEngine) dropFromCache(art domain.Artwork) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cache := e.cacheLocked()
	if indexByURL(cache, art.URL) < 0 {
		return
	}
	e.state.save(domain.KeyImageCache, removeByURL(cache, art.URL))
}

func indexByURL(cache []domain.Artwork, url string) int {
	for i, a := range cache {
		if a.URL == url {
			return i
		}
	}
	return -1
}

func removeByURL(cache []domain.Artwork, url string) []domain.Artwork {
	out := make([]domain.Artwork, 0, len(cache))
	for _, a := range cache {
		if a.URL != url {
			out = append(out, a)
		}
	}
	return out
}
