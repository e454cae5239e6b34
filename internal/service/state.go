package service

import (
	"log/slog"
	"slices"

	"github.com/mmcdole/parallax/internal/domain"
)

// stateRepo gives typed access to persisted keys. Callers hold the engine
// lock around read-modify-write sequences.
type stateRepo struct {
	store  domain.Store
	logger *slog.Logger
}

func (r stateRepo) save(key string, value any) {
	if err := r.store.Set(key, value); err != nil {
		r.logger.Error("failed to persist state", "key", key, "error", err)
	}
}

func (r stateRepo) remove(key string) {
	if err := r.store.Remove(key); err != nil {
		r.logger.Error("failed to remove state", "key", key, "error", err)
	}
}

func (r stateRepo) dailySelection() (*domain.DailySelection, bool) {
	var sel domain.DailySelection
	if !r.store.Get(domain.KeyTodayArt, &sel) {
		return nil, false
	}
	return &sel, true
}

func (r stateRepo) pinned() (*domain.PinnedArt, bool) {
	var pin domain.PinnedArt
	if !r.store.Get(domain.KeyPinnedArt, &pin) {
		return nil, false
	}
	if pin.ArtIndex == nil && pin.Artwork == nil {
		return nil, false
	}
	return &pin, true
}

func (r stateRepo) shuffleState() (*domain.ShuffleState, bool) {
	var state domain.ShuffleState
	if !r.store.Get(domain.KeyShuffleList, &state) {
		return nil, false
	}
	return &state, true
}

// imageCache reads the look-ahead cache, dropping empty entries and repeated
// URLs and keeping at most limit entries. changed reports whether the stored
// value needs rewriting.
func (r stateRepo) imageCache(limit int) (cache []domain.Artwork, changed bool) {
	var stored []domain.Artwork
	if !r.store.Get(domain.KeyImageCache, &stored) {
		return nil, false
	}
	cache = make([]domain.Artwork, 0, min(len(stored), limit))
	for _, a := range stored {
		if a.IsZero() || slices.ContainsFunc(cache, a.Equal) {
			continue
		}
		if len(cache) == limit {
			break
		}
		cache = append(cache, a)
	}
	return cache, len(cache) != len(stored)
}

func (r stateRepo) currentArtwork() (domain.Artwork, bool) {
	var art domain.Artwork
	if !r.store.Get(domain.KeyCurrentArtwork, &art) || art.IsZero() {
		return domain.Artwork{}, false
	}
	return art, true
}

func (r stateRepo) bgSizeMode() domain.BgSizeMode {
	var mode domain.BgSizeMode
	if !r.store.Get(domain.KeyBgSizeMode, &mode) || !mode.Valid() {
		return domain.BgSizeContain
	}
	return mode
}

func (r stateRepo) timeTracking() (*domain.TimeTracking, bool) {
	var tt domain.TimeTracking
	if !r.store.Get(domain.KeyTimeTracking, &tt) {
		return nil, false
	}
	return &tt, true
}
