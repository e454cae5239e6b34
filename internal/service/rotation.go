package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmcdole/parallax/internal/domain"
)

// InitShuffleList returns today's remaining indices, regenerating and
// persisting the list when it is missing, empty or from another day.
func (e *PoolEngine) InitShuffleList() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, _ := e.state.shuffleState()
	state := InitShuffleList(stored, e.today(), e.session.CurrentIndex, e.pool.Len())
	if stored == nil || !slices.Equal(stored.Remaining, state.Remaining) || stored.Date != state.Date {
		e.state.save(domain.KeyShuffleList, state)
	}
	return append([]int(nil), state.Remaining...)
}

// Shuffle advances to a random index not yet shown today. Each pick is
// removed from the persisted list before validation, so a broken image is not
// retried until the list regenerates. At most Len candidates are tried.
func (e *PoolEngine) Shuffle(ctx context.Context) (domain.Artwork, error) {
	n := e.pool.Len()

	e.mu.Lock()
	e.clearPinLocked()
	e.mu.Unlock()
	e.renderer.SetPinned(false)

	for attempt := 0; attempt < n; attempt++ {
		idx := e.nextShuffleIndex()
		art, _ := e.pool.At(idx)

		if err := e.validate(ctx, art); err != nil {
			if ctx.Err() != nil {
				return domain.Artwork{}, ctx.Err()
			}
			continue
		}

		e.commit(idx, art)
		e.logger.Info("shuffled artwork", "index", idx, "title", art.Title, "attempts", attempt+1)
		return art, nil
	}

	e.logger.Error("shuffle found no loadable artwork", "poolSize", n)
	if !e.Session().HasArtwork() {
		e.markUnavailable()
	}
	return domain.Artwork{}, fmt.Errorf("shuffle: %w", domain.ErrNoArtwork)
}

// nextShuffleIndex pops one random index from today's list under the lock
func (e *PoolEngine) nextShuffleIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, _ := e.state.shuffleState()
	state := InitShuffleList(stored, e.today(), e.session.CurrentIndex, e.pool.Len())

	pick, next, ok := NextShuffle(state, e.intN)
	if !ok {
		// A single-artwork pool has nothing else to offer
		pick = 0
		next = state
	}
	e.state.save(domain.KeyShuffleList, next)
	return pick
}
