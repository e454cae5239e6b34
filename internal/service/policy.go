package service

import (
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

// DailyIndex derives the deterministic pool index for the day containing now
func DailyIndex(now time.Time, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	return DayOfYear(now) % poolSize
}

// InitialIndex picks the starting pool index: pin, then today's selection,
// then the daily index. Out-of-range persisted indices are ignored.
func InitialIndex(pin *domain.PinnedArt, daily *domain.DailySelection, now time.Time, poolSize int) int {
	if pin != nil && pin.ArtIndex != nil && inRange(*pin.ArtIndex, poolSize) {
		return *pin.ArtIndex
	}
	if isCurrent(daily, Today(now)) && inRange(daily.ArtIndex, poolSize) {
		return daily.ArtIndex
	}
	return DailyIndex(now, poolSize)
}

// InitShuffleList returns today's remaining indices. A missing, stale or
// empty list is regenerated as every index except current. The result never
// contains current.
func InitShuffleList(state *domain.ShuffleState, today string, current, poolSize int) domain.ShuffleState {
	var remaining []int
	if isCurrent(state, today) {
		for _, i := range state.Remaining {
			if i != current && inRange(i, poolSize) {
				remaining = append(remaining, i)
			}
		}
	}
	if len(remaining) == 0 {
		remaining = allExcept(current, poolSize)
	}
	return domain.ShuffleState{Date: today, Remaining: remaining}
}

// NextShuffle picks one index uniformly from state.Remaining and returns the
// list without it. ok is false when nothing remains.
func NextShuffle(state domain.ShuffleState, intN func(int) int) (pick int, next domain.ShuffleState, ok bool) {
	if len(state.Remaining) == 0 {
		return 0, state, false
	}
	i := intN(len(state.Remaining))
	pick = state.Remaining[i]

	rest := make([]int, 0, len(state.Remaining)-1)
	rest = append(rest, state.Remaining[:i]...)
	rest = append(rest, state.Remaining[i+1:]...)
	return pick, domain.ShuffleState{Date: state.Date, Remaining: rest}, true
}

// isCurrent reports whether a persisted snapshot exists and belongs to today
func isCurrent[T domain.Dated](snapshot *T, today string) bool {
	return snapshot != nil && (*snapshot).IsValidFor(today)
}

func allExcept(current, poolSize int) []int {
	out := make([]int, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		if i != current {
			out = append(out, i)
		}
	}
	return out
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
