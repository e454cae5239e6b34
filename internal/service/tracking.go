package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

// activeGap is the longest pause between updates still counted as active time
const activeGap = 5 * time.Second

// TimeTracker accumulates seconds of active use per calendar day
type TimeTracker struct {
	mu     sync.Mutex
	state  stateRepo
	logger *slog.Logger
	now    func() time.Time
}

// NewTimeTracker creates a tracker persisting to store
func NewTimeTracker(store domain.Store, logger *slog.Logger) *TimeTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimeTracker{
		state:  stateRepo{store: store, logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

// Init loads today's record, starting a fresh one on a new day
func (t *TimeTracker) Init() domain.TimeTracking {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initLocked(t.now())
}

func (t *TimeTracker) initLocked(now time.Time) domain.TimeTracking {
	today := Today(now)
	data, _ := t.state.timeTracking()
	if !isCurrent(data, today) {
		data = &domain.TimeTracking{
			Date:       today,
			TimeSpent:  0,
			LastActive: now.UnixMilli(),
		}
	}
	t.state.save(domain.KeyTimeTracking, data)
	return *data
}

// Update adds the whole seconds since the last update when the gap is short
// enough to count as continuous use. A day change resets the total first.
func (t *TimeTracker) Update() domain.TimeTracking {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	data, _ := t.state.timeTracking()
	if !isCurrent(data, Today(now)) {
		fresh := t.initLocked(now)
		data = &fresh
	}

	elapsed := (now.UnixMilli() - data.LastActive) / 1000
	if elapsed >= 0 && elapsed < int64(activeGap/time.Second) {
		data.TimeSpent += elapsed
	}
	data.LastActive = now.UnixMilli()

	t.state.save(domain.KeyTimeTracking, data)
	return *data
}
