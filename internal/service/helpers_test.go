package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/gallery"
	"github.com/mmcdole/parallax/internal/store"
)

// fakeValidator fails URLs listed in bad (or every URL when failAll is set)
type fakeValidator struct {
	mu      sync.Mutex
	bad     map[string]bool
	failAll bool
	calls   []string
}

func newFakeValidator(bad ...string) *fakeValidator {
	v := &fakeValidator{bad: make(map[string]bool)}
	for _, u := range bad {
		v.bad[u] = true
	}
	return v
}

func (v *fakeValidator) Validate(ctx context.Context, url string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, url)
	if v.failAll || v.bad[url] {
		return fmt.Errorf("%w: %s", domain.ErrValidationFailed, url)
	}
	return nil
}

func (v *fakeValidator) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.calls)
}

// fakeCatalog returns queued results in order, then ErrNoCandidate
type fakeCatalog struct {
	mu      sync.Mutex
	results []catalogResult
	calls   int
}

type catalogResult struct {
	art domain.Artwork
	err error
}

func (c *fakeCatalog) queue(arts ...domain.Artwork) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range arts {
		c.results = append(c.results, catalogResult{art: a})
	}
}

func (c *fakeCatalog) queueErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, catalogResult{err: err})
}

func (c *fakeCatalog) FetchCandidate(ctx context.Context) (domain.Artwork, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if len(c.results) == 0 {
		return domain.Artwork{}, domain.ErrNoCandidate
	}
	r := c.results[0]
	c.results = c.results[1:]
	return r.art, r.err
}

func (c *fakeCatalog) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recordingRenderer captures render calls
type recordingRenderer struct {
	mu      sync.Mutex
	applied []domain.Artwork
	loading int
	unavail int
	pinned  bool
	bgSize  domain.BgSizeMode
}

func (r *recordingRenderer) ApplyArtwork(art domain.Artwork) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, art)
}

func (r *recordingRenderer) ShowLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading++
}

func (r *recordingRenderer) ShowUnavailable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unavail++
}

func (r *recordingRenderer) ApplyBackgroundSize(mode domain.BgSizeMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bgSize = mode
}

func (r *recordingRenderer) SetPinned(pinned bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pinned = pinned
}

func (r *recordingRenderer) last() (domain.Artwork, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.applied) == 0 {
		return domain.Artwork{}, false
	}
	return r.applied[len(r.applied)-1], true
}

func art(name string) domain.Artwork {
	return domain.Artwork{URL: "https://img/" + name + ".jpg", Title: name, Artist: "Artist " + name}
}

func testPool(names ...string) *gallery.Pool {
	items := make([]domain.Artwork, len(names))
	for i, n := range names {
		items[i] = art(n)
	}
	return gallery.NewPool(items)
}

// fixedNow is 2024-03-01 12:00 local, day-of-year 61
func fixedNow() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)
}

func newTestPoolEngine(pool *gallery.Pool, v *fakeValidator) (*PoolEngine, *store.StateStore, *recordingRenderer) {
	st := store.NewMemoryStore()
	r := &recordingRenderer{}
	e := NewPoolEngine(pool, st, v, r, nil)
	e.now = fixedNow
	return e, st, r
}

func newTestCatalogEngine(cat *fakeCatalog, v *fakeValidator, size int) (*CatalogEngine, *store.StateStore, *recordingRenderer) {
	st := store.NewMemoryStore()
	r := &recordingRenderer{}
	e := NewCatalogEngine(cat, PrefetchConfig{Size: size, MaxFillAttempts: 20}, st, v, r, nil)
	e.now = fixedNow
	return e, st, r
}
