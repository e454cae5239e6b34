package domain

import "context"

// Validator confirms an image URL is loadable before it is shown
type Validator interface {
	Validate(ctx context.Context, url string) error
}

// Catalog samples one candidate artwork from a remote population
type Catalog interface {
	FetchCandidate(ctx context.Context) (Artwork, error)
}

// Renderer paints artwork and chrome. Implementations must be safe to call
// from background goroutines.
type Renderer interface {
	ApplyArtwork(art Artwork)
	ShowLoading()
	ShowUnavailable()
	ApplyBackgroundSize(mode BgSizeMode)
	SetPinned(pinned bool)
}

// NopRenderer discards all render calls (for testing/batch operations).
type NopRenderer struct{}

func (NopRenderer) ApplyArtwork(Artwork)           {}
func (NopRenderer) ShowLoading()                   {}
func (NopRenderer) ShowUnavailable()               {}
func (NopRenderer) ApplyBackgroundSize(BgSizeMode) {}
func (NopRenderer) SetPinned(bool)                 {}
