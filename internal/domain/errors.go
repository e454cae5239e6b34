package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrValidationFailed indicates an image URL could not be loaded or decoded
	ErrValidationFailed = errors.New("image failed to load")

	// ErrNoCandidate indicates the catalog returned no usable artwork
	ErrNoCandidate = errors.New("catalog returned no usable artwork")

	// ErrCatalogUnavailable indicates the remote catalog is unreachable
	ErrCatalogUnavailable = errors.New("artwork catalog is unreachable")

	// ErrNoArtwork indicates every candidate failed validation
	ErrNoArtwork = errors.New("no artwork available")

	// ErrFillExhausted indicates the prefetch cache gave up before filling
	ErrFillExhausted = errors.New("prefetch attempts exhausted")
)
