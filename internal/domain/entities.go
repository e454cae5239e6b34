package domain

import "strings"

// Artwork is a single displayable piece. Identity is the URL.
type Artwork struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Equal reports whether two artworks refer to the same image
func (a Artwork) Equal(other Artwork) bool {
	return a.URL == other.URL
}

// IsZero returns true for the empty artwork
func (a Artwork) IsZero() bool {
	return a.URL == ""
}

// DownloadName returns the file name offered when saving the artwork
func (a Artwork) DownloadName() string {
	name := a.Title + " - " + a.Artist + ".jpg"
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

// Unavailable is the placeholder shown when nothing could be validated
var Unavailable = Artwork{Title: "No artwork available", Artist: ""}

// DailySelection records which pool index was shown on a calendar day
type DailySelection struct {
	Date     string `json:"date"`
	ArtIndex int    `json:"artIndex"`
}

// IsValidFor implements Dated
func (d DailySelection) IsValidFor(today string) bool {
	return d.Date == today
}

// PinnedArt overrides selection until cleared.
// The fixed pool stores an index; the remote catalog stores the artwork itself.
type PinnedArt struct {
	ArtIndex *int     `json:"artIndex,omitempty"`
	Artwork  *Artwork `json:"artwork,omitempty"`
}

// ShuffleState holds the not-yet-shown pool indices for a day
type ShuffleState struct {
	Date      string `json:"date"`
	Remaining []int  `json:"remaining"`
}

// IsValidFor implements Dated
func (s ShuffleState) IsValidFor(today string) bool {
	return s.Date == today
}

// TimeTracking accumulates active seconds per calendar day
type TimeTracking struct {
	Date       string `json:"date"`
	TimeSpent  int64  `json:"timeSpent"`  // seconds
	LastActive int64  `json:"lastActive"` // unix milliseconds
}

// IsValidFor implements Dated
func (t TimeTracking) IsValidFor(today string) bool {
	return t.Date == today
}

// BgSizeMode controls how the wallpaper is fit to the screen
type BgSizeMode string

const (
	BgSizeCover   BgSizeMode = "cover"
	BgSizeContain BgSizeMode = "contain"
)

// Toggle returns the other mode
func (m BgSizeMode) Toggle() BgSizeMode {
	if m == BgSizeCover {
		return BgSizeContain
	}
	return BgSizeCover
}

// Valid returns true for known modes
func (m BgSizeMode) Valid() bool {
	return m == BgSizeCover || m == BgSizeContain
}
