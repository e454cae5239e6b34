package domain

// Persisted state keys
const (
	KeyTodayArt       = "todayArt"
	KeyPinnedArt      = "pinnedArt"
	KeyShuffleList    = "shuffleList"
	KeyBgSizeMode     = "bgSizeMode"
	KeyImageCache     = "imageCache"
	KeyCurrentArtwork = "currentArtwork"
	KeyTimeTracking   = "timeTracking"
)

// Store is a string-keyed store of JSON-serializable values.
// Get returns false when the key is absent or its value cannot be decoded into dest.
type Store interface {
	Get(key string, dest any) bool
	Set(key string, value any) error
	Remove(key string) error
	Close() error
}
