package store

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/mmcdole/parallax/internal/domain"
)

func TestStateStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "parallax.db")

	s, err := NewStateStore(path)
	if err != nil {
		t.Fatalf("NewStateStore returned error: %v", err)
	}
	sel := domain.DailySelection{Date: "2024-03-01", ArtIndex: 4}
	if err := s.Set(domain.KeyTodayArt, sel); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := NewStateStore(path)
	if err != nil {
		t.Fatalf("NewStateStore (reopen) returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	var got domain.DailySelection
	if !reopened.Get(domain.KeyTodayArt, &got) {
		t.Fatal("Get returned false after reopen, want true")
	}
	if got != sel {
		t.Fatalf("Get = %#v, want %#v", got, sel)
	}
}

func TestStateStore_MalformedValueIsAbsent(t *testing.T) {
	s := NewMemoryStore()
	if err := s.SetRaw(domain.KeyShuffleList, []byte("{not json")); err != nil {
		t.Fatalf("SetRaw returned error: %v", err)
	}

	var state domain.ShuffleState
	if s.Get(domain.KeyShuffleList, &state) {
		t.Fatal("Get returned true for malformed JSON, want false")
	}

	// Schema mismatch is treated the same way
	if err := s.SetRaw(domain.KeyImageCache, []byte(`{"url":"x"}`)); err != nil {
		t.Fatalf("SetRaw returned error: %v", err)
	}
	var cache []domain.Artwork
	if s.Get(domain.KeyImageCache, &cache) {
		t.Fatal("Get returned true for object stored where array expected, want false")
	}
}

func TestStateStore_RemoveAndKeys(t *testing.T) {
	s, err := NewStateStore(filepath.Join(t.TempDir(), "parallax.db"))
	if err != nil {
		t.Fatalf("NewStateStore returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	_ = s.Set(domain.KeyBgSizeMode, domain.BgSizeCover)
	_ = s.Set(domain.KeyPinnedArt, domain.PinnedArt{})

	keys := s.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != domain.KeyBgSizeMode || keys[1] != domain.KeyPinnedArt {
		t.Fatalf("Keys = %v, want [bgSizeMode pinnedArt]", keys)
	}

	if err := s.Remove(domain.KeyPinnedArt); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	var pin domain.PinnedArt
	if s.Get(domain.KeyPinnedArt, &pin) {
		t.Fatal("Get returned true after Remove, want false")
	}
	if err := s.Remove("missing"); err != nil {
		t.Fatalf("Remove(missing) returned error: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Fatalf("Keys after Reset = %v, want none", keys)
	}
}
