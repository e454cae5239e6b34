package commons

import "testing"

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain  text\n", "Plain text"},
		{`<a href="//commons.wikimedia.org/wiki/Creator:Claude_Monet">Claude Monet</a>`, "Claude Monet"},
		{`<div class="fn">Vincent<br>van Gogh</div>`, "Vincent van Gogh"},
		{"Caf&eacute; Terrace &amp; Night", "Café Terrace & Night"},
		{"<span>unclosed", "unclosed"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleFromFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"File:Claude_Monet_-_Water_Lilies_-_1906.jpg", "Claude Monet - Water Lilies - 1906"},
		{"File:The Scream.png", "The Scream"},
		{"NoPrefix_name.tif", "NoPrefix name"},
		{"File:.jpg", ""},
	}
	for _, tt := range tests {
		if got := titleFromFileName(tt.in); got != tt.want {
			t.Errorf("titleFromFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapArtwork_Fallbacks(t *testing.T) {
	full := Page{
		Title: "File:Hokusai_wave.jpg",
		ImageInfo: []ImageInfo{{
			ThumbURL: "https://img/wave.jpg",
			ExtMetadata: map[string]MetadataField{
				"ObjectName": {Value: "<i>The Great Wave</i>"},
				"Artist":     {Value: `<a href="x">Hokusai</a>`},
			},
		}},
	}
	got := MapArtwork(full)
	if got.URL != "https://img/wave.jpg" || got.Title != "The Great Wave" || got.Artist != "Hokusai" {
		t.Fatalf("MapArtwork(full) = %#v", got)
	}

	noMeta := Page{
		Title:     "File:Some_Old_Painting.jpg",
		ImageInfo: []ImageInfo{{ThumbURL: "https://img/old.jpg"}},
	}
	got = MapArtwork(noMeta)
	if got.Title != "Some Old Painting" {
		t.Fatalf("Title = %q, want filename-derived title", got.Title)
	}
	if got.Artist != UnknownArtist {
		t.Fatalf("Artist = %q, want %q", got.Artist, UnknownArtist)
	}

	nothing := Page{Title: "File:.jpg", ImageInfo: []ImageInfo{{ThumbURL: "https://img/x.jpg"}}}
	if got := MapArtwork(nothing); got.Title != UnknownTitle {
		t.Fatalf("Title = %q, want %q", got.Title, UnknownTitle)
	}
}

func TestUsablePages(t *testing.T) {
	pages := map[string]Page{
		"1": {PageID: 1, ImageInfo: []ImageInfo{{ThumbURL: "https://img/1.jpg"}}},
		"2": {PageID: 2, ImageInfo: []ImageInfo{{URL: "https://img/2.tif"}}},
		"3": {PageID: 3},
	}
	got := usablePages(pages)
	if len(got) != 1 || got[0].PageID != 1 {
		t.Fatalf("usablePages = %#v, want only page 1", got)
	}
}
