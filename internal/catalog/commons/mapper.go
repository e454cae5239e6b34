package commons

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/mmcdole/parallax/internal/domain"
)

// Fallback metadata when the file page has none
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// usablePages returns pages that expose a thumbnail URL
func usablePages(pages map[string]Page) []Page {
	usable := make([]Page, 0, len(pages))
	for _, p := range pages {
		if len(p.ImageInfo) == 0 || p.ImageInfo[0].ThumbURL == "" {
			continue
		}
		usable = append(usable, p)
	}
	return usable
}

// MapArtwork converts a file page into an Artwork.
// Title falls back to the cleaned file name, then UnknownTitle.
func MapArtwork(p Page) domain.Artwork {
	info := ImageInfo{}
	if len(p.ImageInfo) > 0 {
		info = p.ImageInfo[0]
	}

	title := metadataText(info.ExtMetadata, "ObjectName")
	if title == "" {
		title = titleFromFileName(p.Title)
	}
	if title == "" {
		title = UnknownTitle
	}

	artist := metadataText(info.ExtMetadata, "Artist")
	if artist == "" {
		artist = UnknownArtist
	}

	return domain.Artwork{
		URL:    info.ThumbURL,
		Title:  title,
		Artist: artist,
	}
}

// metadataText returns the plain-text value of an extmetadata field
func metadataText(meta map[string]MetadataField, key string) string {
	field, ok := meta[key]
	if !ok || field.Value == nil {
		return ""
	}
	var raw string
	switch v := field.Value.(type) {
	case string:
		raw = v
	default:
		raw = fmt.Sprint(v)
	}
	return StripMarkup(raw)
}

// StripMarkup removes HTML tags and collapses whitespace. Entities are decoded.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was read
			return collapseSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Block-level breaks separate words
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "div", "li", "td":
				b.WriteByte(' ')
			}
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleFromFileName derives a title from "File:Some_name_(1889).jpg"
func titleFromFileName(pageTitle string) string {
	name := pageTitle
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	return collapseSpace(name)
}
