// Package gallery holds the built-in fixed pool of artworks.
package gallery

import "github.com/mmcdole/parallax/internal/domain"

const commons = "https://upload.wikimedia.org/wikipedia/commons/thumb/"

// builtin is the fixed pool in display order
var builtin = []domain.Artwork{
	{
		URL:    commons + "e/ec/Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg/800px-Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg",
		Title:  "Mona Lisa",
		Artist: "Leonardo da Vinci",
	},
	{
		URL:    commons + "e/ea/Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg/1280px-Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg",
		Title:  "The Starry Night",
		Artist: "Vincent van Gogh",
	},
	{
		URL:    commons + "6/66/VanGogh-starry_night_ballance1.jpg/1280px-VanGogh-starry_night_ballance1.jpg",
		Title:  "Starry Night Over the Rhone",
		Artist: "Vincent van Gogh",
	},
	{
		URL:    commons + "0/0f/1665_Girl_with_a_Pearl_Earring.jpg/800px-1665_Girl_with_a_Pearl_Earring.jpg",
		Title:  "Girl with a Pearl Earring",
		Artist: "Johannes Vermeer",
	},
	{
		URL:    commons + "2/20/Johannes_Vermeer_-_Het_melkmeisje_-_Google_Art_Project.jpg/800px-Johannes_Vermeer_-_Het_melkmeisje_-_Google_Art_Project.jpg",
		Title:  "The Milkmaid",
		Artist: "Johannes Vermeer",
	},
	{
		URL:    commons + "9/94/Caravaggio_-_Medusa_-_Google_Art_Project.jpg/800px-Caravaggio_-_Medusa_-_Google_Art_Project.jpg",
		Title:  "Medusa",
		Artist: "Caravaggio",
	},
	{
		URL:    commons + "6/6a/Munch_Der_Schrei_Angst_1894.jpg/800px-Munch_Der_Schrei_Angst_1894.jpg",
		Title:  "The Scream",
		Artist: "Edvard Munch",
	},
	{
		URL:    commons + "5/5b/Michelangelo_-_Creation_of_Adam_%28cropped%29.jpg/1280px-Michelangelo_-_Creation_of_Adam_%28cropped%29.jpg",
		Title:  "The Creation of Adam",
		Artist: "Michelangelo",
	},
	{
		URL:    commons + "4/4a/Monet_-_Impression%2C_Sunrise.jpg/1280px-Monet_-_Impression%2C_Sunrise.jpg",
		Title:  "Impression, Sunrise",
		Artist: "Claude Monet",
	},
	{
		URL:    commons + "a/a5/Tsunami_by_hokusai_19th_century.jpg/1280px-Tsunami_by_hokusai_19th_century.jpg",
		Title:  "The Great Wave off Kanagawa",
		Artist: "Katsushika Hokusai",
	},
	{
		URL:    commons + "1/1e/Claude_Monet_-_Water_Lilies_-_1906%2C_Ryerson.jpg/1280px-Claude_Monet_-_Water_Lilies_-_1906%2C_Ryerson.jpg",
		Title:  "Water Lilies",
		Artist: "Claude Monet",
	},
	{
		URL:    commons + "f/f4/The_Persistence_of_Memory.jpg/1280px-The_Persistence_of_Memory.jpg",
		Title:  "The Persistence of Memory",
		Artist: "Salvador Dali",
	},
}

// Pool is an ordered, immutable list of artworks addressed by index
type Pool struct {
	items []domain.Artwork
}

// Default returns the built-in pool
func Default() *Pool {
	return NewPool(builtin)
}

// NewPool copies items into a new pool
func NewPool(items []domain.Artwork) *Pool {
	dup := make([]domain.Artwork, len(items))
	copy(dup, items)
	return &Pool{items: dup}
}

// Len returns the pool size
func (p *Pool) Len() int { return len(p.items) }

// At returns the artwork at index i. Out-of-range indices report false.
func (p *Pool) At(i int) (domain.Artwork, bool) {
	if i < 0 || i >= len(p.items) {
		return domain.Artwork{}, false
	}
	return p.items[i], true
}

// IndexOf returns the index of the artwork with url, or -1
func (p *Pool) IndexOf(url string) int {
	for i, a := range p.items {
		if a.URL == url {
			return i
		}
	}
	return -1
}
