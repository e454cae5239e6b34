package gallery

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// SearchResult is a pool entry matched by a query
type SearchResult struct {
	Index          int
	MatchedIndexes []int // positions in Label that matched, for highlighting
	Label          string
	score          int
	distance       int
}

// searchIndex implements sahilm/fuzzy.Source over "title - artist" labels
type searchIndex struct {
	labels []string
	lower  []string
}

func (idx *searchIndex) String(i int) string { return idx.lower[i] }

func (idx *searchIndex) Len() int { return len(idx.lower) }

func (p *Pool) index() *searchIndex {
	idx := &searchIndex{
		labels: make([]string, len(p.items)),
		lower:  make([]string, len(p.items)),
	}
	for i, a := range p.items {
		idx.labels[i] = a.Title + " - " + a.Artist
		idx.lower[i] = strings.ToLower(idx.labels[i])
	}
	return idx
}

// Search ranks pool entries whose title or artist fuzzily match query.
// Best matches come first; ties go to the title closest in edit distance.
func (p *Pool) Search(query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx := p.index()
	matches := fuzzy.FindFrom(query, idx)

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		title := strings.ToLower(p.items[m.Index].Title)
		results = append(results, SearchResult{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Label:          idx.labels[m.Index],
			score:          m.Score,
			distance:       lfuzzy.LevenshteinDistance(query, title),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].distance < results[j].distance
	})
	return results
}
