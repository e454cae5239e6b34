package commons

// QueryResponse is the action=query envelope returned by the MediaWiki API
type QueryResponse struct {
	Query *Query    `json:"query,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// Query holds generator results keyed by page ID
type Query struct {
	Pages map[string]Page `json:"pages"`
}

// APIError is returned in place of results for rejected requests
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Page represents a File: page from the search generator
type Page struct {
	PageID    int         `json:"pageid"`
	NS        int         `json:"ns"`
	Title     string      `json:"title"` // "File:Some_name.jpg"
	Index     int         `json:"index,omitempty"`
	ImageInfo []ImageInfo `json:"imageinfo,omitempty"`
}

// ImageInfo carries the URLs and structured metadata for a file revision
type ImageInfo struct {
	URL            string                   `json:"url"`
	ThumbURL       string                   `json:"thumburl,omitempty"` // Only present when iiurlwidth is set
	ThumbWidth     int                      `json:"thumbwidth,omitempty"`
	ThumbHeight    int                      `json:"thumbheight,omitempty"`
	DescriptionURL string                   `json:"descriptionurl,omitempty"`
	ExtMetadata    map[string]MetadataField `json:"extmetadata,omitempty"`
}

// MetadataField is one extmetadata entry. Values are usually HTML strings
// but some fields are numbers.
type MetadataField struct {
	Value  any    `json:"value"`
	Source string `json:"source,omitempty"`
}
