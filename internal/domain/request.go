package domain

// Language tags a listing's working language as guessed by the
// classifier.
type Language string

const (
	French  Language = "fr"
	Dutch   Language = "nl"
	English Language = "en"
)

// SearchRequest is the caller-supplied input for one search run.
// Keywords empty means "derive search terms from the profile".
type SearchRequest struct {
	Keywords   string   `json:"keywords"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"maxResults"`
	Sources    []string `json:"sources,omitempty"`   // empty = all enabled
	Languages  []string `json:"languages,omitempty"` // accepted language tags, empty = all
	Profile    *Profile `json:"profile,omitempty"`
}

// WantsSource reports whether the request's source filter admits the
// named adapter. An empty filter admits everything.
func (r SearchRequest) WantsSource(name string) bool {
	if len(r.Sources) == 0 {
		return true
	}
	for _, s := range r.Sources {
		if s == name {
			return true
		}
	}
	return false
}

// AcceptsLanguage reports whether the request admits listings in the
// given language. An empty filter admits everything.
func (r SearchRequest) AcceptsLanguage(l Language) bool {
	if len(r.Languages) == 0 {
		return true
	}
	for _, s := range r.Languages {
		if Language(s) == l {
			return true
		}
	}
	return false
}
