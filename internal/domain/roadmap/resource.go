package roadmap

// Resource is a single learning link. Values are never mutated after creation.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Key is the identity used for de-duplication: the URL when present,
// otherwise the title.
func (r Resource) Key() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Title
}
