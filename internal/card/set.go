package card

// SetInfo describes a card set release
type SetInfo struct {
	Code        string `json:"code"`                  // e.g. TATA-001
	Name        string `json:"name"`                  // e.g. Tainted Tails
	ReleaseDate string `json:"releaseDate,omitempty"` // YYYY-MM-DD
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
}

// NewsItem is an entry of the home page news feed
type NewsItem struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Link  string `json:"link"`
}
