package models

// Channel represents a single stream entry parsed from an M3U playlist.
type Channel struct {
	ID    string `json:"id"`
	TvgID string `json:"tvgId"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Group string `json:"group"`
	URL   string `json:"url"`
}
