package core

import "time"

// Track represents a playable audio track.
type Track struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	Album      string        `json:"album"`
	Duration   time.Duration `json:"duration"`
	Index      int           `json:"index"`
	Remote     bool          `json:"remote"`
	URL        string        `json:"url,omitempty"`
	ArtworkURL string        `json:"artwork_url,omitempty"`
}

// Key returns an identity for change detection. Local library tracks
// have a database ID; remote streams often only have a URL or a title.
func (t *Track) Key() string {
	if t == nil {
		return ""
	}
	if t.ID != "" && t.ID != "0" {
		return t.ID
	}
	if t.URL != "" {
		return t.URL
	}
	return t.Title
}
