// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

// Volume is a catalog entry reduced to the fields the app shows.
type Volume struct {
	ID       string `json:"id"`        // Google Books volume ID
	Title    string `json:"title"`     // Volume title
	Author   string `json:"author"`    // First listed author
	CoverURL string `json:"cover_url"` // Thumbnail URL, placeholder when absent
}

// searchResponse is the raw volumes list response.
type searchResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

// volumeItem is a single volume as the API returns it.
type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title      string     `json:"title"`
	Authors    []string   `json:"authors"`
	ImageLinks imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}
