package models

// TopTracksResponse is the paging envelope returned by GET /me/top/tracks.
//
// Only Items is kept by callers; the rest describes paging that is never followed.
type TopTracksResponse struct {
	Items    []Track `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Href     string  `json:"href"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Track represents a Spotify track.
type Track struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Album       Album        `json:"album"`
	Artists     []Artist     `json:"artists"`
	DiscNumber  int          `json:"disc_number"`
	TrackNumber int          `json:"track_number"`
	DurationMS  int          `json:"duration_ms"`
	Explicit    bool         `json:"explicit"`
	Popularity  int          `json:"popularity"`
	PreviewURL  *string      `json:"preview_url"`
	ExternalIDs ExternalIDs  `json:"external_ids"`
	ExternalURL ExternalURLs `json:"external_urls"`
	Href        string       `json:"href"`
	Type        string       `json:"type"`
	URI         string       `json:"uri"`
}

// Album represents the album a track belongs to.
//
// Images are ordered widest first, as Spotify returns them.
type Album struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AlbumType   string       `json:"album_type"`
	Artists     []Artist     `json:"artists"`
	Images      []Image      `json:"images"`
	ReleaseDate string       `json:"release_date"`
	TotalTracks int          `json:"total_tracks"`
	ExternalURL ExternalURLs `json:"external_urls"`
	Href        string       `json:"href"`
	Type        string       `json:"type"`
	URI         string       `json:"uri"`
}

// Artist represents a simplified Spotify artist.
type Artist struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ExternalURL ExternalURLs `json:"external_urls"`
	Href        string       `json:"href"`
	Type        string       `json:"type"`
	URI         string       `json:"uri"`
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ExternalURLs holds known external links for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// ExternalIDs holds known external identifiers for a track.
type ExternalIDs struct {
	ISRC string `json:"isrc"`
}

// ArtistNames returns the names of the track's artists in credited order.
func (t Track) ArtistNames() []string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return names
}
