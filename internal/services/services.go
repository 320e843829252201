package services

import (
	"context"

	"github.com/desertthunder/toptracks/internal/models"
)

// Service defines the interface for a music provider that can send a user through implicit-grant login
// and list that user's top tracks.
type Service interface {
	// AuthURL returns the authorization URL the user is sent to for login.
	AuthURL() string

	// TopTracks retrieves the first page of the caller's top tracks using a bearer access token.
	// The paging envelope is dropped; only the items are returned, in provider order.
	TopTracks(ctx context.Context, accessToken string) ([]models.Track, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
