// Spotify API implementation of [Service]
//
// Spotify API response types live in package models, based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/toptracks/internal/models"
	"github.com/desertthunder/toptracks/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultRedirectURI = "http://localhost:3000"
	defaultScope       = "user-top-read"
)

// SpotifyService implements the Service interface for Spotify API interactions.
type SpotifyService struct {
	config     *oauth2.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service from the implicit-grant client settings.
//
// A nil client uses [http.DefaultClient]. An empty client id is accepted and simply yields a broken login URL.
func NewSpotifyService(creds shared.SpotifyConfig, client *http.Client) *SpotifyService {
	if client == nil {
		client = http.DefaultClient
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	scope := creds.Scope
	if scope == "" {
		scope = defaultScope
	}

	config := &oauth2.Config{
		ClientID:    creds.ClientID,
		RedirectURL: redirectURI,
		Scopes:      strings.Fields(scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: client,
		baseURL:    spotifyBaseURL,
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the implicit-grant authorization URL for user login.
//
// The response type is overridden to "token" and no state is sent.
func (s *SpotifyService) AuthURL() string {
	return s.config.AuthCodeURL("", oauth2.SetAuthURLParam("response_type", "token"))
}

// doRequest performs a bearer-authenticated HTTP request to the Spotify API and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, accessToken string, result any) error {
	if accessToken == "" {
		return shared.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token := &oauth2.Token{AccessToken: accessToken}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIStatus, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrDecodeResponse, err)
		}
	}

	return nil
}

// TopTracks retrieves the current user's top tracks.
//
// Only the first page is requested. Total, limit, offset and paging links are decoded and dropped.
func (s *SpotifyService) TopTracks(ctx context.Context, accessToken string) ([]models.Track, error) {
	var response models.TopTracksResponse
	if err := s.doRequest(ctx, http.MethodGet, "/me/top/tracks", accessToken, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}
