package viewer

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/toptracks/internal/models"
	"github.com/desertthunder/toptracks/internal/services"
	"github.com/desertthunder/toptracks/internal/shared"
)

const accessTokenKey = "access_token"

// Navigator performs a full navigation to an absolute URL (browser window, HTTP redirect, ...).
type Navigator interface {
	Navigate(url string) error
}

// State is a copy of the viewer's transient state.
type State struct {
	Token  string
	Tracks []models.Track
}

// HasToken reports whether a session token is present.
func (s State) HasToken() bool {
	return s.Token != ""
}

// Viewer owns the session token and track list for one page lifetime.
type Viewer struct {
	service services.Service
	logger  *log.Logger

	mu      sync.Mutex
	token   string
	tracks  []models.Track
	session uint64 // bumped whenever the token is replaced or cleared
}

// New creates a Viewer backed by service. A nil logger writes to stderr.
func New(service services.Service, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Viewer{service: service, logger: logger}
}

// AuthURL returns the provider authorization URL built from configuration.
func (v *Viewer) AuthURL() string {
	return v.service.AuthURL()
}

// Login hands the authorization URL to nav. Control is expected to leave the application.
func (v *Viewer) Login(nav Navigator) error {
	authURL := v.AuthURL()
	v.logger.Debug("navigating to authorization endpoint", "service", v.service.Name())
	return nav.Navigate(authURL)
}

// ExtractToken reads the access token from the fragment of rawURL and returns rawURL without its fragment.
//
// An empty fragment changes nothing. A non-empty fragment starts a fresh session: the token becomes the
// fragment's access_token (unset when the key is absent) and the track list is emptied. Malformed pairs are skipped.
func (v *Viewer) ExtractToken(rawURL string) string {
	base, fragment, _ := strings.Cut(rawURL, "#")
	if fragment == "" {
		return base
	}

	// ParseQuery keeps every well-formed pair even when it reports an error.
	params, _ := url.ParseQuery(fragment)
	token := params.Get(accessTokenKey)

	v.mu.Lock()
	v.token = token
	v.tracks = nil
	v.session++
	v.mu.Unlock()

	if token == "" {
		v.logger.Debug("no access token in fragment")
	} else {
		v.logger.Info("access token received")
	}

	return base
}

// SetToken stores token as the session token, as if it had arrived in a return fragment.
func (v *Viewer) SetToken(token string) {
	v.ExtractToken("#" + url.Values{accessTokenKey: {token}}.Encode())
}

// Reset ends the session: the token and the track list are cleared.
func (v *Viewer) Reset() {
	v.mu.Lock()
	ended := v.token != "" || len(v.tracks) > 0
	v.token = ""
	v.tracks = nil
	v.session++
	v.mu.Unlock()

	if ended {
		v.logger.Debug("session reset")
	}
}

// FetchTopTracks replaces the track list with the caller's top tracks.
//
// Without a token it returns immediately. Failures are logged and leave the state untouched. A response that
// arrives after the session was reset or given a new token is discarded.
func (v *Viewer) FetchTopTracks(ctx context.Context) {
	v.mu.Lock()
	token, session := v.token, v.session
	v.mu.Unlock()
	if token == "" {
		return
	}

	tracks, err := v.service.TopTracks(ctx, token)
	if err != nil {
		v.logger.Error("error fetching top tracks", "err", err)
		return
	}

	v.mu.Lock()
	if v.session != session {
		v.mu.Unlock()
		v.logger.Debug("discarding tracks for an ended session", "count", len(tracks))
		return
	}
	v.tracks = tracks
	v.mu.Unlock()

	v.logger.Debug("top tracks fetched", "count", len(tracks))
}

// Snapshot returns a copy of the current state.
func (v *Viewer) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{Token: v.token, Tracks: v.tracks}
}

// View renders the current state.
func (v *Viewer) View() View {
	return Render(v.Snapshot())
}
