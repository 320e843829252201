// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/toptracks/internal/models"
)

// FakeResponse is one scripted answer from [FakeService.TopTracks].
//
// When Gate is non-nil the call blocks until Gate is closed or receives.
type FakeResponse struct {
	Tracks []models.Track
	Err    error
	Gate   <-chan struct{}
}

// FakeService is a test double for services.Service.
//
// Responses are handed out in call order; once exhausted the last one repeats.
// Started, when set, receives the zero-based call index as each call begins.
type FakeService struct {
	URL       string
	Responses []FakeResponse
	Started   chan int

	mu     sync.Mutex
	tokens []string
}

func (f *FakeService) Name() string { return "fake" }

func (f *FakeService) AuthURL() string {
	if f.URL == "" {
		return "https://accounts.example.com/authorize?client_id=fake&response_type=token"
	}
	return f.URL
}

func (f *FakeService) TopTracks(ctx context.Context, accessToken string) ([]models.Track, error) {
	f.mu.Lock()
	idx := len(f.tokens)
	f.tokens = append(f.tokens, accessToken)
	var resp FakeResponse
	if n := len(f.Responses); n > 0 {
		resp = f.Responses[min(idx, n-1)]
	}
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- idx
	}
	if resp.Gate != nil {
		<-resp.Gate
	}
	return resp.Tracks, resp.Err
}

// Calls returns the number of TopTracks invocations.
func (f *FakeService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

// Tokens returns the access tokens passed to TopTracks, in call order.
func (f *FakeService) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// RecordingNavigator records navigation targets instead of opening them.
type RecordingNavigator struct {
	URLs []string
	Err  error
}

func (n *RecordingNavigator) Navigate(url string) error {
	n.URLs = append(n.URLs, url)
	return n.Err
}

// NewTrack builds a track with the given artist names and album image URLs.
func NewTrack(id, name string, artists []string, images ...string) models.Track {
	track := models.Track{
		ID:          id,
		Name:        name,
		ExternalURL: models.ExternalURLs{Spotify: fmt.Sprintf("https://open.spotify.com/track/%s", id)},
		Album:       models.Album{ID: "album-" + id, Name: name + " (Album)"},
	}
	for i, a := range artists {
		track.Artists = append(track.Artists, models.Artist{ID: fmt.Sprintf("%s-artist-%d", id, i), Name: a})
	}
	for _, u := range images {
		track.Album.Images = append(track.Album.Images, models.Image{URL: u, Width: 300, Height: 300})
	}
	return track
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
