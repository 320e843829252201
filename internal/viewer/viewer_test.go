package viewer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/toptracks/internal/models"
	"github.com/desertthunder/toptracks/internal/services"
	"github.com/desertthunder/toptracks/internal/shared"
	tu "github.com/desertthunder/toptracks/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ services.Service = (*tu.FakeService)(nil)

func newViewer(t *testing.T, svc services.Service) (*Viewer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	shared.ApplyLogLevel(logger, "debug")
	return New(svc, logger), &buf
}

func TestExtractToken(t *testing.T) {
	t.Run("sets token and clears fragment", func(t *testing.T) {
		v, _ := newViewer(t, &tu.FakeService{})

		clean := v.ExtractToken("http://localhost:3000/#access_token=XYZ&token_type=Bearer")

		assert.Equal(t, "XYZ", v.Snapshot().Token)
		assert.Equal(t, "http://localhost:3000/", clean)
	})

	t.Run("bare fragment", func(t *testing.T) {
		v, _ := newViewer(t, &tu.FakeService{})

		clean := v.ExtractToken("#access_token=XYZ&token_type=Bearer&expires_in=3600")

		assert.Equal(t, "XYZ", v.Snapshot().Token)
		assert.Empty(t, clean)
	})

	t.Run("fragments without access_token leave token unset", func(t *testing.T) {
		fragments := []string{
			"http://localhost:3000/#error=access_denied",
			"http://localhost:3000/#token_type=Bearer",
			"http://localhost:3000/#",
			"http://localhost:3000/",
			"#access_token",
			"#ACCESS_TOKEN=abc",
			"#%zz",
			"",
		}

		for _, raw := range fragments {
			t.Run(raw, func(t *testing.T) {
				v, _ := newViewer(t, &tu.FakeService{})

				clean := v.ExtractToken(raw)

				assert.False(t, v.Snapshot().HasToken())
				assert.NotContains(t, clean, "#")
			})
		}
	})

	t.Run("malformed pairs are skipped", func(t *testing.T) {
		v, _ := newViewer(t, &tu.FakeService{})

		v.ExtractToken("#bad=%zz&access_token=XYZ")

		assert.Equal(t, "XYZ", v.Snapshot().Token)
	})

	t.Run("url encoded token is decoded", func(t *testing.T) {
		v, _ := newViewer(t, &tu.FakeService{})

		v.ExtractToken("#access_token=a%2Bb%3D")

		assert.Equal(t, "a+b=", v.Snapshot().Token)
	})

	t.Run("empty fragment keeps existing session", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: []models.Track{tu.NewTrack("t1", "One", []string{"A"}, "x", "y")}}}}
		v, _ := newViewer(t, svc)
		v.SetToken("XYZ")
		v.FetchTopTracks(context.Background())

		v.ExtractToken("http://localhost:3000/")

		state := v.Snapshot()
		assert.Equal(t, "XYZ", state.Token)
		assert.Len(t, state.Tracks, 1)
	})

	t.Run("new fragment starts a fresh session", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: []models.Track{tu.NewTrack("t1", "One", []string{"A"}, "x", "y")}}}}
		v, _ := newViewer(t, svc)
		v.SetToken("OLD")
		v.FetchTopTracks(context.Background())

		v.ExtractToken("#access_token=NEW")

		state := v.Snapshot()
		assert.Equal(t, "NEW", state.Token)
		assert.Empty(t, state.Tracks)
	})
}

func TestLogin(t *testing.T) {
	t.Run("navigates to the auth url", func(t *testing.T) {
		svc := &tu.FakeService{URL: "https://accounts.spotify.com/authorize?client_id=abc"}
		v, _ := newViewer(t, svc)
		nav := &tu.RecordingNavigator{}

		require.NoError(t, v.Login(nav))

		assert.Equal(t, []string{"https://accounts.spotify.com/authorize?client_id=abc"}, nav.URLs)
	})

	t.Run("uses the Spotify implicit-grant url", func(t *testing.T) {
		svc := services.NewSpotifyService(shared.SpotifyConfig{ClientID: "abc", RedirectURI: "http://localhost:3000"}, nil)
		v, _ := newViewer(t, svc)
		nav := &tu.RecordingNavigator{}

		require.NoError(t, v.Login(nav))

		require.Len(t, nav.URLs, 1)
		assert.Contains(t, nav.URLs[0], "client_id=abc")
		assert.Contains(t, nav.URLs[0], "response_type=token")
		assert.Contains(t, nav.URLs[0], "redirect_uri=http%3A%2F%2Flocalhost%3A3000")
		assert.Contains(t, nav.URLs[0], "scope=user-top-read")
	})

	t.Run("navigator error is returned", func(t *testing.T) {
		v, _ := newViewer(t, &tu.FakeService{})
		nav := &tu.RecordingNavigator{Err: errors.New("no browser")}

		assert.Error(t, v.Login(nav))
	})
}

func TestFetchTopTracks(t *testing.T) {
	first := []models.Track{
		tu.NewTrack("t1", "One", []string{"A"}, "1a", "1b"),
		tu.NewTrack("t2", "Two", []string{"B", "C"}, "2a", "2b"),
	}
	second := []models.Track{
		tu.NewTrack("t3", "Three", []string{"D"}, "3a", "3b"),
	}

	t.Run("no token means no network call", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: first}}}
		v, _ := newViewer(t, svc)

		v.FetchTopTracks(context.Background())

		assert.Zero(t, svc.Calls())
		assert.Empty(t, v.Snapshot().Tracks)
	})

	t.Run("stores items in order", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: first}}}
		v, _ := newViewer(t, svc)
		v.ExtractToken("#access_token=XYZ&token_type=Bearer")

		v.FetchTopTracks(context.Background())

		assert.Equal(t, []string{"XYZ"}, svc.Tokens())
		assert.Equal(t, first, v.Snapshot().Tracks)
	})

	t.Run("failure is logged and state unchanged", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{
			{Tracks: first},
			{Err: shared.ErrAPIStatus},
		}}
		v, logs := newViewer(t, svc)
		v.SetToken("XYZ")

		v.FetchTopTracks(context.Background())
		v.FetchTopTracks(context.Background())

		assert.Equal(t, 2, svc.Calls())
		assert.Equal(t, first, v.Snapshot().Tracks)
		assert.Contains(t, logs.String(), "error fetching top tracks")
	})

	t.Run("each call overwrites the list", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: first}, {Tracks: second}}}
		v, _ := newViewer(t, svc)
		v.SetToken("XYZ")

		v.FetchTopTracks(context.Background())
		v.FetchTopTracks(context.Background())

		assert.Equal(t, second, v.Snapshot().Tracks)
	})

	t.Run("last arrival wins", func(t *testing.T) {
		gate1 := make(chan struct{})
		gate2 := make(chan struct{})
		svc := &tu.FakeService{
			Started: make(chan int),
			Responses: []tu.FakeResponse{
				{Tracks: first, Gate: gate1},
				{Tracks: second, Gate: gate2},
			},
		}
		v, _ := newViewer(t, svc)
		v.SetToken("XYZ")

		done1 := make(chan struct{})
		go func() {
			v.FetchTopTracks(context.Background())
			close(done1)
		}()
		require.Equal(t, 0, <-svc.Started)

		done2 := make(chan struct{})
		go func() {
			v.FetchTopTracks(context.Background())
			close(done2)
		}()
		require.Equal(t, 1, <-svc.Started)

		close(gate2)
		<-done2
		assert.Equal(t, second, v.Snapshot().Tracks)

		close(gate1)
		<-done1
		assert.Equal(t, first, v.Snapshot().Tracks)
	})

	t.Run("response for a replaced token is discarded", func(t *testing.T) {
		gate := make(chan struct{})
		svc := &tu.FakeService{
			Started:   make(chan int),
			Responses: []tu.FakeResponse{{Tracks: first, Gate: gate}},
		}
		v, logs := newViewer(t, svc)
		v.SetToken("OLD")

		done := make(chan struct{})
		go func() {
			v.FetchTopTracks(context.Background())
			close(done)
		}()
		require.Equal(t, 0, <-svc.Started)

		v.ExtractToken("#access_token=NEW")
		close(gate)
		<-done

		state := v.Snapshot()
		assert.Equal(t, []string{"OLD"}, svc.Tokens())
		assert.Equal(t, "NEW", state.Token)
		assert.Empty(t, state.Tracks)
		assert.Contains(t, logs.String(), "discarding tracks for an ended session")
	})

	t.Run("response after a reset is discarded", func(t *testing.T) {
		gate := make(chan struct{})
		svc := &tu.FakeService{
			Started:   make(chan int),
			Responses: []tu.FakeResponse{{Tracks: first, Gate: gate}},
		}
		v, _ := newViewer(t, svc)
		v.SetToken("XYZ")

		done := make(chan struct{})
		go func() {
			v.FetchTopTracks(context.Background())
			close(done)
		}()
		require.Equal(t, 0, <-svc.Started)

		v.Reset()
		close(gate)
		<-done

		state := v.Snapshot()
		assert.False(t, state.HasToken())
		assert.Empty(t, state.Tracks)
	})
}

func TestReset(t *testing.T) {
	t.Run("clears token and tracks", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: []models.Track{tu.NewTrack("t1", "One", []string{"A"}, "x", "y")}}}}
		v, logs := newViewer(t, svc)
		v.SetToken("XYZ")
		v.FetchTopTracks(context.Background())
		require.Len(t, v.Snapshot().Tracks, 1)

		v.Reset()

		state := v.Snapshot()
		assert.False(t, state.HasToken())
		assert.Empty(t, state.Tracks)
		assert.Equal(t, LoginView, v.View().Kind)
		assert.Contains(t, logs.String(), "session reset")
	})

	t.Run("empty session stays quiet", func(t *testing.T) {
		v, logs := newViewer(t, &tu.FakeService{})

		v.Reset()

		assert.NotContains(t, logs.String(), "session reset")
	})
}
