package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/toptracks/internal/models"
	"github.com/desertthunder/toptracks/internal/shared"
	tu "github.com/desertthunder/toptracks/internal/testing"
	"github.com/desertthunder/toptracks/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, svc *tu.FakeService) (*viewer.Viewer, http.Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	v := viewer.New(svc, logger)
	return v, New(v, logger, "").Handler(), &buf
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// follow loads the page a 303 points at.
func follow(t *testing.T, h http.Handler, rec *httptest.ResponseRecorder) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return get(t, h, rec.Header().Get("Location"))
}

// signIn posts a return fragment carrying token and loads the landing page.
func signIn(t *testing.T, h http.Handler, token string) *goquery.Document {
	t.Helper()
	_, doc := follow(t, h, post(t, h, "/session", url.Values{"fragment": {"#access_token=" + token}}))
	return doc
}

func assertCapturesFragment(t *testing.T, doc *goquery.Document) {
	t.Helper()
	assert.Equal(t, 1, doc.Find("form[action='/session'] input[name='fragment']").Length())
	script := doc.Find("script").Text()
	assert.Contains(t, script, "window.location.hash")
	assert.Contains(t, script, "history.replaceState")
}

func TestIndex(t *testing.T) {
	t.Run("login view without token", func(t *testing.T) {
		_, h, _ := newApp(t, &tu.FakeService{})

		rec, doc := get(t, h, "/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, viewer.Heading, doc.Find("h1").Text())
		assert.Equal(t, viewer.LoginAction, doc.Find("form[action='/login'] button").Text())
		assertCapturesFragment(t, doc)
		assert.Zero(t, doc.Find("a.card").Length())
	})

	t.Run("fetch view with token and no tracks", func(t *testing.T) {
		_, h, _ := newApp(t, &tu.FakeService{})

		doc := signIn(t, h, "XYZ")

		assert.Equal(t, viewer.FetchAction, doc.Find("form[action='/fetch'] button").Text())
		assert.Zero(t, doc.Find("form[action='/login']").Length())
		assertCapturesFragment(t, doc)
	})

	t.Run("grid view renders cards in order", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: []models.Track{
			tu.NewTrack("t1", "One", []string{"Alpha"}, "a", "b"),
			tu.NewTrack("t2", "Two & More", []string{"Beta", "Gamma"}, "c", "d"),
		}}}}
		_, h, _ := newApp(t, svc)
		signIn(t, h, "XYZ")

		_, doc := follow(t, h, post(t, h, "/fetch", nil))

		cards := doc.Find("a.card")
		require.Equal(t, 2, cards.Length())
		assert.Zero(t, doc.Find("button").Length())
		assertCapturesFragment(t, doc)

		first := cards.Eq(0)
		assert.Equal(t, "t1", first.AttrOr("data-track-id", ""))
		assert.Equal(t, "https://open.spotify.com/track/t1", first.AttrOr("href", ""))
		assert.Equal(t, "_blank", first.AttrOr("target", ""))
		assert.Equal(t, "b", first.Find("img").AttrOr("src", ""))
		assert.Equal(t, "300", first.Find("img").AttrOr("width", ""))
		assert.Equal(t, "300", first.Find("img").AttrOr("height", ""))
		assert.Equal(t, "One album cover", first.Find("img").AttrOr("alt", ""))

		second := cards.Eq(1)
		assert.Equal(t, "Two & More", second.Find(".title").Text())
		assert.Equal(t, "Beta, Gamma", second.Find(".artists").Text())
		assert.Equal(t, "d", second.Find("img").AttrOr("src", ""))
	})

	t.Run("broken album images fail only that render", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: []models.Track{
			tu.NewTrack("t1", "One", []string{"Alpha"}, "only"),
		}}}}
		_, h, logs := newApp(t, svc)
		signIn(t, h, "XYZ")

		rec, _ := follow(t, h, post(t, h, "/fetch", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, logs.String(), "panic serving request")
	})

	t.Run("unknown path", func(t *testing.T) {
		_, h, _ := newApp(t, &tu.FakeService{})

		rec, _ := get(t, h, "/favicon.ico")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReload(t *testing.T) {
	tracks := []models.Track{tu.NewTrack("t1", "One", []string{"Alpha"}, "a", "b")}

	t.Run("reload after sign in shows login view", func(t *testing.T) {
		v, h, _ := newApp(t, &tu.FakeService{})
		rec := post(t, h, "/session", url.Values{"fragment": {"#access_token=XYZ"}})
		follow(t, h, rec)

		_, doc := get(t, h, rec.Header().Get("Location"))

		assert.Equal(t, viewer.LoginAction, doc.Find("form[action='/login'] button").Text())
		assert.False(t, v.Snapshot().HasToken())
	})

	t.Run("reload of the grid shows login view", func(t *testing.T) {
		v, h, _ := newApp(t, &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: tracks}}})
		signIn(t, h, "XYZ")
		_, grid := follow(t, h, post(t, h, "/fetch", nil))
		require.Equal(t, 1, grid.Find("a.card").Length())

		_, doc := get(t, h, "/")

		assert.Equal(t, viewer.LoginAction, doc.Find("form[action='/login'] button").Text())
		assert.Zero(t, doc.Find("a.card").Length())
		assert.Empty(t, v.Snapshot().Tracks)
	})

	t.Run("stale landing id resets", func(t *testing.T) {
		v, h, _ := newApp(t, &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: tracks}}})
		first := post(t, h, "/session", url.Values{"fragment": {"#access_token=XYZ"}})
		follow(t, h, first)
		follow(t, h, post(t, h, "/fetch", nil))

		get(t, h, first.Header().Get("Location"))

		assert.False(t, v.Snapshot().HasToken())
	})

	t.Run("new fragment from the grid starts a new session", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Tracks: tracks}}}
		v, h, _ := newApp(t, svc)
		signIn(t, h, "OLD")
		follow(t, h, post(t, h, "/fetch", nil))

		doc := signIn(t, h, "NEW")

		assert.Equal(t, viewer.FetchAction, doc.Find("form[action='/fetch'] button").Text())
		state := v.Snapshot()
		assert.Equal(t, "NEW", state.Token)
		assert.Empty(t, state.Tracks)
	})
}

func TestLoginRoute(t *testing.T) {
	svc := &tu.FakeService{URL: "https://accounts.spotify.com/authorize?client_id=abc&response_type=token"}
	_, h, _ := newApp(t, svc)

	rec := post(t, h, "/login", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, svc.URL, rec.Header().Get("Location"))
}

func TestSessionRoute(t *testing.T) {
	t.Run("stores token and redirects to clean url", func(t *testing.T) {
		v, h, _ := newApp(t, &tu.FakeService{})

		rec := post(t, h, "/session", url.Values{"fragment": {"#access_token=XYZ&token_type=Bearer"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/?landing="))
		assert.Equal(t, "XYZ", v.Snapshot().Token)
	})

	t.Run("fragment without token stays logged out", func(t *testing.T) {
		v, h, _ := newApp(t, &tu.FakeService{})

		rec := post(t, h, "/session", url.Values{"fragment": {"#error=access_denied"}})

		assert.False(t, v.Snapshot().HasToken())
		_, doc := follow(t, h, rec)
		assert.Equal(t, viewer.LoginAction, doc.Find("form[action='/login'] button").Text())
	})

	t.Run("custom callback path", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)
		v := viewer.New(&tu.FakeService{}, logger)
		h := New(v, logger, "/callback").Handler()

		rec := post(t, h, "/session", url.Values{"fragment": {"#access_token=XYZ"}})
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/callback?landing="))

		getRec, doc := follow(t, h, rec)
		assert.Equal(t, http.StatusOK, getRec.Code)
		assert.Equal(t, viewer.FetchAction, doc.Find("form[action='/fetch'] button").Text())
	})
}

func TestFetchRoute(t *testing.T) {
	t.Run("no token makes no call", func(t *testing.T) {
		svc := &tu.FakeService{}
		_, h, _ := newApp(t, svc)

		rec := post(t, h, "/fetch", nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Zero(t, svc.Calls())
	})

	t.Run("failure keeps fetch view", func(t *testing.T) {
		svc := &tu.FakeService{Responses: []tu.FakeResponse{{Err: shared.ErrAPIStatus}}}
		_, h, logs := newApp(t, svc)
		signIn(t, h, "XYZ")

		rec := post(t, h, "/fetch", nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, 1, svc.Calls())
		assert.Contains(t, logs.String(), "error fetching top tracks")

		_, doc := follow(t, h, rec)
		assert.Equal(t, viewer.FetchAction, doc.Find("form[action='/fetch'] button").Text())
		assertCapturesFragment(t, doc)
	})

	t.Run("wrong method", func(t *testing.T) {
		_, h, _ := newApp(t, &tu.FakeService{})

		rec, _ := get(t, h, "/fetch")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
