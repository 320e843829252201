// Package web serves the top tracks page on the loopback redirect address.
//
// # Routes
//
//	GET  /         → page for the current view (login button, fetch button, or card grid)
//	POST /login    → 303 to the provider's authorization URL
//	POST /session  → run the token extractor on the posted fragment, then 303 to /?landing=<id>
//	POST /fetch    → fetch top tracks, then 303 to /?landing=<id>
//
// The provider redirects back to / with the token in the URL fragment. Every view carries a script that posts a
// fragment to /session once and strips the fragment and query from the address bar.
//
// A page load ends the session unless it is the landing of the latest /session or /fetch redirect. Each landing
// id is accepted once, so reloading the page shows the login view again.
//
// All state lives in the [viewer.Viewer] handed to [New]. Nothing is stored in cookies or on disk.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/toptracks/internal/server"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/desertthunder/toptracks/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

const landingParam = "landing"

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Kind       string
	Heading    string
	Action     string
	Cards      []viewer.Card
	CoverSize  int
	ClampLines int
}

// App serves a single [viewer.Viewer] over HTTP.
type App struct {
	viewer       *viewer.Viewer
	logger       *log.Logger
	callbackPath string

	mu      sync.Mutex
	landing string // id of the pending redirect landing, empty once consumed
}

// New creates an App. callbackPath is the redirect URI's path; "/" when empty.
func New(v *viewer.Viewer, logger *log.Logger, callbackPath string) *App {
	if callbackPath == "" {
		callbackPath = "/"
	}
	return &App{viewer: v, logger: shared.WithLogger(logger, "component", "web"), callbackPath: callbackPath}
}

// Register adds the page routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.index))
	if a.callbackPath != "/" {
		r.Handle(http.MethodGet, a.callbackPath, http.HandlerFunc(a.index))
	}
	r.Handle(http.MethodPost, "/login", http.HandlerFunc(a.login))
	r.Handle(http.MethodPost, "/session", http.HandlerFunc(a.session))
	r.Handle(http.MethodPost, "/fetch", http.HandlerFunc(a.fetch))
}

// Handler returns the routed page with request logging and panic recovery.
func (a *App) Handler() http.Handler {
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(a.logger), server.Recoverer(a.logger))
	a.Register(router)
	return router
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if !a.consumeLanding(r.URL.Query().Get(landingParam)) {
		a.viewer.Reset()
	}

	view := a.viewer.View()
	data := pageData{
		Kind:       view.Kind.String(),
		Heading:    view.Heading,
		Action:     view.Action,
		Cards:      view.Cards,
		CoverSize:  viewer.CoverSize,
		ClampLines: viewer.ClampLines,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		a.logger.Error("failed to render page", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// redirectNavigator answers the current request with a 303 to the target.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) Navigate(url string) error {
	http.Redirect(n.w, n.r, url, http.StatusSeeOther)
	return nil
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	a.viewer.Login(redirectNavigator{w: w, r: r})
}

func (a *App) session(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.logger.Debug("ignoring unreadable session form", "err", err)
	} else {
		a.viewer.ExtractToken(r.PostForm.Get("fragment"))
	}
	a.redirectBack(w, r)
}

func (a *App) fetch(w http.ResponseWriter, r *http.Request) {
	// The fetch is not tied to the browser's request lifetime.
	a.viewer.FetchTopTracks(context.WithoutCancel(r.Context()))
	a.redirectBack(w, r)
}

// redirectBack sends the browser to the callback page with a fresh landing id.
func (a *App) redirectBack(w http.ResponseWriter, r *http.Request) {
	id := shared.GenerateID()

	a.mu.Lock()
	a.landing = id
	a.mu.Unlock()

	http.Redirect(w, r, a.callbackPath+"?"+url.Values{landingParam: {id}}.Encode(), http.StatusSeeOther)
}

// consumeLanding reports whether id is the pending landing id and clears it.
func (a *App) consumeLanding(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id == "" || id != a.landing {
		return false
	}
	a.landing = ""
	return true
}
