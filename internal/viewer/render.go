package viewer

import (
	"strings"

	"github.com/desertthunder/toptracks/internal/models"
)

// ViewKind is one of the three mutually exclusive page states.
type ViewKind int

const (
	LoginView ViewKind = iota
	FetchView
	GridView
)

func (k ViewKind) String() string {
	switch k {
	case LoginView:
		return "login"
	case FetchView:
		return "fetch"
	case GridView:
		return "grid"
	default:
		return "unknown"
	}
}

const (
	Heading     = "Spotify Top Tracks"
	LoginAction = "Log in with Spotify"
	FetchAction = "Get My Top Tracks"

	// CoverSize is the fixed edge, in pixels, of the rendered album cover.
	CoverSize = 300
	// ClampLines is the number of lines title and artists are cut to.
	ClampLines = 2
	// coverIndex picks the medium-sized image; Spotify lists album images widest first.
	coverIndex = 1
)

// Card is the rendered form of one track.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artists  string `json:"artists"`
	CoverURL string `json:"cover_url"`
	CoverAlt string `json:"cover_alt"`
	Link     string `json:"link"`
}

// View is the output of [Render].
//
// Action is the call-to-action label for [LoginView] and [FetchView]; Cards is only set for [GridView].
type View struct {
	Kind    ViewKind
	Heading string
	Action  string
	Cards   []Card
}

// Render derives the view for s. It has no side effects.
//
// It panics if a track's album has fewer than two images.
func Render(s State) View {
	view := View{Heading: Heading}

	switch {
	case !s.HasToken():
		view.Kind = LoginView
		view.Action = LoginAction
	case len(s.Tracks) == 0:
		view.Kind = FetchView
		view.Action = FetchAction
	default:
		view.Kind = GridView
		view.Cards = make([]Card, len(s.Tracks))
		for i, t := range s.Tracks {
			view.Cards[i] = NewCard(t)
		}
	}

	return view
}

// NewCard builds the card for t.
func NewCard(t models.Track) Card {
	return Card{
		ID:       t.ID,
		Title:    t.Name,
		Artists:  strings.Join(t.ArtistNames(), ", "),
		CoverURL: t.Album.Images[coverIndex].URL,
		CoverAlt: t.Name + " album cover",
		Link:     t.ExternalURL.Spotify,
	}
}
