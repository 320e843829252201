package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFragmentCaptured MsgKind = iota
	MsgTracksFetched
	MsgLinkOpened
)

type fragmentResult struct {
	fragment string
	err      error
}

// fragmentCapturedMsg is the constructor for [MsgFragmentCaptured]
func fragmentCapturedMsg(fragment string, err error) Msg {
	return Msg{kind: MsgFragmentCaptured, data: fragmentResult{fragment, err}}
}

// tracksFetchedMsg is the constructor for [MsgTracksFetched]
//
// The fetched tracks are already in the viewer; the message only marks completion.
func tracksFetchedMsg() Msg {
	return Msg{kind: MsgTracksFetched}
}

// linkOpenedMsg is the constructor for [MsgLinkOpened]
func linkOpenedMsg(err error) Msg {
	return Msg{kind: MsgLinkOpened, data: err}
}
