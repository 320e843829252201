// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the top tracks page:
//  1. Login: enter opens the Spotify authorization page and waits on the loopback redirect for the token
//  2. Fetch: enter fetches the caller's top tracks
//  3. Grid: one card per track (cover URL, title and artists clamped to two lines); enter opens the track in the browser
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All state lives in a [viewer.Viewer]; the model only tracks layout, cursor position and pending commands.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
