// Package viewer holds the in-memory state behind the top tracks page and the four steps that drive it.
//
//  1. [Viewer.AuthURL] and [Viewer.Login] send the user to the provider's authorization endpoint.
//  2. [Viewer.ExtractToken] reads access_token from the return URL's fragment.
//  3. [Viewer.FetchTopTracks] issues one bearer request and keeps the returned items.
//  4. [Render] turns a [State] into a [View] (login prompt, fetch prompt, or card grid).
//
// The state is two values, an optional token and the track list. Both live only as long as the Viewer.
// Fetches are user-initiated and unsynchronized with one another: when two overlap, whichever completes last
// overwrites the list. Fetch failures are logged and otherwise ignored.
//
// Front ends (internal/web, internal/ui, the tracks command) own a Viewer and call these in response to user actions.
package viewer
