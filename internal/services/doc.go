// Package services defines the [Service] interface for music streaming providers and implements it for Spotify.
//
// # Spotify Implementation
//
// [SpotifyService] builds the implicit-grant authorization URL with an [oauth2.Config] and reads the
// caller's top tracks with a plain bearer request. There is no client secret, no code exchange and no refresh:
// the access token arrives in the redirect fragment and is used as-is until it stops working.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : empty access token
//   - [shared.ErrAPIRequest] : transport failure
//   - [shared.ErrAPIStatus] : non-2xx response
//   - [shared.ErrDecodeResponse] : body is not a TopTracksResponse
//
// Callers decide what to do with them; the viewer logs and drops them.
package services
