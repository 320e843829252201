// Package models defines the Spotify Web API shapes consumed by toptracks.
//
// The types mirror the JSON documented at https://developer.spotify.com/documentation/web-api/reference/get-users-top-artists-and-tracks:
//   - [TopTracksResponse] : paging envelope around the caller's top tracks
//   - [Track] : a track with its nested [Album] and [Artist] list
//   - [Image], [ExternalURLs], [ExternalIDs] : flat records only found nested inside a track or album
//
// Values are decoded once and never mutated; a new fetch replaces them wholesale.
package models
