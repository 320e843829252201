// Package server provides HTTP routing, middleware, and loopback helpers for the web page and the TUI login flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it was added: the first one added is the outermost wrapper.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with "METHOD path" patterns.
// [RequestLogger] tags each request with a uuid and logs it; [Recoverer] turns a render panic into a 500.
//
// # Fragment Capture
//
// [FragmentHandler] implements the return leg of the implicit grant for clients that are not the browser.
//
// The provider redirects to the redirect URI with the access token in the URL fragment, which browsers keep to
// themselves. The handler serves a page whose script posts location.hash back to [FragmentPath] and clears it from the
// address bar; the fragment is then sent through a channel.
//
// It only processes one callback.
//
// # Current Usage
//
// The TUI starts a temporary server on the redirect address (localhost:3000 by default) when the user logs in, waits
// for the fragment, and shuts the server down. The web viewer (internal/web) runs on the same address for as long as
// `toptracks serve` is up and handles the fragment itself.
//
// [Serve] runs either server until its context is cancelled.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
