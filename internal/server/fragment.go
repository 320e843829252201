package server

import (
	"fmt"
	"net/http"
	"sync"
)

// FragmentPath receives the fragment posted back by the capture page.
const FragmentPath = "/fragment"

// FragmentHandler captures the URL fragment of an implicit-grant redirect for a non-browser client.
// Implements the Handler interface for registration with a Router.
//
// Browsers never send the fragment to the server, so the redirect path serves a small page whose script
// posts location.hash to [FragmentPath] and strips it from the address bar.
type FragmentHandler struct {
	callbackPath string
	resultChan   chan string
	once         sync.Once
	callbackHit  bool
	mu           sync.Mutex
}

// NewFragmentHandler creates a handler serving the capture page at callbackPath (the redirect URI's path).
func NewFragmentHandler(callbackPath string) *FragmentHandler {
	if callbackPath == "" {
		callbackPath = "/"
	}
	return &FragmentHandler{
		callbackPath: callbackPath,
		resultChan:   make(chan string, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *FragmentHandler) Routes() []string {
	return []string{h.callbackPath, FragmentPath}
}

// ServeHTTP serves the capture page on GET of the callback path and accepts the fragment on POST of [FragmentPath].
func (h *FragmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == FragmentPath && r.Method == http.MethodPost:
		h.receive(w, r)
	case r.URL.Path == h.callbackPath && r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, capturePage)
	case r.URL.Path == FragmentPath || r.URL.Path == h.callbackPath:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.NotFound(w, r)
	}
}

func (h *FragmentHandler) receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Cannot parse form", http.StatusBadRequest)
		return
	}

	fragment := r.PostForm.Get("fragment")
	if fragment == "" || fragment == "#" {
		http.Error(w, "Missing fragment", http.StatusBadRequest)
		return
	}

	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	h.Send(fragment)
	w.WriteHeader(http.StatusNoContent)
}

// Send sends the fragment through the channel (only once).
func (h *FragmentHandler) Send(fragment string) {
	h.once.Do(func() {
		h.resultChan <- fragment
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the captured fragment.
//
// Channel will receive exactly one fragment and then be closed.
func (h *FragmentHandler) Result() <-chan string {
	return h.resultChan
}

const capturePage = `<!DOCTYPE html>
<html>
<head>
    <title>Spotify Top Tracks</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Spotify Top Tracks</h1>
        <p id="status">Finishing sign in...</p>
    </div>
    <script>
        (function () {
            var fragment = window.location.hash;
            history.replaceState(null, "", window.location.pathname + window.location.search);
            var status = document.getElementById("status");
            if (!fragment || fragment === "#") {
                status.textContent = "Nothing to do here.";
                return;
            }
            fetch("/fragment", {
                method: "POST",
                headers: { "Content-Type": "application/x-www-form-urlencoded" },
                body: new URLSearchParams({ fragment: fragment })
            }).then(function () {
                status.textContent = "You can close this window and return to the terminal.";
            });
        })();
    </script>
</body>
</html>
`
