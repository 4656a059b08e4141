package server

import "github.com/frontiermaps/starmap/pkg/engine"

// Request bodies reuse the engine's own request types so the HTTP surface
// and the embedded API never drift apart; only responses that add
// HTTP-specific fields get their own shapes here.

// PathHTTPResponse wraps the engine path result with an explicit found
// flag: an unreachable pair is a valid outcome, not an HTTP error.
type PathHTTPResponse struct {
	Found bool              `json:"found"`
	Steps []engine.PathStep `json:"steps,omitempty"`
	Cost  int               `json:"cost,omitempty"`
}

// ResolveHTTPResponse lists the systems matching a name or prefix lookup.
type ResolveHTTPResponse struct {
	Systems []engine.NearestHit `json:"systems"`
}

// ReloadRequest optionally overrides the configured bundle path.
type ReloadRequest struct {
	Path string `json:"path,omitempty"`
}

// ReloadResponse reports the stats of the freshly activated generation.
type ReloadResponse struct {
	Status string       `json:"status"`
	Stats  engine.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}
