package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/pprof"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frontiermaps/starmap/pkg/engine"
	"github.com/frontiermaps/starmap/pkg/metrics"
	"github.com/frontiermaps/starmap/pkg/persistence"
)

// registerHTTPHandlers sets up the API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /starmap/actions/nearest", s.handleNearest)
	mux.HandleFunc("POST /starmap/actions/path", s.handlePath)
	mux.HandleFunc("POST /starmap/actions/sweep", s.handleSweep)
	mux.HandleFunc("GET /starmap/resolve", s.handleResolve)
	mux.HandleFunc("GET /starmap/systems/{id}", s.handleGetSystem)

	mux.HandleFunc("POST /system/reload", s.handleReload)

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps engine error kinds onto HTTP statuses and feeds the
// query outcome counter. Unreachable is handled by the path handler itself
// and never reaches this point.
func (s *Server) writeEngineError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		metrics.QueriesTotal.WithLabelValues(kind, "invalid").Inc()
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		metrics.QueriesTotal.WithLabelValues(kind, "not_found").Inc()
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
	default:
		metrics.QueriesTotal.WithLabelValues(kind, "error").Inc()
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request, s *Server) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return req, false
	}
	return req, true
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stats":  s.Service.Current().Stats(),
	})
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[engine.NearestRequest](w, r, s)
	if !ok {
		return
	}
	resp, err := s.Service.Current().Nearest(req)
	if err != nil {
		s.writeEngineError(w, "nearest", err)
		return
	}
	metrics.QueriesTotal.WithLabelValues("nearest", "ok").Inc()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[engine.PathRequest](w, r, s)
	if !ok {
		return
	}
	resp, err := s.Service.Current().Path(req)
	if err != nil {
		if errors.Is(err, engine.ErrUnreachable) {
			// A proven absence of a route is a result, not an error.
			metrics.QueriesTotal.WithLabelValues("path", "unreachable").Inc()
			s.writeJSON(w, http.StatusOK, PathHTTPResponse{Found: false})
			return
		}
		s.writeEngineError(w, "path", err)
		return
	}
	metrics.QueriesTotal.WithLabelValues("path", "ok").Inc()
	s.writeJSON(w, http.StatusOK, PathHTTPResponse{Found: true, Steps: resp.Steps, Cost: resp.Cost})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[engine.SweepRequest](w, r, s)
	if !ok {
		return
	}
	resp, err := s.Service.Current().Sweep(req)
	if err != nil {
		s.writeEngineError(w, "sweep", err)
		return
	}
	metrics.QueriesTotal.WithLabelValues("sweep", "ok").Inc()
	s.writeJSON(w, http.StatusOK, resp)
}

// handleResolve answers GET /starmap/resolve?name=X or ?prefix=X&limit=N.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	prefix := q.Get("prefix")
	if (name == "") == (prefix == "") {
		s.writeHTTPError(w, http.StatusBadRequest, "exactly one of name and prefix is required")
		return
	}

	limit := 10
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeHTTPError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	lookup := name
	usePrefix := false
	if prefix != "" {
		lookup = prefix
		usePrefix = true
	}

	systems, err := s.Service.Current().Resolve(lookup, usePrefix, limit)
	if err != nil {
		s.writeEngineError(w, "resolve", err)
		return
	}
	metrics.QueriesTotal.WithLabelValues("resolve", "ok").Inc()
	s.writeJSON(w, http.StatusOK, ResolveHTTPResponse{Systems: systems})
}

func (s *Server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "system id must be an unsigned integer")
		return
	}
	sys, ok := s.Service.Current().Catalog().ByID(uint32(id))
	if !ok {
		s.writeHTTPError(w, http.StatusNotFound, "unknown system id "+raw)
		return
	}
	s.writeJSON(w, http.StatusOK, sys)
}

// handleReload loads a bundle and swaps it in as the active generation.
// In-flight queries keep the generation they started with; on failure the
// previous generation remains in service.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	// The body is optional: an empty POST reloads the configured bundle.
	var req ReloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	path := req.Path
	if path == "" {
		path = s.cfg.DatasetPath
	}
	if path == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "no bundle path configured or provided")
		return
	}

	ds, err := persistence.ReadFile(path)
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Service.Load(ds); err != nil {
		s.writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.publishStats()
	s.writeJSON(w, http.StatusOK, ReloadResponse{
		Status: "reloaded",
		Stats:  s.Service.Current().Stats(),
	})
}
