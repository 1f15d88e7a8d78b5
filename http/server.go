package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docscope/docscope"
	"github.com/docscope/docscope/walk"
	"github.com/google/uuid"
)

// DefaultRequiredExcludes are paths the server refuses to include in any
// saved selection. They are forced into the exclude set on every save.
var DefaultRequiredExcludes = []string{".git", "vendor", ".idea"}

// Server serves tree listings and selection state for one project.
type Server struct {
	server *http.Server
	ln     net.Listener

	Addr string

	Lister    docscope.Lister
	Store     docscope.StateStore
	ProjectID string

	// Expander, when set, collapses directory includes to concrete file
	// paths before a selection is stored.
	Expander *walk.Expander

	RequiredExcludes []string

	Logger *slog.Logger
}

// NewServer creates a Server with routes registered.
func NewServer() *Server {
	s := &Server{
		server:           &http.Server{},
		RequiredExcludes: DefaultRequiredExcludes,
		Logger:           slog.Default(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tree", s.handleTree)
	mux.HandleFunc("GET /state", s.handleGetState)
	mux.HandleFunc("POST /state", s.handlePostState)
	s.server.Handler = s.logRequests(mux)

	return s
}

// Handler returns the server's root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Open begins listening on Addr.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}
	s.ln = ln
	go s.server.Serve(ln)
	return nil
}

// Close shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL the server is reachable at. Only valid after Open.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String()
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	rel := docscope.Normalize(r.URL.Query().Get("rel"))

	nodes, err := s.Lister.ListChildren(r.Context(), rel)
	if err != nil {
		s.error(w, r, err)
		return
	}
	if nodes == nil {
		nodes = []docscope.Node{}
	}
	s.respondJSON(w, r, http.StatusOK, nodes)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	set, err := s.Store.LoadState(r.Context(), s.ProjectID)
	if err != nil {
		s.error(w, r, err)
		return
	}

	// Required excludes hold on load as well as save, so a fresh project
	// starts with them and a selection stored under an older policy is
	// served corrected.
	set = s.forceRequiredExcludes(set)

	body, err := json.Marshal(set.Payload())
	if err != nil {
		s.error(w, r, err)
		return
	}

	etag := fmt.Sprintf(`"%x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handlePostState(w http.ResponseWriter, r *http.Request) {
	var payload docscope.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.error(w, r, docscope.Errorf(docscope.EINVALID, "malformed selection payload"))
		return
	}

	set := docscope.FromPayload(payload)
	set = s.forceRequiredExcludes(set)

	if s.Expander != nil {
		expanded, err := s.Expander.ExpandToFiles(r.Context(), set)
		if err != nil {
			s.error(w, r, err)
			return
		}
		set = expanded
	}

	if err := s.Store.SaveState(r.Context(), s.ProjectID, set); err != nil {
		s.error(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, set.Payload())
}

// forceRequiredExcludes drops includes covered by a required exclude and
// makes sure every required exclude is present in the exclude set.
func (s *Server) forceRequiredExcludes(set *docscope.PathSet) *docscope.PathSet {
	payload := set.Payload()

	includes := payload.Includes[:0]
	for _, path := range payload.Includes {
		if !s.isRequiredExclude(path) {
			includes = append(includes, path)
		}
	}
	payload.Includes = includes

	for _, required := range s.RequiredExcludes {
		found := false
		for _, path := range payload.Excludes {
			if path == required {
				found = true
				break
			}
		}
		if !found {
			payload.Excludes = append(payload.Excludes, required)
		}
	}

	return docscope.FromPayload(payload)
}

func (s *Server) isRequiredExclude(path string) bool {
	for _, required := range s.RequiredExcludes {
		if docscope.IsUnderOrEqual(path, required) {
			return true
		}
	}
	return false
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encoding failed", "path", r.URL.Path, "error", err)
	}
}

// error writes an error response using the error code to pick the status.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	code := docscope.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case docscope.EINVALID:
		status = http.StatusBadRequest
	case docscope.ENOTFOUND:
		status = http.StatusNotFound
	case docscope.EUNAVAILABLE:
		status = http.StatusBadGateway
	}

	if code == docscope.EINTERNAL {
		s.Logger.Error("internal error", "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: docscope.ErrorMessage(err)})
}

// logRequests assigns each request an ID and logs method, path, status and
// duration at info level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.Logger.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(begin),
		)
	})
}

// statusWriter records the status code written to a response.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
