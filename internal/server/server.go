// Package server exposes the rig over HTTP so remote test harnesses
// can pull a byte stream without shelling out to the CLI.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"pkg.jsn.cam/randtap/internal/driver"
	"pkg.jsn.cam/randtap/pkg/generators"
	"pkg.jsn.cam/randtap/pkg/randtap"
)

// Server serves generator streams and metadata.
type Server struct {
	mux *http.ServeMux
}

// New creates a server with its routes installed.
func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /stream", s.handleStream)
	s.mux.HandleFunc("GET /generators", wrap(s.handleGenerators))
	s.mux.HandleFunc("GET /health", wrap(s.handleHealth))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving on addr until the listener fails or
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.Printf("[SERVER] listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// handleStream streams raw generator output. Query parameters:
// generator (required), seed (uint64 or 0x-prefixed bytes), n (byte
// count, required - unbounded streams are a CLI affair), split
// (optional index), chunk (optional chunk size).
//
// The body is the raw unframed byte stream; disconnecting cancels the
// run between chunk writes via the request context.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseStreamRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, randtap.ErrUnknownGenerator) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")

	d := driver.New(req.src, w, req.n, req.chunk)
	stats, err := d.Run(r.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		// Headers are gone; all we can do is log and cut the stream.
		log.Printf("[SERVER] stream error: %v", err)
		return
	}
	log.Printf("[SERVER] served %d bytes of %q (run %s)", stats.Bytes, req.name, stats.RunID)
}

func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) error {
	type info struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		SeedWidth   int    `json:"seed_width"`
		BlockSize   int    `json:"block_size"`
	}
	var out []info
	for _, name := range generators.List() {
		f := generators.Registry[name]
		out = append(out, info{
			Name:        f.Name,
			Description: f.Description,
			SeedWidth:   f.SeedWidth,
			BlockSize:   f.BlockSize,
		})
	}
	writeJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}
