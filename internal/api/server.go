package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sajith/panchangam/internal/almanac"
	"github.com/sajith/panchangam/internal/store"
)

type Server struct {
	almanac *almanac.Reader
	store   *store.Store
	listen  string
	loc     *time.Location
}

func NewServer(reader *almanac.Reader, st *store.Store, listen string, loc *time.Location) *Server {
	return &Server{
		almanac: reader,
		store:   st,
		listen:  listen,
		loc:     loc,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/day/", s.handleDay)
	mux.HandleFunc("/api/month/", s.handleMonthSlug)
	mux.HandleFunc("/api/months/", s.handleMonth)
	mux.HandleFunc("/api/year/", s.handleYear)
	mux.HandleFunc("/api/week", s.handleWeek)
	mux.HandleFunc("/api/festivals/", s.handleObservances)
	mux.HandleFunc("/api/gold", s.handleGoldRate)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.listen,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeInvalid reports a malformed date/slug/key from the caller. Distinct
// from writeNotFound: a bad URL is a 400 the caller can fix, a valid date
// with no data is a gap in the curated files.
func (s *Server) writeInvalid(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_date"})
}

func (s *Server) writeNotFound(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
}
