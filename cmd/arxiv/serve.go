package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	arxiv "github.com/tmc/arxivid"
)

const (
	maxRequestBodySize = 64 << 10
	defaultListLimit   = 50
	maxListLimit       = 500
)

func cmdServe(ctx context.Context, env *env, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", env.cfg.Server.Addr, "Address to listen on")
	fs.Parse(args)

	ledger := env.openLedger()
	defer ledger.Close()

	srv := newServer(ledger, env.log, newMetrics())
	handler := srv.routes(env.cfg.Server)

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  env.cfg.Server.ReadTimeout,
		WriteTimeout: env.cfg.Server.WriteTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			env.log.Error().Err(err).Msg("shutdown")
		}
	}()

	env.log.Info().Str("addr", *addr).Str("ledger", ledger.Path()).Msg("starting server")
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		env.log.Fatal().Err(err).Msg("server error")
	}
}

type server struct {
	ledger  *arxiv.Ledger
	log     zerolog.Logger
	metrics *metrics
}

func newServer(ledger *arxiv.Ledger, logger zerolog.Logger, m *metrics) *server {
	return &server{ledger: ledger, log: logger, metrics: m}
}

func (s *server) routes(cfg ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(s.rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)))
		}
		r.Get("/ids/{id}", s.handleID)
		r.Get("/categories/{category}", s.handleCategory)
		r.Get("/archives", s.handleArchives)
		r.Get("/stamps", s.handleParseStamp)
		r.Post("/stamps", s.handleRecordStamp)
		r.Get("/ledger", s.handleList)
		r.Get("/ledger/stats", s.handleStats)
		r.Get("/ledger/sitemap.xml", s.handleSitemap)
		r.Get("/ledger/{id}", s.handleLookup)
		r.Delete("/ledger/{id}", s.handleDelete)
	})
	return r
}

func (s *server) rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				s.metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limited", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Response bodies.

type idResponse struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Number      string `json:"number"`
	Version     int    `json:"version,omitempty"`
	Latest      bool   `json:"latest"`
	AbstractURL string `json:"abstract_url"`
	PDFURL      string `json:"pdf_url"`
}

type categoryResponse struct {
	Category    string `json:"category"`
	Archive     string `json:"archive"`
	ArchiveName string `json:"archive_name"`
	Subject     string `json:"subject"`
	Group       string `json:"group"`
	GroupName   string `json:"group_name"`
}

type stampResponse struct {
	Stamp     string            `json:"stamp"`
	ID        idResponse        `json:"id"`
	Category  *categoryResponse `json:"category,omitempty"`
	Submitted string            `json:"submitted"`
}

type archiveResponse struct {
	Archive string `json:"archive"`
	Name    string `json:"name"`
	Group   string `json:"group"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type recordRequest struct {
	Line string `json:"line"`
}

func newIDResponse(id arxiv.ID) idResponse {
	return idResponse{
		ID:          id.String(),
		Year:        id.Year,
		Month:       id.Month,
		Number:      id.Number,
		Version:     id.Version,
		Latest:      id.IsLatest(),
		AbstractURL: id.AbstractURL(),
		PDFURL:      id.PDFURL(),
	}
}

func newCategoryResponse(c arxiv.Category) categoryResponse {
	return categoryResponse{
		Category:    c.String(),
		Archive:     c.Archive().String(),
		ArchiveName: c.Archive().Name(),
		Subject:     c.Subject(),
		Group:       c.Group().String(),
		GroupName:   c.Group().Name(),
	}
}

func newStampResponse(st arxiv.Stamp) stampResponse {
	resp := stampResponse{
		Stamp:     st.String(),
		ID:        newIDResponse(st.ID()),
		Submitted: st.Submitted().String(),
	}
	if c, ok := st.Category(); ok {
		cr := newCategoryResponse(c)
		resp.Category = &cr
	}
	return resp
}

// Handlers.

// idParam reads an identifier from the URL, accepting the bare YYMM.NNNNN form.
func idParam(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if !strings.HasPrefix(raw, "arXiv:") {
		raw = "arXiv:" + raw
	}
	return raw
}

func (s *server) handleID(w http.ResponseWriter, r *http.Request) {
	id, err := arxiv.ParseID(idParam(r))
	s.metrics.observeParse("id", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}
	writeJSON(w, http.StatusOK, newIDResponse(id))
}

func (s *server) handleCategory(w http.ResponseWriter, r *http.Request) {
	c, err := arxiv.ParseCategory(chi.URLParam(r, "category"))
	s.metrics.observeParse("category", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}
	writeJSON(w, http.StatusOK, newCategoryResponse(c))
}

func (s *server) handleArchives(w http.ResponseWriter, r *http.Request) {
	archives := arxiv.Archives()
	out := make([]archiveResponse, 0, len(archives))
	for _, a := range archives {
		out = append(out, archiveResponse{Archive: a.String(), Name: a.Name(), Group: a.Group().String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleParseStamp(w http.ResponseWriter, r *http.Request) {
	line := r.URL.Query().Get("line")
	if line == "" {
		writeError(w, http.StatusBadRequest, "line query parameter is required", "")
		return
	}
	st, err := arxiv.ParseStamp(line)
	s.metrics.observeParse("stamp", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}
	writeJSON(w, http.StatusOK, newStampResponse(st))
}

func (s *server) handleRecordStamp(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", "")
		return
	}
	var req recordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body", "")
		return
	}

	st, err := arxiv.ParseStamp(strings.TrimSpace(req.Line))
	s.metrics.observeParse("stamp", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}

	err = s.ledger.Record(r.Context(), st)
	s.metrics.observeLedger("record", err)
	if err != nil {
		s.log.Error().Err(err).Str("stamp", st.String()).Msg("record stamp")
		writeError(w, http.StatusInternalServerError, "failed to record stamp", "")
		return
	}
	s.log.Info().Str("id", st.ID().String()).Msg("stamp recorded")
	writeJSON(w, http.StatusCreated, newStampResponse(st))
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	id, err := arxiv.ParseID(idParam(r))
	s.metrics.observeParse("id", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}

	st, err := s.ledger.Lookup(r.Context(), id)
	s.metrics.observeLedger("lookup", err)
	switch {
	case errors.Is(err, arxiv.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "not_found")
		return
	case err != nil:
		s.log.Error().Err(err).Str("id", id.String()).Msg("lookup stamp")
		writeError(w, http.StatusInternalServerError, "failed to look up stamp", "")
		return
	}
	writeJSON(w, http.StatusOK, newStampResponse(st))
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := arxiv.ParseID(idParam(r))
	s.metrics.observeParse("id", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errorKind(err))
		return
	}

	err = s.ledger.Delete(r.Context(), id)
	s.metrics.observeLedger("delete", err)
	switch {
	case errors.Is(err, arxiv.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "not_found")
		return
	case err != nil:
		s.log.Error().Err(err).Str("id", id.String()).Msg("delete stamp")
		writeError(w, http.StatusInternalServerError, "failed to delete stamp", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	stamps, err := s.ledger.List(r.Context(), opts)
	s.metrics.observeLedger("list", err)
	if err != nil {
		s.log.Error().Err(err).Msg("list stamps")
		writeError(w, http.StatusInternalServerError, "failed to list stamps", "")
		return
	}

	out := make([]stampResponse, 0, len(stamps))
	for _, st := range stamps {
		out = append(out, newStampResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ledger.Stats(r.Context())
	s.metrics.observeLedger("stats", err)
	if err != nil {
		s.log.Error().Err(err).Msg("ledger stats")
		writeError(w, http.StatusInternalServerError, "failed to read stats", "")
		return
	}

	byGroup := make(map[string]int64, len(stats.ByGroup))
	for g, n := range stats.ByGroup {
		byGroup[g.String()] = n
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":         stats.Total,
		"with_category": stats.WithCategory,
		"by_group":      byGroup,
	})
}

// maxSitemapURLs is the sitemaps.org per-file limit.
const maxSitemapURLs = 50000

func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	stamps, err := s.ledger.List(r.Context(), arxiv.ListOptions{Limit: maxSitemapURLs})
	s.metrics.observeLedger("sitemap", err)
	if err != nil {
		s.log.Error().Err(err).Msg("list stamps for sitemap")
		writeError(w, http.StatusInternalServerError, "failed to build sitemap", "")
		return
	}
	data, err := arxiv.BuildSitemap(stamps)
	if err != nil {
		s.log.Error().Err(err).Msg("build sitemap")
		writeError(w, http.StatusInternalServerError, "failed to build sitemap", "")
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(data)
}

func listOptionsFromQuery(r *http.Request) (arxiv.ListOptions, error) {
	q := r.URL.Query()
	opts := arxiv.ListOptions{Limit: defaultListLimit}

	if v := q.Get("archive"); v != "" {
		a, err := arxiv.ParseArchive(v)
		if err != nil {
			return opts, err
		}
		opts.Archive = a
	}
	if v := q.Get("group"); v != "" {
		g, err := arxiv.ParseGroup(v)
		if err != nil {
			return opts, err
		}
		opts.Group = g
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			return opts, errors.New("limit must be between 1 and 500")
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.New("offset must not be negative")
		}
		opts.Offset = n
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
