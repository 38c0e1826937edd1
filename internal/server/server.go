// Package server exposes a similarity measure over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/simcache"
	"github.com/cognicore/wnsim/pkg/wnsim/similarity"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// Suggester is implemented by dictionaries that can propose close lemmas.
type Suggester interface {
	Suggest(lemma string, max int) []string
}

const maxSuggestions = 5

// Handler serves similarity queries. Access to the measure is serialised.
type Handler struct {
	mu      sync.Mutex
	measure *similarity.Measure
	logger  *slog.Logger
}

// NewHandler creates a handler for measure.
func NewHandler(measure *similarity.Measure, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{measure: measure, logger: logger}
}

// Router builds the full router with middleware.
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(h.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/similarity", h.Similarity)
	r.Get("/synsets", h.Synsets)
	r.Get("/stats", h.Stats)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error       string              `json:"error"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// Similarity scores the words w1 and w2.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	w1 := strings.TrimSpace(r.URL.Query().Get("w1"))
	w2 := strings.TrimSpace(r.URL.Query().Get("w2"))
	if w1 == "" || w2 == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "w1 and w2 are required"})
		return
	}

	h.mu.Lock()
	info, err := h.measure.WordSimilarity(r.Context(), w1, w2)
	h.mu.Unlock()
	if err != nil {
		h.writeError(w, err)
		return
	}

	if info == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       "no synsets found",
			Suggestions: h.suggest(w1, w2),
		})
		return
	}

	writeJSON(w, http.StatusOK, info)
}

type synsetResponse struct {
	ID    string   `json:"id"`
	POS   string   `json:"pos"`
	Words []string `json:"words"`
	Gloss string   `json:"gloss,omitempty"`
}

// Synsets lists the synsets a word resolves to.
func (h *Handler) Synsets(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(r.URL.Query().Get("word"))
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "word is required"})
		return
	}

	h.mu.Lock()
	synsets, err := h.measure.Synsets(r.Context(), word)
	h.mu.Unlock()
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]synsetResponse, 0, len(synsets))
	for _, s := range synsets {
		out = append(out, synsetResponse{
			ID:    s.ID().String(),
			POS:   s.POS.String(),
			Words: s.Words,
			Gloss: s.Gloss,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"word": word, "synsets": out})
}

type statsResponse struct {
	Measure     string         `json:"measure"`
	Version     string         `json:"version"`
	SingleRoot  bool           `json:"single_root"`
	Mappings    int            `json:"mappings"`
	Frequencies int            `json:"frequencies"`
	Cache       simcache.Stats `json:"cache"`
}

// Stats reports measure configuration and cache usage.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := statsResponse{
		Measure:     h.measure.Name(),
		Version:     h.measure.Dictionary().Version(),
		SingleRoot:  h.measure.Options().SingleRoot,
		Mappings:    h.measure.DomainMap().Len(),
		Frequencies: h.measure.InfoContent().Len(),
		Cache:       h.measure.CacheStats(),
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) suggest(words ...string) map[string][]string {
	sg, ok := h.measure.Dictionary().(Suggester)
	if !ok {
		return nil
	}

	out := make(map[string][]string)
	for _, word := range words {
		term := wordnet.Term(word)
		if s := sg.Suggest(term, maxSuggestions); len(s) > 0 {
			out[term] = s
		}
	}
	return out
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, internalerr.ErrInvalidTag) || errors.Is(err, internalerr.ErrInvalidToken) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
