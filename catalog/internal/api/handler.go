package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brickset/brickset/catalog/internal/metrics"
	"github.com/brickset/brickset/catalog/internal/query"
	"github.com/brickset/brickset/catalog/internal/store"
	"github.com/brickset/brickset/pkg/types"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	live    *store.Live
	metrics *metrics.Metrics
	mux     *http.ServeMux
}

// New creates a Handler reading from live and registers all routes.
func New(live *store.Live, m *metrics.Metrics) http.Handler {
	h := &Handler{live: live, metrics: m, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/sets", h.sets)
	h.mux.HandleFunc("/api/v1/tags", h.tags)
	h.mux.HandleFunc("/api/v1/tags/count", h.tagCount)
	h.mux.HandleFunc("/api/v1/themes", h.themes)
	h.mux.HandleFunc("/api/v1/themes/exists", h.themeExists)
	h.mux.HandleFunc("/api/v1/pieces/sum", h.sumPieces)
	h.mux.HandleFunc("/api/v1/pieces/partition", h.partition)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Records:  st.Len(),
		Resource: st.Resource(),
		LoadedAt: st.LoadedAt().Format(time.RFC3339),
	})
}

func (h *Handler) sets(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	h.observe(metrics.OpListSets)
	all := st.All()
	if all == nil {
		all = []types.LegoSet{}
	}
	jsonResp(w, http.StatusOK, SetsResponse{Count: len(all), Sets: all})
}

func (h *Handler) tags(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	h.observe(metrics.OpDistinctTags)
	tags := query.DistinctTags(st)
	if tags == nil {
		tags = []string{}
	}
	jsonResp(w, http.StatusOK, TagsResponse{Tags: tags})
}

// tagCount returns GET /api/v1/tags/count?tag=T.
func (h *Handler) tagCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("tag") {
		jsonErr(w, http.StatusBadRequest, "missing query parameter: tag")
		return
	}
	tag := q.Get("tag")
	st := h.live.Current()
	h.observe(metrics.OpCountWithTag)
	jsonResp(w, http.StatusOK, TagCountResponse{Tag: tag, Count: query.CountWithTag(st, tag)})
}

func (h *Handler) themes(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	h.observe(metrics.OpCountByTheme)
	jsonResp(w, http.StatusOK, ThemesResponse{Themes: query.CountByTheme(st)})
}

// themeExists returns GET /api/v1/themes/exists?name=X. Omitting name asks
// whether any set has no theme at all.
func (h *Handler) themeExists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := types.None[string]()
	if q.Has("name") {
		name = types.Some(q.Get("name"))
	}
	st := h.live.Current()
	h.observe(metrics.OpThemeExists)
	jsonResp(w, http.StatusOK, ThemeExistsResponse{Name: name, Exists: query.ThemeExists(st, name)})
}

func (h *Handler) sumPieces(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	h.observe(metrics.OpSumPieces)
	jsonResp(w, http.StatusOK, SumResponse{Sum: query.SumPieces(st)})
}

func (h *Handler) partition(w http.ResponseWriter, _ *http.Request) {
	st := h.live.Current()
	h.observe(metrics.OpPartition)
	parts := query.PartitionByHundredPieces(st)
	jsonResp(w, http.StatusOK, PartitionResponse{Above: parts[true], AtMost: parts[false]})
}

// --- helpers ----------------------------------------------------------------

func (h *Handler) observe(op string) {
	if h.metrics != nil {
		h.metrics.ObserveQuery(op)
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
