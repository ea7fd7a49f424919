package brands

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/adapters/supabase"
)

// Handler serves the public brand gallery: GET /api/brands, optionally
// filtered with ?group=<internal group name>.
type Handler struct {
	catalog *supabase.BrandCatalog
	logger  *zap.Logger
}

// NewHandler creates a new brands handler
func NewHandler(catalog *supabase.BrandCatalog, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// brandView is the public shape of a catalog entry. Group names are mapped
// to their display labels so internal instance names never leak.
type brandView struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Group   string `json:"group,omitempty"`
}

type brandsResponse struct {
	OK     bool        `json:"ok"`
	Brands []brandView `json:"brands"`
}

type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// HandleBrands lists the visible brands.
func (h *Handler) HandleBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var (
		brands []supabase.Brand
		err    error
	)
	if group := r.URL.Query().Get("group"); group != "" {
		brands, err = h.catalog.ByGroup(r.Context(), group)
	} else {
		brands, err = h.catalog.All(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to load brand catalog", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "brand catalog unavailable")
		return
	}

	views := make([]brandView, 0, len(brands))
	for _, b := range brands {
		views = append(views, brandView{
			ID:      b.ID,
			Name:    b.Name,
			LogoURL: b.LogoURL,
			Group:   supabase.DisplayName(b.Group),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(brandsResponse{OK: true, Brands: views})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{OK: false, Error: message})
}
