package signup

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	signupservice "github.com/neataffiliates/signup-feed-service/internal/services/signup"
	pkgerrors "github.com/neataffiliates/signup-feed-service/pkg/errors"
)

// Handler exposes the feed translator endpoints. One route serves every
// brand: POST /api/signup/{brand}.
type Handler struct {
	service *signupservice.Service
	logger  *zap.Logger
}

// NewHandler creates a new signup handler
func NewHandler(service *signupservice.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// errorEnvelope is the JSON error shape the signup forms expect.
type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// HandleSignup translates a signup payload for the brand's feed and relays
// the raw upstream response. Success and upstream rejection both relay the
// body verbatim (the forms log it for operator debugging); only local
// failures produce the JSON envelope.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	brand := r.PathValue("brand")

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Parse failures are reported like any other unexpected error.
		h.logger.Error("failed to decode signup request",
			zap.String("brand", brand),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Submit(r.Context(), brand, req.ToPayload())
	if err != nil {
		h.writeSubmitError(w, brand, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	if result.Accepted {
		w.WriteHeader(http.StatusOK)
	} else {
		// Upstream rejected the submission; relay its body for diagnosis.
		w.WriteHeader(http.StatusBadRequest)
	}
	w.Write(result.Body)
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, brand string, err error) {
	if errors.Is(err, signupservice.ErrUnknownBrand) {
		h.writeError(w, http.StatusNotFound, "unknown brand: "+brand)
		return
	}

	var vErr *pkgerrors.ValidationError
	if errors.As(err, &vErr) {
		h.writeError(w, http.StatusBadRequest, vErr.Message)
		return
	}

	var fErr *pkgerrors.FeedError
	if errors.As(err, &fErr) {
		// Config and transport failures are both server-side faults.
		h.writeError(w, http.StatusInternalServerError, fErr.Message)
		return
	}

	h.logger.Error("unexpected signup failure", zap.String("brand", brand), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{OK: false, Error: message})
}
