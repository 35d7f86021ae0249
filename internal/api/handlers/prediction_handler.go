package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/metrics"
	"github.com/edu2job/edu2job-server/internal/services"
)

// Client-facing prediction failure messages.
const (
	MsgUpstreamError       = "Error from prediction service"
	MsgUpstreamUnavailable = "Prediction service is unreachable. Please try again later."
)

// PredictionHandler proxies career predictions to the inference service.
type PredictionHandler struct {
	service services.PredictionServiceProvider
	metrics *metrics.Metrics
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(service services.PredictionServiceProvider, m *metrics.Metrics) *PredictionHandler {
	return &PredictionHandler{service: service, metrics: m}
}

// Predict validates the profile and forwards it upstream. Must be mounted
// behind auth.Guard.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.metrics.Prediction(metrics.PredictionInvalidRequest)
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := h.service.Validate(body)
	if err != nil {
		h.metrics.Prediction(metrics.PredictionInvalidRequest)
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": verr.Message,
				"errors":  verr.Fields,
			})
			return
		}
		writeMessage(w, http.StatusBadRequest, services.MsgInvalidPrediction)
		return
	}

	log.Info().
		Str("user_id", claims.UserID).
		Str("degree", req.Degree).
		Int("skills", len(req.Skills)).
		Msg("Forwarding prediction request")

	resp, err := h.service.Forward(r.Context(), body, r.Header.Get("Authorization"))
	if err != nil {
		var upErr *services.UpstreamError
		switch {
		case errors.As(err, &upErr):
			h.metrics.Prediction(metrics.PredictionUpstreamError)
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Prediction service returned an error")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"message": MsgUpstreamError,
				"details": upstreamDetails(upErr.Body),
			})
		case errors.Is(err, services.ErrUpstreamUnavailable):
			h.metrics.Prediction(metrics.PredictionUnavailable)
			writeMessage(w, http.StatusInternalServerError, MsgUpstreamUnavailable)
		default:
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Prediction proxy failure")
			writeMessage(w, http.StatusInternalServerError, MsgUpstreamUnavailable)
		}
		return
	}

	h.metrics.Prediction(metrics.PredictionOK)
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

// upstreamDetails embeds a JSON upstream body as-is and anything else as a string.
func upstreamDetails(body []byte) any {
	if json.Valid(body) && len(body) > 0 {
		return json.RawMessage(body)
	}
	return string(body)
}
