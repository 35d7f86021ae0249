package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/metrics"
	"github.com/edu2job/edu2job-server/internal/services"
)

// UserHandler handles registration and login.
type UserHandler struct {
	service services.UserServiceProvider
	metrics *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, m *metrics.Metrics) *UserHandler {
	return &UserHandler{service: service, metrics: m}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload services.RegisterInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			writeMessage(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrEmailInUse):
			h.metrics.AuthEvent(metrics.EventRegisterConflict)
			writeMessage(w, http.StatusBadRequest, "Email already in use")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			writeMessage(w, http.StatusInternalServerError, "Server error during registration")
		}
		return
	}

	h.metrics.AuthEvent(metrics.EventRegister)
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// Login handles user authentication and JWT generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			writeMessage(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrInvalidCredentials):
			h.metrics.AuthEvent(metrics.EventLoginFailed)
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to log in user")
			writeMessage(w, http.StatusInternalServerError, "Server error during login")
		}
		return
	}

	h.metrics.AuthEvent(metrics.EventLogin)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   result.Token,
		"name":    result.User.Name,
	})
}
