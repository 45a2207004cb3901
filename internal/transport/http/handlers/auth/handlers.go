package authhandler

import (
	"errors"
	"net/http"

	"workforce/internal/domain/auth"
	"workforce/internal/platform/logger"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Auth *auth.Service
	Log  *logger.Logger
}

func NewHandler(svc *auth.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{Auth: svc, Log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	session, err := h.Auth.Login(payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		api.Fail(w, http.StatusServiceUnavailable, "auth_not_configured", "operator login is not configured", requestID)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.Log.Warn("login rejected", "email", payload.Email, "requestId", requestID)
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	case err != nil:
		h.Log.Error("token issue failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	}, requestID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	user, ok := requestctx.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	api.Success(w, map[string]string{"email": user.Email, "role": user.Role}, requestID)
}
