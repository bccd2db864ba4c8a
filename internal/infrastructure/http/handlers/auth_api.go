package handlers

import (
	"net/http"

	"github.com/recipehub/api/internal/infrastructure/http/middleware"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	userService inbound.UserService
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(userService inbound.UserService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		logger:      logger.Named("auth-api"),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if appErr := decodeAndValidate(r, &cmd); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	result, err := h.userService.Register(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if appErr := decodeAndValidate(r, &cmd); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	result, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthAPIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}
