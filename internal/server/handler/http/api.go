// Package http provides the HTML form pages and the JSON API for signing in
// and signing up, and the router that mounts them.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/GophForms/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the sign-in and sign-up operations
// required by the HTTP handlers.
type AuthService interface {
	// SignIn validates the credentials against the store.
	// Validation failures are reported in the Result, not as errors.
	SignIn(ctx context.Context, email, password string) (models.Result, error)
	// SignUp validates the input and registers the account when every check passes.
	SignUp(ctx context.Context, email, password, confirm string) (models.Result, error)
}

// AuthHandler handles JSON requests for sign-in and sign-up.
type AuthHandler struct {
	// AuthService performs the underlying checks.
	AuthService AuthService
	// Logger records failures; nil disables logging.
	Logger *zap.Logger
}

// SignInRequest represents the JSON payload for sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest represents the JSON payload for sign-up.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Response is the JSON body of both endpoints.
type Response struct {
	// Status is "ok" or "error".
	Status string `json:"status"`
	// Email is the session email on success.
	Email string `json:"email,omitempty"`
	// Errors holds the field error on failure.
	Errors *models.FormErrors `json:"errors,omitempty"`
}

// SignIn handles POST /api/sign-in.
// It responds 200 with the session email, or 422 with the field error.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger().Error("sign-in failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res)
}

// SignUp handles POST /api/sign-up.
// It responds 200 with the registered email, or 422 with the field error.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.AuthService.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.logger().Error("sign-up failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, res models.Result) {
	w.Header().Set("Content-Type", "application/json")
	if res.OK() {
		_ = json.NewEncoder(w).Encode(Response{Status: "ok", Email: res.Email})
		return
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(Response{Status: "error", Errors: &res.Errors})
}

func (h *AuthHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
