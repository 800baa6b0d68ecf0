package http

import (
	"net/http"

	"github.com/atinyakov/GophForms/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the form
// pages and the JSON API.
//
// Parameters:
//
//	pageHandler  - handler for the HTML sign-in and sign-up pages
//	authHandler  - handler for the JSON endpoints
//	logger       - structured logger for request logging middleware
//
// Routes:
//
//	GET  /                → redirect to /sign-in
//	GET  /sign-in         → pageHandler.SignInForm
//	POST /sign-in         → pageHandler.SignIn
//	POST /sign-in/logout  → pageHandler.Logout
//	GET  /sign-up         → pageHandler.SignUpForm
//	POST /sign-up         → pageHandler.SignUp
//	POST /sign-up/reset   → pageHandler.ResetSignUp
//	POST /api/sign-in     → authHandler.SignIn
//	POST /api/sign-up     → authHandler.SignUp
//
// Form routes accept only application/x-www-form-urlencoded bodies and API
// routes only application/json.
func NewRouter(
	pageHandler *PageHandler,
	authHandler *AuthHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", pageHandler.Index)

	// HTML pages
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/x-www-form-urlencoded"))

		r.Get("/sign-in", pageHandler.SignInForm)
		r.Post("/sign-in", pageHandler.SignIn)
		r.Post("/sign-in/logout", pageHandler.Logout)

		r.Get("/sign-up", pageHandler.SignUpForm)
		r.Post("/sign-up", pageHandler.SignUp)
		r.Post("/sign-up/reset", pageHandler.ResetSignUp)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Post("/sign-in", authHandler.SignIn)
		r.Post("/sign-up", authHandler.SignUp)
	})

	return r
}
