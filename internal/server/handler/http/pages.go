package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/atinyakov/GophForms/internal/flow"
	"github.com/atinyakov/GophForms/internal/models"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	signInPage = "sign-in.html"
	signUpPage = "sign-up.html"
)

// PageHandler serves the HTML sign-in and sign-up forms.
// Every request runs on its own flow; nothing is kept between requests.
type PageHandler struct {
	// AuthService runs the submitted checks.
	AuthService AuthService
	// Logger records failures; nil disables logging.
	Logger *zap.Logger
}

type signInView struct {
	Authenticated bool
	Email         string
	SessionEmail  string
	Errors        models.FormErrors
}

func newSignInView(f *flow.SignIn) signInView {
	return signInView{
		Authenticated: f.State() == flow.Authenticated,
		Email:         f.Email(),
		SessionEmail:  f.SessionEmail(),
		Errors:        f.Errors(),
	}
}

type signUpView struct {
	Registered   bool
	Email        string
	SessionEmail string
	Errors       models.FormErrors
}

func newSignUpView(f *flow.SignUp) signUpView {
	return signUpView{
		Registered:   f.State() == flow.Registered,
		Email:        f.Email(),
		SessionEmail: f.SessionEmail(),
		Errors:       f.Errors(),
	}
}

// Index redirects to the sign-in form.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// SignInForm handles GET /sign-in by rendering an empty form.
func (h *PageHandler) SignInForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, signInPage, newSignInView(flow.NewSignIn(h.AuthService)))
}

// SignIn handles POST /sign-in. A rejected submit renders the form again with
// the field error; an accepted one renders the welcome view with a logout action.
func (h *PageHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	f := flow.NewSignIn(h.AuthService)
	if err := f.Submit(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password")); err != nil {
		h.logger().Error("sign-in failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, signInPage, newSignInView(f))
}

// Logout handles POST /sign-in/logout and renders an empty sign-in form.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	f := flow.NewSignIn(h.AuthService)
	f.Logout()
	h.render(w, signInPage, newSignInView(f))
}

// SignUpForm handles GET /sign-up by rendering an empty form.
func (h *PageHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, signUpPage, newSignUpView(flow.NewSignUp(h.AuthService)))
}

// SignUp handles POST /sign-up. An accepted submit stores the account and
// renders the confirmation view with links to sign in or start over.
func (h *PageHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	f := flow.NewSignUp(h.AuthService)
	err := f.Submit(r.Context(),
		r.PostForm.Get("email"),
		r.PostForm.Get("password"),
		r.PostForm.Get("confirm_password"),
	)
	if err != nil {
		h.logger().Error("sign-up failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, signUpPage, newSignUpView(f))
}

// ResetSignUp handles POST /sign-up/reset ("create another") and renders an
// empty sign-up form.
func (h *PageHandler) ResetSignUp(w http.ResponseWriter, r *http.Request) {
	f := flow.NewSignUp(h.AuthService)
	f.Reset()
	h.render(w, signUpPage, newSignUpView(f))
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger().Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
