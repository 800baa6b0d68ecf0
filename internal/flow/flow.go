// Package flow holds the sign-in and sign-up form state machines.
//
// A flow starts in FormVisible. A successful submit moves it to its terminal
// state (Authenticated or Registered) and records the session email; a failed
// submit stays in FormVisible with exactly one field error. Logout and Reset
// return to an empty form.
//
// Flows are not safe for concurrent use. Each HTTP request or client shell
// owns its own value.
package flow

import (
	"context"
	"errors"

	"github.com/atinyakov/GophForms/internal/models"
)

// ErrInvalidTransition is returned when Submit is called outside FormVisible.
var ErrInvalidTransition = errors.New("flow: submit is only allowed while the form is visible")

// State is a flow state.
type State int

const (
	// FormVisible is the initial state: the form is shown and accepts submits.
	FormVisible State = iota
	// Authenticated is the sign-in terminal state.
	Authenticated
	// Registered is the sign-up terminal state.
	Registered
)

func (s State) String() string {
	switch s {
	case FormVisible:
		return "form"
	case Authenticated:
		return "authenticated"
	case Registered:
		return "registered"
	default:
		return "unknown"
	}
}

// SignInSubmitter runs the sign-in checks.
type SignInSubmitter interface {
	SignIn(ctx context.Context, email, password string) (models.Result, error)
}

// SignUpSubmitter runs the sign-up checks and registers the account.
type SignUpSubmitter interface {
	SignUp(ctx context.Context, email, password, confirm string) (models.Result, error)
}

// SignIn is the sign-in form: FormVisible until a submit succeeds,
// Authenticated until Logout.
type SignIn struct {
	auth SignInSubmitter

	state        State
	email        string
	errors       models.FormErrors
	sessionEmail string
}

// NewSignIn returns a sign-in flow showing an empty form.
func NewSignIn(auth SignInSubmitter) *SignIn {
	return &SignIn{auth: auth}
}

// Submit runs the sign-in checks for the given input.
// The field errors of the previous submit are replaced by this one's. A non-nil
// error means the checks could not run (or the flow is not accepting submits)
// and nothing changes.
func (f *SignIn) Submit(ctx context.Context, email, password string) error {
	if f.state != FormVisible {
		return ErrInvalidTransition
	}

	res, err := f.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	f.email = email
	f.errors = res.Errors
	if res.OK() {
		f.sessionEmail = res.Email
		f.state = Authenticated
	}
	return nil
}

// Logout clears the session email, inputs and errors and shows the form again.
func (f *SignIn) Logout() {
	*f = SignIn{auth: f.auth}
}

// State returns the current state.
func (f *SignIn) State() State { return f.state }

// Email returns the email input as last submitted.
func (f *SignIn) Email() string { return f.email }

// Errors returns the field errors of the last submit.
func (f *SignIn) Errors() models.FormErrors { return f.errors }

// SessionEmail returns the signed-in email, or "" while the form is shown.
func (f *SignIn) SessionEmail() string { return f.sessionEmail }

// SignUp is the sign-up form: FormVisible until a submit succeeds,
// Registered until Reset.
type SignUp struct {
	auth SignUpSubmitter

	state        State
	email        string
	errors       models.FormErrors
	sessionEmail string
}

// NewSignUp returns a sign-up flow showing an empty form.
func NewSignUp(auth SignUpSubmitter) *SignUp {
	return &SignUp{auth: auth}
}

// Submit runs the sign-up checks and, when all pass, registers the account.
func (f *SignUp) Submit(ctx context.Context, email, password, confirm string) error {
	if f.state != FormVisible {
		return ErrInvalidTransition
	}

	res, err := f.auth.SignUp(ctx, email, password, confirm)
	if err != nil {
		return err
	}

	f.email = email
	f.errors = res.Errors
	if res.OK() {
		f.sessionEmail = res.Email
		f.state = Registered
	}
	return nil
}

// Reset clears every field and error and shows a fresh form.
// The account registered before the reset stays in the store.
func (f *SignUp) Reset() {
	*f = SignUp{auth: f.auth}
}

// State returns the current state.
func (f *SignUp) State() State { return f.state }

// Email returns the email input as last submitted.
func (f *SignUp) Email() string { return f.email }

// Errors returns the field errors of the last submit.
func (f *SignUp) Errors() models.FormErrors { return f.errors }

// SessionEmail returns the registered email, or "" while the form is shown.
func (f *SignUp) SessionEmail() string { return f.sessionEmail }
