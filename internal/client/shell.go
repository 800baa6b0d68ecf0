package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/GophForms/internal/flow"
	"github.com/atinyakov/GophForms/internal/models"
)

// ErrRejected is returned by Shell.SignIn and Shell.SignUp when the server
// answered with a field error. The error text has already been printed.
var ErrRejected = errors.New("rejected")

// Authenticator runs both sign-in and sign-up checks.
type Authenticator interface {
	flow.SignInSubmitter
	flow.SignUpSubmitter
}

const shellHelp = `Available commands:
  signin [email]   sign in to an account
  signup [email]   create an account
  logout           sign out
  another          clear the sign-up form to create another account
  status           show the state of both forms
  help             show this help
  exit             leave the shell`

// Shell holds one sign-in and one sign-up flow for the lifetime of a session.
type Shell struct {
	signIn *flow.SignIn
	signUp *flow.SignUp
	prompt *Prompter
	out    io.Writer
}

// NewShell returns a Shell whose flows submit through auth.
func NewShell(auth Authenticator, prompt *Prompter, out io.Writer) *Shell {
	return &Shell{
		signIn: flow.NewSignIn(auth),
		signUp: flow.NewSignUp(auth),
		prompt: prompt,
		out:    out,
	}
}

// SignIn prompts for whatever is missing and submits the sign-in form.
func (s *Shell) SignIn(ctx context.Context, email string) error {
	if s.signIn.State() != flow.FormVisible {
		fmt.Fprintf(s.out, "Already signed in as %s. Run logout first.\n", s.signIn.SessionEmail())
		return nil
	}

	email, err := s.askEmail(email)
	if err != nil {
		return err
	}
	password, err := s.prompt.Secret("Password: ")
	if err != nil {
		return err
	}

	if err := s.signIn.Submit(ctx, email, password); err != nil {
		return err
	}
	if s.signIn.State() == flow.Authenticated {
		fmt.Fprintf(s.out, "Welcome Back! Signed in as %s\n", s.signIn.SessionEmail())
		return nil
	}
	s.printErrors(s.signIn.Errors())
	return ErrRejected
}

// SignUp prompts for whatever is missing and submits the sign-up form.
func (s *Shell) SignUp(ctx context.Context, email string) error {
	if s.signUp.State() != flow.FormVisible {
		fmt.Fprintf(s.out, "Account %s already created. Run another to register a new one.\n", s.signUp.SessionEmail())
		return nil
	}

	email, err := s.askEmail(email)
	if err != nil {
		return err
	}
	password, err := s.prompt.Secret("Password: ")
	if err != nil {
		return err
	}
	confirm, err := s.prompt.Secret("Confirm password: ")
	if err != nil {
		return err
	}

	if err := s.signUp.Submit(ctx, email, password, confirm); err != nil {
		return err
	}
	if s.signUp.State() == flow.Registered {
		fmt.Fprintf(s.out, "Account Created! %s can now sign in.\n", s.signUp.SessionEmail())
		return nil
	}
	s.printErrors(s.signUp.Errors())
	return ErrRejected
}

// Logout signs out and clears the sign-in form.
func (s *Shell) Logout() {
	s.signIn.Logout()
	fmt.Fprintln(s.out, "Signed out.")
}

// Another clears the sign-up form.
func (s *Shell) Another() {
	s.signUp.Reset()
	fmt.Fprintln(s.out, "Sign-up form cleared.")
}

// Status prints the state of both flows.
func (s *Shell) Status() {
	fmt.Fprintf(s.out, "sign-in: %s\n", describe(s.signIn.State(), s.signIn.SessionEmail()))
	fmt.Fprintf(s.out, "sign-up: %s\n", describe(s.signUp.State(), s.signUp.SessionEmail()))
}

// Run reads commands until exit, end of input or ctx is done.
// Rejected submits and request failures are printed and the loop goes on.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.prompt.Line("gophforms> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		var cmdErr error
		switch args[0] {
		case "signin":
			cmdErr = s.SignIn(ctx, argOrEmpty(args, 1))
		case "signup":
			cmdErr = s.SignUp(ctx, argOrEmpty(args, 1))
		case "logout":
			s.Logout()
		case "another":
			s.Another()
		case "status":
			s.Status()
		case "help":
			fmt.Fprintln(s.out, shellHelp)
		case "exit", "quit":
			fmt.Fprintln(s.out, "Bye")
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
		}

		if cmdErr != nil && !errors.Is(cmdErr, ErrRejected) {
			fmt.Fprintf(s.out, "error: %v\n", cmdErr)
		}
	}
}

func (s *Shell) askEmail(email string) (string, error) {
	if email != "" {
		return email, nil
	}
	return s.prompt.Line("Email: ")
}

func (s *Shell) printErrors(e models.FormErrors) {
	if e.Email != "" {
		fmt.Fprintf(s.out, "email: %s\n", e.Email)
	}
	if e.Password != "" {
		fmt.Fprintf(s.out, "password: %s\n", e.Password)
	}
	if e.ConfirmPassword != "" {
		fmt.Fprintf(s.out, "confirm password: %s\n", e.ConfirmPassword)
	}
}

func describe(state flow.State, email string) string {
	if email == "" {
		return state.String()
	}
	return fmt.Sprintf("%s (%s)", state, email)
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
