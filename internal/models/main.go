// Package models defines the core data structures for credentials and
// the results of sign-in and sign-up submissions.
package models

import "errors"

var (
	// ErrNotFound is returned by a credential store when no record matches.
	ErrNotFound = errors.New("credential not found")
	// ErrAlreadyExists is returned by a credential store when the email is taken.
	ErrAlreadyExists = errors.New("credential already exists")
)

// Credential is a stored account.
type Credential struct {
	// Email is the unique key of the record.
	Email string `json:"email"`
	// Password is kept as plain text.
	Password string `json:"password"`
}

// SeedCredentials returns the accounts every store starts with.
// A fresh slice is returned on each call.
func SeedCredentials() []Credential {
	return []Credential{
		{Email: "test@example.com", Password: "Test@1234"},
		{Email: "admin@demo.com", Password: "Admin#2024"},
		{Email: "user@site.com", Password: "User$Pass1"},
	}
}

// Field identifies the form input an error belongs to.
type Field string

const (
	// FieldEmail is the email input.
	FieldEmail Field = "email"
	// FieldPassword is the password input.
	FieldPassword Field = "password"
	// FieldConfirmPassword is the password confirmation input (sign-up only).
	FieldConfirmPassword Field = "confirm_password"
)

// FormErrors holds the field-scoped error text of a submission.
// An empty string means the field has no error.
type FormErrors struct {
	Email           string `json:"email,omitempty"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// Empty reports whether no field carries an error.
func (e FormErrors) Empty() bool {
	return e.Email == "" && e.Password == "" && e.ConfirmPassword == ""
}

// Set stores msg on the given field.
func (e *FormErrors) Set(field Field, msg string) {
	switch field {
	case FieldEmail:
		e.Email = msg
	case FieldPassword:
		e.Password = msg
	case FieldConfirmPassword:
		e.ConfirmPassword = msg
	}
}

// Result is the outcome of a sign-in or sign-up submission.
type Result struct {
	// Email is the session email; set only when the submission succeeded.
	Email string `json:"email,omitempty"`
	// Errors is the field error that stopped the submission, if any.
	Errors FormErrors `json:"errors"`
}

// OK reports whether the submission passed every check.
func (r Result) OK() bool {
	return r.Errors.Empty()
}

// Fail builds a failed Result with msg on field.
func Fail(field Field, msg string) Result {
	var r Result
	r.Errors.Set(field, msg)
	return r
}
