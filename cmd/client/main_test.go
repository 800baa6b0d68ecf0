package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/GophForms/internal/client"
	"github.com/atinyakov/GophForms/internal/models"
	"github.com/atinyakov/GophForms/internal/repository"
	handler "github.com/atinyakov/GophForms/internal/server/handler/http"
	"github.com/atinyakov/GophForms/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := repository.NewMemoryCredentialRepository(models.SeedCredentials()...)
	svc := service.NewAuthService(repo, nil)
	srv := httptest.NewServer(handler.NewRouter(
		&handler.PageHandler{AuthService: svc},
		&handler.AuthHandler{AuthService: svc},
		zap.NewNop(),
	))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignInCommand(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, "Test@1234\n", "signin", "--url", srv.URL, "--email", "test@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome Back! Signed in as test@example.com")
}

func TestSignInCommandRejected(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, "nobody@x.com\nwhatever\n", "signin", "--url", srv.URL)
	assert.True(t, errors.Is(err, client.ErrRejected))
	assert.Contains(t, out, "email: Account does not exist")
}

func TestSignUpCommand(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, "New$Pass1\nNew$Pass1\n", "signup", "--url", srv.URL, "--email", "new@site.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Account Created!")
}

func TestShellCommand(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, "signin admin@demo.com\nAdmin#2024\nstatus\nexit\n", "shell", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "sign-in: authenticated (admin@demo.com)")
}

func TestCommandBadCA(t *testing.T) {
	_, err := run(t, "", "signin", "--ca", "/does/not/exist.crt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CA cert")
}
