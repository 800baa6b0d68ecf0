// Package client talks to the GophForms JSON API and drives the sign-in and
// sign-up flows from a terminal.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/GophForms/internal/models"
)

const (
	apiSignIn = "/api/sign-in"
	apiSignUp = "/api/sign-up"
)

// Client calls the sign-in and sign-up endpoints.
// It satisfies flow.SignInSubmitter and flow.SignUpSubmitter.
type Client struct {
	http    *http.Client
	baseURL string
}

// New returns a Client for baseURL. When caFile is not empty its certificates
// are the only roots trusted for HTTPS.
func New(baseURL, caFile string) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if caFile != "" {
		caCert, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA cert")
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12}
	}
	return NewWithHTTPClient(baseURL, &http.Client{Transport: transport, Timeout: 10 * time.Second}), nil
}

// NewWithHTTPClient returns a Client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{http: hc, baseURL: strings.TrimRight(baseURL, "/")}
}

type signInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpPayload struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type apiResponse struct {
	Status string             `json:"status"`
	Email  string             `json:"email"`
	Errors *models.FormErrors `json:"errors"`
}

// SignIn posts the credentials to the sign-in endpoint.
// A rejected sign-in is reported in the Result; the error covers transport
// failures and unexpected responses.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.Result, error) {
	return c.post(ctx, apiSignIn, signInPayload{Email: email, Password: password})
}

// SignUp posts the new account to the sign-up endpoint.
func (c *Client) SignUp(ctx context.Context, email, password, confirm string) (models.Result, error) {
	return c.post(ctx, apiSignUp, signUpPayload{Email: email, Password: password, ConfirmPassword: confirm})
}

func (c *Client) post(ctx context.Context, path string, payload any) (models.Result, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return models.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return models.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		data, _ := io.ReadAll(resp.Body)
		return models.Result{}, fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return models.Result{Email: out.Email}, nil
	}
	if out.Errors == nil || out.Errors.Empty() {
		return models.Result{}, errors.New("server rejected the request without a field error")
	}
	return models.Result{Errors: *out.Errors}, nil
}
