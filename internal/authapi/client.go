package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/session"
)

// License is one record from the license service. Only Email and Key are
// load-bearing; the rest is passed through for display.
type License struct {
	Email     string `json:"email"`
	Key       string `json:"key"`
	Plan      string `json:"plan,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// Client talks to the txm backend and the license service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	licenseURL string
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.API.BaseURL,
		licenseURL: cfg.API.LicenseURL,
		logger:     log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Login authenticates against the backend and returns the session to
// install. Failures propagate; login is not a fail-open path.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return session.Session{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.Session{}, fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Session{}, fmt.Errorf("read login response: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return session.Session{}, fmt.Errorf("parse login response: %w", err)
	}

	sess := session.Session{Email: email, Token: lr.Token}
	if lr.Email != "" {
		sess.Email = lr.Email
	}
	return sess, nil
}

// GetLicense lists all licenses and picks the one matching the email.
// Returns nil when no license exists for the account.
func (c *Client) GetLicense(ctx context.Context, email string) (*License, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.licenseURL+"/licenses", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch licenses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("license service returned status %d", resp.StatusCode)
	}

	var licenses []License
	if err := json.NewDecoder(resp.Body).Decode(&licenses); err != nil {
		return nil, fmt.Errorf("parse licenses: %w", err)
	}

	for _, l := range licenses {
		if l.Email == email {
			return &l, nil
		}
	}
	return nil, nil
}
