package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"salesdash/internal/logger"
	"salesdash/internal/models"
)

// ErrUnauthorized is returned when the backend answers 401. The navigator
// has already been sent to the login page when it is returned.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPError is a non-success response from the metrics backend.
type HTTPError struct {
	Path       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (GET %s)", e.StatusCode, e.Path)
}

// Unwrap lets errors.Is match ErrUnauthorized on a 401.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Navigator receives the login redirect.
type Navigator interface {
	Redirect(path string)
}

// Options configures a Guard.
type Options struct {
	BaseURL   string
	Token     string
	LoginPath string
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration
}

// Guard fetches metric datasets and intercepts non-success responses.
// Requests are never retried.
type Guard struct {
	client    *resty.Client
	loginPath string
	log       *logger.Logger
}

// NewGuard creates a guard for the backend at opts.BaseURL.
func NewGuard(opts Options, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.NewNop()
	}
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}

	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Guard{client: client, loginPath: loginPath, log: log.WithComponent("fetch-guard")}
}

// Fetch reads the dataset at path. A 401 redirects nav to the login page and
// returns an error matching ErrUnauthorized; any other non-2xx status returns
// an *HTTPError.
func (g *Guard) Fetch(ctx context.Context, path string, nav Navigator) (models.Dataset, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(path)
	if err != nil {
		g.log.Error("Fetch error", err, map[string]interface{}{"path": path})
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		httpErr := &HTTPError{Path: path, StatusCode: resp.StatusCode()}
		if resp.StatusCode() == http.StatusUnauthorized && nav != nil {
			g.log.Warn("Session rejected, redirecting to login", map[string]interface{}{
				"path":  path,
				"login": g.loginPath,
			})
			nav.Redirect(g.loginPath)
		}
		g.log.Error("Fetch error", httpErr, map[string]interface{}{"path": path})
		return nil, httpErr
	}

	ds, err := models.DecodeDataset(resp.Body())
	if err != nil {
		g.log.Error("Fetch error", err, map[string]interface{}{"path": path})
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g.log.Debug("Fetched dataset", map[string]interface{}{
		"path":     path,
		"records":  len(ds),
		"duration": resp.Time().String(),
	})
	return ds, nil
}

// LoginPath returns where unauthorized sessions are sent.
func (g *Guard) LoginPath() string {
	return g.loginPath
}
