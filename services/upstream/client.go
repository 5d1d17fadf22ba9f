package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vcarpool/metrics"
	"vcarpool/models"

	"go.uber.org/zap"
)

// Client talks JSON to the carpool REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client rooted at baseURL (for example http://api:8000/api/v1).
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("upstream.NewClient: invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream.NewClient: base URL %q must be absolute", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("upstream"),
	}, nil
}

// request describes one upstream call. op names the call for logs and metrics; path is
// already escaped.
type request struct {
	op     string
	method string
	path   string
	token  string
	query  url.Values
	body   any
	form   url.Values
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + path
	if unescaped, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = unescaped
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	contentType := ""
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", req.op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordUpstreamCall(req.op, 0, time.Since(start))
		c.logger.Warn("Upstream call failed", zap.String("op", req.op), zap.Error(err))
		return fmt.Errorf("%s: %w", req.op, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamCall(req.op, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", req.op, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: req.op, StatusCode: resp.StatusCode, Detail: parseDetail(data)}
		c.logger.Debug("Upstream returned an error",
			zap.String("op", req.op),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", req.op, err)
	}
	return nil
}

func weekQuery(week string) url.Values {
	return url.Values{"week_start_date": []string{week}}
}

// Login exchanges credentials for an access token (OAuth2 password form).
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out models.AuthResponse
	err := c.do(ctx, request{op: "auth.token", method: http.MethodPost, path: "/auth/token", form: form}, &out)
	if errors.Is(err, ErrUnauthorized) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("auth.token: response carried no access token")
	}
	return &out, nil
}

// Ping checks that the API host answers at all; any non-5xx response counts.
func (c *Client) Ping(ctx context.Context) error {
	root := url.URL{Scheme: c.baseURL.Scheme, Host: c.baseURL.Host, Path: "/"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("upstream ping: status %d", resp.StatusCode)
	}
	return nil
}
