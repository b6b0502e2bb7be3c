package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Area selects the API subdomain a request goes to.
type Area string

// API areas
const (
	AreaDefault  Area = "dev.azure.com"
	AreaRelease  Area = "vsrm.dev.azure.com"
	AreaSearch   Area = "almsearch.dev.azure.com"
	AreaIdentity Area = "vssps.dev.azure.com"
)

// TokenSource supplies bearer tokens for requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is a read-only Azure DevOps REST API client.
type Client struct {
	orgURL        string
	apiVersion    string
	userAgent     string
	timeout       time.Duration
	searchTimeout time.Duration
	pageLimit     int
	httpClient    *http.Client
	tokens        TokenSource
	logger        zerolog.Logger
}

// NewClient creates a client for the given organization. The organization is
// either a bare name (myorg) or a full https:// URL.
func NewClient(org string, tokens TokenSource, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if org == "" {
		return nil, ErrNoOrganization
	}
	if tokens == nil {
		return nil, ErrNoTokenSource
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var orgURL string
	if strings.HasPrefix(org, "https://") {
		orgURL = strings.TrimRight(org, "/")
	} else {
		orgURL = "https://dev.azure.com/" + org
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = o.maxRetries
	rc.RetryWaitMin = o.retryWait
	rc.RetryWaitMax = o.retryWaitMax
	rc.CheckRetry = transientRetryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = retryLogger{logger: logger}
	if o.httpClient != nil {
		rc.HTTPClient = o.httpClient
	}

	return &Client{
		orgURL:        orgURL,
		apiVersion:    o.apiVersion,
		userAgent:     o.userAgent,
		timeout:       o.timeout,
		searchTimeout: o.searchTimeout,
		pageLimit:     o.pageLimit,
		httpClient:    rc.StandardClient(),
		tokens:        tokens,
		logger:        logger,
	}, nil
}

// transientRetryPolicy retries transport errors and the transient statuses
// the service emits under throttling and brownouts. Everything else,
// including other 5xx-adjacent statuses, passes through untouched.
func transientRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// retryLogger adapts zerolog to retryablehttp's LeveledLogger.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

// buildURL assembles the full request URL for an area, optional project
// segment, and path. The project is percent-encoded with slashes encoded
// too, so "proj/team" stays a single path segment.
func (c *Client) buildURL(area Area, project, path string) string {
	base := c.orgURL
	if area != AreaDefault {
		base = strings.Replace(base, string(AreaDefault), string(area), 1)
	}
	if project != "" {
		return base + "/" + url.PathEscape(project) + "/" + path
	}
	return base + "/" + path
}

func (c *Client) timeoutFor(area Area) time.Duration {
	if area == AreaSearch {
		return c.searchTimeout
	}
	return c.timeout
}

// do issues one authenticated request and returns the body and content type.
// The deadline spans the whole exchange including retries.
func (c *Client) do(ctx context.Context, method string, area Area, project, path string, params url.Values, body any, accept string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(area))
	defer cancel()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, "", err
	}

	q := url.Values{"api-version": {c.apiVersion}}
	for key, values := range params {
		q[key] = values
	}
	requestURL := c.buildURL(area, project, path) + "?" + q.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("method", method).Str("url", requestURL).Msg("Azure DevOps API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, "", &APIError{StatusCode: resp.StatusCode, URL: requestURL, Body: string(data)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// getJSON issues a GET and returns the raw JSON body. Responses that are
// not JSON come back encoded as a JSON string.
func (c *Client) getJSON(ctx context.Context, area Area, project, path string, params url.Values) (json.RawMessage, error) {
	body, contentType, err := c.do(ctx, http.MethodGet, area, project, path, params, nil, "application/json")
	if err != nil {
		return nil, err
	}
	return asJSON(body, contentType)
}

// postJSON issues a POST with a JSON body and returns the raw JSON response.
func (c *Client) postJSON(ctx context.Context, area Area, project, path string, params url.Values, body any) (json.RawMessage, error) {
	data, contentType, err := c.do(ctx, http.MethodPost, area, project, path, params, body, "application/json")
	if err != nil {
		return nil, err
	}
	return asJSON(data, contentType)
}

// getText issues a GET expecting a plain-text response.
func (c *Client) getText(ctx context.Context, area Area, project, path string, params url.Values) (string, error) {
	body, _, err := c.do(ctx, http.MethodGet, area, project, path, params, nil, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func asJSON(body []byte, contentType string) (json.RawMessage, error) {
	if strings.Contains(contentType, "application/json") {
		return json.RawMessage(body), nil
	}
	// Some endpoints answer with plain text even on the JSON path; keep the
	// output JSON-encodable by quoting it.
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to encode text response: %w", err)
	}
	return quoted, nil
}

// getAll follows continuation tokens, concatenating each page's value array
// until the token disappears or the page limit is reached.
func (c *Client) getAll(ctx context.Context, area Area, project, path string, params url.Values) ([]json.RawMessage, error) {
	items := []json.RawMessage{}

	p := url.Values{}
	for key, values := range params {
		p[key] = append([]string(nil), values...)
	}

	for page := 0; page < c.pageLimit; page++ {
		data, err := c.getJSON(ctx, area, project, path, p)
		if err != nil {
			return nil, err
		}
		if !isJSONObject(data) {
			break
		}

		var envelope struct {
			Value             []json.RawMessage `json:"value"`
			ContinuationToken string            `json:"continuationToken"`
			XMSToken          string            `json:"x-ms-continuationtoken"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse paged response: %w", err)
		}
		items = append(items, envelope.Value...)

		token := envelope.ContinuationToken
		if token == "" {
			token = envelope.XMSToken
		}
		if token == "" {
			break
		}
		p.Set("continuationToken", token)
	}

	return items, nil
}

func isJSONObject(data json.RawMessage) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
