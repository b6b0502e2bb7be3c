package azdo

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout       time.Duration
	searchTimeout time.Duration
	maxRetries    int
	retryWait     time.Duration
	retryWaitMax  time.Duration
	pageLimit     int
	apiVersion    string
	userAgent     string
	httpClient    *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:       60 * time.Second,
		searchTimeout: 120 * time.Second,
		maxRetries:    2,
		retryWait:     2 * time.Second,
		retryWaitMax:  30 * time.Second,
		pageLimit:     20,
		apiVersion:    "7.2-preview",
	}
}

// WithTimeout sets the per-request deadline for regular API areas.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithSearchTimeout sets the per-request deadline for the search area,
// which is noticeably slower than the rest of the service.
func WithSearchTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.searchTimeout = timeout
		}
	}
}

// WithRetryMax sets the number of additional attempts after a transient
// failure.
func WithRetryMax(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryWait sets the initial backoff between retries.
func WithRetryWait(wait time.Duration) Option {
	return func(o *clientOptions) {
		if wait > 0 {
			o.retryWait = wait
		}
	}
}

// WithRetryWaitMax caps the backoff between retries.
func WithRetryWaitMax(wait time.Duration) Option {
	return func(o *clientOptions) {
		if wait > 0 {
			o.retryWaitMax = wait
		}
	}
}

// WithPageLimit caps how many pages a paginated listing will follow.
func WithPageLimit(limit int) Option {
	return func(o *clientOptions) {
		if limit > 0 {
			o.pageLimit = limit
		}
	}
}

// WithAPIVersion overrides the api-version sent with every request.
func WithAPIVersion(version string) Option {
	return func(o *clientOptions) {
		if version != "" {
			o.apiVersion = version
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying transport client, keeping the
// retry layer on top.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
