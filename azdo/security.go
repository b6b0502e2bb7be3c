package azdo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListAlertsOptions narrows an advanced security alert listing.
type ListAlertsOptions struct {
	// AlertType filters by category (code, secret, dependency).
	AlertType string
	// Severity filters by severity (critical, high, medium, low, note, warning, error).
	Severity string
	// States filters by state (active, dismissed, fixed, autoDismissed).
	States string
	// ConfidenceLevels filters secret alerts by confidence. Defaults to high.
	ConfidenceLevels string
	// Ref scopes results to a branch ref.
	Ref string
	// Top caps the number of alerts returned.
	Top int
	// OnlyDefaultBranch restricts results to the default branch when set.
	OnlyDefaultBranch *bool
}

// ListAlerts lists advanced security alerts for a repository.
func (c *Client) ListAlerts(ctx context.Context, project, repository string, opts ListAlertsOptions) (json.RawMessage, error) {
	confidence := opts.ConfidenceLevels
	if confidence == "" {
		confidence = "high"
	}
	params := url.Values{}
	params.Set("criteria.confidenceLevels", confidence)
	if opts.AlertType != "" {
		params.Set("criteria.alertType", opts.AlertType)
	}
	if opts.Severity != "" {
		params.Set("criteria.severities", opts.Severity)
	}
	if opts.States != "" {
		params.Set("criteria.states", opts.States)
	}
	if opts.Ref != "" {
		params.Set("criteria.ref", opts.Ref)
	}
	if opts.OnlyDefaultBranch != nil {
		params.Set("criteria.onlyDefaultBranch", strconv.FormatBool(*opts.OnlyDefaultBranch))
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/alert/repositories/"+repository+"/alerts", params)
}

// GetAlert fetches a single advanced security alert by ID. ref scopes the
// lookup to a branch when set.
func (c *Client) GetAlert(ctx context.Context, project, repository string, alertID int, ref string) (json.RawMessage, error) {
	params := url.Values{}
	if ref != "" {
		params.Set("ref", ref)
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/alert/repositories/"+repository+"/alerts/"+strconv.Itoa(alertID), params)
}
