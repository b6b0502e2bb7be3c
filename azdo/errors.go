package azdo

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrNoOrganization indicates the organization was never configured
	ErrNoOrganization = errors.New("organization not set: pass --org, set ADOQ_ORG, or set organization in the config file")
	// ErrNoTokenSource indicates the client was built without credentials
	ErrNoTokenSource = errors.New("token source is required")
	// ErrNoMergeCommits indicates a pull request without merge commit data
	ErrNoMergeCommits = errors.New("pull request does not have merge commit information yet")
)

// APIError represents an Azure DevOps response with status >= 400.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("azure devops API error: status %d for %s: %s", e.StatusCode, e.URL, body)
	}
	return fmt.Sprintf("azure devops API error: status %d for %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error indicates a missing resource
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
