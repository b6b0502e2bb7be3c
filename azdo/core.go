package azdo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListProjectsOptions filters a project listing.
type ListProjectsOptions struct {
	Top         int
	Skip        int
	StateFilter string
	NameFilter  string
}

// ListProjects lists the projects in the organization.
func (c *Client) ListProjects(ctx context.Context, opts ListProjectsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}
	if opts.StateFilter != "" {
		params.Set("stateFilter", opts.StateFilter)
	}
	if opts.NameFilter != "" {
		params.Set("projectNameFilter", opts.NameFilter)
	}
	return c.getAll(ctx, AreaDefault, "", "_apis/projects", params)
}

// ListTeamsOptions filters a team listing. Mine restricts the listing to
// teams the caller is a member of and is sent only when set.
type ListTeamsOptions struct {
	Top  int
	Skip int
	Mine *bool
}

// ListTeams lists the teams within a project. The project rides in the API
// path here, not in the usual project URL segment.
func (c *Client) ListTeams(ctx context.Context, project string, opts ListTeamsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}
	if opts.Mine != nil {
		params.Set("$mine", strconv.FormatBool(*opts.Mine))
	}
	return c.getAll(ctx, AreaDefault, "", "_apis/projects/"+project+"/teams", params)
}

// GetIdentities looks up identity IDs by display name or email through the
// identity area.
func (c *Client) GetIdentities(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("searchFilter", "General")
	params.Set("filterValue", query)
	return c.getJSON(ctx, AreaIdentity, "", "_apis/identities", params)
}
