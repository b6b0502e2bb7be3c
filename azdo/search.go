package azdo

import (
	"context"
	"encoding/json"
)

// searchRequest is the POST body shared by the search endpoints. Top and
// Skip are always sent; filter values are single-element lists.
type searchRequest struct {
	SearchText string              `json:"searchText"`
	Top        int                 `json:"$top"`
	Skip       int                 `json:"$skip"`
	Filters    map[string][]string `json:"filters,omitempty"`
}

func newSearchRequest(searchText string, top, skip int) searchRequest {
	if top <= 0 {
		top = 25
	}
	if skip < 0 {
		skip = 0
	}
	return searchRequest{SearchText: searchText, Top: top, Skip: skip}
}

func (r *searchRequest) addFilter(name, value string) {
	if value == "" {
		return
	}
	if r.Filters == nil {
		r.Filters = map[string][]string{}
	}
	r.Filters[name] = []string{value}
}

// SearchCodeOptions narrows a code search.
type SearchCodeOptions struct {
	Project    string
	Repository string
	Branch     string
	Path       string
	Top        int
	Skip       int
}

// SearchCode searches code across repositories.
func (c *Client) SearchCode(ctx context.Context, searchText string, opts SearchCodeOptions) (json.RawMessage, error) {
	body := newSearchRequest(searchText, opts.Top, opts.Skip)
	body.addFilter("Project", opts.Project)
	body.addFilter("Repository", opts.Repository)
	body.addFilter("Branch", opts.Branch)
	body.addFilter("Path", opts.Path)
	return c.postJSON(ctx, AreaSearch, "", "_apis/search/codesearchresults", nil, body)
}

// SearchWikiOptions narrows a wiki search.
type SearchWikiOptions struct {
	Project string
	Wiki    string
	Top     int
	Skip    int
}

// SearchWiki searches wiki pages.
func (c *Client) SearchWiki(ctx context.Context, searchText string, opts SearchWikiOptions) (json.RawMessage, error) {
	body := newSearchRequest(searchText, opts.Top, opts.Skip)
	body.addFilter("Project", opts.Project)
	body.addFilter("Wiki", opts.Wiki)
	return c.postJSON(ctx, AreaSearch, "", "_apis/search/wikisearchresults", nil, body)
}

// SearchWorkItemsOptions narrows a work item search.
type SearchWorkItemsOptions struct {
	Project    string
	Type       string
	State      string
	AssignedTo string
	AreaPath   string
	Top        int
	Skip       int
}

// SearchWorkItems searches work items.
func (c *Client) SearchWorkItems(ctx context.Context, searchText string, opts SearchWorkItemsOptions) (json.RawMessage, error) {
	body := newSearchRequest(searchText, opts.Top, opts.Skip)
	body.addFilter("Project", opts.Project)
	body.addFilter("Work Item Type", opts.Type)
	body.addFilter("State", opts.State)
	body.addFilter("Assigned To", opts.AssignedTo)
	body.addFilter("Area Path", opts.AreaPath)
	return c.postJSON(ctx, AreaSearch, "", "_apis/search/workitemsearchresults", nil, body)
}
