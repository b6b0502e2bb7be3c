package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// GetWorkItemOptions controls which fields and history of a work item are
// returned.
type GetWorkItemOptions struct {
	Fields string
	Expand string
	AsOf   string
}

// GetWorkItem fetches a single work item by ID.
func (c *Client) GetWorkItem(ctx context.Context, project string, id int, opts GetWorkItemOptions) (json.RawMessage, error) {
	params := url.Values{}
	if opts.Fields != "" {
		params.Set("fields", opts.Fields)
	}
	if opts.Expand != "" {
		params.Set("$expand", opts.Expand)
	}
	if opts.AsOf != "" {
		params.Set("asOf", opts.AsOf)
	}
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/wit/workitems/%d", id), params)
}

// GetWorkItemsBatch fetches multiple work items in one request. Fields
// restricts the returned fields when non-empty.
func (c *Client) GetWorkItemsBatch(ctx context.Context, project string, ids []int, fields []string) ([]json.RawMessage, error) {
	body := map[string]any{"ids": ids}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	data, err := c.postJSON(ctx, AreaDefault, project, "_apis/wit/workitemsbatch", nil, body)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// ListWorkItemComments lists the comments on a work item.
func (c *Client) ListWorkItemComments(ctx context.Context, project string, id, top int) ([]json.RawMessage, error) {
	params := url.Values{}
	if top > 0 {
		params.Set("$top", strconv.Itoa(top))
	}
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/wit/workitems/%d/comments", id), params)
	if err != nil {
		return nil, err
	}
	// Comment listings use a comments key instead of the usual value array
	var envelope struct {
		Comments []json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Comments == nil {
		return []json.RawMessage{}, nil
	}
	return envelope.Comments, nil
}

// ListRevisionsOptions pages a work item revision listing.
type ListRevisionsOptions struct {
	Top    int
	Skip   int
	Expand string
}

// ListWorkItemRevisions lists the revision history of a work item.
func (c *Client) ListWorkItemRevisions(ctx context.Context, project string, id int, opts ListRevisionsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}
	if opts.Expand != "" {
		params.Set("$expand", opts.Expand)
	}
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/wit/workitems/%d/revisions", id), params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// GetWorkItemType fetches the definition of a work item type.
func (c *Client) GetWorkItemType(ctx context.Context, project, typeName string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, "_apis/wit/workitemtypes/"+typeName, nil)
}

// MyWorkItemsOptions filters the caller's assigned work items.
type MyWorkItemsOptions struct {
	TypeFilter       string
	Top              int
	IncludeCompleted bool
}

// MyWorkItems lists work items assigned to the authenticated user, newest
// change first. Completed states are excluded unless requested.
func (c *Client) MyWorkItems(ctx context.Context, project string, opts MyWorkItemsOptions) ([]json.RawMessage, error) {
	wiql := "SELECT [System.Id] FROM WorkItems WHERE [System.AssignedTo] = @Me"
	if opts.TypeFilter != "" {
		wiql += fmt.Sprintf(" AND [System.WorkItemType] = '%s'", opts.TypeFilter)
	}
	if !opts.IncludeCompleted {
		wiql += " AND [System.State] <> 'Closed' AND [System.State] <> 'Done' AND [System.State] <> 'Removed'"
	}
	wiql += " ORDER BY [System.ChangedDate] DESC"

	limit := opts.Top
	if limit <= 0 {
		limit = 50
	}
	params := url.Values{}
	params.Set("$top", strconv.Itoa(limit))

	result, err := c.postJSON(ctx, AreaDefault, project, "_apis/wit/wiql", params, map[string]string{"query": wiql})
	if err != nil {
		return nil, err
	}

	var refs struct {
		WorkItems []struct {
			ID int `json:"id"`
		} `json:"workItems"`
	}
	if err := json.Unmarshal(result, &refs); err != nil {
		return nil, fmt.Errorf("failed to parse query result: %w", err)
	}
	if len(refs.WorkItems) == 0 {
		return []json.RawMessage{}, nil
	}
	if len(refs.WorkItems) > limit {
		refs.WorkItems = refs.WorkItems[:limit]
	}

	ids := make([]int, 0, len(refs.WorkItems))
	for _, ref := range refs.WorkItems {
		ids = append(ids, ref.ID)
	}
	return c.GetWorkItemsBatch(ctx, project, ids, nil)
}

// RunWiql executes a WIQL query.
func (c *Client) RunWiql(ctx context.Context, project, query string, top int, team string) (json.RawMessage, error) {
	params := url.Values{}
	if top > 0 {
		params.Set("$top", strconv.Itoa(top))
	}
	if team != "" {
		params.Set("team", team)
	}
	return c.postJSON(ctx, AreaDefault, project, "_apis/wit/wiql", params, map[string]string{"query": query})
}

// GetQueryOptions controls how much of a saved query tree is returned.
type GetQueryOptions struct {
	Depth  int
	Expand string
}

// GetQuery fetches a saved query by ID or path. Paths keep their slashes,
// so folders address naturally.
func (c *Client) GetQuery(ctx context.Context, project, idOrPath string, opts GetQueryOptions) (json.RawMessage, error) {
	params := url.Values{}
	if opts.Depth > 0 {
		params.Set("$depth", strconv.Itoa(opts.Depth))
	}
	if opts.Expand != "" {
		params.Set("$expand", opts.Expand)
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/wit/queries/"+idOrPath, params)
}

// GetQueryResults executes a saved query by ID. Project may be empty for
// queries addressed organization-wide.
func (c *Client) GetQueryResults(ctx context.Context, project, queryID string, top int, team string) (json.RawMessage, error) {
	params := url.Values{}
	if top > 0 {
		params.Set("$top", strconv.Itoa(top))
	}
	if team != "" {
		params.Set("team", team)
	}
	return c.postJSON(ctx, AreaDefault, project, "_apis/wit/wiql/"+queryID, params, map[string]any{})
}

// IterationWorkItems lists the work items in an iteration. With a team the
// request addresses the team's settings instead of the project defaults.
func (c *Client) IterationWorkItems(ctx context.Context, project, team, iterationID string) (json.RawMessage, error) {
	segment := project
	if team != "" {
		segment = project + "/" + team
	}
	return c.getJSON(ctx, AreaDefault, segment, "_apis/work/teamsettings/iterations/"+iterationID+"/workitems", nil)
}

// ListBacklogs lists a team's backlogs.
func (c *Client) ListBacklogs(ctx context.Context, project, team string) ([]json.RawMessage, error) {
	data, err := c.getJSON(ctx, AreaDefault, project+"/"+team, "_apis/work/backlogs", nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// BacklogWorkItems lists the work items in one backlog level.
func (c *Client) BacklogWorkItems(ctx context.Context, project, team, backlogID string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project+"/"+team, "_apis/work/backlogs/"+backlogID+"/workItems", nil)
}
