package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ListBuildsOptions filters a build listing. Times use the service's
// ISO-8601 forms.
type ListBuildsOptions struct {
	Definitions  string
	Branch       string
	Status       string
	Result       string
	RequestedFor string
	Top          int
	MinTime      string
	MaxTime      string
	RepositoryID string
	BuildNumber  string
	Tags         string
	QueryOrder   string
}

// ListBuilds lists builds with optional filters.
func (c *Client) ListBuilds(ctx context.Context, project string, opts ListBuildsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Definitions != "" {
		params.Set("definitions", opts.Definitions)
	}
	if opts.Branch != "" {
		params.Set("branchName", opts.Branch)
	}
	if opts.Status != "" {
		params.Set("statusFilter", opts.Status)
	}
	if opts.Result != "" {
		params.Set("resultFilter", opts.Result)
	}
	if opts.RequestedFor != "" {
		params.Set("requestedFor", opts.RequestedFor)
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.MaxTime != "" {
		params.Set("maxTime", opts.MaxTime)
	}
	if opts.MinTime != "" {
		params.Set("minTime", opts.MinTime)
	}
	if opts.RepositoryID != "" {
		params.Set("repositoryId", opts.RepositoryID)
	}
	if opts.BuildNumber != "" {
		params.Set("buildNumber", opts.BuildNumber)
	}
	if opts.Tags != "" {
		params.Set("tagFilters", opts.Tags)
	}
	if opts.QueryOrder != "" {
		params.Set("queryOrder", opts.QueryOrder)
	}
	return c.getAll(ctx, AreaDefault, project, "_apis/build/builds", params)
}

// GetBuild fetches build status and details.
func (c *Client) GetBuild(ctx context.Context, project string, buildID int) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d", buildID), nil)
}

// ListBuildLogs lists the log files of a build.
func (c *Client) ListBuildLogs(ctx context.Context, project string, buildID int) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d/logs", buildID), nil)
}

// GetBuildLogContent fetches one build log as plain text, optionally
// bounded to a line range.
func (c *Client) GetBuildLogContent(ctx context.Context, project string, buildID, logID, startLine, endLine int) (string, error) {
	params := url.Values{}
	if startLine > 0 {
		params.Set("startLine", strconv.Itoa(startLine))
	}
	if endLine > 0 {
		params.Set("endLine", strconv.Itoa(endLine))
	}
	return c.getText(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d/logs/%d", buildID, logID), params)
}

// GetBuildChanges fetches the commits associated with a build.
func (c *Client) GetBuildChanges(ctx context.Context, project string, buildID, top int) (json.RawMessage, error) {
	params := url.Values{}
	if top > 0 {
		params.Set("$top", strconv.Itoa(top))
	}
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d/changes", buildID), params)
}

// ListDefinitionsOptions filters a pipeline definition listing.
// IncludeLatestBuilds is sent only when set.
type ListDefinitionsOptions struct {
	Name                string
	Path                string
	Top                 int
	IncludeLatestBuilds *bool
	RepositoryID        string
	RepositoryType      string
	YamlFilename        string
	QueryOrder          string
}

// ListDefinitions lists build and pipeline definitions.
func (c *Client) ListDefinitions(ctx context.Context, project string, opts ListDefinitionsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Name != "" {
		params.Set("name", opts.Name)
	}
	if opts.Path != "" {
		params.Set("path", opts.Path)
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.IncludeLatestBuilds != nil {
		params.Set("includeLatestBuilds", strconv.FormatBool(*opts.IncludeLatestBuilds))
	}
	if opts.RepositoryID != "" {
		params.Set("repositoryId", opts.RepositoryID)
	}
	if opts.RepositoryType != "" {
		params.Set("repositoryType", opts.RepositoryType)
	}
	if opts.YamlFilename != "" {
		params.Set("yamlFilename", opts.YamlFilename)
	}
	if opts.QueryOrder != "" {
		params.Set("queryOrder", opts.QueryOrder)
	}
	return c.getAll(ctx, AreaDefault, project, "_apis/build/definitions", params)
}

// GetDefinitionRevisions fetches the revision history of a definition.
func (c *Client) GetDefinitionRevisions(ctx context.Context, project string, definitionID int) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/definitions/%d/revisions", definitionID), nil)
}

// GetPipelineRun fetches one run of a pipeline.
func (c *Client) GetPipelineRun(ctx context.Context, project string, pipelineID, runID int) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/pipelines/%d/runs/%d", pipelineID, runID), nil)
}

// ListPipelineRuns lists recent runs of a pipeline.
func (c *Client) ListPipelineRuns(ctx context.Context, project string, pipelineID int) ([]json.RawMessage, error) {
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/pipelines/%d/runs", pipelineID), nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// ListArtifacts lists the artifacts produced by a build.
func (c *Client) ListArtifacts(ctx context.Context, project string, buildID int) ([]json.RawMessage, error) {
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d/artifacts", buildID), nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// GetBuildTimeline fetches the stage/job/task timeline of a build.
func (c *Client) GetBuildTimeline(ctx context.Context, project string, buildID int) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/build/builds/%d/timeline", buildID), nil)
}
