package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func repoPath(repo string) string {
	return "_apis/git/repositories/" + url.PathEscape(repo)
}

// ListRepositoriesOptions filters a repository listing.
type ListRepositoriesOptions struct {
	Top        int
	NameFilter string
}

// ListRepositories lists the Git repositories in a project.
func (c *Client) ListRepositories(ctx context.Context, project string, opts ListRepositoriesOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.NameFilter != "" {
		params.Set("$filter", fmt.Sprintf("contains(name, '%s')", opts.NameFilter))
	}
	return c.getAll(ctx, AreaDefault, project, "_apis/git/repositories", params)
}

// GetRepository fetches repository details by name or ID.
func (c *Client) GetRepository(ctx context.Context, project, repo string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, repoPath(repo), nil)
}

// ListBranchesOptions filters a branch listing.
type ListBranchesOptions struct {
	Contains string
	Top      int
}

// ListBranches lists the branches of a repository.
func (c *Client) ListBranches(ctx context.Context, project, repo string, opts ListBranchesOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("filter", "heads/")
	if opts.Contains != "" {
		params.Set("filterContains", opts.Contains)
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	data, err := c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/refs", params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// GetBranch fetches a single branch by name, returning JSON null when the
// branch does not exist.
func (c *Client) GetBranch(ctx context.Context, project, repo, branch string) (json.RawMessage, error) {
	name := strings.TrimPrefix(branch, "refs/heads/")
	params := url.Values{}
	params.Set("filter", "heads/"+name)
	params.Set("filterContains", name)

	data, err := c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/refs", params)
	if err != nil {
		return nil, err
	}
	values := valueList(data)
	if len(values) == 0 {
		return json.RawMessage("null"), nil
	}
	return values[0], nil
}

// SearchCommitsOptions filters a commit search. Dates use the service's
// ISO-8601 forms.
type SearchCommitsOptions struct {
	Author           string
	FromDate         string
	ToDate           string
	SearchText       string
	Branch           string
	Top              int
	Skip             int
	IncludeWorkItems *bool
}

// SearchCommits searches a repository's commits with the given criteria.
func (c *Client) SearchCommits(ctx context.Context, project, repo string, opts SearchCommitsOptions) (json.RawMessage, error) {
	body := map[string]any{}
	if opts.Author != "" {
		body["author"] = opts.Author
	}
	if opts.FromDate != "" {
		body["fromDate"] = opts.FromDate
	}
	if opts.ToDate != "" {
		body["toDate"] = opts.ToDate
	}
	if opts.SearchText != "" {
		body["searchText"] = opts.SearchText
	}
	if opts.Branch != "" {
		body["itemVersion"] = map[string]string{"version": strings.TrimPrefix(opts.Branch, "refs/heads/")}
	}
	if opts.IncludeWorkItems != nil {
		body["includeWorkItems"] = *opts.IncludeWorkItems
	}

	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}

	return c.postJSON(ctx, AreaDefault, project, repoPath(repo)+"/commitsbatch", params, body)
}

// GetCommit fetches a single commit by ID.
func (c *Client) GetCommit(ctx context.Context, project, repo, commitID string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/commits/"+commitID, nil)
}

// GetCommitChanges fetches the changes introduced by a commit.
func (c *Client) GetCommitChanges(ctx context.Context, project, repo, commitID string, top, skip int) (json.RawMessage, error) {
	params := url.Values{}
	if top > 0 {
		params.Set("$top", strconv.Itoa(top))
	}
	if skip > 0 {
		params.Set("$skip", strconv.Itoa(skip))
	}
	return c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/commits/"+commitID+"/changes", params)
}

// FileVersion selects the repository version content is read at. Branch
// wins over Commit when both are set; branch names may carry the
// refs/heads/ prefix.
type FileVersion struct {
	Branch string
	Commit string
}

func (v FileVersion) apply(params url.Values, prefix string) {
	switch {
	case v.Branch != "":
		params.Set(prefix+".version", strings.TrimPrefix(v.Branch, "refs/heads/"))
		params.Set(prefix+".versionType", "branch")
	case v.Commit != "":
		params.Set(prefix+".version", v.Commit)
		params.Set(prefix+".versionType", "commit")
	}
}

// GetFileContent downloads raw file content from a repository.
func (c *Client) GetFileContent(ctx context.Context, project, repo, path string, version FileVersion) (string, error) {
	params := url.Values{}
	params.Set("path", path)
	version.apply(params, "versionDescriptor")
	return c.getText(ctx, AreaDefault, project, repoPath(repo)+"/items", params)
}

// ListItemsOptions controls a repository item listing. Zero values mean the
// repository root with one level of recursion.
type ListItemsOptions struct {
	Path      string
	Branch    string
	Recursion string
}

// ListItems lists files and folders under a repository path.
func (c *Client) ListItems(ctx context.Context, project, repo string, opts ListItemsOptions) (json.RawMessage, error) {
	scope := opts.Path
	if scope == "" {
		scope = "/"
	}
	recursion := opts.Recursion
	if recursion == "" {
		recursion = "oneLevel"
	}

	params := url.Values{}
	params.Set("scopePath", scope)
	params.Set("recursionLevel", recursion)
	if opts.Branch != "" {
		FileVersion{Branch: opts.Branch}.apply(params, "versionDescriptor")
	}
	return c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/items", params)
}

// DiffOptions selects the two versions to compare. Version types default to
// commit.
type DiffOptions struct {
	BaseVersion       string
	BaseVersionType   string
	TargetVersion     string
	TargetVersionType string
}

// GetDiff compares two versions (commits, branches, or tags) of a
// repository.
func (c *Client) GetDiff(ctx context.Context, project, repo string, opts DiffOptions) (json.RawMessage, error) {
	params := url.Values{}
	if opts.BaseVersion != "" {
		versionType := opts.BaseVersionType
		if versionType == "" {
			versionType = "commit"
		}
		params.Set("baseVersionDescriptor.version", strings.TrimPrefix(opts.BaseVersion, "refs/heads/"))
		params.Set("baseVersionDescriptor.versionType", versionType)
	}
	if opts.TargetVersion != "" {
		versionType := opts.TargetVersionType
		if versionType == "" {
			versionType = "commit"
		}
		params.Set("targetVersionDescriptor.version", strings.TrimPrefix(opts.TargetVersion, "refs/heads/"))
		params.Set("targetVersionDescriptor.versionType", versionType)
	}
	return c.getJSON(ctx, AreaDefault, project, repoPath(repo)+"/diffs/commits", params)
}
