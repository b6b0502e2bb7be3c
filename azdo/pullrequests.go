package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ListPullRequestsOptions filters a pull request listing. Repo scopes the
// listing to one repository; empty means project-wide.
type ListPullRequestsOptions struct {
	Repo         string
	Status       string
	SourceBranch string
	TargetBranch string
	CreatorID    string
	ReviewerID   string
	Top          int
	Skip         int
}

// ListPullRequests lists pull requests for a repository or a whole project.
func (c *Client) ListPullRequests(ctx context.Context, project string, opts ListPullRequestsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("searchCriteria.status", opts.Status)
	}
	if opts.SourceBranch != "" {
		params.Set("searchCriteria.sourceRefName", opts.SourceBranch)
	}
	if opts.TargetBranch != "" {
		params.Set("searchCriteria.targetRefName", opts.TargetBranch)
	}
	if opts.CreatorID != "" {
		params.Set("searchCriteria.creatorId", opts.CreatorID)
	}
	if opts.ReviewerID != "" {
		params.Set("searchCriteria.reviewerId", opts.ReviewerID)
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}

	path := "_apis/git/pullrequests"
	if opts.Repo != "" {
		path = repoPath(opts.Repo) + "/pullrequests"
	}
	return c.getAll(ctx, AreaDefault, project, path, params)
}

// GetPullRequest fetches one pull request. With includeWorkItems the linked
// work item references are fetched separately and injected as workItemRefs.
func (c *Client) GetPullRequest(ctx context.Context, project, repo string, id int, includeWorkItems bool) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/pullrequests/%d", repoPath(repo), id)
	pr, err := c.getJSON(ctx, AreaDefault, project, path, nil)
	if err != nil {
		return nil, err
	}
	if !includeWorkItems {
		return pr, nil
	}

	wi, err := c.getJSON(ctx, AreaDefault, project, path+"/workitems", nil)
	if err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(pr, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse pull request: %w", err)
	}
	refs, err := json.Marshal(valueList(wi))
	if err != nil {
		return nil, fmt.Errorf("failed to encode work item refs: %w", err)
	}
	obj["workItemRefs"] = refs
	return json.Marshal(obj)
}

// GetPullRequestIterations lists the iterations (push sets) of a pull
// request.
func (c *Client) GetPullRequestIterations(ctx context.Context, project, repo string, id int) ([]json.RawMessage, error) {
	path := fmt.Sprintf("%s/pullrequests/%d/iterations", repoPath(repo), id)
	data, err := c.getJSON(ctx, AreaDefault, project, path, nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// GetPullRequestChangesOptions controls which iteration's changes are
// fetched. Iteration 0 means the latest iteration.
type GetPullRequestChangesOptions struct {
	Iteration int
	Top       int
	Skip      int
}

// GetPullRequestChanges fetches the file changes of a pull request
// iteration as a flat list of change entries.
func (c *Client) GetPullRequestChanges(ctx context.Context, project, repo string, id int, opts GetPullRequestChangesOptions) ([]json.RawMessage, error) {
	iteration := opts.Iteration
	if iteration == 0 {
		iters, err := c.GetPullRequestIterations(ctx, project, repo, id)
		if err != nil {
			return nil, err
		}
		if len(iters) > 0 {
			var last struct {
				ID int `json:"id"`
			}
			if err := json.Unmarshal(iters[len(iters)-1], &last); err != nil {
				return nil, fmt.Errorf("failed to parse iteration: %w", err)
			}
			iteration = last.ID
		} else {
			iteration = 1
		}
	}

	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}

	path := fmt.Sprintf("%s/pullrequests/%d/iterations/%d/changes", repoPath(repo), id, iteration)
	data, err := c.getJSON(ctx, AreaDefault, project, path, params)
	if err != nil {
		return nil, err
	}
	return changeList(data), nil
}

// ListThreadsOptions pages a pull request thread listing. Iteration 0 means
// threads from every iteration.
type ListThreadsOptions struct {
	Iteration int
	Top       int
	Skip      int
}

// ListPullRequestThreads lists the comment threads on a pull request.
func (c *Client) ListPullRequestThreads(ctx context.Context, project, repo string, id int, opts ListThreadsOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.Iteration > 0 {
		params.Set("$iteration", strconv.Itoa(opts.Iteration))
	}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.Skip > 0 {
		params.Set("$skip", strconv.Itoa(opts.Skip))
	}

	path := fmt.Sprintf("%s/pullrequests/%d/threads", repoPath(repo), id)
	data, err := c.getJSON(ctx, AreaDefault, project, path, params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// ListThreadComments lists the comments in one pull request thread.
func (c *Client) ListThreadComments(ctx context.Context, project, repo string, id, threadID int) ([]json.RawMessage, error) {
	path := fmt.Sprintf("%s/pullrequests/%d/threads/%d/comments", repoPath(repo), id, threadID)
	data, err := c.getJSON(ctx, AreaDefault, project, path, nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}
