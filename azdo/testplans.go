package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ListTestPlansOptions filters a test plan listing. The boolean filters are
// sent only when set.
type ListTestPlansOptions struct {
	FilterActive       *bool
	IncludePlanDetails *bool
	ContinuationToken  string
}

// ListTestPlans lists the test plans in a project.
func (c *Client) ListTestPlans(ctx context.Context, project string, opts ListTestPlansOptions) ([]json.RawMessage, error) {
	params := url.Values{}
	if opts.FilterActive != nil {
		params.Set("filterActivePlans", strconv.FormatBool(*opts.FilterActive))
	}
	if opts.IncludePlanDetails != nil {
		params.Set("includePlanDetails", strconv.FormatBool(*opts.IncludePlanDetails))
	}
	if opts.ContinuationToken != "" {
		params.Set("continuationToken", opts.ContinuationToken)
	}
	data, err := c.getJSON(ctx, AreaDefault, project, "_apis/testplan/plans", params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// ListTestSuites lists the suites of a test plan.
func (c *Client) ListTestSuites(ctx context.Context, project string, planID int, continuationToken string) ([]json.RawMessage, error) {
	params := url.Values{}
	if continuationToken != "" {
		params.Set("continuationToken", continuationToken)
	}
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/testplan/plans/%d/suites", planID), params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// ListTestCases lists the test cases in a suite.
func (c *Client) ListTestCases(ctx context.Context, project string, planID, suiteID int) ([]json.RawMessage, error) {
	data, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/testplan/plans/%d/suites/%d/testcase", planID, suiteID), nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// TestResultsByBuild collects the test results of every run recorded for a
// build, in run order, annotating each result with its run's name.
func (c *Client) TestResultsByBuild(ctx context.Context, project string, buildID int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("buildUri", fmt.Sprintf("vstfs:///Build/Build/%d", buildID))
	data, err := c.getJSON(ctx, AreaDefault, project, "_apis/test/runs", params)
	if err != nil {
		return nil, err
	}

	allResults := []json.RawMessage{}
	for _, rawRun := range valueList(data) {
		var run struct {
			ID   int             `json:"id"`
			Name json.RawMessage `json:"name"`
		}
		if err := json.Unmarshal(rawRun, &run); err != nil {
			return nil, fmt.Errorf("failed to parse test run: %w", err)
		}

		results, err := c.getJSON(ctx, AreaDefault, project, fmt.Sprintf("_apis/test/runs/%d/results", run.ID), nil)
		if err != nil {
			return nil, err
		}

		runName := run.Name
		if runName == nil {
			runName = json.RawMessage("null")
		}
		for _, rawResult := range valueList(results) {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(rawResult, &obj); err != nil {
				return nil, fmt.Errorf("failed to parse test result: %w", err)
			}
			obj["runName"] = runName
			annotated, err := json.Marshal(obj)
			if err != nil {
				return nil, fmt.Errorf("failed to encode test result: %w", err)
			}
			allResults = append(allResults, annotated)
		}
	}
	return allResults, nil
}
