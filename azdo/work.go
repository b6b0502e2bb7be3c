package azdo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListIterations lists a project's iteration tree from the classification
// nodes. Depth 0 returns just the root level.
func (c *Client) ListIterations(ctx context.Context, project string, depth int) (json.RawMessage, error) {
	params := url.Values{}
	if depth > 0 {
		params.Set("$depth", strconv.Itoa(depth))
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/wit/classificationnodes/iterations", params)
}

// ListTeamIterations lists the iterations assigned to a team, optionally
// narrowed to a timeframe (past, current, future).
func (c *Client) ListTeamIterations(ctx context.Context, project, team, timeframe string) ([]json.RawMessage, error) {
	params := url.Values{}
	if timeframe != "" {
		params.Set("$timeframe", timeframe)
	}
	data, err := c.getJSON(ctx, AreaDefault, project+"/"+team, "_apis/work/teamsettings/iterations", params)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// IterationCapacities fetches capacity for all teams in an iteration.
func (c *Client) IterationCapacities(ctx context.Context, project, iterationID string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, "_apis/work/teamsettings/iterations/"+iterationID+"/capacities", nil)
}

// TeamCapacity fetches one team's capacity in an iteration.
func (c *Client) TeamCapacity(ctx context.Context, project, team, iterationID string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project+"/"+team, "_apis/work/teamsettings/iterations/"+iterationID+"/capacities", nil)
}
