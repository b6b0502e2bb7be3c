package azdo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListWikis lists wikis organization-wide or within one project.
func (c *Client) ListWikis(ctx context.Context, project string) ([]json.RawMessage, error) {
	data, err := c.getJSON(ctx, AreaDefault, project, "_apis/wiki/wikis", nil)
	if err != nil {
		return nil, err
	}
	return valueList(data), nil
}

// GetWiki fetches details of one wiki by name or ID.
func (c *Client) GetWiki(ctx context.Context, project, wikiID string) (json.RawMessage, error) {
	return c.getJSON(ctx, AreaDefault, project, "_apis/wiki/wikis/"+wikiID, nil)
}

// ListWikiPagesOptions pages a wiki page listing. PageViewsForDays adds
// view counts for the trailing window.
type ListWikiPagesOptions struct {
	Top               int
	ContinuationToken string
	PageViewsForDays  int
}

// ListWikiPages lists the pages of a wiki in batches.
func (c *Client) ListWikiPages(ctx context.Context, project, wikiID string, opts ListWikiPagesOptions) (json.RawMessage, error) {
	params := url.Values{}
	if opts.Top > 0 {
		params.Set("$top", strconv.Itoa(opts.Top))
	}
	if opts.ContinuationToken != "" {
		params.Set("continuationToken", opts.ContinuationToken)
	}
	if opts.PageViewsForDays > 0 {
		params.Set("pageViewsForDays", strconv.Itoa(opts.PageViewsForDays))
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/wiki/wikis/"+wikiID+"/pagesbatch", params)
}

// GetWikiPage fetches wiki page metadata without its content.
func (c *Client) GetWikiPage(ctx context.Context, project, wikiID, path, recursionLevel string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("path", path)
	if recursionLevel != "" {
		params.Set("recursionLevel", recursionLevel)
	}
	return c.getJSON(ctx, AreaDefault, project, "_apis/wiki/wikis/"+wikiID+"/pages", params)
}

// GetWikiPageContent fetches a wiki page's content as text.
func (c *Client) GetWikiPageContent(ctx context.Context, project, wikiID, path string) (string, error) {
	params := url.Values{}
	params.Set("path", path)
	params.Set("includeContent", "true")
	return c.getText(ctx, AreaDefault, project, "_apis/wiki/wikis/"+wikiID+"/pages", params)
}
