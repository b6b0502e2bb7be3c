package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeSearchBody captures the request body each search test asserts on.
type capturedSearch struct {
	SearchText string              `json:"searchText"`
	Top        *int                `json:"$top"`
	Skip       *int                `json:"$skip"`
	Filters    map[string][]string `json:"filters"`
}

func searchTestClient(t *testing.T, wantPath string, captured *capturedSearch) *Client {
	t.Helper()
	return newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":0,"results":[]}`)
	}))
}

func TestSearchCodeDefaults(t *testing.T) {
	var body capturedSearch
	client := searchTestClient(t, "/_apis/search/codesearchresults", &body)

	_, err := client.SearchCode(context.Background(), "TODO", SearchCodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "TODO", body.SearchText)
	// Top and skip always travel with the request.
	require.NotNil(t, body.Top)
	require.NotNil(t, body.Skip)
	assert.Equal(t, 25, *body.Top)
	assert.Equal(t, 0, *body.Skip)
	assert.Nil(t, body.Filters)
}

func TestSearchCodeFilters(t *testing.T) {
	var body capturedSearch
	client := searchTestClient(t, "/_apis/search/codesearchresults", &body)

	_, err := client.SearchCode(context.Background(), "NewClient", SearchCodeOptions{
		Project:    "Proj",
		Repository: "repo-1",
		Branch:     "main",
		Path:       "/src",
		Top:        100,
		Skip:       50,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, *body.Top)
	assert.Equal(t, 50, *body.Skip)
	assert.Equal(t, map[string][]string{
		"Project":    {"Proj"},
		"Repository": {"repo-1"},
		"Branch":     {"main"},
		"Path":       {"/src"},
	}, body.Filters)
}

func TestSearchWikiFilters(t *testing.T) {
	var body capturedSearch
	client := searchTestClient(t, "/_apis/search/wikisearchresults", &body)

	_, err := client.SearchWiki(context.Background(), "setup guide", SearchWikiOptions{
		Project: "Proj",
		Wiki:    "Proj.wiki",
	})
	require.NoError(t, err)

	assert.Equal(t, "setup guide", body.SearchText)
	assert.Equal(t, map[string][]string{
		"Project": {"Proj"},
		"Wiki":    {"Proj.wiki"},
	}, body.Filters)
}

func TestSearchWorkItemsFilters(t *testing.T) {
	var body capturedSearch
	client := searchTestClient(t, "/_apis/search/workitemsearchresults", &body)

	_, err := client.SearchWorkItems(context.Background(), "login crash", SearchWorkItemsOptions{
		Project:    "Proj",
		Type:       "Bug",
		State:      "Active",
		AssignedTo: "dev@example.com",
		AreaPath:   "Proj\\Web",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"Project":        {"Proj"},
		"Work Item Type": {"Bug"},
		"State":          {"Active"},
		"Assigned To":    {"dev@example.com"},
		"Area Path":      {"Proj\\Web"},
	}, body.Filters)
}
