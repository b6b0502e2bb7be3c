package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyWorkItems(t *testing.T) {
	var wiqlQuery string
	var batchBody map[string]json.RawMessage
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_apis/wit/wiql"):
			assert.Equal(t, "50", r.URL.Query().Get("$top"))
			var body struct {
				Query string `json:"query"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			wiqlQuery = body.Query
			fmt.Fprint(w, `{"workItems":[{"id":101},{"id":102}]}`)
		case strings.HasSuffix(r.URL.Path, "/_apis/wit/workitemsbatch"):
			require.NoError(t, json.NewDecoder(r.Body).Decode(&batchBody))
			fmt.Fprint(w, `{"value":[{"id":101},{"id":102}]}`)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))

	items, err := client.MyWorkItems(context.Background(), "Proj", MyWorkItemsOptions{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Contains(t, wiqlQuery, "[System.AssignedTo] = @Me")
	assert.Contains(t, wiqlQuery, "[System.State] <> 'Closed'")
	assert.Contains(t, wiqlQuery, "[System.State] <> 'Done'")
	assert.Contains(t, wiqlQuery, "[System.State] <> 'Removed'")
	assert.Contains(t, wiqlQuery, "ORDER BY [System.ChangedDate] DESC")
	assert.NotContains(t, wiqlQuery, "System.WorkItemType")

	assert.JSONEq(t, `[101,102]`, string(batchBody["ids"]))
	assert.NotContains(t, batchBody, "fields")
}

func TestMyWorkItemsTypeFilterAndCompleted(t *testing.T) {
	var wiqlQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		wiqlQuery = body.Query
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"workItems":[]}`)
	}))

	_, err := client.MyWorkItems(context.Background(), "Proj", MyWorkItemsOptions{
		TypeFilter:       "Bug",
		IncludeCompleted: true,
	})
	require.NoError(t, err)

	assert.Contains(t, wiqlQuery, "[System.WorkItemType] = 'Bug'")
	assert.NotContains(t, wiqlQuery, "System.State")
}

func TestMyWorkItemsEmptySkipsBatch(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"workItems":[]}`)
	}))

	items, err := client.MyWorkItems(context.Background(), "Proj", MyWorkItemsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMyWorkItemsCapsAtLimit(t *testing.T) {
	var batchBody map[string]json.RawMessage
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_apis/wit/wiql") {
			assert.Equal(t, "2", r.URL.Query().Get("$top"))
			// Servers may return more references than asked for.
			fmt.Fprint(w, `{"workItems":[{"id":1},{"id":2},{"id":3}]}`)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batchBody))
		fmt.Fprint(w, `{"value":[{"id":1},{"id":2}]}`)
	}))

	items, err := client.MyWorkItems(context.Background(), "Proj", MyWorkItemsOptions{Top: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.JSONEq(t, `[1,2]`, string(batchBody["ids"]))
}

func TestListWorkItemComments(t *testing.T) {
	t.Run("unwraps comments key", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/_apis/wit/workitems/7/comments"), r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"totalCount":2,"comments":[{"id":1},{"id":2}]}`)
		}))

		comments, err := client.ListWorkItemComments(context.Background(), "Proj", 7, 0)
		require.NoError(t, err)
		require.Len(t, comments, 2)
	})

	t.Run("missing key yields empty list", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"totalCount":0}`)
		}))

		comments, err := client.ListWorkItemComments(context.Background(), "Proj", 7, 0)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})
}

func TestGetWorkItemParams(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/Proj/_apis/wit/workitems/12", r.URL.Path)
		assert.Equal(t, "System.Title,System.State", q.Get("fields"))
		assert.Equal(t, "relations", q.Get("$expand"))
		assert.Equal(t, "2024-01-01", q.Get("asOf"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":12}`)
	}))

	_, err := client.GetWorkItem(context.Background(), "Proj", 12, GetWorkItemOptions{
		Fields: "System.Title,System.State",
		Expand: "relations",
		AsOf:   "2024-01-01",
	})
	require.NoError(t, err)
}

func TestGetQueryKeepsPathSlashes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Proj/_apis/wit/queries/Shared Queries/Team/Open Bugs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"q1"}`)
	}))

	_, err := client.GetQuery(context.Background(), "Proj", "Shared Queries/Team/Open Bugs", GetQueryOptions{})
	require.NoError(t, err)
}
