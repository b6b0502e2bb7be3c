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

func TestClassifyChanges(t *testing.T) {
	entries := []json.RawMessage{
		json.RawMessage(`{"changeType":"edit","item":{"path":"/src/app.go"}}`),
		json.RawMessage(`{"changeType":"add","item":{"path":"/docs/new.md"}}`),
		json.RawMessage(`{"changeType":"delete","item":{"path":"/old.txt"}}`),
		json.RawMessage(`{"changeType":"edit","item":{"path":"/src/other.go"}}`),
		json.RawMessage(`{"changeType":"rename","item":{"path":"/moved.go"}}`),
		json.RawMessage(`{"changeType":"edit","item":{}}`),
		json.RawMessage(`not json`),
	}

	t.Run("keeps empty paths", func(t *testing.T) {
		files := classifyChanges(entries, false)
		assert.Equal(t, []string{"/src/app.go", "/src/other.go", ""}, files.Edited)
		assert.Equal(t, []string{"/docs/new.md"}, files.Added)
		assert.Equal(t, []string{"/old.txt"}, files.Deleted)
	})

	t.Run("skips empty paths", func(t *testing.T) {
		files := classifyChanges(entries, true)
		assert.Equal(t, []string{"/src/app.go", "/src/other.go"}, files.Edited)
		assert.Equal(t, []string{"/docs/new.md"}, files.Added)
		assert.Equal(t, []string{"/old.txt"}, files.Deleted)
	})

	t.Run("empty input yields empty lists", func(t *testing.T) {
		files := classifyChanges(nil, false)
		assert.NotNil(t, files.Added)
		assert.NotNil(t, files.Edited)
		assert.NotNil(t, files.Deleted)

		data, err := json.Marshal(files)
		require.NoError(t, err)
		assert.JSONEq(t, `{"added":[],"edited":[],"deleted":[]}`, string(data))
	})
}

func TestReviewComments(t *testing.T) {
	threads := []json.RawMessage{
		json.RawMessage(`{
			"status": "active",
			"threadContext": {"filePath": "/src/app.go"},
			"comments": [
				{"commentType": "text", "content": "please rename this", "author": {"displayName": "Reviewer"}},
				{"commentType": "text", "content": "second comment"}
			]
		}`),
		json.RawMessage(`{
			"comments": [{"commentType": "system", "content": "updated the pull request"}]
		}`),
		json.RawMessage(`{
			"comments": [
				{"commentType": "system", "content": "voted 10"},
				{"commentType": "text", "content": "lgtm"}
			]
		}`),
		json.RawMessage(`not json`),
	}

	got := reviewComments(threads)
	require.Len(t, got, 2)

	assert.Equal(t, ReviewComment{
		Status:   "active",
		Author:   "Reviewer",
		FilePath: "/src/app.go",
		Content:  "please rename this",
	}, got[0])

	// Missing status and author fall back to placeholders, and the first
	// text comment wins even behind system comments.
	assert.Equal(t, ReviewComment{
		Status:  "unknown",
		Author:  "?",
		Content: "lgtm",
	}, got[1])
}

func TestReviewCommentsTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	threads := []json.RawMessage{
		json.RawMessage(fmt.Sprintf(`{"comments":[{"commentType":"text","content":"%s"}]}`, long)),
	}

	got := reviewComments(threads)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Content, 200)
}

func TestReviewCommentsEmpty(t *testing.T) {
	got := reviewComments(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello"},
		{"multibyte counted as runes", "héllo wörld", 7, "héllo w"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateRunes(tt.in, tt.max))
		})
	}
}

func TestSummarizePullRequest(t *testing.T) {
	longDescription := strings.Repeat("d", 600)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/pullrequests/42/workitems"):
			fmt.Fprint(w, `{"value":[{"id":"101","url":"https://dev.azure.com/_apis/wit/workItems/101"}]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/42/iterations"):
			fmt.Fprint(w, `{"value":[{"id":1},{"id":2}]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/42/iterations/2/changes"):
			fmt.Fprint(w, `{"changeEntries":[
				{"changeType":"edit","item":{"path":"/src/app.go"}},
				{"changeType":"add","item":{"path":"/docs/new.md"}},
				{"changeType":"edit","item":{}}
			]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/42/threads"):
			fmt.Fprint(w, `{"value":[
				{"status":"active","threadContext":{"filePath":"/src/app.go"},
				 "comments":[{"commentType":"text","content":"needs a test","author":{"displayName":"Reviewer"}}]},
				{"comments":[{"commentType":"system","content":"updated"}]}
			]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/42"):
			fmt.Fprintf(w, `{
				"title": "Add feature",
				"description": "%s",
				"status": "active",
				"createdBy": {"displayName": "Author"},
				"sourceRefName": "refs/heads/feature",
				"targetRefName": "refs/heads/main",
				"lastMergeSourceCommit": {"commitId": "abc123"},
				"lastMergeTargetCommit": {"commitId": "def456"}
			}`, longDescription)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	summary, err := client.SummarizePullRequest(context.Background(), "Proj", "repo-1", 42)
	require.NoError(t, err)

	assert.Equal(t, "Add feature", summary.Title)
	assert.Len(t, summary.Description, 500)
	assert.Equal(t, "active", summary.Status)
	assert.Equal(t, "Author", summary.CreatedBy)
	assert.Equal(t, "refs/heads/feature", summary.SourceBranch)
	assert.Equal(t, "refs/heads/main", summary.TargetBranch)
	assert.Equal(t, "abc123", summary.SourceCommit)
	assert.Equal(t, "def456", summary.TargetCommit)

	require.Len(t, summary.WorkItemRefs, 1)
	assert.Contains(t, string(summary.WorkItemRefs[0]), `"101"`)

	// Summaries keep entries with empty paths.
	assert.Equal(t, []string{"/src/app.go", ""}, summary.Files.Edited)
	assert.Equal(t, []string{"/docs/new.md"}, summary.Files.Added)
	assert.Empty(t, summary.Files.Deleted)

	require.Len(t, summary.ReviewComments, 1)
	assert.Equal(t, "needs a test", summary.ReviewComments[0].Content)
}

func TestSummarizePullRequestMissingPieces(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/workitems"):
			fmt.Fprint(w, `{}`)
		case strings.HasSuffix(r.URL.Path, "/iterations"):
			fmt.Fprint(w, `{"value":[]}`)
		case strings.HasSuffix(r.URL.Path, "/iterations/1/changes"):
			fmt.Fprint(w, `{}`)
		case strings.HasSuffix(r.URL.Path, "/threads"):
			fmt.Fprint(w, `{}`)
		default:
			fmt.Fprint(w, `{"title":"Bare PR","status":"active"}`)
		}
	}))

	summary, err := client.SummarizePullRequest(context.Background(), "Proj", "repo-1", 7)
	require.NoError(t, err)

	assert.Equal(t, "Bare PR", summary.Title)
	assert.Empty(t, summary.SourceCommit)
	assert.Empty(t, summary.TargetCommit)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"workItemRefs":[]`)
	assert.Contains(t, string(data), `"reviewComments":[]`)
}
