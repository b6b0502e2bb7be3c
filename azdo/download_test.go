package azdo

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemsHandler serves file content as "<path>@<version>" so tests can tell
// which version of a file was fetched.
func itemsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%s@%s", r.URL.Query().Get("path"), r.URL.Query().Get("versionDescriptor.version"))
}

func TestBulkDownload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "branch", r.URL.Query().Get("versionDescriptor.versionType"))
		assert.Equal(t, "main", r.URL.Query().Get("versionDescriptor.version"))
		itemsHandler(w, r)
	}))

	dir := t.TempDir()
	results, err := client.BulkDownload(context.Background(), "Proj", "repo-1",
		[]string{"/src/app.go", "/README.md"}, dir,
		BulkDownloadOptions{Branch: "refs/heads/main"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.Equal(t, "ok", result.Status)
		require.NotNil(t, result.Output)
		assert.Empty(t, result.Error)
	}

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.go"))
	require.NoError(t, err)
	assert.Equal(t, "/src/app.go@main", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "/README.md@main", string(content))
}

func TestBulkDownloadFailureIsolated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("path") == "/missing.txt" {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		itemsHandler(w, r)
	}))

	dir := t.TempDir()
	results, err := client.BulkDownload(context.Background(), "Proj", "repo-1",
		[]string{"/missing.txt", "/present.txt"}, dir,
		BulkDownloadOptions{Commit: "abc123"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "failed", results[0].Status)
	assert.Nil(t, results[0].Output)
	assert.Contains(t, results[0].Error, "404")

	assert.Equal(t, "ok", results[1].Status)
	require.NotNil(t, results[1].Output)

	_, err = os.Stat(filepath.Join(dir, "missing.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestBulkDownloadRetriesFile(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "flaky", http.StatusNotFound)
			return
		}
		itemsHandler(w, r)
	}))

	dir := t.TempDir()
	results, err := client.BulkDownload(context.Background(), "Proj", "repo-1",
		[]string{"/flaky.txt"}, dir,
		BulkDownloadOptions{Commit: "abc123", Retries: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Status)
}

func TestDownloadPullRequest(t *testing.T) {
	prRequests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/items"):
			itemsHandler(w, r)
			return
		case strings.HasSuffix(r.URL.Path, "/pullrequests/7/iterations"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"value":[{"id":3}]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/7/iterations/3/changes"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"changeEntries":[
				{"changeType":"edit","item":{"path":"/src/app.go"}},
				{"changeType":"add","item":{"path":"/docs/new.md"}},
				{"changeType":"delete","item":{"path":"/old.txt"}},
				{"changeType":"edit","item":{}}
			]}`)
		case strings.HasSuffix(r.URL.Path, "/pullrequests/7"):
			prRequests++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"lastMergeSourceCommit": {"commitId": "abc123"},
				"lastMergeTargetCommit": {"commitId": "def456"}
			}`)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	dir := t.TempDir()
	result, err := client.DownloadPullRequest(context.Background(), "Proj", "repo-1", 7, dir, 0)
	require.NoError(t, err)

	// The work item round trip is skipped when downloading.
	assert.Equal(t, 1, prRequests)

	assert.Equal(t, "abc123", result.SourceCommit)
	assert.Equal(t, "def456", result.TargetCommit)

	// The entry without a path is dropped entirely.
	assert.Equal(t, []string{"/src/app.go"}, result.Files.Edited)
	assert.Equal(t, []string{"/docs/new.md"}, result.Files.Added)
	assert.Equal(t, []string{"/old.txt"}, result.Files.Deleted)

	require.Len(t, result.Downloads.Target, 2)
	require.Len(t, result.Downloads.Source, 2)

	// Target side holds the before versions of edited and deleted files.
	content, err := os.ReadFile(filepath.Join(dir, "target", "src", "app.go"))
	require.NoError(t, err)
	assert.Equal(t, "/src/app.go@def456", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "target", "old.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/old.txt@def456", string(content))

	// Source side holds the after versions of edited and added files.
	content, err = os.ReadFile(filepath.Join(dir, "source", "src", "app.go"))
	require.NoError(t, err)
	assert.Equal(t, "/src/app.go@abc123", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "source", "docs", "new.md"))
	require.NoError(t, err)
	assert.Equal(t, "/docs/new.md@abc123", string(content))

	// Added files never land on the target side, deleted never on source.
	_, err = os.Stat(filepath.Join(dir, "target", "docs", "new.md"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "source", "old.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadPullRequestNoMergeCommits(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"draft, no merge yet"}`)
	}))

	_, err := client.DownloadPullRequest(context.Background(), "Proj", "repo-1", 7, t.TempDir(), 0)
	require.ErrorIs(t, err, ErrNoMergeCommits)
}
