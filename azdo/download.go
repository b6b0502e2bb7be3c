package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// BulkDownloadOptions controls a bulk file download. Retries is the number
// of extra attempts per file after the first failure.
type BulkDownloadOptions struct {
	Branch  string
	Commit  string
	Retries int
}

// BulkDownload writes repository files under outputDir, mirroring their
// repository paths: /src/Foo/Bar.cs lands at outputDir/src/Foo/Bar.cs.
// Files are fetched sequentially; a failed file is recorded in its result
// entry and never aborts the batch, but context cancellation does.
func (c *Client) BulkDownload(ctx context.Context, project, repo string, paths []string, outputDir string, opts BulkDownloadOptions) ([]DownloadResult, error) {
	version := FileVersion{Branch: opts.Branch, Commit: opts.Commit}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}

	results := make([]DownloadResult, 0, len(paths))
	total := len(paths)

	for idx, filePath := range paths {
		outPath := filepath.Join(outputDir, strings.TrimLeft(filePath, "/"))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}

		err := retry.Do(
			func() error {
				content, err := c.GetFileContent(ctx, project, repo, filePath, version)
				if err != nil {
					return err
				}
				return os.WriteFile(outPath, []byte(content), 0o644)
			},
			retry.Attempts(uint(retries+1)),
			retry.DelayType(linearBackoff),
			retry.LastErrorOnly(true),
			retry.Context(ctx),
			retry.OnRetry(func(n uint, err error) {
				c.logger.Debug().Uint("attempt", n+1).Str("path", filePath).Err(err).Msg("Retrying file download")
			}),
		)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result := DownloadResult{Path: filePath, Status: "ok"}
		if err != nil {
			result.Status = "failed"
			result.Error = err.Error()
		} else {
			out := outPath
			result.Output = &out
		}
		results = append(results, result)

		c.logger.Info().Msgf("[%d/%d] %s: %s", idx+1, total, result.Status, filePath)
	}

	return results, nil
}

// linearBackoff waits one second more after each failed attempt.
func linearBackoff(n uint, _ error, _ *retry.Config) time.Duration {
	return time.Duration(n+1) * time.Second
}

// DownloadPullRequest fetches every changed file of a pull request for
// local diffing: the target (before) versions of edited and deleted files
// land under outputDir/target, the source (after) versions of edited and
// added files under outputDir/source.
func (c *Client) DownloadPullRequest(ctx context.Context, project, repo string, id int, outputDir string, retries int) (*PullRequestDownload, error) {
	raw, err := c.GetPullRequest(ctx, project, repo, id, false)
	if err != nil {
		return nil, err
	}
	var pr pullRequest
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse pull request: %w", err)
	}
	if pr.LastMergeSourceCommit == nil || pr.LastMergeSourceCommit.CommitID == "" ||
		pr.LastMergeTargetCommit == nil || pr.LastMergeTargetCommit.CommitID == "" {
		return nil, ErrNoMergeCommits
	}
	sourceCommit := pr.LastMergeSourceCommit.CommitID
	targetCommit := pr.LastMergeTargetCommit.CommitID

	changes, err := c.GetPullRequestChanges(ctx, project, repo, id, GetPullRequestChangesOptions{})
	if err != nil {
		return nil, err
	}
	files := classifyChanges(changes, true)

	result := &PullRequestDownload{
		SourceCommit: sourceCommit,
		TargetCommit: targetCommit,
		Files:        files,
		Downloads: DownloadSides{
			Target: []DownloadResult{},
			Source: []DownloadResult{},
		},
	}

	beforePaths := append(append([]string{}, files.Edited...), files.Deleted...)
	if len(beforePaths) > 0 {
		result.Downloads.Target, err = c.BulkDownload(ctx, project, repo, beforePaths,
			filepath.Join(outputDir, "target"),
			BulkDownloadOptions{Commit: targetCommit, Retries: retries})
		if err != nil {
			return nil, err
		}
	}

	afterPaths := append(append([]string{}, files.Edited...), files.Added...)
	if len(afterPaths) > 0 {
		result.Downloads.Source, err = c.BulkDownload(ctx, project, repo, afterPaths,
			filepath.Join(outputDir, "source"),
			BulkDownloadOptions{Commit: sourceCommit, Retries: retries})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
