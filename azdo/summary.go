package azdo

import (
	"context"
	"encoding/json"
	"fmt"
)

// SummarizePullRequest combines a pull request's metadata, changed files,
// and review threads into one result, saving several round trips compared
// to calling each API individually.
func (c *Client) SummarizePullRequest(ctx context.Context, project, repo string, id int) (*PullRequestSummary, error) {
	raw, err := c.GetPullRequest(ctx, project, repo, id, true)
	if err != nil {
		return nil, err
	}
	var pr pullRequest
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse pull request: %w", err)
	}

	changes, err := c.GetPullRequestChanges(ctx, project, repo, id, GetPullRequestChangesOptions{})
	if err != nil {
		return nil, err
	}

	threads, err := c.ListPullRequestThreads(ctx, project, repo, id, ListThreadsOptions{})
	if err != nil {
		return nil, err
	}

	summary := &PullRequestSummary{
		Title:          pr.Title,
		Description:    truncateRunes(pr.Description, 500),
		Status:         pr.Status,
		CreatedBy:      pr.CreatedBy.DisplayName,
		SourceBranch:   pr.SourceRefName,
		TargetBranch:   pr.TargetRefName,
		WorkItemRefs:   pr.WorkItemRefs,
		Files:          classifyChanges(changes, false),
		ReviewComments: reviewComments(threads),
	}
	if pr.LastMergeSourceCommit != nil {
		summary.SourceCommit = pr.LastMergeSourceCommit.CommitID
	}
	if pr.LastMergeTargetCommit != nil {
		summary.TargetCommit = pr.LastMergeTargetCommit.CommitID
	}
	if summary.WorkItemRefs == nil {
		summary.WorkItemRefs = []json.RawMessage{}
	}
	return summary, nil
}

// classifyChanges partitions change entries into added, edited, and deleted
// path lists, preserving the order the service returned. Other change types
// are ignored. Entries with empty paths are kept for summaries but skipped
// for downloads.
func classifyChanges(entries []json.RawMessage, skipEmptyPaths bool) FileClassification {
	files := FileClassification{
		Added:   []string{},
		Edited:  []string{},
		Deleted: []string{},
	}
	for _, raw := range entries {
		var entry changeEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if skipEmptyPaths && entry.Item.Path == "" {
			continue
		}
		switch entry.ChangeType {
		case "add":
			files.Added = append(files.Added, entry.Item.Path)
		case "edit":
			files.Edited = append(files.Edited, entry.Item.Path)
		case "delete":
			files.Deleted = append(files.Deleted, entry.Item.Path)
		}
	}
	return files
}

// reviewComments keeps only threads that carry human-authored text
// comments, condensing each to its first text comment.
func reviewComments(threads []json.RawMessage) []ReviewComment {
	comments := []ReviewComment{}
	for _, raw := range threads {
		var thread commentThread
		if err := json.Unmarshal(raw, &thread); err != nil {
			continue
		}

		var first *threadComment
		for i := range thread.Comments {
			if thread.Comments[i].CommentType == "text" {
				first = &thread.Comments[i]
				break
			}
		}
		if first == nil {
			continue
		}

		status := thread.Status
		if status == "" {
			status = "unknown"
		}
		author := first.Author.DisplayName
		if author == "" {
			author = "?"
		}
		filePath := ""
		if thread.ThreadContext != nil {
			filePath = thread.ThreadContext.FilePath
		}

		comments = append(comments, ReviewComment{
			Status:   status,
			Author:   author,
			FilePath: filePath,
			Content:  truncateRunes(first.Content, 200),
		})
	}
	return comments
}
