package azdo

import "encoding/json"

// identityRef is the slice of an identity reference the composites read.
type identityRef struct {
	DisplayName string `json:"displayName"`
}

// commitRef carries just the SHA of a commit reference.
type commitRef struct {
	CommitID string `json:"commitId"`
}

// pullRequest is the subset of pull request fields the composites read.
// The full object is always passed through to callers untouched.
type pullRequest struct {
	Title                 string      `json:"title"`
	Description           string      `json:"description"`
	Status                string      `json:"status"`
	CreatedBy             identityRef `json:"createdBy"`
	SourceRefName         string      `json:"sourceRefName"`
	TargetRefName         string      `json:"targetRefName"`
	LastMergeSourceCommit *commitRef  `json:"lastMergeSourceCommit"`
	LastMergeTargetCommit *commitRef  `json:"lastMergeTargetCommit"`

	// Injected by GetPullRequest when work items are requested.
	WorkItemRefs []json.RawMessage `json:"workItemRefs"`
}

// changeEntry is one changed item in a commit or pull request iteration.
type changeEntry struct {
	ChangeType string `json:"changeType"`
	Item       struct {
		Path string `json:"path"`
	} `json:"item"`
}

// commentThread is the subset of a pull request thread the summary reads.
type commentThread struct {
	Status        string `json:"status"`
	ThreadContext *struct {
		FilePath string `json:"filePath"`
	} `json:"threadContext"`
	Comments []threadComment `json:"comments"`
}

type threadComment struct {
	CommentType string      `json:"commentType"`
	Content     string      `json:"content"`
	Author      identityRef `json:"author"`
}

// FileClassification groups changed paths by change type, preserving the
// order the service returned them in.
type FileClassification struct {
	Added   []string `json:"added"`
	Edited  []string `json:"edited"`
	Deleted []string `json:"deleted"`
}

// ReviewComment is one human comment thread condensed for a summary.
type ReviewComment struct {
	Status   string `json:"status"`
	Author   string `json:"author"`
	FilePath string `json:"filePath"`
	Content  string `json:"content"`
}

// PullRequestSummary condenses a pull request, its changed files, and its
// review threads into a single reviewable result.
type PullRequestSummary struct {
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         string             `json:"status"`
	CreatedBy      string             `json:"createdBy"`
	SourceBranch   string             `json:"sourceBranch"`
	TargetBranch   string             `json:"targetBranch"`
	SourceCommit   string             `json:"sourceCommit"`
	TargetCommit   string             `json:"targetCommit"`
	WorkItemRefs   []json.RawMessage  `json:"workItemRefs"`
	Files          FileClassification `json:"files"`
	ReviewComments []ReviewComment    `json:"reviewComments"`
}

// DownloadResult reports the outcome of one file download.
type DownloadResult struct {
	Path   string  `json:"path"`
	Status string  `json:"status"`
	Output *string `json:"output"`
	Error  string  `json:"error,omitempty"`
}

// PullRequestDownload reports a full pull request download: the commits
// used and the per-file results for each side.
type PullRequestDownload struct {
	SourceCommit string             `json:"sourceCommit"`
	TargetCommit string             `json:"targetCommit"`
	Files        FileClassification `json:"files"`
	Downloads    DownloadSides      `json:"downloads"`
}

// DownloadSides holds per-file results for the target (before) and source
// (after) versions of a pull request's files.
type DownloadSides struct {
	Target []DownloadResult `json:"target"`
	Source []DownloadResult `json:"source"`
}

// valueList unwraps the service's {"value": [...]} list envelope. Anything
// without a value array yields an empty list.
func valueList(data json.RawMessage) []json.RawMessage {
	var envelope struct {
		Value []json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Value == nil {
		return []json.RawMessage{}
	}
	return envelope.Value
}

// changeList unwraps a change listing, which the service wraps in
// changeEntries on iteration endpoints and value elsewhere.
func changeList(data json.RawMessage) []json.RawMessage {
	var envelope struct {
		ChangeEntries []json.RawMessage `json:"changeEntries"`
		Value         []json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return []json.RawMessage{}
	}
	if envelope.ChangeEntries != nil {
		return envelope.ChangeEntries
	}
	if envelope.Value != nil {
		return envelope.Value
	}
	return []json.RawMessage{}
}

// truncateRunes caps s at max runes, mirroring slicing by code points.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
