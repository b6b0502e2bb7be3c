package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newReposCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Repositories, branches, pull requests, files",
	}

	cmd.AddCommand(newReposListCommand())
	cmd.AddCommand(newReposGetCommand())
	cmd.AddCommand(newReposListBranchesCommand())
	cmd.AddCommand(newReposGetBranchCommand())
	cmd.AddCommand(newReposSearchCommitsCommand())
	cmd.AddCommand(newReposGetCommitCommand())
	cmd.AddCommand(newReposGetCommitChangesCommand())
	cmd.AddCommand(newReposListPRsCommand())
	cmd.AddCommand(newReposGetPRCommand())
	cmd.AddCommand(newReposGetPRChangesCommand())
	cmd.AddCommand(newReposGetPRIterationsCommand())
	cmd.AddCommand(newReposListPRThreadsCommand())
	cmd.AddCommand(newReposListPRThreadCommentsCommand())
	cmd.AddCommand(newReposGetFileCommand())
	cmd.AddCommand(newReposBulkDownloadCommand())
	cmd.AddCommand(newReposListItemsCommand())
	cmd.AddCommand(newReposDiffCommand())
	cmd.AddCommand(newReposPRSummaryCommand())
	cmd.AddCommand(newReposPRDownloadCommand())

	return cmd
}

func newReposListCommand() *cobra.Command {
	var (
		project    string
		top        int
		nameFilter string
		where      string
		preset     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the Git repositories in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			repos, err := c.ListRepositories(cmd.Context(), project, azdo.ListRepositoriesOptions{
				Top:        top,
				NameFilter: nameFilter,
			})
			if err != nil {
				return err
			}
			repos, err = applyFilter(repos, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(repos)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of repositories to return")
	cmd.Flags().StringVar(&nameFilter, "name-filter", "", "filter repositories by name substring")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newReposGetCommand() *cobra.Command {
	var project, repo string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get repository details",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			repository, err := c.GetRepository(cmd.Context(), project, repo)
			if err != nil {
				return err
			}
			return newOutput().JSON(repository)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newReposListBranchesCommand() *cobra.Command {
	var (
		project        string
		repo           string
		filterContains string
		top            int
		where          string
		preset         string
	)

	cmd := &cobra.Command{
		Use:   "list-branches",
		Short: "List the branches of a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			branches, err := c.ListBranches(cmd.Context(), project, repo, azdo.ListBranchesOptions{
				Contains: filterContains,
				Top:      top,
			})
			if err != nil {
				return err
			}
			branches, err = applyFilter(branches, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(branches)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&filterContains, "filter", "", "only branches whose name contains this string")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of branches to return")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newReposGetBranchCommand() *cobra.Command {
	var project, repo, branch string

	cmd := &cobra.Command{
		Use:   "get-branch",
		Short: "Get a single branch by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			ref, err := c.GetBranch(cmd.Context(), project, repo, branch)
			if err != nil {
				return err
			}
			return newOutput().JSON(ref)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&branch, "branch", "", "branch name (with or without refs/heads/)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}

func newReposSearchCommitsCommand() *cobra.Command {
	var (
		project          string
		repo             string
		author           string
		fromDate         string
		toDate           string
		searchText       string
		branch           string
		top              int
		skip             int
		includeWorkItems bool
	)

	cmd := &cobra.Command{
		Use:   "search-commits",
		Short: "Search a repository's commits",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			opts := azdo.SearchCommitsOptions{
				Author:     author,
				FromDate:   fromDate,
				ToDate:     toDate,
				SearchText: searchText,
				Branch:     branch,
				Top:        top,
				Skip:       skip,
			}
			if cmd.Flags().Changed("include-work-items") {
				opts.IncludeWorkItems = &includeWorkItems
			}
			commits, err := c.SearchCommits(cmd.Context(), project, repo, opts)
			if err != nil {
				return err
			}
			return newOutput().JSON(commits)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&author, "author", "", "filter by commit author")
	cmd.Flags().StringVar(&fromDate, "from-date", "", "commits after this date (ISO 8601)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "commits before this date (ISO 8601)")
	cmd.Flags().StringVar(&searchText, "search-text", "", "filter by commit message text")
	cmd.Flags().StringVar(&branch, "branch", "", "restrict the search to a branch")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of commits to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of commits to skip")
	cmd.Flags().BoolVar(&includeWorkItems, "include-work-items", false, "include linked work items in each commit")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newReposGetCommitCommand() *cobra.Command {
	var project, repo, commitID string

	cmd := &cobra.Command{
		Use:   "get-commit",
		Short: "Get a single commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			commit, err := c.GetCommit(cmd.Context(), project, repo, commitID)
			if err != nil {
				return err
			}
			return newOutput().JSON(commit)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&commitID, "commit-id", "", "commit SHA")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("commit-id")

	return cmd
}

func newReposGetCommitChangesCommand() *cobra.Command {
	var (
		project  string
		repo     string
		commitID string
		top      int
		skip     int
	)

	cmd := &cobra.Command{
		Use:   "get-commit-changes",
		Short: "Get the changes introduced by a commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			changes, err := c.GetCommitChanges(cmd.Context(), project, repo, commitID, top, skip)
			if err != nil {
				return err
			}
			return newOutput().JSON(changes)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&commitID, "commit-id", "", "commit SHA")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of changes to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of changes to skip")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("commit-id")

	return cmd
}

func newReposListPRsCommand() *cobra.Command {
	var (
		project      string
		repo         string
		status       string
		sourceBranch string
		targetBranch string
		creatorID    string
		reviewerID   string
		top          int
		skip         int
		where        string
		preset       string
	)

	cmd := &cobra.Command{
		Use:   "list-prs",
		Short: "List pull requests for a repository or a whole project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			prs, err := c.ListPullRequests(cmd.Context(), project, azdo.ListPullRequestsOptions{
				Repo:         repo,
				Status:       status,
				SourceBranch: sourceBranch,
				TargetBranch: targetBranch,
				CreatorID:    creatorID,
				ReviewerID:   reviewerID,
				Top:          top,
				Skip:         skip,
			})
			if err != nil {
				return err
			}
			prs, err = applyFilter(prs, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(prs)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID (omit for project-wide)")
	cmd.Flags().StringVar(&status, "status", "", "pull request status (active, completed, abandoned, all)")
	cmd.Flags().StringVar(&sourceBranch, "source-branch", "", "filter by source ref name")
	cmd.Flags().StringVar(&targetBranch, "target-branch", "", "filter by target ref name")
	cmd.Flags().StringVar(&creatorID, "creator-id", "", "filter by creator identity ID")
	cmd.Flags().StringVar(&reviewerID, "reviewer-id", "", "filter by reviewer identity ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of pull requests to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of pull requests to skip")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newReposGetPRCommand() *cobra.Command {
	var (
		project          string
		repo             string
		prID             int
		includeWorkItems bool
	)

	cmd := &cobra.Command{
		Use:   "get-pr",
		Short: "Get a single pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			pr, err := c.GetPullRequest(cmd.Context(), project, repo, prID, includeWorkItems)
			if err != nil {
				return err
			}
			return newOutput().JSON(pr)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	cmd.Flags().BoolVar(&includeWorkItems, "include-work-items", false, "include linked work item references")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")

	return cmd
}

func newReposGetPRChangesCommand() *cobra.Command {
	var (
		project   string
		repo      string
		prID      int
		iteration int
		top       int
		skip      int
	)

	cmd := &cobra.Command{
		Use:   "get-pr-changes",
		Short: "Get the file changes of a pull request iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			changes, err := c.GetPullRequestChanges(cmd.Context(), project, repo, prID, azdo.GetPullRequestChangesOptions{
				Iteration: iteration,
				Top:       top,
				Skip:      skip,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(changes)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	cmd.Flags().IntVar(&iteration, "iteration", 0, "iteration ID (default: latest)")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of changes to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of changes to skip")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")

	return cmd
}

func newReposGetPRIterationsCommand() *cobra.Command {
	var (
		project string
		repo    string
		prID    int
	)

	cmd := &cobra.Command{
		Use:   "get-pr-iterations",
		Short: "List the iterations (push sets) of a pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			iterations, err := c.GetPullRequestIterations(cmd.Context(), project, repo, prID)
			if err != nil {
				return err
			}
			return newOutput().JSON(iterations)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")

	return cmd
}

func newReposListPRThreadsCommand() *cobra.Command {
	var (
		project   string
		repo      string
		prID      int
		iteration int
		top       int
		skip      int
		where     string
		preset    string
	)

	cmd := &cobra.Command{
		Use:   "list-pr-threads",
		Short: "List the comment threads on a pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			threads, err := c.ListPullRequestThreads(cmd.Context(), project, repo, prID, azdo.ListThreadsOptions{
				Iteration: iteration,
				Top:       top,
				Skip:      skip,
			})
			if err != nil {
				return err
			}
			threads, err = applyFilter(threads, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(threads)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	cmd.Flags().IntVar(&iteration, "iteration", 0, "restrict threads to one iteration")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of threads to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of threads to skip")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")

	return cmd
}

func newReposListPRThreadCommentsCommand() *cobra.Command {
	var (
		project  string
		repo     string
		prID     int
		threadID int
	)

	cmd := &cobra.Command{
		Use:   "list-pr-thread-comments",
		Short: "List the comments in one pull request thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			comments, err := c.ListThreadComments(cmd.Context(), project, repo, prID, threadID)
			if err != nil {
				return err
			}
			return newOutput().JSON(comments)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	cmd.Flags().IntVar(&threadID, "thread-id", 0, "thread ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")
	_ = cmd.MarkFlagRequired("thread-id")

	return cmd
}

func newReposGetFileCommand() *cobra.Command {
	var (
		project string
		repo    string
		path    string
		branch  string
		commit  string
	)

	cmd := &cobra.Command{
		Use:   "get-file",
		Short: "Download raw file content from a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			content, err := c.GetFileContent(cmd.Context(), project, repo, path, azdo.FileVersion{
				Branch: branch,
				Commit: commit,
			})
			if err != nil {
				return err
			}
			return newOutput().Text(content)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&path, "path", "", "repository path of the file (e.g. /src/Program.cs)")
	cmd.Flags().StringVar(&branch, "branch", "", "read the file at this branch")
	cmd.Flags().StringVar(&commit, "commit", "", "read the file at this commit")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func newReposBulkDownloadCommand() *cobra.Command {
	var (
		project   string
		repo      string
		paths     string
		outputDir string
		branch    string
		commit    string
		retries   int
	)

	cmd := &cobra.Command{
		Use:   "bulk-download",
		Short: "Download multiple repository files into a local directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			pathList := splitPaths(paths)
			if len(pathList) == 0 {
				return fmt.Errorf("no paths given")
			}
			results, err := c.BulkDownload(cmd.Context(), project, repo, pathList, outputDir, azdo.BulkDownloadOptions{
				Branch:  branch,
				Commit:  commit,
				Retries: retries,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(results)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&paths, "paths", "", "comma-separated repo paths (e.g. /src/A.cs,/src/B.cs)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "local directory to write files into")
	cmd.Flags().StringVar(&branch, "branch", "", "download files at this branch")
	cmd.Flags().StringVar(&commit, "commit", "", "download files at this commit")
	cmd.Flags().IntVar(&retries, "retries", 2, "number of retries per file")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("paths")
	_ = cmd.MarkFlagRequired("output-dir")

	return cmd
}

func newReposListItemsCommand() *cobra.Command {
	var (
		project   string
		repo      string
		path      string
		branch    string
		recursion string
	)

	cmd := &cobra.Command{
		Use:   "list-items",
		Short: "List files and folders under a repository path",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			items, err := c.ListItems(cmd.Context(), project, repo, azdo.ListItemsOptions{
				Path:      path,
				Branch:    branch,
				Recursion: recursion,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(items)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&path, "path", "", "repository path to list (default /)")
	cmd.Flags().StringVar(&branch, "branch", "", "list items at this branch")
	cmd.Flags().StringVar(&recursion, "recursion", "", "recursion level (none, oneLevel, full)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newReposDiffCommand() *cobra.Command {
	var (
		project    string
		repo       string
		base       string
		target     string
		baseType   string
		targetType string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two versions of a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			diff, err := c.GetDiff(cmd.Context(), project, repo, azdo.DiffOptions{
				BaseVersion:       base,
				BaseVersionType:   baseType,
				TargetVersion:     target,
				TargetVersionType: targetType,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(diff)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().StringVar(&base, "base", "", "base version (commit, branch, or tag)")
	cmd.Flags().StringVar(&target, "target", "", "target version (commit, branch, or tag)")
	cmd.Flags().StringVar(&baseType, "base-type", "", "base version type (default commit)")
	cmd.Flags().StringVar(&targetType, "target-type", "", "target version type (default commit)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func newReposPRSummaryCommand() *cobra.Command {
	var (
		project string
		repo    string
		prID    int
	)

	cmd := &cobra.Command{
		Use:   "pr-summary",
		Short: "Get a structured PR overview for code review (metadata + files + threads)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			summary, err := c.SummarizePullRequest(cmd.Context(), project, repo, prID)
			if err != nil {
				return err
			}
			return newOutput().JSON(summary)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")

	return cmd
}

func newReposPRDownloadCommand() *cobra.Command {
	var (
		project   string
		repo      string
		prID      int
		outputDir string
		retries   int
	)

	cmd := &cobra.Command{
		Use:   "pr-download",
		Short: "Download all changed files (source + target versions) for a PR",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			result, err := c.DownloadPullRequest(cmd.Context(), project, repo, prID, outputDir, retries)
			if err != nil {
				return err
			}
			return newOutput().JSON(result)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name or ID")
	cmd.Flags().IntVar(&prID, "pr-id", 0, "pull request ID")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "base directory; files go into source/ and target/ subdirs")
	cmd.Flags().IntVar(&retries, "retries", 2, "number of retries per file")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr-id")
	_ = cmd.MarkFlagRequired("output-dir")

	return cmd
}
