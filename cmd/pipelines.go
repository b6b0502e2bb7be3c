package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newPipelinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipelines",
		Short: "Builds, logs, definitions, runs",
	}

	cmd.AddCommand(newPipelinesBuildsCommand())
	cmd.AddCommand(newPipelinesBuildCommand())
	cmd.AddCommand(newPipelinesBuildLogCommand())
	cmd.AddCommand(newPipelinesBuildLogContentCommand())
	cmd.AddCommand(newPipelinesBuildChangesCommand())
	cmd.AddCommand(newPipelinesDefinitionsCommand())
	cmd.AddCommand(newPipelinesDefinitionRevisionsCommand())
	cmd.AddCommand(newPipelinesRunCommand())
	cmd.AddCommand(newPipelinesRunsCommand())
	cmd.AddCommand(newPipelinesArtifactsCommand())
	cmd.AddCommand(newPipelinesTimelineCommand())

	return cmd
}

func newPipelinesBuildsCommand() *cobra.Command {
	var (
		project      string
		definitions  string
		branch       string
		status       string
		result       string
		requestedFor string
		top          int
		minTime      string
		maxTime      string
		repositoryID string
		buildNumber  string
		tags         string
		queryOrder   string
		where        string
		preset       string
	)

	cmd := &cobra.Command{
		Use:   "builds",
		Short: "List builds with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			builds, err := c.ListBuilds(cmd.Context(), project, azdo.ListBuildsOptions{
				Definitions:  definitions,
				Branch:       branch,
				Status:       status,
				Result:       result,
				RequestedFor: requestedFor,
				Top:          top,
				MinTime:      minTime,
				MaxTime:      maxTime,
				RepositoryID: repositoryID,
				BuildNumber:  buildNumber,
				Tags:         tags,
				QueryOrder:   queryOrder,
			})
			if err != nil {
				return err
			}
			builds, err = applyFilter(builds, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(builds)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&definitions, "definitions", "", "comma-separated definition IDs")
	cmd.Flags().StringVar(&branch, "branch", "", "filter by branch name")
	cmd.Flags().StringVar(&status, "status", "", "status filter (inProgress, completed, notStarted, all)")
	cmd.Flags().StringVar(&result, "result", "", "result filter (succeeded, failed, canceled, partiallySucceeded)")
	cmd.Flags().StringVar(&requestedFor, "requested-for", "", "filter by requesting user")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of builds to return")
	cmd.Flags().StringVar(&minTime, "min-time", "", "builds after this time (ISO 8601)")
	cmd.Flags().StringVar(&maxTime, "max-time", "", "builds before this time (ISO 8601)")
	cmd.Flags().StringVar(&repositoryID, "repository-id", "", "filter by repository")
	cmd.Flags().StringVar(&buildNumber, "build-number", "", "filter by build number")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tag filters")
	cmd.Flags().StringVar(&queryOrder, "query-order", "", "result order (finishTimeDescending, queueTimeAscending, ...)")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPipelinesBuildCommand() *cobra.Command {
	var (
		project string
		buildID int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Get build status and details",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			build, err := c.GetBuild(cmd.Context(), project, buildID)
			if err != nil {
				return err
			}
			return newOutput().JSON(build)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}

func newPipelinesBuildLogCommand() *cobra.Command {
	var (
		project string
		buildID int
	)

	cmd := &cobra.Command{
		Use:   "build-log",
		Short: "List the log files of a build",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			logs, err := c.ListBuildLogs(cmd.Context(), project, buildID)
			if err != nil {
				return err
			}
			return newOutput().JSON(logs)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}

func newPipelinesBuildLogContentCommand() *cobra.Command {
	var (
		project   string
		buildID   int
		logID     int
		startLine int
		endLine   int
	)

	cmd := &cobra.Command{
		Use:   "build-log-content",
		Short: "Get one build log as plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			content, err := c.GetBuildLogContent(cmd.Context(), project, buildID, logID, startLine, endLine)
			if err != nil {
				return err
			}
			return newOutput().Text(content)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	cmd.Flags().IntVar(&logID, "log-id", 0, "log file ID")
	cmd.Flags().IntVar(&startLine, "start-line", 0, "first line to return")
	cmd.Flags().IntVar(&endLine, "end-line", 0, "last line to return")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")
	_ = cmd.MarkFlagRequired("log-id")

	return cmd
}

func newPipelinesBuildChangesCommand() *cobra.Command {
	var (
		project string
		buildID int
		top     int
	)

	cmd := &cobra.Command{
		Use:   "build-changes",
		Short: "Get the commits associated with a build",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			changes, err := c.GetBuildChanges(cmd.Context(), project, buildID, top)
			if err != nil {
				return err
			}
			return newOutput().JSON(changes)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of changes to return")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}

func newPipelinesDefinitionsCommand() *cobra.Command {
	var (
		project        string
		name           string
		path           string
		top            int
		includeLatest  bool
		repositoryID   string
		repositoryType string
		yamlFilename   string
		queryOrder     string
		where          string
		preset         string
	)

	cmd := &cobra.Command{
		Use:   "definitions",
		Short: "List build and pipeline definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			opts := azdo.ListDefinitionsOptions{
				Name:           name,
				Path:           path,
				Top:            top,
				RepositoryID:   repositoryID,
				RepositoryType: repositoryType,
				YamlFilename:   yamlFilename,
				QueryOrder:     queryOrder,
			}
			if cmd.Flags().Changed("include-latest") {
				opts.IncludeLatestBuilds = &includeLatest
			}
			definitions, err := c.ListDefinitions(cmd.Context(), project, opts)
			if err != nil {
				return err
			}
			definitions, err = applyFilter(definitions, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(definitions)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&name, "name", "", "filter by definition name")
	cmd.Flags().StringVar(&path, "path", "", "filter by definition folder path")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of definitions to return")
	cmd.Flags().BoolVar(&includeLatest, "include-latest", false, "include the latest builds of each definition")
	cmd.Flags().StringVar(&repositoryID, "repository-id", "", "filter by repository")
	cmd.Flags().StringVar(&repositoryType, "repository-type", "", "filter by repository type (TfsGit, GitHub, ...)")
	cmd.Flags().StringVar(&yamlFilename, "yaml-filename", "", "filter by YAML pipeline filename")
	cmd.Flags().StringVar(&queryOrder, "query-order", "", "result order (lastModifiedDescending, definitionNameAscending, ...)")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPipelinesDefinitionRevisionsCommand() *cobra.Command {
	var (
		project      string
		definitionID int
	)

	cmd := &cobra.Command{
		Use:   "definition-revisions",
		Short: "Get the revision history of a definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			revisions, err := c.GetDefinitionRevisions(cmd.Context(), project, definitionID)
			if err != nil {
				return err
			}
			return newOutput().JSON(revisions)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&definitionID, "definition-id", 0, "definition ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("definition-id")

	return cmd
}

func newPipelinesRunCommand() *cobra.Command {
	var (
		project    string
		pipelineID int
		runID      int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Get one run of a pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			run, err := c.GetPipelineRun(cmd.Context(), project, pipelineID, runID)
			if err != nil {
				return err
			}
			return newOutput().JSON(run)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&pipelineID, "pipeline-id", 0, "pipeline ID")
	cmd.Flags().IntVar(&runID, "run-id", 0, "run ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("pipeline-id")
	_ = cmd.MarkFlagRequired("run-id")

	return cmd
}

func newPipelinesRunsCommand() *cobra.Command {
	var (
		project    string
		pipelineID int
		where      string
		preset     string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs of a pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			runs, err := c.ListPipelineRuns(cmd.Context(), project, pipelineID)
			if err != nil {
				return err
			}
			runs, err = applyFilter(runs, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(runs)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&pipelineID, "pipeline-id", 0, "pipeline ID")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("pipeline-id")

	return cmd
}

func newPipelinesArtifactsCommand() *cobra.Command {
	var (
		project string
		buildID int
	)

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "List the artifacts produced by a build",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			artifacts, err := c.ListArtifacts(cmd.Context(), project, buildID)
			if err != nil {
				return err
			}
			return newOutput().JSON(artifacts)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}

func newPipelinesTimelineCommand() *cobra.Command {
	var (
		project string
		buildID int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Get the stage/job/task timeline of a build",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			timeline, err := c.GetBuildTimeline(cmd.Context(), project, buildID)
			if err != nil {
				return err
			}
			return newOutput().JSON(timeline)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}
