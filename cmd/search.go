package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Code, wiki, work item search",
	}

	cmd.AddCommand(newSearchCodeCommand())
	cmd.AddCommand(newSearchWikiCommand())
	cmd.AddCommand(newSearchWorkItemsCommand())

	return cmd
}

func newSearchCodeCommand() *cobra.Command {
	var (
		text       string
		project    string
		repository string
		branch     string
		path       string
		top        int
		skip       int
	)

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Search code across repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			results, err := c.SearchCode(cmd.Context(), text, azdo.SearchCodeOptions{
				Project:    project,
				Repository: repository,
				Branch:     branch,
				Path:       path,
				Top:        top,
				Skip:       skip,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(results)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "search text")
	cmd.Flags().StringVar(&project, "project", "", "restrict the search to a project")
	cmd.Flags().StringVar(&repository, "repository", "", "restrict the search to a repository")
	cmd.Flags().StringVar(&branch, "branch", "", "restrict the search to a branch")
	cmd.Flags().StringVar(&path, "path", "", "restrict the search to a path prefix")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of results (default 25)")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of results to skip")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newSearchWikiCommand() *cobra.Command {
	var (
		text    string
		project string
		wiki    string
		top     int
		skip    int
	)

	cmd := &cobra.Command{
		Use:   "wiki",
		Short: "Search wiki pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			results, err := c.SearchWiki(cmd.Context(), text, azdo.SearchWikiOptions{
				Project: project,
				Wiki:    wiki,
				Top:     top,
				Skip:    skip,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(results)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "search text")
	cmd.Flags().StringVar(&project, "project", "", "restrict the search to a project")
	cmd.Flags().StringVar(&wiki, "wiki", "", "restrict the search to a wiki")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of results (default 25)")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of results to skip")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newSearchWorkItemsCommand() *cobra.Command {
	var (
		text       string
		project    string
		witType    string
		state      string
		assignedTo string
		areaPath   string
		top        int
		skip       int
	)

	cmd := &cobra.Command{
		Use:   "workitems",
		Short: "Search work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			results, err := c.SearchWorkItems(cmd.Context(), text, azdo.SearchWorkItemsOptions{
				Project:    project,
				Type:       witType,
				State:      state,
				AssignedTo: assignedTo,
				AreaPath:   areaPath,
				Top:        top,
				Skip:       skip,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(results)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "search text")
	cmd.Flags().StringVar(&project, "project", "", "restrict the search to a project")
	cmd.Flags().StringVar(&witType, "type", "", "restrict to a work item type")
	cmd.Flags().StringVar(&state, "state", "", "restrict to a work item state")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "restrict to an assignee")
	cmd.Flags().StringVar(&areaPath, "area-path", "", "restrict to an area path")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of results (default 25)")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of results to skip")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
