package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newWikiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wiki",
		Short: "Wikis, pages, content",
	}

	cmd.AddCommand(newWikiListCommand())
	cmd.AddCommand(newWikiGetCommand())
	cmd.AddCommand(newWikiPagesCommand())
	cmd.AddCommand(newWikiPageCommand())
	cmd.AddCommand(newWikiContentCommand())

	return cmd
}

func newWikiListCommand() *cobra.Command {
	var (
		project string
		where   string
		preset  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wikis organization-wide or within one project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			wikis, err := c.ListWikis(cmd.Context(), project)
			if err != nil {
				return err
			}
			wikis, err = applyFilter(wikis, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(wikis)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID (omit for organization-wide)")
	addFilterFlags(cmd, &where, &preset)

	return cmd
}

func newWikiGetCommand() *cobra.Command {
	var project, wikiID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get details of one wiki",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			wiki, err := c.GetWiki(cmd.Context(), project, wikiID)
			if err != nil {
				return err
			}
			return newOutput().JSON(wiki)
		},
	}

	cmd.Flags().StringVar(&wikiID, "wiki-id", "", "wiki name or ID")
	cmd.Flags().StringVar(&project, "project", "", "project name or ID (optional)")
	_ = cmd.MarkFlagRequired("wiki-id")

	return cmd
}

func newWikiPagesCommand() *cobra.Command {
	var (
		project          string
		wikiID           string
		top              int
		token            string
		pageViewsForDays int
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the pages of a wiki in batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			pages, err := c.ListWikiPages(cmd.Context(), project, wikiID, azdo.ListWikiPagesOptions{
				Top:               top,
				ContinuationToken: token,
				PageViewsForDays:  pageViewsForDays,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(pages)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&wikiID, "wiki-id", "", "wiki name or ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of pages to return")
	cmd.Flags().StringVar(&token, "continuation-token", "", "continuation token from a previous batch")
	cmd.Flags().IntVar(&pageViewsForDays, "page-views-for-days", 0, "include view counts for the trailing N days")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("wiki-id")

	return cmd
}

func newWikiPageCommand() *cobra.Command {
	var (
		project   string
		wikiID    string
		path      string
		recursion string
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Get wiki page metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			page, err := c.GetWikiPage(cmd.Context(), project, wikiID, path, recursion)
			if err != nil {
				return err
			}
			return newOutput().JSON(page)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&wikiID, "wiki-id", "", "wiki name or ID")
	cmd.Flags().StringVar(&path, "path", "", "wiki page path")
	cmd.Flags().StringVar(&recursion, "recursion", "", "recursion level (none, oneLevel, full)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("wiki-id")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func newWikiContentCommand() *cobra.Command {
	var (
		project string
		wikiID  string
		path    string
	)

	cmd := &cobra.Command{
		Use:   "content",
		Short: "Get a wiki page's content as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			content, err := c.GetWikiPageContent(cmd.Context(), project, wikiID, path)
			if err != nil {
				return err
			}
			return newOutput().Text(content)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&wikiID, "wiki-id", "", "wiki name or ID")
	cmd.Flags().StringVar(&path, "path", "", "wiki page path")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("wiki-id")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
