package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newWitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wit",
		Short: "Work items, queries, backlogs",
	}

	cmd.AddCommand(newWitGetCommand())
	cmd.AddCommand(newWitBatchCommand())
	cmd.AddCommand(newWitCommentsCommand())
	cmd.AddCommand(newWitRevisionsCommand())
	cmd.AddCommand(newWitTypeCommand())
	cmd.AddCommand(newWitMineCommand())
	cmd.AddCommand(newWitWiqlCommand())
	cmd.AddCommand(newWitGetQueryCommand())
	cmd.AddCommand(newWitQueryResultsCommand())
	cmd.AddCommand(newWitIterationItemsCommand())
	cmd.AddCommand(newWitBacklogsCommand())
	cmd.AddCommand(newWitBacklogItemsCommand())

	return cmd
}

func newWitGetCommand() *cobra.Command {
	var (
		project string
		id      int
		fields  string
		expand  string
		asOf    string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a single work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			item, err := c.GetWorkItem(cmd.Context(), project, id, azdo.GetWorkItemOptions{
				Fields: fields,
				Expand: expand,
				AsOf:   asOf,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(item)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&id, "id", 0, "work item ID")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated field reference names")
	cmd.Flags().StringVar(&expand, "expand", "", "expand options (relations, fields, links, all)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "work item state as of this date")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newWitBatchCommand() *cobra.Command {
	var (
		project string
		ids     string
		fields  string
		where   string
		preset  string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Get multiple work items in one request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			idList, err := parseIntList(ids)
			if err != nil {
				return err
			}
			var fieldList []string
			if fields != "" {
				fieldList = strings.Split(fields, ",")
			}
			items, err := c.GetWorkItemsBatch(cmd.Context(), project, idList, fieldList)
			if err != nil {
				return err
			}
			items, err = applyFilter(items, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(items)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated work item IDs")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated field reference names")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}

func newWitCommentsCommand() *cobra.Command {
	var (
		project string
		id      int
		top     int
	)

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List the comments on a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			comments, err := c.ListWorkItemComments(cmd.Context(), project, id, top)
			if err != nil {
				return err
			}
			return newOutput().JSON(comments)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&id, "id", 0, "work item ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of comments to return")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newWitRevisionsCommand() *cobra.Command {
	var (
		project string
		id      int
		top     int
		skip    int
		expand  string
	)

	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "List the revision history of a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			revisions, err := c.ListWorkItemRevisions(cmd.Context(), project, id, azdo.ListRevisionsOptions{
				Top:    top,
				Skip:   skip,
				Expand: expand,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(revisions)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&id, "id", 0, "work item ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of revisions to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of revisions to skip")
	cmd.Flags().StringVar(&expand, "expand", "", "expand options (relations, fields, links, all)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newWitTypeCommand() *cobra.Command {
	var project, typeName string

	cmd := &cobra.Command{
		Use:   "type",
		Short: "Get the definition of a work item type",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			witType, err := c.GetWorkItemType(cmd.Context(), project, typeName)
			if err != nil {
				return err
			}
			return newOutput().JSON(witType)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&typeName, "type-name", "", "work item type name (e.g. Bug, Task)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("type-name")

	return cmd
}

func newWitMineCommand() *cobra.Command {
	var (
		project          string
		typeFilter       string
		top              int
		includeCompleted bool
		where            string
		preset           string
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List work items assigned to you, newest change first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			items, err := c.MyWorkItems(cmd.Context(), project, azdo.MyWorkItemsOptions{
				TypeFilter:       typeFilter,
				Top:              top,
				IncludeCompleted: includeCompleted,
			})
			if err != nil {
				return err
			}
			items, err = applyFilter(items, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(items)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&typeFilter, "type", "", "restrict to one work item type")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of work items to return (default 50)")
	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "include closed, done, and removed items")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWitWiqlCommand() *cobra.Command {
	var (
		project string
		query   string
		top     int
		team    string
	)

	cmd := &cobra.Command{
		Use:   "wiql",
		Short: "Run a WIQL query",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			result, err := c.RunWiql(cmd.Context(), project, query, top, team)
			if err != nil {
				return err
			}
			return newOutput().JSON(result)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&query, "query", "", "WIQL query text")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of results to return")
	cmd.Flags().StringVar(&team, "team", "", "run the query in a team context")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func newWitGetQueryCommand() *cobra.Command {
	var (
		project string
		queryID string
		depth   int
		expand  string
	)

	cmd := &cobra.Command{
		Use:   "get-query",
		Short: "Get a saved query by ID or path",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			query, err := c.GetQuery(cmd.Context(), project, queryID, azdo.GetQueryOptions{
				Depth:  depth,
				Expand: expand,
			})
			if err != nil {
				return err
			}
			return newOutput().JSON(query)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&queryID, "query-id", "", "query ID or folder path (e.g. 'Shared Queries/My Bugs')")
	cmd.Flags().IntVar(&depth, "depth", 0, "depth of the query folder tree to return")
	cmd.Flags().StringVar(&expand, "expand", "", "expand options (wiql, clauses, all, minimal)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("query-id")

	return cmd
}

func newWitQueryResultsCommand() *cobra.Command {
	var (
		project string
		queryID string
		top     int
		team    string
	)

	cmd := &cobra.Command{
		Use:   "query-results",
		Short: "Execute a saved query by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			result, err := c.GetQueryResults(cmd.Context(), project, queryID, top, team)
			if err != nil {
				return err
			}
			return newOutput().JSON(result)
		},
	}

	cmd.Flags().StringVar(&queryID, "query-id", "", "saved query ID")
	cmd.Flags().StringVar(&project, "project", "", "project name or ID (optional)")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of results to return")
	cmd.Flags().StringVar(&team, "team", "", "run the query in a team context")
	_ = cmd.MarkFlagRequired("query-id")

	return cmd
}

func newWitIterationItemsCommand() *cobra.Command {
	var (
		project     string
		iterationID string
		team        string
	)

	cmd := &cobra.Command{
		Use:   "iteration-items",
		Short: "List the work items in an iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			items, err := c.IterationWorkItems(cmd.Context(), project, team, iterationID)
			if err != nil {
				return err
			}
			return newOutput().JSON(items)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&iterationID, "iteration-id", "", "iteration ID")
	cmd.Flags().StringVar(&team, "team", "", "team name (defaults to the project's default team)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("iteration-id")

	return cmd
}

func newWitBacklogsCommand() *cobra.Command {
	var project, team string

	cmd := &cobra.Command{
		Use:   "backlogs",
		Short: "List a team's backlogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			backlogs, err := c.ListBacklogs(cmd.Context(), project, team)
			if err != nil {
				return err
			}
			return newOutput().JSON(backlogs)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&team, "team", "", "team name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newWitBacklogItemsCommand() *cobra.Command {
	var project, team, backlogID string

	cmd := &cobra.Command{
		Use:   "backlog-items",
		Short: "List the work items in one backlog level",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			items, err := c.BacklogWorkItems(cmd.Context(), project, team, backlogID)
			if err != nil {
				return err
			}
			return newOutput().JSON(items)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&team, "team", "", "team name")
	cmd.Flags().StringVar(&backlogID, "backlog-id", "", "backlog level ID (e.g. Microsoft.RequirementCategory)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("backlog-id")

	return cmd
}
