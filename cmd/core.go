package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newCoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Projects, teams, identities",
	}

	cmd.AddCommand(newCoreListProjectsCommand())
	cmd.AddCommand(newCoreListTeamsCommand())
	cmd.AddCommand(newCoreGetIdentityCommand())

	return cmd
}

func newCoreListProjectsCommand() *cobra.Command {
	var (
		top         int
		skip        int
		stateFilter string
		nameFilter  string
		where       string
		preset      string
	)

	cmd := &cobra.Command{
		Use:   "list-projects",
		Short: "List the projects in the organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(cmd.Context(), azdo.ListProjectsOptions{
				Top:         top,
				Skip:        skip,
				StateFilter: stateFilter,
				NameFilter:  nameFilter,
			})
			if err != nil {
				return err
			}
			projects, err = applyFilter(projects, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(projects)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "maximum number of projects to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of projects to skip")
	cmd.Flags().StringVar(&stateFilter, "state-filter", "", "project state filter (wellFormed, createPending, deleting, new, all)")
	cmd.Flags().StringVar(&nameFilter, "name-filter", "", "filter projects by name")
	addFilterFlags(cmd, &where, &preset)

	return cmd
}

func newCoreListTeamsCommand() *cobra.Command {
	var (
		project string
		top     int
		skip    int
		mine    bool
		where   string
		preset  string
	)

	cmd := &cobra.Command{
		Use:   "list-teams",
		Short: "List the teams within a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			opts := azdo.ListTeamsOptions{Top: top, Skip: skip}
			if cmd.Flags().Changed("mine") {
				opts.Mine = &mine
			}
			teams, err := c.ListTeams(cmd.Context(), project, opts)
			if err != nil {
				return err
			}
			teams, err = applyFilter(teams, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(teams)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of teams to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of teams to skip")
	cmd.Flags().BoolVar(&mine, "mine", false, "only teams the caller is a member of")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newCoreGetIdentityCommand() *cobra.Command {
	var searchFilter string

	cmd := &cobra.Command{
		Use:   "get-identity",
		Short: "Look up identity IDs by display name or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			identities, err := c.GetIdentities(cmd.Context(), searchFilter)
			if err != nil {
				return err
			}
			return newOutput().JSON(identities)
		},
	}

	cmd.Flags().StringVar(&searchFilter, "search-filter", "", "display name or email to search for")
	_ = cmd.MarkFlagRequired("search-filter")

	return cmd
}
