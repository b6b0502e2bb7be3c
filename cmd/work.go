package cmd

import (
	"github.com/spf13/cobra"
)

func newWorkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Iterations, capacity",
	}

	cmd.AddCommand(newWorkIterationsCommand())
	cmd.AddCommand(newWorkTeamIterationsCommand())
	cmd.AddCommand(newWorkIterationCapacityCommand())
	cmd.AddCommand(newWorkTeamCapacityCommand())

	return cmd
}

func newWorkIterationsCommand() *cobra.Command {
	var (
		project string
		depth   int
	)

	cmd := &cobra.Command{
		Use:   "iterations",
		Short: "List a project's iteration tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			iterations, err := c.ListIterations(cmd.Context(), project, depth)
			if err != nil {
				return err
			}
			return newOutput().JSON(iterations)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&depth, "depth", 0, "depth of the iteration tree to return")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWorkTeamIterationsCommand() *cobra.Command {
	var (
		project   string
		team      string
		timeframe string
		where     string
		preset    string
	)

	cmd := &cobra.Command{
		Use:   "team-iterations",
		Short: "List the iterations assigned to a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			iterations, err := c.ListTeamIterations(cmd.Context(), project, team, timeframe)
			if err != nil {
				return err
			}
			iterations, err = applyFilter(iterations, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(iterations)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&team, "team", "", "team name")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "narrow to a timeframe (past, current, future)")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newWorkIterationCapacityCommand() *cobra.Command {
	var (
		project     string
		iterationID string
	)

	cmd := &cobra.Command{
		Use:   "iteration-capacity",
		Short: "Get capacity for all teams in an iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			capacities, err := c.IterationCapacities(cmd.Context(), project, iterationID)
			if err != nil {
				return err
			}
			return newOutput().JSON(capacities)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&iterationID, "iteration-id", "", "iteration ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("iteration-id")

	return cmd
}

func newWorkTeamCapacityCommand() *cobra.Command {
	var (
		project     string
		team        string
		iterationID string
	)

	cmd := &cobra.Command{
		Use:   "team-capacity",
		Short: "Get one team's capacity in an iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			capacity, err := c.TeamCapacity(cmd.Context(), project, team, iterationID)
			if err != nil {
				return err
			}
			return newOutput().JSON(capacity)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&team, "team", "", "team name")
	cmd.Flags().StringVar(&iterationID, "iteration-id", "", "iteration ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("iteration-id")

	return cmd
}
