package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test plans, suites, cases, results",
	}

	cmd.AddCommand(newTestPlansCommand())
	cmd.AddCommand(newTestSuitesCommand())
	cmd.AddCommand(newTestCasesCommand())
	cmd.AddCommand(newTestResultsCommand())

	return cmd
}

func newTestPlansCommand() *cobra.Command {
	var (
		project        string
		active         bool
		includeDetails bool
		token          string
		where          string
		preset         string
	)

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List the test plans in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			opts := azdo.ListTestPlansOptions{ContinuationToken: token}
			if cmd.Flags().Changed("active") {
				opts.FilterActive = &active
			}
			if cmd.Flags().Changed("include-details") {
				opts.IncludePlanDetails = &includeDetails
			}
			plans, err := c.ListTestPlans(cmd.Context(), project, opts)
			if err != nil {
				return err
			}
			plans, err = applyFilter(plans, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(plans)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().BoolVar(&active, "active", false, "only active test plans")
	cmd.Flags().BoolVar(&includeDetails, "include-details", false, "include full plan details")
	cmd.Flags().StringVar(&token, "continuation-token", "", "continuation token from a previous batch")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTestSuitesCommand() *cobra.Command {
	var (
		project string
		planID  int
		token   string
	)

	cmd := &cobra.Command{
		Use:   "suites",
		Short: "List the suites of a test plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			suites, err := c.ListTestSuites(cmd.Context(), project, planID, token)
			if err != nil {
				return err
			}
			return newOutput().JSON(suites)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&planID, "plan-id", 0, "test plan ID")
	cmd.Flags().StringVar(&token, "continuation-token", "", "continuation token from a previous batch")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("plan-id")

	return cmd
}

func newTestCasesCommand() *cobra.Command {
	var (
		project string
		planID  int
		suiteID int
	)

	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the test cases in a suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			cases, err := c.ListTestCases(cmd.Context(), project, planID, suiteID)
			if err != nil {
				return err
			}
			return newOutput().JSON(cases)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&planID, "plan-id", 0, "test plan ID")
	cmd.Flags().IntVar(&suiteID, "suite-id", 0, "test suite ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("plan-id")
	_ = cmd.MarkFlagRequired("suite-id")

	return cmd
}

func newTestResultsCommand() *cobra.Command {
	var (
		project string
		buildID int
		where   string
		preset  string
	)

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Get the test results of every run recorded for a build",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			results, err := c.TestResultsByBuild(cmd.Context(), project, buildID)
			if err != nil {
				return err
			}
			results, err = applyFilter(results, where, preset)
			if err != nil {
				return err
			}
			return newOutput().JSON(results)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().IntVar(&buildID, "build-id", 0, "build ID")
	addFilterFlags(cmd, &where, &preset)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-id")

	return cmd
}
