package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/azdo"
)

func newSecurityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Advanced Security alerts",
	}

	cmd.AddCommand(newSecurityAlertsCommand())
	cmd.AddCommand(newSecurityAlertDetailCommand())

	return cmd
}

func newSecurityAlertsCommand() *cobra.Command {
	var (
		project           string
		repository        string
		alertType         string
		severity          string
		states            string
		confidence        string
		ref               string
		top               int
		onlyDefaultBranch bool
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List advanced security alerts for a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			opts := azdo.ListAlertsOptions{
				AlertType:        alertType,
				Severity:         severity,
				States:           states,
				ConfidenceLevels: confidence,
				Ref:              ref,
				Top:              top,
			}
			if cmd.Flags().Changed("only-default-branch") {
				opts.OnlyDefaultBranch = &onlyDefaultBranch
			}
			alerts, err := c.ListAlerts(cmd.Context(), project, repository, opts)
			if err != nil {
				return err
			}
			return newOutput().JSON(alerts)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repository, "repository", "", "repository name or ID")
	cmd.Flags().StringVar(&alertType, "alert-type", "", "alert category (code, secret, dependency)")
	cmd.Flags().StringVar(&severity, "severity", "", "severity filter (critical, high, medium, low, note, warning, error)")
	cmd.Flags().StringVar(&states, "states", "", "state filter (active, dismissed, fixed, autoDismissed)")
	cmd.Flags().StringVar(&confidence, "confidence", "", "secret alert confidence levels (default high)")
	cmd.Flags().StringVar(&ref, "ref", "", "scope results to a branch ref")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of alerts to return")
	cmd.Flags().BoolVar(&onlyDefaultBranch, "only-default-branch", false, "only alerts on the default branch")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repository")

	return cmd
}

func newSecurityAlertDetailCommand() *cobra.Command {
	var (
		project    string
		repository string
		alertID    int
		ref        string
	)

	cmd := &cobra.Command{
		Use:   "alert-detail",
		Short: "Get a single advanced security alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireClient()
			if err != nil {
				return err
			}
			alert, err := c.GetAlert(cmd.Context(), project, repository, alertID, ref)
			if err != nil {
				return err
			}
			return newOutput().JSON(alert)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name or ID")
	cmd.Flags().StringVar(&repository, "repository", "", "repository name or ID")
	cmd.Flags().IntVar(&alertID, "alert-id", 0, "alert ID")
	cmd.Flags().StringVar(&ref, "ref", "", "scope the lookup to a branch ref")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("alert-id")

	return cmd
}
