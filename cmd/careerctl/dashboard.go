package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edu2job/edu2job-server/internal/models"
)

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.newClient()
			if err != nil {
				return err
			}
			dash, err := c.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				out, err := json.MarshalIndent(dash, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				cmd.Println(string(out))
				return nil
			}
			printDashboard(cmd, dash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the dashboard as JSON")

	return cmd
}

func printDashboard(cmd *cobra.Command, dash models.Dashboard) {
	cmd.Println(dash.Message)
	cmd.Println()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tCOMPANY\tSKILLS")
	for _, job := range dash.Jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", job.Role, job.Company, job.Skills)
	}
	w.Flush()

	cmd.Println()
	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROGRAM\tGRADUATES")
	for i, label := range dash.Chart.Labels {
		if i < len(dash.Chart.Counts) {
			fmt.Fprintf(w, "%s\t%d\n", label, dash.Chart.Counts[i])
		}
	}
	w.Flush()
}
