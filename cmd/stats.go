package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the current run's statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Campaign Stats — " + run.Name))
		fmt.Printf("%s %d\n", labelStyle.Render("Jobs imported:"), run.Stats.TotalJobs)
		fmt.Printf("%s %d\n", labelStyle.Render("Qualified jobs:"), run.Stats.QualifiedJobs)
		fmt.Printf("%s %d\n", labelStyle.Render("Disqualified jobs:"), len(run.QualifyData.DisqualifiedJobs))
		fmt.Printf("%s %d\n", labelStyle.Render("Contacts:"), run.Stats.TotalContacts)
		for source, count := range run.EnrichData.SourceCounts {
			fmt.Printf("    %s: %d\n", source, count)
		}
		fmt.Printf("%s %d (approved: %d)\n", labelStyle.Render("Messages:"), run.Stats.TotalMessages, run.ComposeData.ApprovedCount)
		fmt.Printf("%s %d\n", labelStyle.Render("Ready to send:"), run.Stats.ReadyToSend)

		if run.ExportData.ExportedAt != nil {
			fmt.Printf("%s %s", labelStyle.Render("Exported:"), run.ExportData.ExportedAt.Format("2006-01-02 15:04"))
			if run.ExportData.DestinationRef != "" {
				fmt.Printf(" → %s", run.ExportData.DestinationRef)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
