package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/importer"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import job listings into the current run",
	Long:  "Import a JSON export of job listings. Field names are resolved tolerantly; re-importing the same file is a no-op.",
	Args:  cobra.ExactArgs(1),
	Example: `  leadpilot import ./jobs.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		jobs, err := importer.ParseJobs(data)
		if err != nil {
			// Validation failure: the run is untouched
			return fmt.Errorf("import: %w", err)
		}

		before := len(run.SourceData.Jobs)
		updated := workflow.AddJobs(*run, jobs)
		updated = workflow.UpdateStepStatus(updated, models.StepSource, models.StepCompleted, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		added := len(updated.SourceData.Jobs) - before
		fmt.Printf("✓ Imported %d jobs (%d new, %d duplicates skipped)\n", len(jobs), added, len(jobs)-added)
		return nil
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage imported jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.SourceData.Jobs) == 0 {
			fmt.Println("No jobs imported yet. Import with 'leadpilot import <file.json>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Imported Jobs"))
		for _, job := range run.SourceData.Jobs {
			fmt.Printf("• %s at %s  (%s)\n", job.Title, job.Company, job.ID)
			if job.Location != "" {
				fmt.Printf("  %s %s\n", labelStyle.Render("Location:"), job.Location)
			}
			if job.Poster != nil {
				fmt.Printf("  %s %s (%s)\n", labelStyle.Render("Poster:"), job.Poster.Name, job.Poster.Title)
			}
		}
		return nil
	},
}

var jobsRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove one job from the current run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.RemoveJob(*run, args[0])
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Removed job %s\n", args[0])
		return nil
	},
}

var jobsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all imported jobs from the current run",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.ClearJobs(*run)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Println("✓ Cleared all jobs")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsRemoveCmd)
	jobsCmd.AddCommand(jobsClearCmd)
}
