package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/qualifier"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

var qualifyCmd = &cobra.Command{
	Use:   "qualify",
	Short: "Qualify imported jobs against your ideal-customer profile",
}

var qualifyRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the automatic qualification pass",
	Long: `Classify every imported job with the configured AI provider and partition
them into qualified and disqualified based on tech-stack match and location
preference. Partial progress is kept if a batch fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.SourceData.Jobs) == 0 {
			fmt.Println("No jobs to qualify. Import some with 'leadpilot import <file.json>'")
			return nil
		}

		updated := workflow.UpdateStepStatus(*run, models.StepQualify, models.StepRunning, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("Classifying %d jobs...\n", len(updated.SourceData.Jobs))

		updated, qerr := qualifier.Qualify(cmd.Context(), updated, a.Config, a.AI)
		if qerr != nil {
			// Keep partial progress, surface the failure on the step
			updated = workflow.UpdateStepStatus(updated, models.StepQualify, models.StepError, qerr.Error())
			if err := a.SaveRun(updated); err != nil {
				return err
			}
			return fmt.Errorf("qualification incomplete: %w", qerr)
		}

		updated = workflow.UpdateStepStatus(updated, models.StepQualify, models.StepCompleted, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("✓ Qualified %d, disqualified %d\n",
			len(updated.QualifyData.QualifiedJobs), len(updated.QualifyData.DisqualifiedJobs))
		return nil
	},
}

var qualifyMarkCmd = &cobra.Command{
	Use:   "mark <job-id>",
	Short: "Manually qualify or disqualify one job",
	Args:  cobra.ExactArgs(1),
	Example: `  leadpilot qualify mark abc123
  leadpilot qualify mark abc123 --disqualify --reason "wrong industry"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		disqualify, _ := cmd.Flags().GetBool("disqualify")
		reason, _ := cmd.Flags().GetString("reason")

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		if _, ok := workflow.FindJob(*run, args[0]); !ok {
			return fmt.Errorf("job %s not found in current run", args[0])
		}

		updated := workflow.QualifyJob(*run, args[0], !disqualify, reason)
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		verb := "qualified"
		if disqualify {
			verb = "disqualified"
		}
		fmt.Printf("✓ Job %s %s\n", args[0], verb)
		return nil
	},
}

var qualifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the qualified/disqualified partition",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Qualified (%d)", len(run.QualifyData.QualifiedJobs))))
		for _, j := range run.QualifyData.QualifiedJobs {
			fmt.Printf("  ✓ %s at %s — %s\n", j.Title, j.Company, j.Reason)
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Disqualified (%d)", len(run.QualifyData.DisqualifiedJobs))))
		for _, j := range run.QualifyData.DisqualifiedJobs {
			fmt.Printf("  ✗ %s at %s — %s\n", j.Title, j.Company, j.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qualifyCmd)
	qualifyCmd.AddCommand(qualifyRunCmd)
	qualifyCmd.AddCommand(qualifyMarkCmd)
	qualifyCmd.AddCommand(qualifyListCmd)

	qualifyMarkCmd.Flags().Bool("disqualify", false, "Disqualify instead of qualify")
	qualifyMarkCmd.Flags().String("reason", "", "Reason for the decision")
}
