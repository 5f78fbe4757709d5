package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

func stepOrderForDisplay() []models.Step {
	return models.StepOrder
}

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Navigate the pipeline steps",
	Long:  "Move the current run's step pointer through source → qualify → enrich → compose → export",
}

var stepNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next step",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.NextStep(*run)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("Current step: %s\n", updated.CurrentStep)
		return nil
	},
}

var stepBackCmd = &cobra.Command{
	Use:   "back",
	Short: "Go back one step",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.PrevStep(*run)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("Current step: %s\n", updated.CurrentStep)
		return nil
	},
}

var stepGotoCmd = &cobra.Command{
	Use:   "goto <step>",
	Short: "Jump directly to a step",
	Args:  cobra.ExactArgs(1),
	Example: `  leadpilot step goto qualify
  leadpilot step goto export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		step := models.Step(args[0])
		valid := false
		for _, s := range models.StepOrder {
			if s == step {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown step %q: must be one of %v", args[0], models.StepOrder)
		}

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.SetCurrentStep(*run, step)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("Current step: %s\n", updated.CurrentStep)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.AddCommand(stepNextCmd)
	stepCmd.AddCommand(stepBackCmd)
	stepCmd.AddCommand(stepGotoCmd)
}
