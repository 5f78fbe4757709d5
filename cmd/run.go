package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Manage campaign runs",
	Long:  "Create, list, switch, rename, reset and delete campaign runs",
}

var runNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new campaign run and make it current",
	Args:  cobra.MaximumNArgs(1),
	Example: `  leadpilot run new
  leadpilot run new "Q3 SaaS outreach"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		run := workflow.NewRun(name)
		if err := a.Store.CreateRun(run); err != nil {
			return fmt.Errorf("create run: %w", err)
		}

		fmt.Printf("✓ Created run %q (%s)\n", run.Name, run.ID)
		return nil
	},
}

var runListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaign runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		runs, err := a.Store.ListRuns()
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs yet. Create one with 'leadpilot run new'")
			return nil
		}

		fmt.Println(titleStyle.Render("Campaign Runs"))
		for _, r := range runs {
			marker := " "
			if r.IsCurrent {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, r.ID, r.Name)
			fmt.Printf("    jobs: %d  qualified: %d  contacts: %d  messages: %d  ready: %d\n",
				r.Stats.TotalJobs, r.Stats.QualifiedJobs, r.Stats.TotalContacts,
				r.Stats.TotalMessages, r.Stats.ReadyToSend)
		}
		return nil
	},
}

var runUseCmd = &cobra.Command{
	Use:   "use <run-id>",
	Short: "Make a run the current run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		if err := a.Store.SetCurrent(args[0]); err != nil {
			return fmt.Errorf("switch run: %w", err)
		}
		fmt.Printf("✓ Current run is now %s\n", args[0])
		return nil
	},
}

var runDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		if err := a.Store.DeleteRun(args[0]); err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		fmt.Printf("✓ Deleted run %s\n", args[0])
		return nil
	},
}

var runRenameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename the current run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.Rename(*run, args[0])
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Renamed run to %q\n", args[0])
		return nil
	},
}

var runResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the current run's stage data",
	Long:  "Re-initialize all stage data for the current run while keeping its id and name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.Reset(*run)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Reset run %q\n", updated.Name)
		return nil
	},
}

var runShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current run's step states",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(run.Name))
		fmt.Printf("%s %s\n", labelStyle.Render("ID:"), run.ID)
		fmt.Printf("%s %s\n", labelStyle.Render("Current step:"), run.CurrentStep)
		for _, step := range stepOrderForDisplay() {
			state := run.Steps[step]
			line := fmt.Sprintf("  %-8s %s", step, state.Status)
			if state.Error != "" {
				line += "  (" + state.Error + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runNewCmd)
	runCmd.AddCommand(runListCmd)
	runCmd.AddCommand(runUseCmd)
	runCmd.AddCommand(runDeleteCmd)
	runCmd.AddCommand(runRenameCmd)
	runCmd.AddCommand(runResetCmd)
	runCmd.AddCommand(runShowCmd)
}
