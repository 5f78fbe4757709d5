package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/composer"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Generate and manage outreach message drafts",
}

var composeRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Draft the four-message sequence for every eligible contact",
	Long: `Generate a four-step outreach sequence per contact with the configured AI
provider. Contacts that already have messages are skipped, so re-running is
safe. Drafting failures skip the affected step only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.EnrichData.Contacts) == 0 {
			fmt.Println("No contacts to compose for. Derive some with 'leadpilot enrich derive'")
			return nil
		}

		updated := workflow.UpdateStepStatus(*run, models.StepCompose, models.StepRunning, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("Drafting messages for %d contacts...\n", len(updated.EnrichData.Contacts))

		c := composer.New(a.Config, a.AI)
		messages, notes := c.Compose(cmd.Context(), updated, time.Now())

		for _, note := range notes {
			fmt.Println("  " + note)
		}

		// Single commit after the whole batch
		updated = workflow.AddMessages(updated, messages)
		updated = workflow.UpdateStepStatus(updated, models.StepCompose, models.StepCompleted, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("✓ Drafted %d messages\n", len(messages))
		return nil
	},
}

var composeApproveCmd = &cobra.Command{
	Use:   "approve [message-id]",
	Short: "Approve one draft, or all with --all",
	Args:  cobra.MaximumNArgs(1),
	Example: `  leadpilot compose approve abc123
  leadpilot compose approve --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("provide a message id or --all")
		}

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		var updated models.WorkflowRun
		if all {
			updated = workflow.ApproveAllMessages(*run)
		} else {
			updated = workflow.ApproveMessage(*run, args[0])
		}
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("✓ Approved: %d of %d messages\n", updated.ComposeData.ApprovedCount, len(updated.ComposeData.Messages))
		return nil
	},
}

var composeEditCmd = &cobra.Command{
	Use:   "edit <message-id>",
	Short: "Edit a draft's subject or body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		update := workflow.MessageUpdate{}
		if cmd.Flags().Changed("subject") {
			v, _ := cmd.Flags().GetString("subject")
			update.Subject = &v
		}
		if cmd.Flags().Changed("body") {
			v, _ := cmd.Flags().GetString("body")
			update.Body = &v
		}

		updated := workflow.UpdateMessage(*run, args[0], update)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Updated message %s\n", args[0])
		return nil
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List the current run's drafted messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.ComposeData.Messages) == 0 {
			fmt.Println("No messages yet. Draft some with 'leadpilot compose run'")
			return nil
		}

		fmt.Println(titleStyle.Render("Messages"))
		for _, m := range run.ComposeData.Messages {
			fmt.Printf("• [%s] %s — %s  (%s)\n", m.Status, m.SequenceStep, m.Subject, m.ID)
			fmt.Printf("  %s %s  %s %s\n",
				labelStyle.Render("Send:"), m.SuggestedSendDate.Format("2006-01-02"),
				labelStyle.Render("Channel:"), m.Channel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(messagesCmd)
	composeCmd.AddCommand(composeRunCmd)
	composeCmd.AddCommand(composeApproveCmd)
	composeCmd.AddCommand(composeEditCmd)

	composeApproveCmd.Flags().Bool("all", false, "Approve every draft")
	composeEditCmd.Flags().String("subject", "", "New subject line")
	composeEditCmd.Flags().String("body", "", "New message body")
}
