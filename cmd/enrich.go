package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Derive and enrich contacts from qualified jobs",
}

var enrichDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Create one contact per qualified job",
	Long: `Derive a contact for every qualified job not yet represented: the job's
named poster where one exists, otherwise a placeholder needing manual
enrichment. Re-running never duplicates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		contacts := workflow.DeriveContacts(*run)
		updated := workflow.AddContacts(*run, contacts)
		updated = workflow.UpdateStepStatus(updated, models.StepEnrich, models.StepCompleted, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		placeholders := 0
		for _, c := range contacts {
			if c.Name == workflow.PlaceholderName {
				placeholders++
			}
		}
		fmt.Printf("✓ Derived %d contacts (%d need manual enrichment)\n", len(contacts), placeholders)
		return nil
	},
}

var enrichLookupCmd = &cobra.Command{
	Use:   "lookup <contact-id>",
	Short: "Fill a contact's details via the enrichment provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		contact, ok := workflow.FindContact(*run, args[0])
		if !ok {
			return fmt.Errorf("contact %s not found in current run", args[0])
		}
		if contact.Name == workflow.PlaceholderName {
			return fmt.Errorf("contact has no name to look up; set one first with 'leadpilot enrich update %s --name ...'", contact.ID)
		}

		result, err := a.Enrichment.Lookup(cmd.Context(), contact.Name, contact.Company)
		if err != nil {
			return fmt.Errorf("enrichment lookup: %w", err)
		}

		update := workflow.ContactUpdate{}
		if result.Email != "" {
			update.Email = &result.Email
		}
		if result.ProfileURL != "" {
			update.LinkedInURL = &result.ProfileURL
		}
		if result.Title != "" && contact.Title == "" {
			update.Title = &result.Title
		}
		if result.Confidence > 0 {
			update.Confidence = &result.Confidence
		}
		source := models.SourceEnrichmentA
		update.Source = &source

		updated := workflow.UpdateContact(*run, contact.ID, update)
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("✓ Enriched %s", contact.Name)
		if result.Email != "" {
			fmt.Printf(" <%s>", result.Email)
		}
		fmt.Println()
		return nil
	},
}

var enrichUpdateCmd = &cobra.Command{
	Use:   "update <contact-id>",
	Short: "Edit a contact's fields",
	Args:  cobra.ExactArgs(1),
	Example: `  leadpilot enrich update abc123 --name "Dana Okafor" --email dana@acme.io`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if _, ok := workflow.FindContact(*run, args[0]); !ok {
			return fmt.Errorf("contact %s not found in current run", args[0])
		}

		update := workflow.ContactUpdate{}
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			update.Name = &v
		}
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			update.Title = &v
		}
		if cmd.Flags().Changed("email") {
			v, _ := cmd.Flags().GetString("email")
			update.Email = &v
		}
		if cmd.Flags().Changed("linkedin") {
			v, _ := cmd.Flags().GetString("linkedin")
			update.LinkedInURL = &v
		}
		if cmd.Flags().Changed("phone") {
			v, _ := cmd.Flags().GetString("phone")
			update.Phone = &v
		}

		updated := workflow.UpdateContact(*run, args[0], update)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Updated contact %s\n", args[0])
		return nil
	},
}

var enrichTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the enrichment provider connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		if err := a.Enrichment.TestConnection(cmd.Context()); err != nil {
			return fmt.Errorf("enrichment connection failed: %w", err)
		}
		fmt.Println("✓ Enrichment provider reachable")
		return nil
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the current run's contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.EnrichData.Contacts) == 0 {
			fmt.Println("No contacts yet. Derive some with 'leadpilot enrich derive'")
			return nil
		}

		fmt.Println(titleStyle.Render("Contacts"))
		for _, c := range run.EnrichData.Contacts {
			fmt.Printf("• %s — %s at %s  (%s)\n", c.Name, c.Title, c.Company, c.ID)
			fmt.Printf("  %s %s  %s %s\n", labelStyle.Render("Source:"), c.Source, labelStyle.Render("Status:"), c.Status)
			if c.Email != "" {
				fmt.Printf("  %s %s\n", labelStyle.Render("Email:"), c.Email)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(contactsCmd)
	enrichCmd.AddCommand(enrichDeriveCmd)
	enrichCmd.AddCommand(enrichLookupCmd)
	enrichCmd.AddCommand(enrichUpdateCmd)
	enrichCmd.AddCommand(enrichTestCmd)

	enrichUpdateCmd.Flags().String("name", "", "Contact name")
	enrichUpdateCmd.Flags().String("title", "", "Contact title")
	enrichUpdateCmd.Flags().String("email", "", "Contact email")
	enrichUpdateCmd.Flags().String("linkedin", "", "LinkedIn profile URL")
	enrichUpdateCmd.Flags().String("phone", "", "Phone number")
}
