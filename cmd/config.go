package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig

		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("AI Provider:"), cfg.AIProvider)
		fmt.Printf("%s %s\n", labelStyle.Render("Default Model:"), cfg.DefaultModel)

		// Show whether keys are configured without printing them
		fmt.Printf("%s %s\n", labelStyle.Render("OpenAI Key:"), configuredMark(cfg.OpenAIKey != ""))
		fmt.Printf("%s %s\n", labelStyle.Render("Anthropic Key:"), configuredMark(cfg.AnthropicKey != ""))
		fmt.Printf("%s %s\n", labelStyle.Render("Enrichment:"), configuredMark(cfg.EnrichmentEnabled && cfg.EnrichmentKey != ""))

		fmt.Println(titleStyle.Render("Business Profile"))
		fmt.Printf("%s %s\n", labelStyle.Render("Company:"), cfg.Business.CompanyName)
		fmt.Printf("%s %s (%s)\n", labelStyle.Render("Sender:"), cfg.Business.SenderName, cfg.Business.SenderTitle)
		fmt.Printf("%s %s\n", labelStyle.Render("Tone:"), cfg.Business.Tone)

		fmt.Println(titleStyle.Render("Qualification"))
		fmt.Printf("%s %s\n", labelStyle.Render("Location preference:"), cfg.Qualification.LocationPreference)
		fmt.Printf("%s %v\n", labelStyle.Render("Poster required:"), cfg.Qualification.PosterRequired)
		fmt.Printf("%s %s\n", labelStyle.Render("Tech stack:"), strings.Join(cfg.OperatorTechStack(), ", "))
	},
}

func configuredMark(ok bool) string {
	if ok {
		return "✓ Configured"
	}
	return "✗ Not configured"
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  leadpilot config set --key openai_key --value sk-...
  leadpilot config set --key ai_provider --value anthropic
  leadpilot config set --key business.company_name --value "Acme Consulting"
  leadpilot config set --key qualification.location_preference --value remote_only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)

		// Reload config
		if err := config.Initialize(); err != nil {
			fmt.Printf("Warning: could not reload config: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
