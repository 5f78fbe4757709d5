package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seyio/leadpilot/internal/app"
	"github.com/seyio/leadpilot/internal/exporter"
	"github.com/seyio/leadpilot/internal/workflow"
	"github.com/seyio/leadpilot/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build and write the export table",
}

var exportBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild export rows from approved messages",
	Long: `Project every approved message joined with its contact and job into flat
export rows. The row list is rebuilt wholesale; rows whose contact or job is
missing are omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.GenerateExportRows(*run)
		updated = workflow.UpdateStepStatus(updated, models.StepExport, models.StepCompleted, "")
		if err := a.SaveRun(updated); err != nil {
			return err
		}

		fmt.Printf("✓ Built %d export rows\n", len(updated.ExportData.Rows))
		return nil
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv <path>",
	Short: "Write the export rows as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.ExportData.Rows) == 0 {
			fmt.Println("No export rows. Build them with 'leadpilot export build'")
			return nil
		}

		if err := exporter.WriteCSV(args[0], run.ExportData.Rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}

		updated := workflow.MarkExported(*run, args[0])
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", len(run.ExportData.Rows), args[0])
		return nil
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx <path>",
	Short: "Write the export rows as an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}
		if len(run.ExportData.Rows) == 0 {
			fmt.Println("No export rows. Build them with 'leadpilot export build'")
			return nil
		}

		if err := exporter.WriteXLSX(args[0], run.ExportData.Rows); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}

		updated := workflow.MarkExported(*run, args[0])
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", len(run.ExportData.Rows), args[0])
		return nil
	},
}

var exportMarkCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark the current rows as exported",
	Example: `  leadpilot export mark --ref "Sheet: Q3 outreach"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.GetAppFromContext(cmd.Context())

		ref, _ := cmd.Flags().GetString("ref")

		run, err := a.CurrentRun()
		if err != nil {
			return err
		}

		updated := workflow.MarkExported(*run, ref)
		if err := a.SaveRun(updated); err != nil {
			return err
		}
		fmt.Println("✓ Marked exported")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportBuildCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportMarkCmd)

	exportMarkCmd.Flags().String("ref", "", "Destination reference, e.g. a spreadsheet name")
}
