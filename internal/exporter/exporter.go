package exporter

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/seyio/leadpilot/pkg/models"
)

// Headers is the fixed 18-column schema consumed by spreadsheets. Column
// order and presence must be preserved exactly.
var Headers = []string{
	"Status",
	"Priority",
	"Sequence Step",
	"Channel",
	"Contact Name",
	"Contact Title",
	"Company",
	"LinkedIn URL",
	"Email",
	"Job Title",
	"Tech Stack",
	"Message",
	"Personalization Notes",
	"Job Post URL",
	"Suggested Send Date",
	"Sent Date",
	"Response",
	"Notes",
}

// rowValues flattens one ExportRow in header order
func rowValues(r models.ExportRow) []string {
	return []string{
		r.Status,
		r.Priority,
		r.SequenceStep,
		r.Channel,
		r.ContactName,
		r.ContactTitle,
		r.Company,
		r.LinkedInURL,
		r.Email,
		r.JobTitle,
		r.TechStack,
		r.MessageBody,
		r.Personalization,
		r.JobPostURL,
		r.SuggestedSendDate,
		r.SentDate,
		r.Response,
		r.Notes,
	}
}

// WriteCSV writes the rows as a CSV file at path
func WriteCSV(path string, rows []models.ExportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(rowValues(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes the rows as an XLSX workbook at path
func WriteXLSX(path string, rows []models.ExportRow) error {
	f := excelize.NewFile()
	const sheet = "Outreach"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range rowValues(row) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheet, "E", "G", 22) // contact name/title, company
	_ = f.SetColWidth(sheet, "L", "L", 60) // message body
	_ = f.SetColWidth(sheet, "M", "M", 40) // personalization
	_ = f.SetColWidth(sheet, "N", "N", 40) // job post url

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
