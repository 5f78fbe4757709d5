package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/seyio/leadpilot/pkg/models"
)

func sampleRows() []models.ExportRow {
	return []models.ExportRow{
		{
			Status:            "Ready to Send",
			Priority:          "high",
			SequenceStep:      "first_touch",
			Channel:           "both",
			ContactName:       "Dana Okafor",
			ContactTitle:      "CTO",
			Company:           "Acme",
			LinkedInURL:       "https://linkedin.example/dana",
			Email:             "dana@acme.example",
			JobTitle:          "Backend Engineer",
			TechStack:         "Go, Postgres",
			MessageBody:       "Hi Dana, saw your posting…",
			Personalization:   "Posted the job themselves",
			JobPostURL:        "https://acme.example/j1",
			SuggestedSendDate: "2024-01-01",
		},
		{
			Status:       "Ready to Send",
			Priority:     "medium",
			SequenceStep: "second_follow_up",
			Channel:      "linkedin",
			ContactName:  "Lee Park",
			Company:      "Globex",
			MessageBody:  "Following up, with a \"quoted\" phrase\nand a newline",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.csv")
	rows := sampleRows()

	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != len(rows)+1 {
		t.Fatalf("expected %d records, got %d", len(rows)+1, len(records))
	}

	if len(records[0]) != len(Headers) {
		t.Fatalf("header has %d columns, expected %d", len(records[0]), len(Headers))
	}
	for i, h := range Headers {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, expected %q", i, records[0][i], h)
		}
	}

	first := records[1]
	if first[0] != "Ready to Send" || first[1] != "high" || first[4] != "Dana Okafor" {
		t.Errorf("first row wrong: %v", first)
	}
	if first[10] != "Go, Postgres" {
		t.Errorf("tech stack column = %q", first[10])
	}

	// Quoting and newlines survive the round trip
	second := records[2]
	if second[11] != rows[1].MessageBody {
		t.Errorf("message body mangled: %q", second[11])
	}
}

func TestWriteCSVEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.xlsx")

	if err := WriteXLSX(path, sampleRows()); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("workbook is empty")
	}
}
