package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/pkg/models"
)

func TestParseClassifications(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "bare array",
			raw:  `[{"job_id": "j1", "is_remote": true, "location_qualified": true}]`,
			want: 1,
		},
		{
			name: "fenced code block",
			raw:  "```json\n[{\"job_id\": \"j1\"}, {\"job_id\": \"j2\"}]\n```",
			want: 2,
		},
		{
			name: "surrounding prose",
			raw:  `Here are the results: [{"job_id": "j1"}] Let me know if you need more.`,
			want: 1,
		},
		{
			name:    "no array",
			raw:     "I could not process these jobs.",
			wantErr: true,
		},
		{
			name:    "malformed array",
			raw:     `[{"job_id": }]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassifications(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClassifications failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("parsed %d verdicts, expected %d", len(got), tt.want)
			}
		})
	}
}

func TestClassifyJobsRoundTrip(t *testing.T) {
	verdicts := []Classification{{
		JobID: "j1", TechStack: []string{"Go"}, IsRemote: true,
		LocationQualified: true, DetectedFrom: "title", Confidence: 0.9,
	}}
	raw, _ := json.Marshal(verdicts)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"response": string(raw)})
	}))
	defer server.Close()

	cfg := &config.Config{AIProvider: "ollama", OllamaURL: server.URL}
	client := NewClient(cfg, server.Client())

	got, err := client.ClassifyJobs(context.Background(), []models.JobPost{{ID: "j1", Title: "Go Engineer"}}, "remote_only")
	if err != nil {
		t.Fatalf("ClassifyJobs failed: %v", err)
	}
	if len(got) != 1 || got[0].JobID != "j1" || !got[0].LocationQualified {
		t.Errorf("verdicts = %+v", got)
	}
}

func TestClassifyJobsEmptyBatch(t *testing.T) {
	client := NewClient(&config.Config{AIProvider: "ollama"}, nil)
	got, err := client.ClassifyJobs(context.Background(), nil, "any")
	if err != nil {
		t.Fatalf("empty batch errored: %v", err)
	}
	if got != nil {
		t.Errorf("expected no verdicts, got %+v", got)
	}
}

func TestGenerateUnsupportedProvider(t *testing.T) {
	client := NewClient(&config.Config{AIProvider: "carrier-pigeon"}, nil)
	if _, err := client.Generate(context.Background(), "sys", "task"); err == nil {
		t.Error("expected an error for an unsupported provider")
	}
}
