package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"big5-survey/internal/domain"
)

func TestExportWriteCSV(t *testing.T) {
	repo := &mockSubmissionRepo{
		created: []domain.Submission{
			{
				ID:          "11111111-1111-1111-1111-111111111111",
				Nickname:    "ana",
				Email:       "ana@example.com",
				Sums:        map[string]int{"O": 8},
				Percentages: map[string]float64{"O": 75},
				CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:          "22222222-2222-2222-2222-222222222222",
				Sums:        map[string]int{"O": 2},
				Percentages: map[string]float64{"O": 0},
				CreatedAt:   time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC),
			},
		},
	}
	svc := NewExportService(testDefinition(), repo)

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}

	header := records[0]
	want := []string{"id", "timestamp", "nickname", "email", "score_O", "pct_O"}
	if len(header) != len(want) {
		t.Fatalf("unexpected header %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d]: expected %q, got %q", i, want[i], header[i])
		}
	}

	first := records[1]
	if first[2] != "ana" || first[4] != "8" || first[5] != "75.00" {
		t.Fatalf("unexpected first row %v", first)
	}
	if first[1] != "2025-03-01T12:00:00Z" {
		t.Fatalf("unexpected timestamp %q", first[1])
	}
	// Orden de export: del mas viejo al mas nuevo.
	if records[2][0] != "22222222-2222-2222-2222-222222222222" {
		t.Fatalf("expected oldest-first ordering")
	}
}

func TestExportEmpty(t *testing.T) {
	svc := NewExportService(testDefinition(), &mockSubmissionRepo{})

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), &buf)
	if !errors.Is(err, ErrNoSubmissions) {
		t.Fatalf("expected ErrNoSubmissions, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty export")
	}
}

func TestExportFilename(t *testing.T) {
	svc := NewExportService(testDefinition(), &mockSubmissionRepo{})
	now := time.Date(2025, 3, 1, 12, 4, 5, 0, time.UTC)
	if got := svc.Filename(now); got != "big5_export_20250301_120405.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
