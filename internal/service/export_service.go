package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"big5-survey/internal/instrument"
	"big5-survey/internal/repository"
	"big5-survey/internal/scoring"
)

// ExportService serializa todos los envios como CSV para el panel de
// administracion. Las columnas por rasgo se derivan del instrumento, en su
// orden de aparicion.
type ExportService struct {
	def         *instrument.Definition
	inst        scoring.Instrument
	submissions repository.SubmissionRepository
}

var ErrNoSubmissions = errors.New("no submissions to export")

func NewExportService(def *instrument.Definition, submissions repository.SubmissionRepository) *ExportService {
	return &ExportService{
		def:         def,
		inst:        def.Instrument(),
		submissions: submissions,
	}
}

// Filename devuelve un nombre de archivo con timestamp UTC.
func (s *ExportService) Filename(now time.Time) string {
	return fmt.Sprintf("big5_export_%s.csv", now.UTC().Format("20060102_150405"))
}

// WriteCSV escribe todos los envios (del mas viejo al mas nuevo) en w.
// Devuelve ErrNoSubmissions si no hay datos.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	subs, err := s.submissions.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return ErrNoSubmissions
	}

	traits := s.inst.Traits()
	header := []string{"id", "timestamp", "nickname", "email"}
	for _, t := range traits {
		header = append(header, "score_"+t)
	}
	for _, t := range traits {
		header = append(header, "pct_"+t)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sub := range subs {
		row := []string{
			sub.ID,
			sub.CreatedAt.UTC().Format(time.RFC3339),
			sub.Nickname,
			sub.Email,
		}
		for _, t := range traits {
			row = append(row, fmt.Sprintf("%d", sub.Sums[t]))
		}
		for _, t := range traits {
			row = append(row, fmt.Sprintf("%.2f", sub.Percentages[t]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
