package email

import (
	"context"
	"errors"

	"big5-survey/internal/domain"
)

// Sender define la interfaz para notificar resultados por correo.
type Sender interface {
	SendScoreReport(ctx context.Context, toEmail, nickname string, results []domain.TraitResult) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendScoreReport(_ context.Context, _ string, _ string, _ []domain.TraitResult) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
