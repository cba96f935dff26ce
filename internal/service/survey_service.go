package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"big5-survey/internal/domain"
	"big5-survey/internal/email"
	"big5-survey/internal/instrument"
	"big5-survey/internal/repository"
	"big5-survey/internal/scoring"
)

// SurveyService coordina el flujo de envio: parseo y validacion de las
// respuestas, puntaje, persistencia y notificacion opcional por correo.
// El instrumento se fija en la construccion y no cambia durante la vida del
// proceso.
type SurveyService struct {
	logger      *zap.Logger
	def         *instrument.Definition
	inst        scoring.Instrument
	submissions repository.SubmissionRepository
	emailSender email.Sender
	limiter     SubmitRateLimiter
}

var ErrRateLimited = errors.New("rate limited")

func NewSurveyService(
	logger *zap.Logger,
	def *instrument.Definition,
	submissions repository.SubmissionRepository,
	emailSender email.Sender,
	limiter SubmitRateLimiter,
) *SurveyService {
	return &SurveyService{
		logger:      logger,
		def:         def,
		inst:        def.Instrument(),
		submissions: submissions,
		emailSender: emailSender,
		limiter:     limiter,
	}
}

// SubmitInput son los datos crudos de un envio del formulario.
type SubmitInput struct {
	Nickname  string
	Email     string
	Answers   map[int]string
	ClientKey string
}

// Definition expone la definicion cargada para la capa de presentacion.
func (s *SurveyService) Definition() *instrument.Definition {
	return s.def
}

// Submit valida, puntua y persiste un envio. Los errores del motor de
// puntaje se devuelven sin envolver para que el handler pueda mapearlos a
// respuestas estructuradas. El correo de resultados es best-effort: su
// fallo se loguea y no afecta el envio.
func (s *SurveyService) Submit(ctx context.Context, input SubmitInput) (domain.Submission, error) {
	if s.limiter != nil && !s.limiter.Allow(input.ClientKey) {
		return domain.Submission{}, ErrRateLimited
	}

	responses, err := scoring.ParseResponses(input.Answers)
	if err != nil {
		return domain.Submission{}, err
	}

	report, err := scoring.Score(responses, s.inst)
	if err != nil {
		return domain.Submission{}, err
	}

	sub := domain.Submission{
		ID:          uuid.NewString(),
		Nickname:    strings.TrimSpace(input.Nickname),
		Email:       strings.TrimSpace(input.Email),
		Answers:     responses,
		Sums:        report.Sums,
		Percentages: report.Percentages,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return domain.Submission{}, err
	}

	if sub.Email != "" && s.emailSender != nil {
		s.notifyResults(sub)
	}

	return sub, nil
}

// Results proyecta un envio a filas listas para mostrar, en el orden de
// rasgos del instrumento.
func (s *SurveyService) Results(sub domain.Submission) []domain.TraitResult {
	traits := s.inst.Traits()
	results := make([]domain.TraitResult, 0, len(traits))
	for _, trait := range traits {
		results = append(results, domain.TraitResult{
			Trait:   trait,
			Label:   s.def.TraitLabel(trait),
			Sum:     sub.Sums[trait],
			Percent: sub.Percentages[trait],
		})
	}
	return results
}

func (s *SurveyService) notifyResults(sub domain.Submission) {
	results := s.Results(sub)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.emailSender.SendScoreReport(ctx, sub.Email, sub.Nickname, results); err != nil {
			s.logger.Warn("score report email failed",
				zap.Error(err),
				zap.String("submission_id", sub.ID),
			)
		}
	}()
}
