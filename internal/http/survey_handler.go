package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"big5-survey/internal/scoring"
	"big5-survey/internal/service"
)

// SurveyHandler mantiene dependencias para los endpoints publicos del test.
type SurveyHandler struct {
	logger    *zap.Logger
	surveySvc *service.SurveyService
}

// NewSurveyHandler crea una instancia de SurveyHandler con dependencias necesarias.
func NewSurveyHandler(logger *zap.Logger, surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		logger:    logger,
		surveySvc: surveySvc,
	}
}

// GetInstrument maneja GET /survey: la definicion del cuestionario para el form.
func (h *SurveyHandler) GetInstrument(c *gin.Context) {
	def := h.surveySvc.Definition()
	c.JSON(http.StatusOK, gin.H{
		"title":  def.Title,
		"scale":  def.Scale,
		"traits": def.Traits,
		"items":  def.Items,
	})
}

// Submit maneja POST /survey/submissions.
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req struct {
		Nickname string            `json:"nickname"`
		Email    string            `json:"email" binding:"omitempty,email"`
		Answers  map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	answers := make(map[int]string, len(req.Answers))
	for key, value := range req.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id", "item": key})
			return
		}
		answers[id] = value
	}

	sub, err := h.surveySvc.Submit(c.Request.Context(), service.SubmitInput{
		Nickname:  req.Nickname,
		Email:     req.Email,
		Answers:   answers,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"submission_id": sub.ID,
		"results":       h.surveySvc.Results(sub),
	})
}

// writeSubmitError mapea errores del motor de puntaje a respuestas 4xx
// estructuradas; todo lo demas es un 500.
func (h *SurveyHandler) writeSubmitError(c *gin.Context, err error) {
	var (
		missing    *scoring.MissingAnswerError
		unexpected *scoring.UnexpectedAnswerError
		invalid    *scoring.InvalidValueError
		oor        *scoring.OutOfRangeError
		unknown    *scoring.UnknownTraitError
	)

	switch {
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions"})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "missing answers",
			"missing_items": missing.ItemIDs,
		})
	case errors.As(err, &unexpected):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "unknown items in answers",
			"unknown_items": unexpected.ItemIDs,
		})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "answer is not an integer",
			"item":  invalid.ItemID,
			"value": invalid.Raw,
		})
	case errors.As(err, &oor):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "answer outside scale",
			"item":  oor.ItemID,
			"value": oor.Value,
			"min":   oor.Min,
			"max":   oor.Max,
		})
	case errors.As(err, &unknown):
		h.logger.Error("instrument has unknown trait", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "instrument misconfigured"})
	default:
		h.logger.Error("submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save submission"})
	}
}
