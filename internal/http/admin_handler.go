package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"big5-survey/internal/repository"
	"big5-survey/internal/service"
)

// AdminHandler mantiene dependencias para el panel de administracion.
type AdminHandler struct {
	logger      *zap.Logger
	adminSvc    *service.AdminService
	jwtSvc      *service.JWTService
	submissions repository.SubmissionRepository
	exportSvc   *service.ExportService
}

// NewAdminHandler crea una instancia de AdminHandler con dependencias necesarias.
func NewAdminHandler(
	logger *zap.Logger,
	adminSvc *service.AdminService,
	jwtSvc *service.JWTService,
	submissions repository.SubmissionRepository,
	exportSvc *service.ExportService,
) *AdminHandler {
	return &AdminHandler{
		logger:      logger,
		adminSvc:    adminSvc,
		jwtSvc:      jwtSvc,
		submissions: submissions,
		exportSvc:   exportSvc,
	}
}

// Login maneja POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	username, err := h.adminSvc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		return
	}

	tokens, err := h.jwtSvc.GeneratePair(username)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh maneja POST /admin/refresh.
func (h *AdminHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tokens, err := h.jwtSvc.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Logout maneja POST /admin/logout.
func (h *AdminHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.jwtSvc.RevokeRefresh(req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// ListSubmissions maneja GET /admin/submissions.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	subs, err := h.submissions.ListRecent(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list submissions"})
		return
	}
	total, err := h.submissions.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("count submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"submissions": subs,
	})
}

// GetSubmission maneja GET /admin/submissions/:id.
func (h *AdminHandler) GetSubmission(c *gin.Context) {
	sub, err := h.submissions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

// ExportCSV maneja GET /admin/export.csv.
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportSvc.WriteCSV(c.Request.Context(), &buf); err != nil {
		if errors.Is(err, service.ErrNoSubmissions) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no submissions to export"})
			return
		}
		h.logger.Error("csv export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export"})
		return
	}

	filename := h.exportSvc.Filename(time.Now())
	// Pisa el content-type JSON que fija el middleware global.
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
