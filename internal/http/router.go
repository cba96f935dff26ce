package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"big5-survey/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	surveyH *SurveyHandler,
	adminH *AdminHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Rutas publicas del test.
	survey := r.Group("/survey")
	survey.GET("", surveyH.GetInstrument)
	survey.POST("/submissions", surveyH.Submit)

	// Panel de administracion: login abierto, el resto detras de JWT.
	admin := r.Group("/admin")
	admin.POST("/login", adminH.Login)
	admin.POST("/refresh", adminH.Refresh)
	admin.POST("/logout", adminH.Logout)

	protected := admin.Group("")
	protected.Use(JWTAuthMiddleware(jwtSvc))
	protected.GET("/submissions", adminH.ListSubmissions)
	protected.GET("/submissions/:id", adminH.GetSubmission)
	protected.GET("/export.csv", adminH.ExportCSV)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
