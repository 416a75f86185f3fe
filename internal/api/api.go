package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"viaticos/internal/form"
	"viaticos/internal/gateway"
	"viaticos/internal/service"
)

// Handler serves the form operations over JSON.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

func New(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.Named("api")}
}

// Register mounts every route of the form under /api.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/estado", h.handleStatus)
	api.GET("/usuarios", h.handleUsers)
	api.POST("/usuarios", h.handleCreateUser)
	api.POST("/comisiones", h.handleCreateCommission)

	api.POST("/validar", h.handleValidate)
	api.POST("/validar/formulario", h.handleValidateForm)

	api.POST("/formato/moneda", h.handleCurrency)
	api.POST("/formato/pegar", h.handlePaste)
	api.POST("/formato/tecla", h.handleKey)
	api.POST("/formato/nombre", h.handleName)
	api.POST("/formato/fecha", h.handleDate)

	api.POST("/enlace/nombre", h.handleSelectName)
	api.POST("/enlace/cedula", h.handleTypeIdentifier)
	api.POST("/enlace/cedula/salir", h.handleLeaveIdentifier)
}

// RequestLogger logs one line per request, like gin.Logger but through zap.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("Solicitud", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("Solicitud", fields...)
		default:
			logger.Info("Solicitud", fields...)
		}
	}
}

// statusFor maps a service error onto the HTTP status returned to the UI.
func statusFor(err error) int {
	var vErr *form.ValidationError
	var httpErr *gateway.HTTPError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, gateway.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, gateway.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, gateway.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrInvalidData):
		return http.StatusBadRequest
	case errors.As(err, &httpErr), errors.Is(err, gateway.ErrNetwork), errors.Is(err, gateway.ErrRejected):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
}
