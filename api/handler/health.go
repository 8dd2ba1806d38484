package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskify/backend/api/transport"
	"github.com/taskify/backend/internal/infrastructure/monitor"
	"github.com/taskify/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	appName string
	monitor *monitor.Monitor
}

func NewHealthHandler(appName string, mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		appName:     appName,
		monitor:     mon,
	}
}

// @Summary Service banner
// @Tags health
// @Router / [get]
func (h *HealthHandler) Root(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"message": "Welcome to " + h.appName,
	})
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"service":    h.appName,
		"timestamp":  time.Now().UTC(),
		"components": status.Components,
		"last_check": status.LastCheck,
	}

	if status.Healthy {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable,
		transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
