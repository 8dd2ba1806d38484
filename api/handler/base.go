package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskify/backend/api/transport"
	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	if status == http.StatusNoContent {
		ctx.SetStatusCode(status)
		ctx.Response.ResetBody()
		return
	}
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	if vErr, ok := domain.AsValidationError(err); ok {
		h.respondJSON(ctx, http.StatusUnprocessableEntity,
			transport.NewError(string(domain.ErrCodeValidation), vErr.Violations, nil))
		return
	}
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, errorMessage(err), nil))
}

// errorMessage strips the wrapped cause from classified errors so storage
// internals never reach the caller; the domain message alone names the field,
// identifier or query that needs correcting.
func errorMessage(err error) string {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr.Message
	}
	return err.Error()
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalidID):
		return http.StatusBadRequest, string(domain.ErrCodeInvalidID)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable, string(domain.ErrCodeUnavailable)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
