// Package v1handler implements the v1 HTTP endpoints of the payments API.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"payments/internal/cardvalidator"
	"payments/pkg/logger"
	"payments/pkg/metrics"
	"payments/pkg/serrors"

	"go.uber.org/zap"
)

// Deps are the collaborators the v1 handlers delegate to.
type Deps struct {
	// Validator checks submitted cards.
	Validator cardvalidator.Validator
	// Metrics records validation outcomes; nil disables recording.
	Metrics *metrics.Validation
}

// Handler serves the v1 API.
type Handler struct {
	deps Deps
	// maxBodyBytes caps request bodies; zero means no limit.
	maxBodyBytes int64
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMaxBodyBytes limits the size of request bodies read by the handler.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

// New returns a Handler backed by deps.
func New(deps Deps, opts ...Option) *Handler {
	h := &Handler{deps: deps}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ErrorBody is the JSON body sent for transport level failures.
type ErrorBody struct {
	Code    string
	Message string
}

// ErrorStatusCode pairs an ErrorBody with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorBody
}

// NewError maps err onto an HTTP status and body using its semantic kind.
// Internal errors never leak their message to the client.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	msg := serrors.MessageOf(err)

	var status int
	switch {
	case errors.Is(kind, serrors.ErrBadRequest):
		status = http.StatusBadRequest
		if msg == "" {
			msg = "bad request"
		}
	case errors.Is(kind, serrors.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
		if msg == "" {
			msg = "request body too large"
		}
	case errors.Is(kind, serrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		if msg == "" {
			msg = "unauthorized"
		}
	case errors.Is(kind, serrors.ErrTimeout):
		status = http.StatusGatewayTimeout
		msg = "request timed out"
	default:
		logger.Error(ctx, "internal error", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response:   ErrorBody{Code: serrors.ErrInternal.Error(), Message: "internal error"},
		}
	}

	logger.Debug(ctx, "request failed", zap.Int("status", status), zap.Error(err))

	return &ErrorStatusCode{
		StatusCode: status,
		Response:   ErrorBody{Code: kind.Error(), Message: msg},
	}
}

// writeError sends the response built by NewError.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)
	if res.StatusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="payments"`)
	}
	writeJSON(ctx, w, res.StatusCode, encodeError(res.Response))
}

// writeJSON sends body as a JSON response with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
