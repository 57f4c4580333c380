package v1handler

import (
	"errors"
	"io"
	"net/http"
	"payments/internal/cardvalidator"
	"payments/pkg/logger"
	"payments/pkg/serrors"
	"time"

	"go.uber.org/zap"
)

// ValidateCard handles POST /v1/payment/validate. A valid card is answered
// with 200 and the network name, an invalid one with 400 and the list of
// validation messages.
func (h *Handler) ValidateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(ctx, w, serrors.Wrap(serrors.ErrPayloadTooLarge, err,
				"request body exceeds %d bytes", tooLarge.Limit))

			return
		}
		h.writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body"))

		return
	}

	card, err := DecodeCard(data)
	if err != nil {
		h.writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid card payload"))

		return
	}

	verdict := h.deps.Validator.Validate(card)
	h.deps.Metrics.Record(ctx, string(verdict.Network), verdict.Valid, time.Since(start))

	logger.Info(ctx, "card validated",
		zap.String("number", cardvalidator.MaskNumber(card.Number)),
		zap.String("network", string(verdict.Network)),
		zap.Bool("valid", verdict.Valid),
		zap.Int("errors", len(verdict.Errors)))

	if !verdict.Valid {
		writeJSON(ctx, w, http.StatusBadRequest, encodeMessages(verdict.Errors))

		return
	}

	writeJSON(ctx, w, http.StatusOK, encodeNetwork(verdict.Network))
}
