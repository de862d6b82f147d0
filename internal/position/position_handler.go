package position

import (
	"context"
	"encoding/json"

	"go-roster/internal/api"
	"go-roster/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("position.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.GetAll(ctx)
}

func (h *Handler) ReplaceAll(ctx context.Context, payload json.RawMessage) (any, error) {
	var req ReplaceAllPositionsRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		contextutil.GetLogger(ctx, h.logger).Warn("payload validation failed",
			zap.String("action", "positions.replaceAll"),
			zap.Error(err),
		)
		return nil, err
	}
	return h.service.ReplaceAll(ctx, req)
}

func RegisterActions(d *api.Dispatcher, h *Handler) {
	d.Register("positions.list", h.List)
	d.Register("positions.replaceAll", h.ReplaceAll)
}
