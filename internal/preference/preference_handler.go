package preference

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
	l := zap.L().Named("preference.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Get(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.Get(ctx)
}

func (h *Handler) Set(ctx context.Context, payload json.RawMessage) (any, error) {
	var req SetMarkerRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		contextutil.GetLogger(ctx, h.logger).Warn("payload validation failed",
			zap.String("action", "preference.set"),
			zap.Error(err),
		)
		return nil, err
	}
	return h.service.Set(ctx, req)
}

func (h *Handler) Clear(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.Clear(ctx)
}

func RegisterActions(d *api.Dispatcher, h *Handler) {
	d.Register("preference.get", h.Get)
	d.Register("preference.set", h.Set)
	d.Register("preference.clear", h.Clear)
}
