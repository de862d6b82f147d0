package backup

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
	l := zap.L().Named("backup.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.Create(ctx)
}

func (h *Handler) List(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.List(ctx)
}

func (h *Handler) Restore(ctx context.Context, payload json.RawMessage) (any, error) {
	var req RestoreRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		contextutil.GetLogger(ctx, h.logger).Warn("payload validation failed",
			zap.String("action", "backup.restore"),
			zap.Error(err),
		)
		return nil, err
	}
	return h.service.Restore(ctx, req)
}

func RegisterActions(d *api.Dispatcher, h *Handler) {
	d.Register("backup.create", h.Create)
	d.Register("backup.list", h.List)
	d.Register("backup.restore", h.Restore)
}
