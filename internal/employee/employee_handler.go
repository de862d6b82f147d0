package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.service.GetAll(ctx)
}

func (h *Handler) ReplaceAll(ctx context.Context, payload json.RawMessage) (any, error) {
	var req ReplaceAllEmployeesRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		h.logValidation(ctx, "employees.replaceAll", err)
		return nil, err
	}
	return h.service.ReplaceAll(ctx, req)
}

func (h *Handler) Create(ctx context.Context, payload json.RawMessage) (any, error) {
	var req CreateEmployeeRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		h.logValidation(ctx, "employees.create", err)
		return nil, err
	}
	return h.service.Create(ctx, req)
}

func (h *Handler) Update(ctx context.Context, payload json.RawMessage) (any, error) {
	var req UpdateEmployeeRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		h.logValidation(ctx, "employees.update", err)
		return nil, err
	}
	return h.service.Update(ctx, req)
}

func (h *Handler) Delete(ctx context.Context, payload json.RawMessage) (any, error) {
	var req DeleteEmployeeRequest
	if err := api.DecodePayload(payload, &req); err != nil {
		h.logValidation(ctx, "employees.delete", err)
		return nil, err
	}
	if err := h.service.Delete(ctx, req.EmpID); err != nil {
		return nil, err
	}
	return map[string]string{"empId": req.EmpID}, nil
}

func (h *Handler) logValidation(ctx context.Context, action string, err error) {
	contextutil.GetLogger(ctx, h.logger).Warn("payload validation failed",
		zap.String("action", action),
		zap.Error(err),
	)
}
