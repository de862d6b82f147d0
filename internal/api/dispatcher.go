package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// ActionRequest is the legacy front-end contract: one endpoint, the
// operation travels in the body.
type ActionRequest struct {
	Action  string          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc handles one action. Returned errors are mapped through
// apperror; the wire answer is always HTTP 200 with a success flag.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

type Dispatcher struct {
	actions map[string]HandlerFunc
	logger  *zap.Logger
}

func NewDispatcher(logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("api.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("api.dispatcher")
	}
	return &Dispatcher{
		actions: make(map[string]HandlerFunc),
		logger:  l,
	}
}

// Register wires an action name to its handler. Double registration is a
// programming error, so it panics during startup rather than at runtime.
func (d *Dispatcher) Register(action string, fn HandlerFunc) {
	if _, exists := d.actions[action]; exists {
		panic("api: action registered twice: " + action)
	}
	d.actions[action] = fn
}

// Actions lists the registered action names, sorted for stable output.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle is the single gin endpoint behind POST /api/v1/actions.
func (d *Dispatcher) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	log := contextutil.GetLogger(ctx, d.logger)

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		log.Warn("malformed action request",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	fn, ok := d.actions[req.Action]
	if !ok {
		log.Warn("unknown action requested", zap.String("action", req.Action))
		response.Error(c, apperror.CodeNotFound, "Unknown action: "+req.Action, nil)
		return
	}

	data, err := fn(ctx, req.Payload)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		log.Warn("action failed",
			zap.String("action", req.Action),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
		response.Error(c, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	log.Debug("action handled", zap.String("action", req.Action))
	response.Success(c, data)
}

// DecodePayload unmarshals an action payload into dst and runs the gin
// binding validator over it, so action handlers get the same validation
// behavior as ShouldBindJSON.
func DecodePayload(payload json.RawMessage, dst any) error {
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, dst); err != nil {
			return apperror.Wrap(err, apperror.CodeInvalidInput,
				"Malformed action payload", http.StatusBadRequest)
		}
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}
