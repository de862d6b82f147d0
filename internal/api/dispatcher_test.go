package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-roster/internal/api"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

func newTestRouter(d *api.Dispatcher) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/actions", d.Handle)
	return r
}

func postAction(t *testing.T, r *gin.Engine, body string) (int, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestDispatcher_SuccessEnvelope(t *testing.T) {
	d := api.NewDispatcher()
	d.Register("echo", func(_ context.Context, payload json.RawMessage) (any, error) {
		var p map[string]string
		require.NoError(t, api.DecodePayload(payload, &p))
		return p, nil
	})

	status, env := postAction(t, newTestRouter(d),
		`{"action":"echo","payload":{"hello":"world"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]any{"hello": "world"}, env.Data)
}

func TestDispatcher_FailureStaysHTTP200(t *testing.T) {
	d := api.NewDispatcher()
	d.Register("boom", func(_ context.Context, _ json.RawMessage) (any, error) {
		return nil, apperror.New(apperror.CodeNotFound, "Employee not found", http.StatusNotFound)
	})

	status, env := postAction(t, newTestRouter(d), `{"action":"boom"}`)

	assert.Equal(t, http.StatusOK, status, "failures still answer 200")
	assert.False(t, env.Success)

	errObj, ok := env.Error.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, errObj["code"])
	assert.Equal(t, "Employee not found", errObj["message"])
}

func TestDispatcher_UnknownAction(t *testing.T) {
	d := api.NewDispatcher()

	status, env := postAction(t, newTestRouter(d), `{"action":"no.such.action"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
	errObj := env.Error.(map[string]any)
	assert.Equal(t, apperror.CodeNotFound, errObj["code"])
	assert.Contains(t, errObj["message"], "no.such.action")
}

func TestDispatcher_MalformedRequest(t *testing.T) {
	d := api.NewDispatcher()

	t.Run("invalid json", func(t *testing.T) {
		status, env := postAction(t, newTestRouter(d), `{"action":`)
		assert.Equal(t, http.StatusOK, status)
		assert.False(t, env.Success)
	})

	t.Run("missing action field", func(t *testing.T) {
		status, env := postAction(t, newTestRouter(d), `{"payload":{}}`)
		assert.Equal(t, http.StatusOK, status)
		assert.False(t, env.Success)
		errObj := env.Error.(map[string]any)
		assert.Equal(t, apperror.CodeInvalidInput, errObj["code"])
	})
}

func TestDispatcher_UnexpectedErrorIsOpaque(t *testing.T) {
	d := api.NewDispatcher()
	d.Register("panic-ish", func(_ context.Context, _ json.RawMessage) (any, error) {
		return nil, errors.New("sql: connection reset by /var/secret/path")
	})

	_, env := postAction(t, newTestRouter(d), `{"action":"panic-ish"}`)

	require.False(t, env.Success)
	errObj := env.Error.(map[string]any)
	assert.Equal(t, apperror.CodeInternalError, errObj["code"])
	assert.NotContains(t, errObj["message"], "/var/secret", "internal details must not leak")
}

func TestDispatcher_RegisterTwicePanics(t *testing.T) {
	d := api.NewDispatcher()
	fn := func(_ context.Context, _ json.RawMessage) (any, error) { return nil, nil }

	d.Register("dup", fn)
	assert.Panics(t, func() { d.Register("dup", fn) })
}

func TestDispatcher_ActionsSorted(t *testing.T) {
	d := api.NewDispatcher()
	fn := func(_ context.Context, _ json.RawMessage) (any, error) { return nil, nil }

	d.Register("b.second", fn)
	d.Register("a.first", fn)

	assert.Equal(t, []string{"a.first", "b.second"}, d.Actions())
}

func TestDecodePayload_Validation(t *testing.T) {
	type payload struct {
		EmpID string `json:"empId" binding:"required"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		require.NoError(t, api.DecodePayload(json.RawMessage(`{"empId":"B1"}`), &p))
		assert.Equal(t, "B1", p.EmpID)
	})

	t.Run("missing required field", func(t *testing.T) {
		var p payload
		err := api.DecodePayload(json.RawMessage(`{}`), &p)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
	})

	t.Run("empty payload is validated too", func(t *testing.T) {
		var p payload
		err := api.DecodePayload(nil, &p)
		require.Error(t, err)
	})
}
