package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/storevoice/internal/log"
	"github.com/koopa0/storevoice/internal/registry"
)

func newTestServer(t *testing.T) (*Server, *registry.Registry) {
	t.Helper()
	reg := registry.New(nil, log.NewNop())
	require.NoError(t, reg.Register(registry.Operation{
		Name:            "getStoreInfo",
		FallbackMessage: "call us",
		Execute: func(_ context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
			return registry.Result{
				Success: true,
				Message: "we are open",
				Data: map[string]any{
					"conversation": call.ConversationID,
					"language":     call.Language(),
				},
			}, nil
		},
	}))
	return NewServer(reg, nil, log.NewNop()), reg
}

func postWebhook(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/functions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhook_DispatchesFunctionCall(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postWebhook(t, srv.Handler(), `{
		"message": {
			"type": "function-call",
			"functionCall": {"name": "getStoreInfo", "parameters": {"info_type": "hours"}},
			"call": {"id": "call-42", "customer": {"number": "+35799000000", "language": "el"}}
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp webhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result.Success)
	assert.Equal(t, "we are open", resp.Result.Message)
	assert.Equal(t, "call-42", resp.Result.Data["conversation"])
	assert.Equal(t, "el", resp.Result.Data["language"])
}

func TestWebhook_GeneratesConversationIDWhenMissing(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postWebhook(t, srv.Handler(), `{
		"message": {"functionCall": {"name": "getStoreInfo"}}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp webhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Result.Data["conversation"], "a synthetic id keeps telemetry correlatable")
}

func TestWebhook_UnknownOperationIs404(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec := postWebhook(t, srv.Handler(), `{
		"message": {"functionCall": {"name": "bookSpaceShuttle"}}
	}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unknown_operation", resp.Error)
}

func TestWebhook_MalformedBody(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := postWebhook(t, srv.Handler(), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postWebhook(t, srv.Handler(), `{"message": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing function name")
}

func TestWebhook_OversizedBodyRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	huge := `{"message": {"functionCall": {"name": "getStoreInfo", "parameters": {"pad": "` +
		strings.Repeat("x", maxWebhookBody) + `"}}}}`

	rec := postWebhook(t, srv.Handler(), huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/webhook/functions", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth_Liveness(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHealth_ReadinessWithoutPool(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	reg := registry.New(nil, log.NewNop())
	srv := NewServer(reg, nil, log.NewNop())
	srv.mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("handler bug")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
