package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/koopa0/storevoice/internal/log"
	"github.com/koopa0/storevoice/internal/registry"
)

// maxWebhookBody bounds the request body. Function-call payloads are
// small; anything larger is malformed or hostile.
const maxWebhookBody = 64 << 10

// webhookRequest is the voice platform's function-call envelope.
type webhookRequest struct {
	Message struct {
		Type         string `json:"type"`
		FunctionCall struct {
			Name       string         `json:"name"`
			Parameters map[string]any `json:"parameters"`
		} `json:"functionCall"`
		Call struct {
			ID       string `json:"id"`
			Customer struct {
				Number   string `json:"number"`
				Language string `json:"language"`
			} `json:"customer"`
		} `json:"call"`
	} `json:"message"`
}

// webhookResponse wraps the operation result for the platform.
type webhookResponse struct {
	Result registry.Result `json:"result"`
}

// WebhookHandler dispatches platform function calls to the registry.
type WebhookHandler struct {
	registry *registry.Registry
	logger   log.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(reg *registry.Registry, logger log.Logger) *WebhookHandler {
	return &WebhookHandler{registry: reg, logger: logger}
}

// RegisterRoutes registers the webhook route on the given mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhook/functions", h.handleFunctionCall)
}

// handleFunctionCall decodes the envelope, invokes the named operation
// and returns its result. An unknown operation is an integration error
// and comes back as 404 with a structured error, never a spoken message.
func (h *WebhookHandler) handleFunctionCall(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "request body is not a valid function-call envelope")
		return
	}

	name := req.Message.FunctionCall.Name
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing_function", "functionCall.name is required")
		return
	}

	conversationID := req.Message.Call.ID
	if conversationID == "" {
		// Keep telemetry correlatable even when the platform omits the id.
		conversationID = uuid.NewString()
	}

	call := registry.Call{
		ConversationID: conversationID,
		Timestamp:      time.Now(),
	}
	if lang := req.Message.Call.Customer.Language; lang != "" {
		call.Profile = &registry.Profile{PreferredLanguage: lang}
	}

	result, err := h.registry.Invoke(r.Context(), name, req.Message.FunctionCall.Parameters, call)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownOperation) {
			h.logger.Warn("unknown operation requested", "operation", name, "conversation", conversationID)
			writeError(w, http.StatusNotFound, "unknown_operation", "no operation named "+name)
			return
		}
		h.logger.Error("invocation failed", "operation", name, "error", err)
		writeError(w, http.StatusInternalServerError, "invocation_failed", "operation could not be dispatched")
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{Result: result})
}
