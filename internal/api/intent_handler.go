package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/cardflow/internal/api/shared"
	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/intent"
	"github.com/phrazzld/cardflow/internal/platform/logger"
)

// SubmitIntentRequest is the body of POST /api/intents.
type SubmitIntentRequest struct {
	Type    intent.Type     `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

// SubmitIntentResponse acknowledges an accepted intent.
type SubmitIntentResponse struct {
	ID        uuid.UUID   `json:"id"`
	Type      intent.Type `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
}

// IntentHandler accepts request intents from producers.
type IntentHandler struct {
	bus    bus.Putter
	logger *slog.Logger
}

// NewIntentHandler creates an IntentHandler that puts accepted intents on b.
func NewIntentHandler(b bus.Putter, logger *slog.Logger) *IntentHandler {
	if b == nil || logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("bus and logger cannot be nil for IntentHandler")
	}
	return &IntentHandler{
		bus:    b,
		logger: logger.With(slog.String("component", "intent_handler")),
	}
}

// Submit handles POST /api/intents. Only request types are accepted; the
// response is sent once the intent is on the bus, before any effect runs.
func (h *IntentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitIntentRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	if !intent.IsRequest(req.Type) {
		err := fmt.Errorf("%w: %s", ErrUnsupportedIntent, req.Type)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if trimmed := bytes.TrimSpace(req.Payload); len(trimmed) == 0 || trimmed[0] != '{' {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid payload: must be an object")
		return
	}

	in, err := intent.New(req.Type, req.Payload)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	if err := h.bus.Put(r.Context(), in); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	subject, _ := shared.GetSubject(r.Context())
	log.Info("intent accepted",
		slog.String("intent_id", in.ID.String()),
		slog.String("intent_type", string(in.Type)),
		slog.String("subject", subject))

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitIntentResponse{
		ID:        in.ID,
		Type:      in.Type,
		CreatedAt: in.CreatedAt,
	})
}
