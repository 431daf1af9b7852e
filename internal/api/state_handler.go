package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/cardflow/internal/api/shared"
	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/state"
)

// StateReader is the read side of the board state.
type StateReader interface {
	List(ctx context.Context, id string) (domain.List, bool)
	Board(id string) (domain.Board, bool)
	Card(id string) (domain.Card, bool)
	Notifications() []state.Notification
	Snapshot() state.Snapshot
	OpenModal()
}

// StateHandler serves the board state projection.
type StateHandler struct {
	state  StateReader
	logger *slog.Logger
}

// NewStateHandler creates a StateHandler.
func NewStateHandler(s StateReader, logger *slog.Logger) *StateHandler {
	if s == nil || logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("state and logger cannot be nil for StateHandler")
	}
	return &StateHandler{
		state:  s,
		logger: logger.With(slog.String("component", "state_handler")),
	}
}

// GetList handles GET /api/lists/{id}.
func (h *StateHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := h.state.List(r.Context(), id)
	if !ok {
		h.notFound(w, r, fmt.Errorf("%w: %s", domain.ErrListNotFound, id))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, l)
}

// GetBoard handles GET /api/boards/{id}.
func (h *StateHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := h.state.Board(id)
	if !ok {
		h.notFound(w, r, fmt.Errorf("%w: %s", domain.ErrBoardNotFound, id))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, b)
}

// GetCard handles GET /api/cards/{id}.
func (h *StateHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := h.state.Card(id)
	if !ok {
		h.notFound(w, r, fmt.Errorf("%w: %s", domain.ErrCardNotFound, id))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, c)
}

// ListNotifications handles GET /api/notifications.
func (h *StateHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.state.Notifications()
	if notifications == nil {
		notifications = []state.Notification{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, notifications)
}

// GetSnapshot handles GET /api/state.
func (h *StateHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.state.Snapshot())
}

// OpenModal handles POST /api/modal, which the UI calls before it shows the
// create-card form.
func (h *StateHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	h.state.OpenModal()
	w.WriteHeader(http.StatusNoContent)
}

func (h *StateHandler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
