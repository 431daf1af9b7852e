package intent

import (
	"encoding/json"
	"time"

	"github.com/phrazzld/cardflow/internal/domain"
)

// CreateCardRequest is the payload of CARD_CREATE_REQUEST.
type CreateCardRequest struct {
	BoardID string `json:"boardId"`
	ListID  string `json:"listId"`
	Text    string `json:"text"`
}

// RemoveCardRequest is the payload of CARD_REMOVE_REQUEST.
type RemoveCardRequest struct {
	BoardID string `json:"boardId"`
	ListID  string `json:"listId"`
	CardID  string `json:"cardId"`
}

// FetchCardRequest is the payload of CARD_FETCH_REQUEST. It is echoed back in
// both outcomes so consumers can correlate the response with the request.
type FetchCardRequest struct {
	CardID string `json:"cardId"`
}

// UpdateCardRequest is the payload of CARD_UPDATE_REQUEST.
type UpdateCardRequest struct {
	ID    string                     `json:"id"`
	Props map[string]json.RawMessage `json:"props"`
}

// ColorRequest is the payload of CARD_ADD_COLOR_REQUEST and CARD_REMOVE_COLOR_REQUEST.
type ColorRequest struct {
	CardID  string `json:"cardId"`
	ColorID string `json:"colorId"`
}

// MoveCardRequest is the payload of CARD_MOVE_REQUEST.
type MoveCardRequest struct {
	SourceListID string `json:"sourceListId"`
	TargetListID string `json:"targetListId"`
}

// FetchCardSuccess is the payload of CARD_FETCH_SUCCESS: the server response
// with the original request merged in.
type FetchCardSuccess struct {
	domain.Payload
	Request FetchCardRequest `json:"request"`
}

// Failure is the payload of every failure type except CARD_FETCH_FAILURE.
// Only the error message survives.
type Failure struct {
	Message string `json:"message"`
}

// FetchCardFailure is the payload of CARD_FETCH_FAILURE.
type FetchCardFailure struct {
	Message string           `json:"message"`
	Request FetchCardRequest `json:"request"`
}

// CardsLength is the payload of the board counter types.
type CardsLength struct {
	BoardID string `json:"boardId"`
	Count   int    `json:"count,omitempty"`
}

// ListCard is the payload of the list membership types.
type ListCard struct {
	ListID string `json:"listId"`
	CardID string `json:"cardId"`
}

// Notification is the payload of NOTIFICATION_CREATE.
type Notification struct {
	Text string `json:"text"`
	Kind string `json:"type"`
	// TimeoutMS is how long the notification stays visible, in milliseconds.
	TimeoutMS int64 `json:"timeout"`
}

// Success builds the success intent of op carrying the server response.
func Success(op Operation, payload *domain.Payload) *Intent {
	if payload == nil {
		payload = &domain.Payload{}
	}
	return MustNew(op.Success, payload)
}

// Fail builds the failure intent of op carrying only the message of err.
func Fail(op Operation, err error) *Intent {
	return MustNew(op.Failure, Failure{Message: err.Error()})
}

// IncCardsLength increments the card counter of a board by one.
func IncCardsLength(boardID string) *Intent {
	return MustNew(BoardIncCardsLength, CardsLength{BoardID: boardID})
}

// DecCardsLength decrements the card counter of a board by count.
func DecCardsLength(boardID string, count int) *Intent {
	return MustNew(BoardDecCardsLength, CardsLength{BoardID: boardID, Count: count})
}

// AddCardID appends a card ID to a list.
func AddCardID(listID, cardID string) *Intent {
	return MustNew(ListAddCardID, ListCard{ListID: listID, CardID: cardID})
}

// RemoveCardID removes a card ID from a list.
func RemoveCardID(listID, cardID string) *Intent {
	return MustNew(ListRemoveCardID, ListCard{ListID: listID, CardID: cardID})
}

// HideModal closes whatever modal is open.
func HideModal() *Intent {
	return MustNew(ModalHide, nil)
}

// CreateNotification shows a notification for the given duration.
func CreateNotification(text, kind string, timeout time.Duration) *Intent {
	return MustNew(NotificationCreate, Notification{
		Text:      text,
		Kind:      kind,
		TimeoutMS: timeout.Milliseconds(),
	})
}
