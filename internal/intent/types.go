package intent

// Type is the discriminator of an intent.
type Type string

// Card request/outcome types. Every request type has exactly one success and
// one failure counterpart.
const (
	CardCreateRequest = Type("CARD_CREATE_REQUEST")
	CardCreateSuccess = Type("CARD_CREATE_SUCCESS")
	CardCreateFailure = Type("CARD_CREATE_FAILURE")

	CardRemoveRequest = Type("CARD_REMOVE_REQUEST")
	CardRemoveSuccess = Type("CARD_REMOVE_SUCCESS")
	CardRemoveFailure = Type("CARD_REMOVE_FAILURE")

	CardFetchRequest = Type("CARD_FETCH_REQUEST")
	CardFetchSuccess = Type("CARD_FETCH_SUCCESS")
	CardFetchFailure = Type("CARD_FETCH_FAILURE")

	CardUpdateRequest = Type("CARD_UPDATE_REQUEST")
	CardUpdateSuccess = Type("CARD_UPDATE_SUCCESS")
	CardUpdateFailure = Type("CARD_UPDATE_FAILURE")

	CardAddColorRequest = Type("CARD_ADD_COLOR_REQUEST")
	CardAddColorSuccess = Type("CARD_ADD_COLOR_SUCCESS")
	CardAddColorFailure = Type("CARD_ADD_COLOR_FAILURE")

	CardRemoveColorRequest = Type("CARD_REMOVE_COLOR_REQUEST")
	CardRemoveColorSuccess = Type("CARD_REMOVE_COLOR_SUCCESS")
	CardRemoveColorFailure = Type("CARD_REMOVE_COLOR_FAILURE")

	CardMoveRequest = Type("CARD_MOVE_REQUEST")
	CardMoveSuccess = Type("CARD_MOVE_SUCCESS")
	CardMoveFailure = Type("CARD_MOVE_FAILURE")
)

// Bookkeeping types consumed by the board state.
const (
	BoardIncCardsLength = Type("BOARD_INC_CARDS_LENGTH")
	BoardDecCardsLength = Type("BOARD_DEC_CARDS_LENGTH")
	ListAddCardID       = Type("LIST_ADD_CARD_ID")
	ListRemoveCardID    = Type("LIST_REMOVE_CARD_ID")
	ModalHide           = Type("MODAL_HIDE")
	NotificationCreate  = Type("NOTIFICATION_CREATE")
)

// Operation groups the three types belonging to one remote operation.
type Operation struct {
	Request Type
	Success Type
	Failure Type
}

// Card operations in registration order.
var (
	CreateCard  = Operation{CardCreateRequest, CardCreateSuccess, CardCreateFailure}
	RemoveCard  = Operation{CardRemoveRequest, CardRemoveSuccess, CardRemoveFailure}
	FetchCard   = Operation{CardFetchRequest, CardFetchSuccess, CardFetchFailure}
	UpdateCard  = Operation{CardUpdateRequest, CardUpdateSuccess, CardUpdateFailure}
	AddColor    = Operation{CardAddColorRequest, CardAddColorSuccess, CardAddColorFailure}
	RemoveColor = Operation{CardRemoveColorRequest, CardRemoveColorSuccess, CardRemoveColorFailure}
	MoveCard    = Operation{CardMoveRequest, CardMoveSuccess, CardMoveFailure}
)

// Operations lists every card operation.
func Operations() []Operation {
	return []Operation{CreateCard, RemoveCard, FetchCard, UpdateCard, AddColor, RemoveColor, MoveCard}
}

// IsRequest reports whether t is one of the card request types, i.e. a type a
// producer outside the effect layer may submit.
func IsRequest(t Type) bool {
	for _, op := range Operations() {
		if op.Request == t {
			return true
		}
	}
	return false
}

// OperationFor returns the operation whose request, success or failure type is t.
func OperationFor(t Type) (Operation, bool) {
	for _, op := range Operations() {
		if op.Request == t || op.Success == t || op.Failure == t {
			return op, true
		}
	}
	return Operation{}, false
}

func (t Type) String() string {
	return string(t)
}
