package intent

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Intent is an immutable tagged message. The payload is kept serialized so an
// intent can cross process boundaries (HTTP intake, logs) unchanged.
type Intent struct {
	// ID is a unique identifier for this intent
	ID uuid.UUID `json:"id"`

	// Type discriminates the payload shape
	Type Type `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the intent was created
	CreatedAt time.Time `json:"created_at"`
}

// New creates an Intent with the given type and payload. A nil payload is
// encoded as an empty object.
func New(t Type, payload interface{}) (*Intent, error) {
	var raw json.RawMessage
	if payload == nil {
		raw = json.RawMessage(`{}`)
	} else {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Intent{
		ID:        uuid.New(),
		Type:      t,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// MustNew is like New but panics if the payload cannot be encoded. It is meant
// for payload structs defined in this package, which always encode.
func MustNew(t Type, payload interface{}) *Intent {
	in, err := New(t, payload)
	if err != nil {
		// ALLOW-PANIC: payload types in this package are always encodable
		panic(err)
	}
	return in
}

// UnmarshalPayload decodes the intent payload into the provided structure.
func (i *Intent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(i.Payload, v)
}
