package domain

import "encoding/json"

// Card is a single card on a list. IDs are assigned by the remote board service.
type Card struct {
	ID     string   `json:"id"`
	ListID string   `json:"listId,omitempty"`
	Text   string   `json:"text"`
	Colors []string `json:"colors,omitempty"`
	// Props carries service-specific fields (description, due date, ...) that the
	// effect layer passes through untouched.
	Props map[string]json.RawMessage `json:"props,omitempty"`
}

// Color is a label that can be attached to a card.
type Color struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// HasColor reports whether the card carries the given color.
func (c Card) HasColor(colorID string) bool {
	for _, id := range c.Colors {
		if id == colorID {
			return true
		}
	}
	return false
}
