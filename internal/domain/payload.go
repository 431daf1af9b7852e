package domain

// Payload is the normalized response shape returned by every remote card
// operation: the identifiers the operation produced plus the entities it touched.
type Payload struct {
	Result   Result   `json:"result"`
	Entities Entities `json:"entities"`
}

// Result names the primary entities of a response.
type Result struct {
	Card  string   `json:"card,omitempty"`
	Lists []string `json:"lists,omitempty"`
}

// Entities holds the normalized records of a response keyed by ID.
type Entities struct {
	Cards map[string]Card `json:"cards,omitempty"`
	Lists map[string]List `json:"lists,omitempty"`
}

// NewCardPayload builds a payload whose result is a single card.
func NewCardPayload(card Card) *Payload {
	return &Payload{
		Result:   Result{Card: card.ID},
		Entities: Entities{Cards: map[string]Card{card.ID: card}},
	}
}

// NewListsPayload builds a payload whose result is a set of lists.
func NewListsPayload(lists ...List) *Payload {
	p := &Payload{Entities: Entities{Lists: make(map[string]List, len(lists))}}
	for _, l := range lists {
		p.Result.Lists = append(p.Result.Lists, l.ID)
		p.Entities.Lists[l.ID] = l
	}
	return p
}
