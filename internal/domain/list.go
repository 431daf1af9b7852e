package domain

// List is a column on a board holding an ordered sequence of card IDs.
type List struct {
	ID      string   `json:"id"`
	BoardID string   `json:"boardId,omitempty"`
	Name    string   `json:"name,omitempty"`
	Cards   []string `json:"cards"`
}

// Summary returns the minimal form of the list sent with a move operation.
func (l List) Summary() ListSummary {
	cards := make([]string, len(l.Cards))
	copy(cards, l.Cards)
	return ListSummary{ID: l.ID, Cards: cards}
}

// ListSummary is the {id, cards} pair the remote move operation expects.
type ListSummary struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
}

// Board groups lists and keeps a running count of its cards.
type Board struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Lists       []string `json:"lists,omitempty"`
	CardsLength int      `json:"cardsLength"`
}
