package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCardPayload(t *testing.T) {
	t.Parallel()

	card := Card{ID: "c9", ListID: "l1", Text: "Buy milk"}
	p := NewCardPayload(card)

	assert.Equal(t, "c9", p.Result.Card)
	assert.Equal(t, card, p.Entities.Cards["c9"])
	assert.Empty(t, p.Entities.Lists)
}

func TestNewListsPayload(t *testing.T) {
	t.Parallel()

	src := List{ID: "l1", Cards: []string{"c1"}}
	dst := List{ID: "l2", Cards: []string{"c2", "c3"}}
	p := NewListsPayload(src, dst)

	assert.Equal(t, []string{"l1", "l2"}, p.Result.Lists)
	assert.Len(t, p.Entities.Lists, 2)
	assert.Equal(t, dst, p.Entities.Lists["l2"])
}

func TestListSummaryCopiesCards(t *testing.T) {
	t.Parallel()

	l := List{ID: "l1", BoardID: "b1", Name: "Todo", Cards: []string{"a", "b"}}
	s := l.Summary()
	s.Cards[0] = "z"

	assert.Equal(t, "l1", s.ID)
	assert.Equal(t, []string{"a", "b"}, l.Cards, "summary must not alias list storage")
}

func TestCardHasColor(t *testing.T) {
	t.Parallel()

	c := Card{ID: "c1", Colors: []string{"red", "blue"}}
	assert.True(t, c.HasColor("blue"))
	assert.False(t, c.HasColor("green"))
}
