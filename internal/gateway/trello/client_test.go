package trello

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Method string
	Path   string
	Query  map[string]string
}

// fakeTrello serves canned JSON per "METHOD /path" and records every call.
type fakeTrello struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]interface{}
}

func (f *fakeTrello) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := map[string]string{}
	for k, v := range r.URL.Query() {
		if k == "key" || k == "token" {
			continue
		}
		q[k] = v[0]
	}
	path := strings.TrimPrefix(r.URL.Path, "/1")

	f.mu.Lock()
	f.calls = append(f.calls, call{Method: r.Method, Path: path, Query: q})
	resp, ok := f.responses[r.Method+" "+path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "The requested resource was not found.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeTrello) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func newTestClient(t *testing.T, responses map[string]interface{}) (*Client, *fakeTrello) {
	t.Helper()
	fake := &fakeTrello{responses: responses}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(Config{Key: "k", Token: "t", BoardID: "b1", BaseURL: srv.URL + "/1"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c, fake
}

func trelloCard(id, list, name string, labels ...string) map[string]interface{} {
	if labels == nil {
		labels = []string{}
	}
	return map[string]interface{}{
		"id":       id,
		"idList":   list,
		"idBoard":  "b1",
		"name":     name,
		"idLabels": labels,
	}
}

func TestNew(t *testing.T) {
	_, err := New(Config{Key: "k", Token: "t"}, nil)
	assert.Error(t, err)

	_, err = New(Config{Key: "k"}, slog.Default())
	assert.Error(t, err)

	c, err := New(Config{Key: "k", Token: "t", BoardID: "b1"}, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "b1", c.boardID)
}

func TestCreateCard(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"POST /cards": trelloCard("c1", "l1", "hello"),
	})

	p, err := c.CreateCard(context.Background(), "l1", "hello")
	require.NoError(t, err)

	assert.Equal(t, "c1", p.Result.Card)
	assert.Equal(t, domain.Card{ID: "c1", ListID: "l1", Text: "hello"}, p.Entities.Cards["c1"])

	calls := fake.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "l1", calls[0].Query["idList"])
	assert.Equal(t, "hello", calls[0].Query["name"])
	assert.Equal(t, "bottom", calls[0].Query["pos"])
}

func TestFetchCardNotFound(t *testing.T) {
	c, _ := newTestClient(t, map[string]interface{}{})

	p, err := c.FetchCard(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, "Card not found", err.Error())
	assert.True(t, errors.Is(err, gateway.ErrNotFound))
}

func TestRemoveCard(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"GET /cards/c1":    trelloCard("c1", "l1", "bye"),
		"DELETE /cards/c1": map[string]interface{}{"limits": map[string]interface{}{}},
	})

	p, err := c.RemoveCard(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "l1", p.Entities.Cards["c1"].ListID)

	calls := fake.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodDelete, calls[1].Method)
}

func TestUpdateCardMapsProps(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"PUT /cards/c1": trelloCard("c1", "l1", "renamed"),
	})

	p, err := c.UpdateCard(context.Background(), "c1", map[string]json.RawMessage{
		"text":   json.RawMessage(`"renamed"`),
		"closed": json.RawMessage(`false`),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", p.Entities.Cards["c1"].Text)

	calls := fake.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "renamed", calls[0].Query["name"])
	assert.Equal(t, "false", calls[0].Query["closed"])
}

func TestColors(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"POST /cards/c1/idLabels":       []string{"red"},
		"DELETE /cards/c1/idLabels/red": []string{},
		"GET /cards/c1":                 trelloCard("c1", "l1", "x", "red"),
	})

	p, err := c.AddColorToCard(context.Background(), "c1", "red")
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, p.Entities.Cards["c1"].Colors)

	_, err = c.RemoveColorFromCard(context.Background(), "c1", "red")
	require.NoError(t, err)

	calls := fake.recorded()
	require.Len(t, calls, 4)
	assert.Equal(t, "red", calls[0].Query["value"])
	assert.Equal(t, "/cards/c1/idLabels/red", calls[2].Path)
}

func TestMoveCard(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"PUT /cards/c1": trelloCard("c1", "l1", "a"),
		"PUT /cards/c2": trelloCard("c2", "l2", "b"),
		"PUT /cards/c3": trelloCard("c3", "l2", "c"),
	})

	p, err := c.MoveCard(context.Background(),
		domain.ListSummary{ID: "l1", Cards: []string{"c1"}},
		domain.ListSummary{ID: "l2", Cards: []string{"c2", "c3"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"l1", "l2"}, p.Result.Lists)
	assert.Equal(t, []string{"c2", "c3"}, p.Entities.Lists["l2"].Cards)

	calls := fake.recorded()
	require.Len(t, calls, 3)
	assert.Equal(t, map[string]string{"idList": "l1", "pos": "1024"}, calls[0].Query)
	assert.Equal(t, map[string]string{"idList": "l2", "pos": "1024"}, calls[1].Query)
	assert.Equal(t, map[string]string{"idList": "l2", "pos": "2048"}, calls[2].Query)
}

func TestMoveCardWithinList(t *testing.T) {
	c, fake := newTestClient(t, map[string]interface{}{
		"PUT /cards/c1": trelloCard("c1", "l1", "a"),
		"PUT /cards/c2": trelloCard("c2", "l1", "b"),
	})

	order := domain.ListSummary{ID: "l1", Cards: []string{"c2", "c1"}}
	p, err := c.MoveCard(context.Background(), order, order)
	require.NoError(t, err)

	assert.Equal(t, []string{"l1"}, p.Result.Lists)
	assert.Len(t, fake.recorded(), 2)
}

func TestFetchLists(t *testing.T) {
	c, _ := newTestClient(t, map[string]interface{}{
		"GET /boards/b1": map[string]interface{}{"id": "b1", "name": "Board"},
		"GET /boards/b1/lists": []map[string]interface{}{
			{"id": "l1", "name": "Todo"},
			{"id": "l2", "name": "Done"},
		},
		"GET /boards/b1/cards": []map[string]interface{}{
			{"id": "c2", "idList": "l1", "pos": 2048},
			{"id": "c1", "idList": "l1", "pos": 1024},
		},
	})

	lists, err := c.FetchLists(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, lists, 2)

	assert.Equal(t, domain.List{ID: "l1", BoardID: "b1", Name: "Todo", Cards: []string{"c1", "c2"}}, lists[0])
	assert.Equal(t, []string{}, lists[1].Cards)
}

func TestArgValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"text"`, "text"},
		{`true`, "true"},
		{`12.5`, "12.5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, argValue(json.RawMessage(tt.raw)), tt.raw)
	}
}
