// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method; a nil field falls back
// to a zero-value success so tests only configure the calls they care about.
//
// Usage:
//
//	gw := &mocks.Gateway{
//	    CreateCardFn: func(ctx context.Context, listID, text string) (*domain.Payload, error) {
//	        return domain.NewCardPayload(domain.Card{ID: "c1", ListID: listID, Text: text}), nil
//	    },
//	}
//	rec := &mocks.Recorder{}
//
//	// Wire gw and rec into the code under test, then assert on rec.Types().
package mocks
