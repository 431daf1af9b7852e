// Package state keeps the in-memory board state that the effect layer reads
// and that follow-up intents update. It observes every intent on the bus and
// applies the matching reducer rule; intents with no rule are ignored.
package state
