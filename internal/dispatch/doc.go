// Package dispatch wires effect handlers to the intent bus. A Registry maps
// each request type to exactly one handler; a Sequencer subscribes the whole
// registry once at startup.
package dispatch
