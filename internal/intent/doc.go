// Package intent defines the tagged messages that flow through the intent bus.
//
// An Intent pairs a Type discriminator with a JSON payload. Producers (the HTTP
// intake, the CLI, effect handlers) create intents; the bus hands each one to the
// handlers subscribed to its type. Request intents ask for a remote operation,
// success and failure intents report its outcome, and the remaining types are
// bookkeeping instructions for the board state (counters, list membership,
// modal and notifications).
package intent
