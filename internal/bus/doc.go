// Package bus provides the in-process intent bus.
//
// Handlers subscribe to an intent type; Put hands each intent to every
// matching handler, starting one task per handler on the task runner so no
// handler blocks another. Observers registered with SubscribeAll see every
// intent and are the place downstream consumers (the board state) attach.
// The bus gives no ordering guarantee between distinct intents.
package bus
