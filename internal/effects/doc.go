// Package effects holds the card effect handlers. Each handler turns one
// request intent into exactly one gateway call and then puts the outcome back
// on the bus: the success intent followed by its fixed bookkeeping intents, or
// a single failure intent that carries only the error message.
package effects
