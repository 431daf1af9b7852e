// Package api is the HTTP intake for card intents. Producers post request
// intents to /api/intents, which are put on the intent bus; read endpoints
// expose the board state projection those intents produce.
package api
