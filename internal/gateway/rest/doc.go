// Package rest implements the card gateway over the board service's JSON REST
// API. Non-2xx responses are turned into *gateway.Error values carrying the
// server's error text.
package rest
