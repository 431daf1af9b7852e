// Package trello implements the card gateway on top of a Trello board using
// github.com/adlio/trello. Card text maps to the Trello card name, colors map
// to label IDs, and list order maps to card positions.
package trello
