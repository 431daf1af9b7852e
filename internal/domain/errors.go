package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrListNotFound is returned when a list is not present in the board state.
	ErrListNotFound = errors.New("list not found")

	// ErrBoardNotFound is returned when a board is not present in the board state.
	ErrBoardNotFound = errors.New("board not found")

	// ErrCardNotFound is returned when a card is not present in the board state.
	ErrCardNotFound = errors.New("card not found")

	// ErrEmptyID is returned when a required identifier is empty.
	ErrEmptyID = errors.New("id cannot be empty")
)
