// Package postgres provides the PostgreSQL implementation of store.FlagStore
// and the embedded schema migrations it depends on.
package postgres
