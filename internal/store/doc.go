// Package store defines the persistence interfaces of the effect layer. The
// only persisted state is the set of expiring flags that gate one-time UI
// hints; backends live under internal/platform.
package store
