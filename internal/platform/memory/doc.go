// Package memory provides an in-process implementation of store.FlagStore,
// used for local runs and tests. Flags do not survive a restart.
package memory
