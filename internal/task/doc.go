// Package task runs effect invocations as independent goroutines.
// Each invocation is a small two-state machine (running, then terminated with
// an outcome); the Runner starts it immediately, recovers panics so one failing
// invocation never affects another, and drains in-flight work on shutdown.
package task
