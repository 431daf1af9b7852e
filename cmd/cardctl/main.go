// Package main implements cardctl, a command line producer of card intents.
// Each command posts one request intent to a running cardflow server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
