package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash is the unified panic handler: it runs restore (terminal reset) and prints the stack trace
func HandleCrash(r any, restore func()) {
	if r == nil {
		return
	}

	if restore != nil {
		restore()
	}

	// Use \r\n for raw mode compatibility
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(restore func(), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r, restore)
			}
		}()
		fn()
	}()
}
