// Package workers provides abstractions for managing and running
// background workers in the client application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's processing, typically in an internal
// goroutine, and returns immediately. The worker stops when the context is
// cancelled or Stop is called, whichever happens first.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
