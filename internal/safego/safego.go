package safego

import (
	"runtime/debug"
	"sync"

	"github.com/gridmux/gridmux/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn and converts panics into logged errors.
// This does not recover from runtime-fatal errors (e.g., concurrent map writes).
func Run(name string, fn func()) {
	defer recoverAndReport(name)
	fn()
}

// recoverAndReport is the deferred half of Run: it logs a panic recovered
// from the goroutine it guards and forwards it to the registered handler,
// if any, itself recovering from a handler that panics.
func recoverAndReport(name string) {
	r := recover()
	if r == nil {
		return
	}
	if name == "" {
		name = "goroutine"
	}
	stack := debug.Stack()
	logging.Error("panic in %s: %v\n%s", name, r, stack)

	panicHandlerMu.RLock()
	handler := panicHandler
	panicHandlerMu.RUnlock()
	if handler == nil {
		return
	}
	defer func() { _ = recover() }()
	handler(name, r, stack)
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}
