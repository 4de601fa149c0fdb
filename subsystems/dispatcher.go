package subsystems

// Dispatcher is the single execution context on which the client applies state changes from remote
// responses and invokes application callbacks.
//
// Implementations must run submitted functions one at a time, in submission order, and never on the
// calling goroutine. An application with its own event loop may supply a Dispatcher that posts to it.
type Dispatcher interface {
	Dispatch(fn func())
}
