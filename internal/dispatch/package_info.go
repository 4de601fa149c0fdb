// Package dispatch provides the client's designated execution context for state changes and
// callbacks, and the default timer service.
package dispatch
