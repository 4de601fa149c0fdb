// Package interfaces contains types that are part of the public API, but not needed for basic use of
// the client.
//
// Types in this package describe state that the client exposes to application code: the remote sync
// state, the active update rule, the maintenance state, and the errors reported when constants are
// misconfigured. Types that are only relevant to implementors of pluggable components are in the
// subsystems package instead.
package interfaces
