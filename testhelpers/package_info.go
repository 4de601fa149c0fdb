// Package testhelpers contains types and functions that may be useful in testing the constants
// client or custom integrations.
//
// It contains two subpackages: gtservices, which builds remote documents and serves them over HTTP,
// and storetest, which provides a standard test suite for custom persistent store implementations.
package testhelpers

// Implementation note: anything that is only for this module's own tests belongs in internal/sharedtest
// instead. Avoid depending on anything here other than interfaces and subsystems, so that other
// packages can use it without a cyclic reference.
