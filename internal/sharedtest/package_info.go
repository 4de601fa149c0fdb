// Package sharedtest contains types and functions used by unit tests in multiple packages.
//
// Since it is inside internal/, none of this code can be seen by application code. Test helpers that
// should be available to application code are in testhelpers/ instead.
//
// No non-test code may import this package, so that it is never compiled into applications.
package sharedtest
