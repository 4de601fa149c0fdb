// Package storetest contains the standard test suite for persistent store implementations.
//
// If you are writing your own storage integration, use this test suite to ensure that it is being
// fully tested in the same way that the built-in ones are tested.
package storetest
