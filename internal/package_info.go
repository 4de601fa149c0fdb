// Package internal contains client implementation details that are shared between packages, but are
// not exposed to application code. Each core component lives in its own subpackage.
package internal
