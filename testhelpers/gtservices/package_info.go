// Package gtservices provides helpers for simulating the remote interceptions endpoint in tests.
package gtservices
