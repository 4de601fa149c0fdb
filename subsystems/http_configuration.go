package subsystems

import "net/http"

// HTTPConfiguration encapsulates top-level HTTP configuration that applies to all client components.
//
// See gtcomponents.HTTPConfigurationBuilder for more details on these properties.
type HTTPConfiguration struct {
	// DefaultHeaders contains the request headers that should be added to every HTTP request.
	DefaultHeaders http.Header

	// CreateHTTPClient is a function that returns a new HTTP client instance based on the configuration.
	CreateHTTPClient func() *http.Client
}
