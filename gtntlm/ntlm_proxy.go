// Package gtntlm allows the constants client to connect through an NTLM-authenticated proxy.
package gtntlm

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gametime/go-constants-sdk/gthttp"

	ntlm "github.com/launchdarkly/go-ntlm-proxy-auth"
)

// NewNTLMProxyHTTPClientFactory returns a factory function for creating HTTP clients that will
// connect through an NTLM-authenticated proxy server.
//
// To use this with the constants client, pass the factory to gtcomponents.HTTPConfiguration():
//
//	factory, err := gtntlm.NewNTLMProxyHTTPClientFactory("http://my-proxy:8080",
//	    "username", "password", "domain")
//	if err != nil {
//	    // there's some problem with the proxy parameters
//	}
//	config := gtconstants.Config{
//	    HTTP: gtcomponents.HTTPConfiguration().HTTPClientFactory(factory),
//	}
//
// You can also specify TLS configuration options from the gthttp package, if you are connecting to
// the proxy securely:
//
//	factory, err := gtntlm.NewNTLMProxyHTTPClientFactory("http://my-proxy:8080",
//	    "username", "password", "domain", gthttp.CACertFileOption("extra-ca-cert.pem"))
func NewNTLMProxyHTTPClientFactory(
	proxyURL, username, password, domain string,
	options ...gthttp.TransportOption,
) (func() *http.Client, error) {
	if proxyURL == "" || username == "" || password == "" {
		return nil, errors.New("ProxyURL, username, and password are required")
	}
	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %s: %w", proxyURL, err)
	}
	// Fail now rather than on the first request if the transport options are invalid
	if _, _, err := gthttp.NewHTTPTransport(options...); err != nil {
		return nil, err
	}
	return func() *http.Client {
		client := *http.DefaultClient
		if transport, dialer, err := gthttp.NewHTTPTransport(options...); err == nil {
			transport.DialContext = ntlm.NewNTLMProxyDialContext(dialer, *parsedProxyURL,
				username, password, domain, transport.TLSClientConfig)
			client.Transport = transport
		}
		return &client
	}, nil
}
