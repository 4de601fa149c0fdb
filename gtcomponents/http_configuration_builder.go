package gtcomponents

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gametime/go-constants-sdk/gthttp"
	"github.com/gametime/go-constants-sdk/internal"
	"github.com/gametime/go-constants-sdk/subsystems"
)

// DefaultConnectTimeout is the HTTP connection timeout that is used if HTTPConfigurationBuilder.ConnectTimeout
// is not set.
const DefaultConnectTimeout = 3 * time.Second

// HTTPConfigurationBuilder contains methods for configuring networking behavior.
//
// If you want to set non-default values for any of these properties, create a builder with
// gtcomponents.HTTPConfiguration(), change its properties with the HTTPConfigurationBuilder methods,
// and store it in the HTTP field of gtconstants.Config:
//
//	config := gtconstants.Config{
//	    HTTP: gtcomponents.HTTPConfiguration().
//	        ConnectTimeout(3 * time.Second).
//	        ProxyURL(proxyUrl),
//	}
type HTTPConfigurationBuilder struct {
	inited            bool
	connectTimeout    time.Duration
	httpClientFactory func() *http.Client
	httpOptions       []gthttp.TransportOption
	proxyURL          string
	userAgent         string
	headers           http.Header
}

// HTTPConfiguration returns a configuration builder for the client's HTTP configuration.
func HTTPConfiguration() *HTTPConfigurationBuilder {
	return &HTTPConfigurationBuilder{}
}

func (b *HTTPConfigurationBuilder) checkValid() bool {
	if b == nil {
		return false
	}
	if !b.inited {
		b.connectTimeout = DefaultConnectTimeout
		b.headers = make(http.Header)
		b.inited = true
	}
	return true
}

// CACert specifies a CA certificate to be added to the trusted root CA list for HTTPS requests.
//
// If the certificate is not valid, Build will return an error.
func (b *HTTPConfigurationBuilder) CACert(certData []byte) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpOptions = append(b.httpOptions, gthttp.CACertOption(certData))
	}
	return b
}

// CACertFile specifies a CA certificate to be added to the trusted root CA list for HTTPS requests,
// reading the certificate data from a file in PEM format.
//
// If the certificate is not valid or the file does not exist, Build will return an error.
func (b *HTTPConfigurationBuilder) CACertFile(filePath string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpOptions = append(b.httpOptions, gthttp.CACertFileOption(filePath))
	}
	return b
}

// ConnectTimeout sets the connection timeout.
//
// This is the maximum amount of time to wait for each individual connection attempt to a remote
// service before determining that that attempt has failed. It is not the same as the timeout for
// reading data from an established connection. The default is DefaultConnectTimeout.
func (b *HTTPConfigurationBuilder) ConnectTimeout(connectTimeout time.Duration) *HTTPConfigurationBuilder {
	if b.checkValid() {
		if connectTimeout <= 0 {
			b.connectTimeout = DefaultConnectTimeout
		} else {
			b.connectTimeout = connectTimeout
		}
	}
	return b
}

// Header specifies a custom HTTP header that should be added to all requests. Repeated calls to
// Header with the same key will overwrite previous entries.
func (b *HTTPConfigurationBuilder) Header(key string, value string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.headers.Set(key, value)
	}
	return b
}

// HTTPClientFactory specifies a function for creating each HTTP client instance that is used by the
// client.
//
// If you use this option, it overrides any other settings that you may have specified with
// ConnectTimeout, CACert, CACertFile, or ProxyURL; you are responsible for setting up any desired
// custom configuration on the HTTP client. The client must not use a caching transport: the remote
// document is time-sensitive.
func (b *HTTPConfigurationBuilder) HTTPClientFactory(httpClientFactory func() *http.Client) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpClientFactory = httpClientFactory
	}
	return b
}

// ProxyURL specifies a proxy URL to be used for all requests. This overrides any setting of the
// HTTP_PROXY, HTTPS_PROXY, or NO_PROXY environment variables.
//
// If the string is not a valid URL, Build will return an error.
func (b *HTTPConfigurationBuilder) ProxyURL(proxyURL string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.proxyURL = proxyURL
	}
	return b
}

// UserAgent specifies an additional User-Agent header value to send with HTTP requests.
func (b *HTTPConfigurationBuilder) UserAgent(userAgent string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.userAgent = userAgent
	}
	return b
}

// Build is called internally by the client.
func (b *HTTPConfigurationBuilder) Build(
	clientContext subsystems.ClientContext,
) (subsystems.HTTPConfiguration, error) {
	if !b.checkValid() {
		defaults := HTTPConfigurationBuilder{}
		return defaults.Build(clientContext)
	}

	headers := make(http.Header)
	for k, vv := range b.headers {
		headers[k] = append([]string(nil), vv...)
	}
	userAgent := "GTConstantsGo/" + internal.ClientVersion
	if b.userAgent != "" {
		userAgent = strings.TrimSpace(userAgent + " " + b.userAgent)
	}
	headers.Set("User-Agent", userAgent)

	transportOpts := append([]gthttp.TransportOption(nil), b.httpOptions...)
	if b.proxyURL != "" {
		u, err := url.Parse(b.proxyURL)
		if err != nil {
			return subsystems.HTTPConfiguration{}, err
		}
		if u.Scheme == "" || u.Host == "" {
			return subsystems.HTTPConfiguration{}, errors.New("proxy URL must be absolute")
		}
		transportOpts = append(transportOpts, gthttp.ProxyOption(*u))
	}
	transportOpts = append(transportOpts, gthttp.ConnectTimeoutOption(b.connectTimeout))

	// Fail on invalid certificate options now rather than when the first client is created.
	if _, _, err := gthttp.NewHTTPTransport(transportOpts...); err != nil {
		return subsystems.HTTPConfiguration{}, err
	}

	clientFactory := b.httpClientFactory
	if clientFactory == nil {
		connectTimeout := b.connectTimeout
		clientFactory = func() *http.Client {
			client := &http.Client{Timeout: connectTimeout}
			if transport, _, err := gthttp.NewHTTPTransport(transportOpts...); err == nil {
				client.Transport = transport
			}
			return client
		}
	}

	return subsystems.HTTPConfiguration{
		DefaultHeaders:   headers,
		CreateHTTPClient: clientFactory,
	}, nil
}
