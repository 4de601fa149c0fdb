package gthttp

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultConnectTimeout is the connection timeout used when none is specified.
const DefaultConnectTimeout = 10 * time.Second

const defaultKeepAlive = 1 * time.Minute

type transportExtraOptions struct {
	caCerts        *x509.CertPool
	connectTimeout time.Duration
	proxyURL       *url.URL
}

// TransportOption is the interface for optional configuration parameters that can be passed to
// NewHTTPTransport.
type TransportOption interface {
	apply(opts *transportExtraOptions) error
}

type connectTimeoutOption struct {
	timeout time.Duration
}

func (o connectTimeoutOption) apply(opts *transportExtraOptions) error {
	opts.connectTimeout = o.timeout
	return nil
}

// ConnectTimeoutOption specifies the maximum time to wait for a TCP connection. A zero or negative
// value means DefaultConnectTimeout.
func ConnectTimeoutOption(timeout time.Duration) TransportOption {
	return connectTimeoutOption{timeout: timeout}
}

type caCertOption struct {
	certData []byte
}

func (o caCertOption) apply(opts *transportExtraOptions) error {
	if opts.caCerts == nil {
		opts.caCerts = x509.NewCertPool()
	}
	if !opts.caCerts.AppendCertsFromPEM(o.certData) {
		return errors.New("Invalid CA certificate data") //nolint:stylecheck
	}
	return nil
}

// CACertOption adds a trusted certificate authority, given as PEM data. Once any CA is added, the
// system's default authorities are no longer trusted.
func CACertOption(certData []byte) TransportOption {
	return caCertOption{certData: certData}
}

type caCertFileOption struct {
	filePath string
}

func (o caCertFileOption) apply(opts *transportExtraOptions) error {
	bytes, err := os.ReadFile(o.filePath)
	if err != nil {
		return fmt.Errorf("Can't read CA certificate file: %w", err) //nolint:stylecheck
	}
	return caCertOption{certData: bytes}.apply(opts)
}

// CACertFileOption adds a trusted certificate authority, read from a PEM file.
func CACertFileOption(filePath string) TransportOption {
	return caCertFileOption{filePath: filePath}
}

type proxyOption struct {
	url url.URL
}

func (o proxyOption) apply(opts *transportExtraOptions) error {
	u := o.url
	opts.proxyURL = &u
	return nil
}

// ProxyOption routes all requests through the given proxy. Without it, the standard HTTP_PROXY and
// HTTPS_PROXY environment variables are used.
func ProxyOption(url url.URL) TransportOption {
	return proxyOption{url: url}
}

// NewHTTPTransport creates a transport with the given options. It also returns the dialer, so that a
// caller that wraps the connection (such as an NTLM proxy) can use the same timeouts.
func NewHTTPTransport(options ...TransportOption) (*http.Transport, *net.Dialer, error) {
	extraOptions := transportExtraOptions{}
	for _, o := range options {
		if err := o.apply(&extraOptions); err != nil {
			return nil, nil, err
		}
	}
	if extraOptions.connectTimeout <= 0 {
		extraOptions.connectTimeout = DefaultConnectTimeout
	}
	dialer := &net.Dialer{
		Timeout:   extraOptions.connectTimeout,
		KeepAlive: defaultKeepAlive,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if extraOptions.caCerts != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: extraOptions.caCerts} //nolint:gosec
	}
	if extraOptions.proxyURL != nil {
		transport.Proxy = http.ProxyURL(extraOptions.proxyURL)
	}
	return transport, dialer, nil
}
