// Package gthttp provides HTTP utilities used by the constants client, such as custom certificate
// authorities and proxies.
package gthttp
