package subsystems

import (
	"net/http"

	"github.com/gametime/go-constants-sdk/interfaces"
)

// ClientContext provides context information from the Client when creating other components.
//
// This is passed as a parameter to the Build methods of component configurers. For test purposes you
// may use the simple struct type BasicClientContext.
type ClientContext interface {
	// GetApplicationInfo returns the configured application metadata.
	GetApplicationInfo() interfaces.ApplicationInfo

	// GetHTTP returns the configured HTTPConfiguration.
	GetHTTP() HTTPConfiguration

	// GetLogging returns the configured LoggingConfiguration.
	GetLogging() LoggingConfiguration
}

// BasicClientContext is the basic implementation of the ClientContext interface.
type BasicClientContext struct {
	ApplicationInfo interfaces.ApplicationInfo
	HTTP            HTTPConfiguration
	Logging         LoggingConfiguration
}

func (b BasicClientContext) GetApplicationInfo() interfaces.ApplicationInfo { return b.ApplicationInfo } //nolint:revive

func (b BasicClientContext) GetHTTP() HTTPConfiguration { //nolint:revive
	ret := b.HTTP
	if ret.CreateHTTPClient == nil {
		ret.CreateHTTPClient = func() *http.Client {
			client := *http.DefaultClient
			return &client
		}
	}
	return ret
}

func (b BasicClientContext) GetLogging() LoggingConfiguration { return b.Logging } //nolint:revive
