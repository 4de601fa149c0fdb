package subsystems

import "github.com/launchdarkly/go-sdk-common/v3/ldlog"

// LoggingConfiguration encapsulates the client's general logging configuration.
//
// See gtcomponents.LoggingConfigurationBuilder for more details on these properties.
type LoggingConfiguration struct {
	// Loggers is a configured ldlog.Loggers instance for general logging output.
	Loggers ldlog.Loggers
}
