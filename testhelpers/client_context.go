package testhelpers

import (
	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// SimpleClientContext is a reference implementation of subsystems.ClientContext for test code.
//
// The client uses the ClientContext interface to pass its configuration to components.
// SimpleClientContext may be useful for external code to test a custom component, such as a
// PersistentStore.
type SimpleClientContext struct {
	appInfo interfaces.ApplicationInfo
	http    *subsystems.HTTPConfiguration
	logging *subsystems.LoggingConfiguration
}

// NewSimpleClientContext creates a SimpleClientContext instance, with a standard HTTP configuration
// and a disabled logging configuration.
func NewSimpleClientContext(appInfo interfaces.ApplicationInfo) SimpleClientContext {
	return SimpleClientContext{appInfo: appInfo}
}

func (s SimpleClientContext) GetApplicationInfo() interfaces.ApplicationInfo { //nolint:revive
	return s.appInfo
}

func (s SimpleClientContext) GetHTTP() subsystems.HTTPConfiguration { //nolint:revive
	if s.http != nil {
		return *s.http
	}
	return subsystems.BasicClientContext{}.GetHTTP()
}

func (s SimpleClientContext) GetLogging() subsystems.LoggingConfiguration { //nolint:revive
	if s.logging != nil {
		return *s.logging
	}
	return subsystems.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()}
}

// WithHTTP returns a new SimpleClientContext based on the original one, but adding the specified
// HTTP configuration.
func (s SimpleClientContext) WithHTTP(
	httpConfig subsystems.ComponentConfigurer[subsystems.HTTPConfiguration],
) SimpleClientContext {
	ret := s
	if c, err := httpConfig.Build(s); err == nil {
		ret.http = &c
	}
	return ret
}

// WithLogging returns a new SimpleClientContext based on the original one, but adding the specified
// logging configuration.
func (s SimpleClientContext) WithLogging(
	loggingConfig subsystems.ComponentConfigurer[subsystems.LoggingConfiguration],
) SimpleClientContext {
	ret := s
	if c, err := loggingConfig.Build(s); err == nil {
		ret.logging = &c
	}
	return ret
}
