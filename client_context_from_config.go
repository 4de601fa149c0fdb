package gtconstants

import (
	"github.com/gametime/go-constants-sdk/gtcomponents"
	"github.com/gametime/go-constants-sdk/subsystems"
)

func newClientContextFromConfig(config Config) (subsystems.BasicClientContext, error) {
	basicContext := subsystems.BasicClientContext{ApplicationInfo: config.ApplicationInfo}

	loggingFactory := config.Logging
	if loggingFactory == nil {
		loggingFactory = gtcomponents.Logging()
	}
	logging, err := loggingFactory.Build(basicContext)
	if err != nil {
		return subsystems.BasicClientContext{}, err
	}
	basicContext.Logging = logging

	httpFactory := config.HTTP
	if httpFactory == nil {
		httpFactory = gtcomponents.HTTPConfiguration()
	}
	http, err := httpFactory.Build(basicContext)
	if err != nil {
		return subsystems.BasicClientContext{}, err
	}
	basicContext.HTTP = http

	return basicContext, nil
}
