package gtcomponents

import (
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// StaticConstants returns a constants source that always provides the given documents. It is useful
// when the configuration is embedded in the application binary, and in tests.
//
//	config := gtconstants.Config{
//	    Constants: gtcomponents.StaticConstants(
//	        ldvalue.ValueMapBuild().Set("interceptions_url", ldvalue.String(url)).Build(),
//	    ),
//	}
func StaticConstants(
	defaults ldvalue.ValueMap,
	overrides ...ldvalue.ValueMap,
) subsystems.ComponentConfigurer[subsystems.ConstantsSource] {
	return staticConstantsSource{
		docs: subsystems.ConstantsDocuments{
			Defaults:  defaults,
			Overrides: append([]ldvalue.ValueMap(nil), overrides...),
		},
	}
}

type staticConstantsSource struct {
	docs subsystems.ConstantsDocuments
}

func (s staticConstantsSource) Build(clientContext subsystems.ClientContext) (subsystems.ConstantsSource, error) {
	return s, nil
}

func (s staticConstantsSource) Load() (subsystems.ConstantsDocuments, error) {
	return s.docs, nil
}

func (s staticConstantsSource) Watch(onChange func()) error {
	return nil
}

func (s staticConstantsSource) Close() error {
	return nil
}
