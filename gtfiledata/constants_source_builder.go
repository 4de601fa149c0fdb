package gtfiledata

import (
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// ReloaderFactory is a function type used with ConstantsSourceBuilder.Reloader, to specify a
// mechanism for detecting when files have changed.
//
// The factory is called once with the absolute paths of all files. It should arrange for reload to
// be called whenever one of them changes, and stop doing so when closeCh is closed. It may call reload
// once at startup as well.
type ReloaderFactory func(paths []string, loggers ldlog.Loggers, reload func(), closeCh <-chan struct{}) error

// ConstantsSourceBuilder is a builder for configuring the file-based constants source.
//
// Obtain an instance of this type by calling Constants(). After calling its methods to specify any
// desired custom settings, store it in the Constants field of gtconstants.Config.
type ConstantsSourceBuilder struct {
	defaultFile     string
	overrideFiles   []string
	reloaderFactory ReloaderFactory
}

// Constants returns a configurable builder for a file-based constants source.
func Constants() *ConstantsSourceBuilder {
	return &ConstantsSourceBuilder{}
}

// DefaultFile specifies the file holding the bundled defaults.
func (b *ConstantsSourceBuilder) DefaultFile(path string) *ConstantsSourceBuilder {
	b.defaultFile = path
	return b
}

// OverrideFiles adds override files. Later files take precedence over earlier ones, and all of them
// take precedence over the default file.
func (b *ConstantsSourceBuilder) OverrideFiles(paths ...string) *ConstantsSourceBuilder {
	b.overrideFiles = append(b.overrideFiles, paths...)
	return b
}

// Reloader specifies a mechanism for reloading the files when they change.
//
//	gtfiledata.Constants().DefaultFile(path).Reloader(gtfilewatch.WatchFiles)
func (b *ConstantsSourceBuilder) Reloader(reloaderFactory ReloaderFactory) *ConstantsSourceBuilder {
	b.reloaderFactory = reloaderFactory
	return b
}

// Build is called internally by the client.
func (b *ConstantsSourceBuilder) Build(context subsystems.ClientContext) (subsystems.ConstantsSource, error) {
	return newFileConstantsSource(context, b.defaultFile, b.overrideFiles, b.reloaderFactory)
}
