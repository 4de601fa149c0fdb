package subsystems

import (
	"io"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// ConstantsDocuments is the raw input of a configuration load: the bundled defaults plus any number
// of override documents, in the order they should be applied.
type ConstantsDocuments struct {
	Defaults  ldvalue.ValueMap
	Overrides []ldvalue.ValueMap
}

// ConstantsSource provides the bundled configuration documents.
type ConstantsSource interface {
	io.Closer

	// Load reads the documents. If some documents could not be read, the implementation may return
	// the documents it could read along with a non-nil error.
	Load() (ConstantsDocuments, error)

	// Watch asks the source to call onChange whenever the documents may have changed. Sources that
	// cannot detect changes return nil and never call onChange.
	Watch(onChange func()) error
}
