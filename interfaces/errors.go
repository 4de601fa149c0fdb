package interfaces

import (
	"errors"
	"fmt"
)

// ErrConstantsNotLoaded is reported when a constant is requested before any configuration has been
// loaded.
var ErrConstantsNotLoaded = errors.New("you must load a configuration before accessing constants")

// MissingKeyError is reported when a required constant is not defined in the loaded configuration
// or in the remote hotfixes.
type MissingKeyError struct {
	Key string
}

func (e MissingKeyError) Error() string {
	return fmt.Sprintf("key is missing: %s", e.Key)
}

// KeyTypeError is reported when a constant exists but does not have the requested type.
type KeyTypeError struct {
	Key  string
	Want string
	Got  string
}

func (e KeyTypeError) Error() string {
	return fmt.Sprintf("key %s has type %s, expected %s", e.Key, e.Got, e.Want)
}
