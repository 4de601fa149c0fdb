package gtconstants

import "github.com/gametime/go-constants-sdk/internal"

// Version is the client version.
const Version = internal.ClientVersion
