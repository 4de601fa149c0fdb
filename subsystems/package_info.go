// Package subsystems contains interfaces for implementation of custom client components.
//
// Most applications will not need to refer to these types. The built-in implementations are obtained
// through the gtcomponents, gtfiledata and gtsqlite packages; the interfaces here describe what an
// alternative implementation of persistent storage, constants loading, callback dispatch or timer
// scheduling must provide.
package subsystems
