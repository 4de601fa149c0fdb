// Package constants holds the merged bundled configuration: a default document with zero or more
// override documents applied over it.
package constants
