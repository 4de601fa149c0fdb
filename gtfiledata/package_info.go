// Package gtfiledata reads the bundled configuration from files.
//
// The configuration is one default file plus any number of override files, applied in order. Each
// file holds a single JSON or YAML object whose top-level properties are the constants:
//
//	{
//	    "interceptions_url": "https://example.com/interceptions.json",
//	    "max_retries": 3,
//	    "welcome_text": "Hello"
//	}
//
// or
//
//	---
//	interceptions_url: https://example.com/interceptions.json
//	max_retries: 3
//	welcome_text: Hello
//
// A file is treated as JSON if its first non-whitespace character is "{", and as YAML otherwise.
//
// To use the files, pass the builder to the Constants field of gtconstants.Config:
//
//	config := gtconstants.Config{
//	    Constants: gtfiledata.Constants().
//	        DefaultFile("./constants.json").
//	        OverrideFiles("./constants-staging.yml"),
//	}
//
// If a file cannot be read or parsed, it is skipped and an error is logged. A missing default file
// gives an empty set of defaults rather than a failure, so the overrides still apply.
//
// To reload the files whenever they change, add a Reloader such as gtfilewatch.WatchFiles.
package gtfiledata
