// Package gtconstants is the main package for the Gametime constants client.
//
// This package contains the types and methods for the Client, along with the Config type. The
// client resolves configuration constants from the bundled configuration files, lets hotfixes from
// a remote document take precedence over them, and reports whether the application must be updated
// or the backend is undergoing maintenance.
//
//	client, err := gtconstants.MakeClient(gtconstants.Config{
//	    Constants: gtfiledata.Constants().DefaultFile("constants.json").OverrideFiles("constants.prod.json"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	timeout := client.GetInt("request_timeout_seconds")
//
// Pluggable components are configured with the builders in the gtcomponents package.
package gtconstants
