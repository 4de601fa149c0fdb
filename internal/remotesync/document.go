package remotesync

import (
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Top-level property names of the remote document.
const (
	hotfixesProperty    = "hotfixes"
	updateProperty      = "update"
	maintenanceProperty = "maintenance"
)

// Document is a decoded remote document. Each field is ldvalue.Null() if the property was absent.
// Update and Maintenance hold only the entry for the configured platform.
//
// Only JSON syntax is checked here. Whether each sub-document has the right shape is up to the
// component that consumes it, so that one malformed sub-document does not prevent the others from
// being applied.
type Document struct {
	Hotfixes    ldvalue.Value
	Update      ldvalue.Value
	Maintenance ldvalue.Value
}

// ParseDocument decodes a remote document. For example:
//
//	{
//	  "hotfixes": { "some_key": 42 },
//	  "update": { "ios": [ { "active": true, "restriction": 2, ... } ] },
//	  "maintenance": { "ios": { "active": false, "message": "", "poll_interval": 60 } }
//	}
//
// Unrecognized properties are skipped.
func ParseDocument(body []byte, platform string) (Document, error) {
	return parseDocument(body, platform, false)
}

// ParseMaintenance decodes only the maintenance entry of a remote document for the platform.
func ParseMaintenance(body []byte, platform string) (ldvalue.Value, error) {
	doc, err := parseDocument(body, platform, true)
	return doc.Maintenance, err
}

func parseDocument(body []byte, platform string, maintenanceOnly bool) (Document, error) {
	doc := Document{}
	r := jreader.NewReader(body)
	for obj := r.Object(); obj.Next(); {
		name := string(obj.Name())
		if maintenanceOnly && name != maintenanceProperty {
			_ = r.SkipValue()
			continue
		}
		switch name {
		case hotfixesProperty:
			doc.Hotfixes = readValue(&r)
		case updateProperty:
			doc.Update = readValue(&r).GetByKey(platform)
		case maintenanceProperty:
			doc.Maintenance = readValue(&r).GetByKey(platform)
		default:
			_ = r.SkipValue()
		}
	}
	if err := r.Error(); err != nil {
		return Document{}, malformedJSONError{err}
	}
	return doc, nil
}

func readValue(r *jreader.Reader) ldvalue.Value {
	var v ldvalue.Value
	v.ReadFromJSONReader(r)
	return v
}
