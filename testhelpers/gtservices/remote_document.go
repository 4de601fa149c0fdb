package gtservices

import (
	"net/http"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"
)

// RemoteDocument is a convenience type for constructing the JSON document served by the
// interceptions endpoint. Its String() method returns the JSON encoding.
//
//	doc := NewRemoteDocument().Hotfix("welcome_text", ldvalue.String("Hi")).
//	    MaintenanceFor("ios", true, "Back soon", 60)
//	handler := RemoteDocumentHandler(doc)
type RemoteDocument struct {
	hotfixes    *ldvalue.ObjectBuilder
	hasHotfixes bool
	update      map[string][]ldvalue.Value
	maintenance map[string]ldvalue.Value
}

// NewRemoteDocument creates an empty RemoteDocument. Until a property is added, the corresponding
// top-level field is omitted.
func NewRemoteDocument() *RemoteDocument {
	return &RemoteDocument{
		hotfixes:    ldvalue.ObjectBuild(),
		update:      make(map[string][]ldvalue.Value),
		maintenance: make(map[string]ldvalue.Value),
	}
}

// Hotfix adds a key to the "hotfixes" object.
func (d *RemoteDocument) Hotfix(key string, value ldvalue.Value) *RemoteDocument {
	d.hotfixes.Set(key, value)
	d.hasHotfixes = true
	return d
}

// EmptyHotfixes makes the document contain an empty "hotfixes" object, which clears all hotfixes.
func (d *RemoteDocument) EmptyHotfixes() *RemoteDocument {
	d.hasHotfixes = true
	return d
}

// UpdateRuleFor adds a raw update rule record for the platform. Use UpdateRuleRecord to build one.
func (d *RemoteDocument) UpdateRuleFor(platform string, record ldvalue.Value) *RemoteDocument {
	d.update[platform] = append(d.update[platform], record)
	return d
}

// MaintenanceFor sets the maintenance entry for the platform. A non-positive pollSeconds omits
// "poll_interval".
func (d *RemoteDocument) MaintenanceFor(platform string, active bool, message string, pollSeconds int) *RemoteDocument {
	b := ldvalue.ObjectBuild().Set("active", ldvalue.Bool(active))
	if message != "" {
		b.Set("message", ldvalue.String(message))
	}
	if pollSeconds > 0 {
		b.Set("poll_interval", ldvalue.Int(pollSeconds))
	}
	d.maintenance[platform] = b.Build()
	return d
}

// Build returns the document as an ldvalue.Value.
func (d *RemoteDocument) Build() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	if d.hasHotfixes {
		b.Set("hotfixes", d.hotfixes.Build())
	}
	if len(d.update) > 0 {
		u := ldvalue.ObjectBuild()
		for platform, records := range d.update {
			u.Set(platform, ldvalue.ArrayOf(records...))
		}
		b.Set("update", u.Build())
	}
	if len(d.maintenance) > 0 {
		m := ldvalue.ObjectBuild()
		for platform, entry := range d.maintenance {
			m.Set(platform, entry)
		}
		b.Set("maintenance", m.Build())
	}
	return b.Build()
}

// String returns the JSON encoding of the document.
func (d *RemoteDocument) String() string {
	return d.Build().JSONString()
}

// UpdateRuleRecord builds one update rule record.
func UpdateRuleRecord(active bool, restriction int, minAppVersion, minOSVersion string) ldvalue.Value {
	return UpdateRuleRecordWithMessages(active, restriction, minAppVersion, nil, minOSVersion, nil)
}

// UpdateRuleRecordWithMessages builds one update rule record with localized messages, keyed by
// locale identifier. A nil map omits the message.
func UpdateRuleRecordWithMessages(
	active bool,
	restriction int,
	minAppVersion string,
	appMessages map[string]string,
	minOSVersion string,
	osMessages map[string]string,
) ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("active", ldvalue.Bool(active)).
		Set("restriction", ldvalue.Int(restriction)).
		Set("min_app_version", versionRequirement(minAppVersion, appMessages)).
		Set("min_os_version", versionRequirement(minOSVersion, osMessages)).
		Build()
}

func versionRequirement(version string, messages map[string]string) ldvalue.Value {
	b := ldvalue.ObjectBuild().Set("version", ldvalue.String(version))
	if messages != nil {
		m := ldvalue.ObjectBuild()
		for locale, text := range messages {
			m.Set(locale, ldvalue.String(text))
		}
		b.Set("message", m.Build())
	}
	return b.Build()
}

// RemoteDocumentHandler creates an HTTP handler that always returns the document.
func RemoteDocumentHandler(doc *RemoteDocument) http.Handler {
	return httphelpers.HandlerWithJSONResponse(doc.Build(), nil)
}
