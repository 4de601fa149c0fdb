// Package updategate decides whether the user must update the application or the operating system,
// based on the update rules from the remote document.
package updategate

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/gametime/go-constants-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const defaultLocale = "en"

// VersionComparator is the part of version.Comparator used by the gate.
type VersionComparator interface {
	IsOlder(a, b string) bool
}

// Gate holds the active update rule, if any.
//
// Configure is only called from the client's dispatcher; the rule is published with an atomic store
// so that UpdateNeeded and UpdateRule can be called from any goroutine.
type Gate struct {
	rule     atomic.Pointer[interfaces.UpdateRule]
	appInfo  interfaces.ApplicationInfo
	versions VersionComparator
	loggers  ldlog.Loggers
}

type versionRequirement struct {
	number     string
	message    string
	hasMessage bool
}

type ruleConfig struct {
	active        bool
	restriction   interfaces.Restriction
	minAppVersion versionRequirement
	minOSVersion  versionRequirement
}

// NewGate creates a Gate with no active rule.
func NewGate(appInfo interfaces.ApplicationInfo, versions VersionComparator, loggers ldlog.Loggers) *Gate {
	return &Gate{appInfo: appInfo, versions: versions, loggers: loggers}
}

// UpdateNeeded returns true if a rule is active.
func (g *Gate) UpdateNeeded() bool {
	return g.rule.Load() != nil
}

// UpdateRule returns the active rule, if any.
func (g *Gate) UpdateRule() (interfaces.UpdateRule, bool) {
	if r := g.rule.Load(); r != nil {
		return *r, true
	}
	return interfaces.UpdateRule{}, false
}

// Configure rebuilds the rule set from the raw platform-specific array of the update document and
// determines the new active rule.
//
// If no well-formed record is present, the current rule is kept: an empty rule set is treated as a
// gap in the response rather than as an instruction to lift the requirement.
func (g *Gate) Configure(raw ldvalue.Value) {
	if raw.Type() != ldvalue.ArrayType {
		if !raw.IsNull() {
			g.loggers.Warnf("Ignoring update rules: expected an array but got %s", raw.Type())
		}
		return
	}
	configs := g.parseRuleConfigs(raw)
	if len(configs) == 0 {
		g.loggers.Debug("Update document contained no usable rules; keeping current rule")
		return
	}
	rule := g.selectRule(configs)
	if rule == nil {
		if g.rule.Swap(nil) != nil {
			g.loggers.Info("Update requirement lifted")
		}
		return
	}
	g.loggers.Infof("Update required: %s version %s (restriction %s)", rule.Type, rule.Version, rule.Restriction)
	g.rule.Store(rule)
}

func (g *Gate) selectRule(configs []ruleConfig) *interfaces.UpdateRule {
	active := make([]ruleConfig, 0, len(configs))
	for _, c := range configs {
		if c.active {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].restriction > active[j].restriction
	})
	for _, c := range active {
		if rule := g.buildRule(c); rule != nil {
			return rule
		}
	}
	return nil
}

// The application version is checked before the OS version.
func (g *Gate) buildRule(c ruleConfig) *interfaces.UpdateRule {
	var failed versionRequirement
	var updateType interfaces.UpdateType
	switch {
	case g.versions.IsOlder(g.appInfo.ApplicationVersion, c.minAppVersion.number):
		failed, updateType = c.minAppVersion, interfaces.UpdateTypeApp
	case g.versions.IsOlder(g.appInfo.OSVersion, c.minOSVersion.number):
		failed, updateType = c.minOSVersion, interfaces.UpdateTypeOS
	default:
		return nil
	}
	return &interfaces.UpdateRule{
		Type:        updateType,
		Version:     failed.number,
		Restriction: c.restriction,
		Message:     failed.message,
		HasMessage:  failed.hasMessage,
	}
}

func (g *Gate) parseRuleConfigs(raw ldvalue.Value) []ruleConfig {
	ret := make([]ruleConfig, 0, raw.Count())
	for i := 0; i < raw.Count(); i++ {
		if c, ok := g.parseRuleConfig(raw.GetByIndex(i)); ok {
			ret = append(ret, c)
		} else {
			g.loggers.Debugf("Skipping malformed update rule at index %d", i)
		}
	}
	return ret
}

func (g *Gate) parseRuleConfig(v ldvalue.Value) (ruleConfig, bool) {
	if v.Type() != ldvalue.ObjectType {
		return ruleConfig{}, false
	}
	activeValue := v.GetByKey("active")
	restrictionValue := v.GetByKey("restriction")
	if activeValue.Type() != ldvalue.BoolType || !restrictionValue.IsNumber() {
		return ruleConfig{}, false
	}
	minApp, ok := g.parseVersionRequirement(v.GetByKey("min_app_version"))
	if !ok {
		return ruleConfig{}, false
	}
	minOS, ok := g.parseVersionRequirement(v.GetByKey("min_os_version"))
	if !ok {
		return ruleConfig{}, false
	}
	return ruleConfig{
		active:        activeValue.BoolValue(),
		restriction:   interfaces.ClampRestriction(restrictionValue.IntValue()),
		minAppVersion: minApp,
		minOSVersion:  minOS,
	}, true
}

func (g *Gate) parseVersionRequirement(v ldvalue.Value) (versionRequirement, bool) {
	number := v.GetByKey("version")
	if v.Type() != ldvalue.ObjectType || number.Type() != ldvalue.StringType {
		return versionRequirement{}, false
	}
	ret := versionRequirement{number: number.StringValue()}
	ret.message, ret.hasMessage = localizedMessage(v.GetByKey("message"), g.appInfo.PreferredLocales)
	return ret, true
}

// localizedMessage picks the message for the first preferred locale that has one, trying the exact
// locale identifier and then its base language.
func localizedMessage(messages ldvalue.Value, preferredLocales []string) (string, bool) {
	if messages.Type() != ldvalue.ObjectType {
		return "", false
	}
	if len(preferredLocales) == 0 {
		preferredLocales = []string{defaultLocale}
	}
	for _, locale := range preferredLocales {
		for _, candidate := range localeCandidates(locale) {
			if m := messages.GetByKey(candidate); m.Type() == ldvalue.StringType {
				return m.StringValue(), true
			}
		}
	}
	return "", false
}

func localeCandidates(locale string) []string {
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return []string{locale, locale[:i]}
	}
	return []string{locale}
}
