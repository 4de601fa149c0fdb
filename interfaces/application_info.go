package interfaces

// ApplicationInfo describes the running application, for evaluating update rules and selecting
// localized messages.
type ApplicationInfo struct {
	// ApplicationVersion is the installed application version, as a dotted numeric string. If
	// empty, no rule can fail the application version check.
	ApplicationVersion string

	// OSVersion is the operating system version, as a dotted numeric string. If empty, no rule can
	// fail the OS version check.
	OSVersion string

	// Platform selects the platform-specific entries of the update and maintenance documents. If
	// empty, "ios" is used.
	Platform string

	// PreferredLocales lists locale identifiers in order of preference, such as "en-US". If empty,
	// "en" is used.
	PreferredLocales []string
}
