package interfaces

// Restriction is the severity of an update rule. When several rules apply at once, the one with the
// highest restriction is reported.
type Restriction int

const (
	// RestrictionLow is the least severe restriction level.
	RestrictionLow Restriction = 0
	// RestrictionMedium is the intermediate restriction level.
	RestrictionMedium Restriction = 1
	// RestrictionHigh is the most severe restriction level.
	RestrictionHigh Restriction = 2
)

// ClampRestriction converts a raw restriction value from the remote document into a Restriction,
// clamping out-of-range values to the nearest valid level.
func ClampRestriction(raw int) Restriction {
	if raw < int(RestrictionLow) {
		return RestrictionLow
	}
	if raw > int(RestrictionHigh) {
		return RestrictionHigh
	}
	return Restriction(raw)
}

func (r Restriction) String() string {
	switch r {
	case RestrictionLow:
		return "low"
	case RestrictionMedium:
		return "medium"
	case RestrictionHigh:
		return "high"
	default:
		return "unknown"
	}
}

// UpdateType identifies which version check an update rule failed.
type UpdateType string

const (
	// UpdateTypeApp means the installed application version is below the required minimum.
	UpdateTypeApp UpdateType = "app"
	// UpdateTypeOS means the operating system version is below the required minimum.
	UpdateTypeOS UpdateType = "os"
)

// UpdateRule describes an active requirement for the user to update the application or the
// operating system.
type UpdateRule struct {
	// Type is the dimension whose version check failed.
	Type UpdateType `json:"type"`
	// Version is the minimum version required for that dimension.
	Version string `json:"version"`
	// Restriction is the severity of the rule.
	Restriction Restriction `json:"restriction"`
	// Message is the localized message attached to the rule, if one was provided for the user's
	// preferred locale.
	Message string `json:"message,omitempty"`
	// HasMessage is true if Message was provided.
	HasMessage bool `json:"-"`
}
