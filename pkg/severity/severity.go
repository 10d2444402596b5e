package severity

import "strings"

// Level is the canonical severity of an error report.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// Classify maps a free-text severity label from a reporting client to a
// canonical level. Matching is case-insensitive. Anything unrecognized
// (including empty input) classifies as Medium: an unknown severity is worth
// attention, not dismissal.
func Classify(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return LevelLow
	case "medium":
		return LevelMedium
	case "high":
		return LevelHigh
	case "critical":
		return LevelCritical
	default:
		return LevelMedium
	}
}

// AlertLevel returns the uppercased form used on alert records (e.g. "CRITICAL").
func (l Level) AlertLevel() string {
	return strings.ToUpper(string(l))
}

// Valid reports whether l is one of the four canonical levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}
