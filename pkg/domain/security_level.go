package domain

// SecurityLevel grades both audit event severity and the risk level attached
// to an admission decision.
type SecurityLevel string

const (
	LevelLow      SecurityLevel = "low"
	LevelMedium   SecurityLevel = "medium"
	LevelHigh     SecurityLevel = "high"
	LevelCritical SecurityLevel = "critical"
)

// IsValid checks if the level is one of the supported enum values.
func (l SecurityLevel) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// String returns the string representation.
func (l SecurityLevel) String() string {
	return string(l)
}

// LevelForScore derives the security level from a 0-100 score.
// The mapping is a pure function: >=80 low, >=60 medium, >=40 high,
// anything below critical.
func LevelForScore(score int) SecurityLevel {
	switch {
	case score >= 80:
		return LevelLow
	case score >= 60:
		return LevelMedium
	case score >= 40:
		return LevelHigh
	default:
		return LevelCritical
	}
}
