// ABOUTME: SafetyVerdict is the output of the deterministic emergency gate
// ABOUTME: Derived purely from symptom text, immutable once computed
package models

// SeverityTier orders emergency severity from routine to critical
type SeverityTier int

const (
	SeverityRoutine SeverityTier = iota
	SeverityModerate
	SeverityUrgent
	SeverityCritical
)

// String returns the wire name of the tier
func (s SeverityTier) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityUrgent:
		return "urgent"
	case SeverityModerate:
		return "moderate"
	default:
		return "routine"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as names
func (s SeverityTier) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SafetyVerdict is the emergency gate's assessment of a symptom report
type SafetyVerdict struct {
	IsEmergency             bool         `json:"is_emergency"`
	Severity                SeverityTier `json:"severity"`
	MatchedKeywords         []string     `json:"matched_keywords"`
	Recommendation          string       `json:"recommendation"`
	ShouldCallEmergency     bool         `json:"should_call_emergency"`
	ShouldSeekImmediateCare bool         `json:"should_seek_immediate_care"`
}
