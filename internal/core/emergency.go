// ABOUTME: EmergencyGate flags life-threatening presentations from symptom text
// ABOUTME: Deterministic phrase matching; runs before any network call
package core

import (
	"strings"
	"unicode"

	"github.com/openclinic/triage/internal/models"
)

// criticalPhrases map to the critical tier: call emergency services now.
// Order is the recording order for matched keywords.
var criticalPhrases = []string{
	"chest pain",
	"heart attack",
	"cant breathe",
	"difficulty breathing",
	"severe bleeding",
	"unconscious",
	"seizure",
	"stroke",
	"suicide",
	"severe burns",
	"poisoning",
	"choking",
}

// urgentPhrases map to the urgent tier: seek care within 24 hours
var urgentPhrases = []string{
	"high fever",
	"severe pain",
	"blood in",
	"confusion",
	"severe headache",
	"stiff neck",
	"sudden weakness",
	"persistent vomiting",
}

// Fixed recommendation texts, one per outcome
const (
	recommendationEmergency = "EMERGENCY: based on your symptoms, this may require immediate medical attention. " +
		"Call your local emergency number or go to the nearest emergency room now. " +
		"Do not wait or rely on this analysis alone."
	recommendationUrgent = "URGENT: your symptoms suggest you should seek medical attention soon. " +
		"Contact your healthcare provider or visit an urgent care facility within 24 hours. " +
		"This is educational information; professional medical evaluation is essential."
	recommendationRoutine = "This analysis is for educational purposes. Monitor your symptoms and consult " +
		"a healthcare provider if they persist, worsen, or if you have concerns. " +
		"Professional medical advice is always recommended for accurate diagnosis."
)

// EmergencyGate is a deterministic keyword classifier over symptom text.
// It never touches the vector index or the language model, so it completes
// in bounded time regardless of corpus size.
type EmergencyGate struct{}

// NewEmergencyGate creates an EmergencyGate
func NewEmergencyGate() *EmergencyGate {
	return &EmergencyGate{}
}

// Evaluate classifies symptom text into a safety verdict. The severity is
// the maximum tier across all matched phrases, and every matched phrase is
// recorded, not just the first.
func (g *EmergencyGate) Evaluate(symptoms string) models.SafetyVerdict {
	normalized := normalizeSymptoms(symptoms)

	severity := models.SeverityModerate
	matched := []string{}

	for _, phrase := range criticalPhrases {
		if strings.Contains(normalized, phrase) {
			severity = models.SeverityCritical
			matched = append(matched, displayPhrase(phrase))
		}
	}
	for _, phrase := range urgentPhrases {
		if strings.Contains(normalized, phrase) {
			if severity < models.SeverityUrgent {
				severity = models.SeverityUrgent
			}
			matched = append(matched, phrase)
		}
	}

	verdict := models.SafetyVerdict{
		Severity:        severity,
		MatchedKeywords: matched,
	}
	verdict.IsEmergency = severity >= models.SeverityUrgent
	verdict.ShouldCallEmergency = severity == models.SeverityCritical
	verdict.ShouldSeekImmediateCare = severity == models.SeverityUrgent

	switch {
	case severity == models.SeverityCritical:
		verdict.Recommendation = recommendationEmergency
	case severity == models.SeverityUrgent:
		verdict.Recommendation = recommendationUrgent
	default:
		verdict.Recommendation = recommendationRoutine
	}

	return verdict
}

// normalizeSymptoms lowercases, strips punctuation, and collapses
// whitespace so phrase matching is insensitive to formatting.
func normalizeSymptoms(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '\'' || r == '’':
			// Apostrophes vanish so "can't" matches "cant"
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// displayPhrase restores the apostrophe form for phrases that lose
// punctuation during normalization.
func displayPhrase(phrase string) string {
	if phrase == "cant breathe" {
		return "can't breathe"
	}
	return phrase
}
