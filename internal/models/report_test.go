// ABOUTME: Tests for symptom report validation and severity serialization
package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSymptomReport_Validate(t *testing.T) {
	tests := []struct {
		name     string
		symptoms string
		wantErr  bool
	}{
		{"valid", "persistent cough", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &SymptomReport{Symptoms: tt.symptoms}
			err := report.Validate()
			if tt.wantErr && err != ErrEmptySymptoms {
				t.Errorf("error = %v, want ErrEmptySymptoms", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSeverityTier_Ordering(t *testing.T) {
	if !(SeverityRoutine < SeverityModerate && SeverityModerate < SeverityUrgent && SeverityUrgent < SeverityCritical) {
		t.Error("severity tiers must order routine < moderate < urgent < critical")
	}
}

func TestSafetyVerdict_SerializesSeverityName(t *testing.T) {
	verdict := SafetyVerdict{Severity: SeverityCritical, MatchedKeywords: []string{"chest pain"}}

	data, err := json.Marshal(verdict)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"severity":"critical"`) {
		t.Errorf("serialized verdict = %s, want severity by name", data)
	}
}
