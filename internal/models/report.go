// ABOUTME: SymptomReport is the structured input to the analysis pipeline
// ABOUTME: Only the symptoms text is required; all other fields are optional
package models

import (
	"errors"
	"strings"
)

// ErrEmptySymptoms is returned when a report has no symptom text after trimming
var ErrEmptySymptoms = errors.New("symptom report requires non-empty symptoms text")

// Gender values accepted on a symptom report
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// ReportedSeverity is the patient's own severity estimate
type ReportedSeverity string

const (
	ReportedMild     ReportedSeverity = "mild"
	ReportedModerate ReportedSeverity = "moderate"
	ReportedSevere   ReportedSeverity = "severe"
)

// SymptomReport is a free-text symptom description plus optional context
type SymptomReport struct {
	Symptoms       string           `json:"symptoms"`
	Age            int              `json:"age,omitempty"`
	Gender         Gender           `json:"gender,omitempty"`
	MedicalHistory []string         `json:"medical_history,omitempty"`
	Duration       string           `json:"duration,omitempty"`
	Severity       ReportedSeverity `json:"severity,omitempty"`
}

// Validate checks that the report carries non-empty symptom text
func (r *SymptomReport) Validate() error {
	if strings.TrimSpace(r.Symptoms) == "" {
		return ErrEmptySymptoms
	}
	return nil
}
