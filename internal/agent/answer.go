package agent

import (
	"encoding/json"
	"strings"
)

// StructuredAnswer is the fixed-key JSON object the model is asked to emit
// for single-student questions.
type StructuredAnswer struct {
	StudentName       string `json:"student_name"`
	Attendance        string `json:"attendance"`
	GPA               string `json:"gpa"`
	ScholarshipStatus string `json:"scholarship_status"`
	InternshipStatus  string `json:"internship_status"`
	Message           string `json:"message"`
}

// ParseStructuredAnswer attempts to read a final answer as the constrained
// JSON object. It reports ok=false for anything that is not a JSON object;
// callers then deliver the answer verbatim rather than failing the turn.
func ParseStructuredAnswer(text string) (*StructuredAnswer, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var ans StructuredAnswer
	dec := json.NewDecoder(strings.NewReader(trimmed))
	if err := dec.Decode(&ans); err != nil {
		return nil, false
	}
	return &ans, true
}
