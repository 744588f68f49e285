// Package entity defines the records assembled per request. Each value is
// built once from the extraction pipeline and returned immutable; nothing
// here persists beyond the response.
package entity

// PatientInfo is the identity record. Every field is optional; absence is
// a valid, common state, not an error.
type PatientInfo struct {
	Name      string `json:"name,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Gender    string `json:"gender,omitempty"`
	PatientID string `json:"patient_id,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// MedicalRecord is the clinical record. List fields are always present,
// possibly empty, and preserve extraction order.
type MedicalRecord struct {
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Medications []string `json:"medications"`
	Procedures  []string `json:"procedures"`
	Allergies   []string `json:"allergies"`
	LabResults  []string `json:"lab_results"`
	Notes       string   `json:"notes,omitempty"`
}

// NewMedicalRecord returns a record with empty (non-nil) list fields so
// they serialize as [] rather than null.
func NewMedicalRecord() MedicalRecord {
	return MedicalRecord{
		Medications: []string{},
		Procedures:  []string{},
		Allergies:   []string{},
		LabResults:  []string{},
	}
}

// ExtractionResult is the response envelope. On failure it carries
// success=false, a categorized message, and default records; partial
// extraction state is never returned.
type ExtractionResult struct {
	PatientInfo   PatientInfo   `json:"patient_info"`
	MedicalRecord MedicalRecord `json:"medical_record"`
	RawText       string        `json:"raw_text,omitempty"`
	Success       bool          `json:"success"`
	Message       string        `json:"message,omitempty"`
}

// FailedResult builds the all-or-nothing failure envelope.
func FailedResult(message string) ExtractionResult {
	return ExtractionResult{
		MedicalRecord: NewMedicalRecord(),
		Success:       false,
		Message:       message,
	}
}
