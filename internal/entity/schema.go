package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildEnvelopeSchema returns a JSON-Schema (draft 2020-12 subset) for the
// response envelope as a generic map. Used locally to validate assembled
// envelopes in strict deployments and in tests.
func BuildEnvelopeSchema() map[string]any {
	optString := map[string]any{"type": "string"}
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	patientProps := map[string]any{
		"name":       optString,
		"dob":        optString,
		"gender":     map[string]any{"type": "string", "enum": []any{"male", "female", "m", "f"}},
		"patient_id": optString,
		"address":    optString,
		"phone":      map[string]any{"type": "string", "pattern": `^\d{3}[-.]\d{3}[-.]\d{4}$`},
	}
	recordProps := map[string]any{
		"diagnosis":   optString,
		"medications": stringList,
		"procedures":  stringList,
		"allergies":   stringList,
		"lab_results": stringList,
		"notes":       optString,
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"patient_info": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           patientProps,
			},
			"medical_record": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           recordProps,
				"required":             []any{"medications", "procedures", "allergies", "lab_results"},
			},
			"raw_text": optString,
			"success":  map[string]any{"type": "boolean"},
			"message":  optString,
		},
		"required": []any{"patient_info", "medical_record", "success"},
	}
}

// ValidateEnvelope validates serialized envelope JSON against the schema.
func ValidateEnvelope(data []byte) error {
	b, err := json.Marshal(BuildEnvelopeSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("envelope.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("envelope does not match schema: %w", err)
	}
	return nil
}
