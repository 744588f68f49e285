package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reLabelish = regexp.MustCompile(`\b(patient|dob|mrn|diagnosis|medications?|allergies|rx)\b\s*:`)
	rePhoneish = regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`)
)

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// boost if we see common medical-record artifacts
	// (labeled lines, date-ish, phone-ish). Each adds a fixed amount.
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reLabelish.MatchString(txtL) {
		score += 0.3
	}
	if reDateish.MatchString(txtL) {
		score += 0.2
	}
	if rePhoneish.MatchString(txtL) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
