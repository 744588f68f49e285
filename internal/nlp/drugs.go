package nlp

import (
	"regexp"
	"strings"
)

// drugLexicon lists common medication names, lowercased. The scan is a
// best-effort fallback for documents with no labeled medication line, so
// coverage is intentionally modest.
var drugLexicon = map[string]struct{}{
	"aspirin": {}, "lisinopril": {}, "metformin": {}, "atorvastatin": {},
	"amoxicillin": {}, "ibuprofen": {}, "acetaminophen": {}, "paracetamol": {},
	"omeprazole": {}, "simvastatin": {}, "levothyroxine": {}, "amlodipine": {},
	"metoprolol": {}, "losartan": {}, "albuterol": {}, "gabapentin": {},
	"hydrochlorothiazide": {}, "sertraline": {}, "fluoxetine": {},
	"prednisone": {}, "warfarin": {}, "insulin": {}, "clopidogrel": {},
	"montelukast": {}, "pantoprazole": {}, "furosemide": {}, "tramadol": {},
	"azithromycin": {}, "ciprofloxacin": {}, "doxycycline": {},
	"penicillin": {}, "naproxen": {}, "cetirizine": {}, "loratadine": {},
}

// morphology cues common to drug generic names
var drugSuffixes = []string{
	"cillin", "pril", "statin", "olol", "azole", "mycin",
	"formin", "sartan", "dipine", "oxetine", "azepam",
	"cycline", "floxacin",
}

var (
	reWord   = regexp.MustCompile(`[A-Za-z][A-Za-z-]+`)
	reDosage = regexp.MustCompile(`^\s*\d+(?:\.\d+)?\s?(?:mg|mcg|g|ml|units?)\b`)
)

// ScanMedications scans free text for drug-like tokens: lexicon hits,
// generic-name suffixes, and capitalized tokens followed by a dosage.
// Always returns a list, possibly empty; never fails.
func ScanMedications(text string) []string {
	meds := make([]string, 0, 4)
	seen := make(map[string]struct{})

	add := func(tok string) {
		key := strings.ToLower(tok)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		meds = append(meds, tok)
	}

	for _, loc := range reWord.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		lower := strings.ToLower(tok)

		if _, ok := drugLexicon[lower]; ok {
			add(tok)
			continue
		}
		if len(lower) >= 6 && hasDrugSuffix(lower) {
			add(tok)
			continue
		}
		// "Xanaxin 20 mg" style: capitalized token with a trailing dosage
		if tok[0] >= 'A' && tok[0] <= 'Z' && reDosage.MatchString(text[loc[1]:]) {
			add(tok)
		}
	}
	return meds
}

func hasDrugSuffix(lower string) bool {
	for _, s := range drugSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
