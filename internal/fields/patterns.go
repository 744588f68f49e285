package fields

import (
	"fmt"
	"regexp"

	"github.com/Maariakh-cs/medex/internal/common"
)

// Labeled-line patterns: `<label synonyms> [:]? <value>`, case-insensitive.
// Free-text values capture to the end of the line; shaped values (dates,
// phone numbers, identifiers) constrain the capture instead.
const (
	patName       = `(?i)(?:patient|name|pt)[ \t]*:?[ \t]*([A-Za-z]+ [A-Za-z-]+)`
	patDOB        = `(?i)(?:dob|date of birth|birth date)[ \t]*:?[ \t]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`
	patPatientID  = `(?i)(?:patient id|medical record number|mrn)[ \t]*:?[ \t]*([A-Za-z0-9-]+)`
	patDiagnosis  = `(?i)(?:diagnosis|dx)[ \t]*:?[ \t]*([^\n]+)`
	patMedication = `(?i)(?:medications|prescriptions|rx)[ \t]*:?[ \t]*([^\n]+)`
	patAllergy    = `(?i)(?:allergies|allergy)[ \t]*:?[ \t]*([^\n]+)`
	patGender     = `(?i)(?:sex|gender)[ \t]*:?[ \t]*(male|female|m|f)\b`
	patAddress    = `(?i)(?:address|residence)[ \t]*:?[ \t]*([^\n]+)`
	patPhone      = `(?i)(?:phone|telephone)[ \t]*:?[ \t]*(\d{3}[-.]\d{3}[-.]\d{4})`
	patProcedure  = `(?i)(?:procedure|surgery)[ \t]*:?[ \t]*([^\n]+)`
	patLab        = `(?i)(?:lab|test)[ \t]*:?[ \t]*([^\n]+)`
	patNotes      = `(?i)(?:notes|comments)[ \t]*:?[ \t]*([^\n]+)`
)

// list separators for captured medication values
const patMedSplit = `[,;\n]`

type patternTable struct {
	name       *regexp.Regexp
	dob        *regexp.Regexp
	patientID  *regexp.Regexp
	diagnosis  *regexp.Regexp
	medication *regexp.Regexp
	allergy    *regexp.Regexp
	gender     *regexp.Regexp
	address    *regexp.Regexp
	phone      *regexp.Regexp
	procedure  *regexp.Regexp
	lab        *regexp.Regexp
	notes      *regexp.Regexp
	medSplit   *regexp.Regexp
}

// compilePatterns builds the immutable pattern table. A failure here is
// fatal at startup; requests must not be accepted without it.
func compilePatterns() (*patternTable, error) {
	t := &patternTable{}
	for _, p := range []struct {
		dst **regexp.Regexp
		src string
	}{
		{&t.name, patName},
		{&t.dob, patDOB},
		{&t.patientID, patPatientID},
		{&t.diagnosis, patDiagnosis},
		{&t.medication, patMedication},
		{&t.allergy, patAllergy},
		{&t.gender, patGender},
		{&t.address, patAddress},
		{&t.phone, patPhone},
		{&t.procedure, patProcedure},
		{&t.lab, patLab},
		{&t.notes, patNotes},
		{&t.medSplit, patMedSplit},
	} {
		re, err := regexp.Compile(p.src)
		if err != nil {
			return nil, common.NewAppError("ENGINE_INIT", "compile field patterns",
				fmt.Errorf("%w: %q: %w", common.ErrEngineUnavailable, p.src, err))
		}
		*p.dst = re
	}
	return t, nil
}
