// Package fields is the field extraction engine: an immutable pattern
// table plus an entity tagger, applied to plain text with fixed precedence.
// Both operations are pure and deterministic for identical text and
// identical tagger state.
package fields

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/Maariakh-cs/medex/internal/entity"
	"github.com/Maariakh-cs/medex/internal/extract"
	"github.com/Maariakh-cs/medex/internal/nlp"
)

// Engine applies the labeled-line patterns and the tagger fallbacks.
// Construct once at startup and share across requests; it is never
// mutated after NewEngine returns.
type Engine struct {
	pats    *patternTable
	tagger  extract.EntityTagger
	medScan func(string) []string
	logger  *slog.Logger
}

func NewEngine(tagger extract.EntityTagger, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pats, err := compilePatterns()
	if err != nil {
		return nil, err
	}
	return &Engine{
		pats:    pats,
		tagger:  tagger,
		medScan: nlp.ScanMedications,
		logger:  logger,
	}, nil
}

// strategy is one extractor in an ordered per-field chain: the first
// non-empty result wins and later strategies are never consulted.
type strategy func(text string) string

func resolve(text string, chain ...strategy) string {
	for _, s := range chain {
		if v := s(text); v != "" {
			return v
		}
	}
	return ""
}

// ExtractPatientInfo extracts the identity record. Labeled-line matches
// always win; the tagger is a fallback for name and date of birth only,
// and only consulted when the pattern found nothing.
func (e *Engine) ExtractPatientInfo(text string) entity.PatientInfo {
	ents := &entityCache{tagger: e.tagger, text: text}

	return entity.PatientInfo{
		Name:      resolve(text, firstMatch(e.pats.name), ents.first(extract.LabelPerson)),
		DOB:       resolve(text, firstMatch(e.pats.dob), ents.first(extract.LabelDate)),
		Gender:    strings.ToLower(resolve(text, firstMatch(e.pats.gender))),
		PatientID: resolve(text, firstMatch(e.pats.patientID)),
		Address:   resolve(text, firstMatch(e.pats.address)),
		Phone:     resolve(text, firstMatch(e.pats.phone)),
	}
}

// ExtractMedicalRecord extracts the clinical record. Procedures and lab
// results collect every match in order; medications fall back to the
// general drug scan when no labeled line matched.
func (e *Engine) ExtractMedicalRecord(text string) entity.MedicalRecord {
	rec := entity.NewMedicalRecord()

	rec.Diagnosis = resolve(text, firstMatch(e.pats.diagnosis))
	rec.Notes = resolve(text, firstMatch(e.pats.notes))

	if raw := firstMatch(e.pats.medication)(text); raw != "" {
		rec.Medications = splitTrimmed(raw, e.pats.medSplit)
	} else {
		rec.Medications = e.medScan(text)
	}

	if raw := firstMatch(e.pats.allergy)(text); raw != "" {
		rec.Allergies = splitTrimmed(raw, nil)
	}

	rec.Procedures = allMatches(e.pats.procedure, text)
	rec.LabResults = allMatches(e.pats.lab, text)
	return rec
}

// firstMatch returns a strategy yielding the first capture, trimmed.
// Captures that are empty after trimming count as absent.
func firstMatch(re *regexp.Regexp) strategy {
	return func(text string) string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(m[1])
	}
}

// allMatches collects every capture across the text, trimmed, in order.
func allMatches(re *regexp.Regexp, text string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// splitTrimmed splits a captured value into a trimmed list, dropping
// empty and whitespace-only segments. A nil splitter splits on commas.
func splitTrimmed(raw string, re *regexp.Regexp) []string {
	var parts []string
	if re != nil {
		parts = re.Split(raw, -1)
	} else {
		parts = strings.Split(raw, ",")
	}
	out := []string{}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// entityCache runs the tagger at most once per extraction call, and only
// when some chain actually falls through to it.
type entityCache struct {
	tagger extract.EntityTagger
	text   string
	ents   []extract.Entity
	loaded bool
}

func (c *entityCache) first(label string) strategy {
	return func(string) string {
		if !c.loaded {
			c.ents = c.tagger.NamedEntities(c.text)
			c.loaded = true
		}
		for _, en := range c.ents {
			if en.Label == label {
				return strings.TrimSpace(en.Text)
			}
		}
		return ""
	}
}
