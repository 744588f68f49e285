// Package nlp provides the in-process entity tagger and drug lexicon the
// field extraction engine falls back on. Everything here is rule-based
// and deterministic: compiled once at startup, immutable afterwards.
package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/extract"
)

const (
	patHonorific = `\b(?:Dr|Mr|Mrs|Ms|Prof)\.?\s+([A-Z][a-zA-Z'-]+(?:\s+[A-Z][a-zA-Z'-]+)?)`
	patCapPair   = `\b([A-Z][a-z]+)\s+([A-Z][a-z]+(?:-[A-Z][a-z]+)?)\b`

	patNumericDate = `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`
	patISODate     = `\b\d{4}-\d{2}-\d{2}\b`
	patMonthDate   = `\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{2,4}\b`
)

// words that look like capitalized name pairs in clinical text but are not people
var nameStoplist = map[string]struct{}{
	"blood": {}, "heart": {}, "chest": {}, "medical": {}, "record": {},
	"general": {}, "hospital": {}, "emergency": {}, "urgent": {}, "care": {},
	"lab": {}, "test": {}, "results": {}, "patient": {}, "history": {},
	"physical": {}, "exam": {}, "discharge": {}, "summary": {}, "family": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {}, "monday": {}, "tuesday": {},
	"wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	"type": {}, "high": {}, "low": {}, "normal": {}, "left": {}, "right": {},
}

// Tagger labels PERSON and DATE spans in plain text.
type Tagger struct {
	honorific *regexp.Regexp
	capPair   *regexp.Regexp
	dates     []*regexp.Regexp
}

// NewTagger compiles the tagging rules. A compile failure here means the
// engine cannot serve requests and must abort startup.
func NewTagger() (*Tagger, error) {
	t := &Tagger{}
	var err error
	if t.honorific, err = regexp.Compile(patHonorific); err != nil {
		return nil, tagCompileError(err)
	}
	if t.capPair, err = regexp.Compile(patCapPair); err != nil {
		return nil, tagCompileError(err)
	}
	for _, p := range []string{patNumericDate, patISODate, patMonthDate} {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, tagCompileError(err)
		}
		t.dates = append(t.dates, re)
	}
	return t, nil
}

func tagCompileError(err error) error {
	return common.NewAppError("ENGINE_INIT", "compile tagger rules",
		fmt.Errorf("%w: %w", common.ErrEngineUnavailable, err))
}

type span struct {
	start, end int
	label      string
	text       string
}

// NamedEntities returns labeled spans in document order. Overlapping
// candidates resolve to the earliest (then longest) span.
func (t *Tagger) NamedEntities(text string) []extract.Entity {
	var spans []span

	for _, m := range t.honorific.FindAllStringSubmatchIndex(text, -1) {
		// group 1 is the name following the honorific
		spans = append(spans, span{start: m[2], end: m[3], label: extract.LabelPerson, text: text[m[2]:m[3]]})
	}
	for _, m := range t.capPair.FindAllStringSubmatchIndex(text, -1) {
		first := text[m[2]:m[3]]
		second := text[m[4]:m[5]]
		if t.stoplisted(first) || t.stoplisted(second) {
			continue
		}
		spans = append(spans, span{start: m[2], end: m[5], label: extract.LabelPerson, text: first + " " + second})
	}
	for _, re := range t.dates {
		for _, m := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: m[0], end: m[1], label: extract.LabelDate, text: text[m[0]:m[1]]})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	ents := make([]extract.Entity, 0, len(spans))
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		ents = append(ents, extract.Entity{Label: s.label, Text: s.text})
		lastEnd = s.end
	}
	return ents
}

func (t *Tagger) stoplisted(word string) bool {
	_, ok := nameStoplist[strings.ToLower(word)]
	return ok
}
