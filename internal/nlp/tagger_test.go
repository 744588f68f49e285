package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maariakh-cs/medex/internal/extract"
)

func newTagger(t *testing.T) *Tagger {
	t.Helper()
	tg, err := NewTagger()
	require.NoError(t, err)
	return tg
}

func firstWithLabel(ents []extract.Entity, label string) string {
	for _, e := range ents {
		if e.Label == label {
			return e.Text
		}
	}
	return ""
}

func TestTagger_Honorific(t *testing.T) {
	tg := newTagger(t)
	ents := tg.NamedEntities("Dr. Smith saw the patient.")
	assert.Equal(t, "Smith", firstWithLabel(ents, extract.LabelPerson))
}

func TestTagger_CapitalizedPair(t *testing.T) {
	tg := newTagger(t)
	ents := tg.NamedEntities("Jane Doe was admitted yesterday.")
	assert.Equal(t, "Jane Doe", firstWithLabel(ents, extract.LabelPerson))
}

func TestTagger_StoplistBlocksClinicalPhrases(t *testing.T) {
	tg := newTagger(t)
	for _, text := range []string{
		"Blood Pressure was elevated.",
		"Medical Record follows.",
		"Discharge Summary attached.",
	} {
		ents := tg.NamedEntities(text)
		assert.Empty(t, firstWithLabel(ents, extract.LabelPerson), "text: %s", text)
	}
}

func TestTagger_Dates(t *testing.T) {
	tg := newTagger(t)
	cases := map[string]string{
		"seen on 01/15/1985 for follow-up":   "01/15/1985",
		"admitted 2023-04-02 overnight":      "2023-04-02",
		"surgery on March 3, 1978 went well": "March 3, 1978",
	}
	for text, want := range cases {
		ents := tg.NamedEntities(text)
		assert.Equal(t, want, firstWithLabel(ents, extract.LabelDate), "text: %s", text)
	}
}

func TestTagger_DocumentOrder(t *testing.T) {
	tg := newTagger(t)
	ents := tg.NamedEntities("On 01/02/2023 Dr. Jones examined the wound.")
	require.NotEmpty(t, ents)
	assert.Equal(t, extract.LabelDate, ents[0].Label, "entities come back in document order")
	assert.Equal(t, "01/02/2023", ents[0].Text)
	assert.Equal(t, "Jones", firstWithLabel(ents, extract.LabelPerson))
}

func TestTagger_Deterministic(t *testing.T) {
	tg := newTagger(t)
	text := "Dr. Adams reviewed labs on 05/06/2021 with Mary Poppins."
	assert.Equal(t, tg.NamedEntities(text), tg.NamedEntities(text))
}

func TestScanMedications_Lexicon(t *testing.T) {
	meds := ScanMedications("Continue Aspirin and Lisinopril as before.")
	assert.Equal(t, []string{"Aspirin", "Lisinopril"}, meds)
}

func TestScanMedications_SuffixCue(t *testing.T) {
	meds := ScanMedications("Started on Rosuvastatin last month.")
	assert.Equal(t, []string{"Rosuvastatin"}, meds)
}

func TestScanMedications_DosageCue(t *testing.T) {
	meds := ScanMedications("Take Zyrtafen 20 mg nightly.")
	assert.Equal(t, []string{"Zyrtafen"}, meds)
}

func TestScanMedications_DeduplicatesAndKeepsOrder(t *testing.T) {
	meds := ScanMedications("Aspirin today. More aspirin tomorrow. Then Metformin.")
	assert.Equal(t, []string{"Aspirin", "Metformin"}, meds)
}

func TestScanMedications_EmptyOnPlainText(t *testing.T) {
	meds := ScanMedications("Patient resting comfortably, no complaints.")
	require.NotNil(t, meds)
	assert.Empty(t, meds)
}
