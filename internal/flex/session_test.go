package flex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

const apaneDoc = `<?xml version="1.0" encoding="utf-8"?>
<document version="2">
  <interlinear-text guid="t-1">
    <item type="title" lang="en">A short story</item>
    <item type="title-abbreviation" lang="en">SS</item>
    <item type="comment" lang="en">first</item>
    <item type="comment" lang="en">second</item>
    <paragraphs>
      <paragraph guid="p-1">
        <phrases>
          <phrase guid="ph-1" begin-time-offset="100" end-time-offset="900" speaker="AB">
            <item type="segnum" lang="en">1.1</item>
            <words>
              <word guid="w-apane">
                <item type="txt" lang="xyz">apane</item>
                <morphemes>
                  <morph type="root" guid="m-apa">
                    <item type="txt" lang="xyz">apa</item>
                    <item type="cf" lang="xyz">apa</item>
                    <item type="gls" lang="en">go</item>
                    <item type="msa" lang="en">v</item>
                  </morph>
                  <morph type="suffix" guid="m-ne">
                    <item type="txt" lang="xyz">-ne</item>
                    <item type="gls" lang="en">PST</item>
                  </morph>
                </morphemes>
                <item type="gls" lang="en">went</item>
                <item type="pos" lang="en">v</item>
              </word>
              <word>
                <item type="punct" lang="xyz">.</item>
              </word>
            </words>
            <item type="gls" lang="en">‘She went.’</item>
          </phrase>
        </phrases>
      </paragraph>
    </paragraphs>
  </interlinear-text>
</document>`

func newTestSession(t *testing.T, lex *lexicon.Lexicon) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := types.DefaultConfig()
	return NewSession(cfg, Options{Lexicon: lex, Logger: zerolog.New(&buf)}), &buf
}

func convert(t *testing.T, s *Session, doc string) *table.Set {
	t.Helper()
	require.NoError(t, s.Convert(parseDoc(t, doc)))
	return s.Tables()
}

func TestConvertSingleWord(t *testing.T) {
	s, _ := newTestSession(t, nil)
	set := convert(t, s, apaneDoc)

	examples := set.Get(types.ExamplesTable)
	require.NotNil(t, examples)
	require.Equal(t, 1, examples.Len())
	ex := examples.Rows[0]
	assert.Equal(t, "ss-1-1", ex["ID"])
	assert.Equal(t, "xyz", ex["Language_ID"])
	assert.Equal(t, "apane.", ex["Primary_Text"])
	assert.Equal(t, "apa-ne", ex["Analyzed_Word"])
	assert.Equal(t, "go-PST", ex["Gloss"])
	assert.Equal(t, "She went.", ex["Translated_Text"])
	assert.Equal(t, "ss", ex["Text_ID"])
	assert.Equal(t, "1", ex["Record_Number"])
	assert.Equal(t, "1", ex["Phrase_Number"])
	assert.Equal(t, "v", ex["Part_Of_Speech"])
	assert.Equal(t, "100", ex["Start"])
	assert.Equal(t, "900", ex["End"])
	assert.Equal(t, "AB", ex["Speaker"])
	assert.Equal(t, "ph-1", ex["guid"])
	assert.Equal(t, []string{"ID", "Language_ID", "Primary_Text", "Analyzed_Word", "Gloss"}, examples.Columns[:5])

	wordforms := set.Get(types.WordformsTable)
	require.Equal(t, 1, wordforms.Len())
	wf := wordforms.Rows[0]
	assert.Equal(t, "w-apane", wf["ID"])
	assert.Equal(t, "apane", wf["Form"])
	assert.Equal(t, "go-PST", wf["Meaning"])
	assert.Equal(t, "go-pst", wf["Parameter_ID"])
	assert.Equal(t, "v", wf["Part_Of_Speech"])
	assert.Equal(t, "went", wf["gls_en"])

	parts := set.Get(types.ExamplePartsTable)
	require.Equal(t, 1, parts.Len())
	assert.Equal(t, table.Row{
		"ID":           "ss-1-1-0",
		"Example_ID":   "ss-1-1",
		"Wordform_ID":  "w-apane",
		"Index":        "0",
		"Form_Meaning": "go-PST",
		"Parameter_ID": "go-pst",
	}, parts.Rows[0])

	assert.Nil(t, set.Get(types.WordformPartsTable), "no lexicon, no wordform parts")

	texts := set.Get(types.TextsTable)
	require.Equal(t, 1, texts.Len())
	assert.Equal(t, "ss", texts.Rows[0]["ID"])
	assert.Equal(t, "A short story", texts.Rows[0]["Title"])
	assert.Equal(t, "first, second", texts.Rows[0]["comment_en"])
	assert.Equal(t, []string{"ID", "Title", "title_en", "title-abbreviation_en", "comment_en"}, texts.Columns)

	senses := set.Get(types.SensesTable)
	require.Equal(t, 1, senses.Len())
	assert.Equal(t, table.Row{"ID": "go-pst", "Name": "go-PST"}, senses.Rows[0])
}

func TestConvertWithLexicon(t *testing.T) {
	lex := lexicon.New([]lexicon.Entry{
		{ID: "m1", BareForms: []string{"apa"}, Glosses: []string{"go"}, ParameterIDs: []string{"s-go"}, Type: "root"},
		{ID: "m2", BareForms: []string{"ne"}, Glosses: []string{"PST"}, Type: "suffix"},
	})
	s, buf := newTestSession(t, lex)
	set := convert(t, s, apaneDoc)

	parts := set.Get(types.WordformPartsTable)
	require.NotNil(t, parts)
	require.Equal(t, 2, parts.Len())
	assert.Equal(t, []string{"0", "1"}, parts.Column("Index"))
	assert.Equal(t, []string{"m1", "m2"}, parts.Column("Morph_ID"))
	assert.Equal(t, []string{"w-apane-0", "w-apane-1"}, parts.Column("ID"))
	assert.Equal(t, []string{"go", "PST"}, parts.Column("Morpheme_Meaning"))
	assert.Equal(t, []string{"go-PST", "go-PST"}, parts.Column("Form_Meaning"))
	assert.Equal(t, []string{"s-go", "pst"}, parts.Column("Parameter_ID"))
	assert.NotContains(t, buf.String(), "no hits")
}

func TestConvertIsIdempotent(t *testing.T) {
	render := func() map[string]string {
		s, _ := newTestSession(t, nil)
		set := convert(t, s, cliticDoc)
		out := map[string]string{}
		for _, tbl := range set.Tables() {
			var b bytes.Buffer
			require.NoError(t, tbl.WriteCSV(&b))
			out[tbl.Name] = b.String()
		}
		return out
	}
	assert.Equal(t, render(), render())
}

const cliticDoc = `<document>
  <interlinear-text>
    <item type="title-abbreviation" lang="en">CL</item>
    <paragraphs><paragraph><phrases>
      <phrase>
        <words>
          <word guid="w-house">
            <item type="txt" lang="xyz">kaapaya</item>
            <morphemes>
              <morph type="proclitic"><item type="txt" lang="xyz">ka=</item><item type="gls" lang="en">DEF</item></morph>
              <morph type="root"><item type="txt" lang="xyz">apa</item><item type="gls" lang="en">house</item></morph>
              <morph type="enclitic"><item type="txt" lang="xyz">=ya</item><item type="gls" lang="en">FOC</item></morph>
            </morphemes>
            <item type="pos" lang="en">n</item>
          </word>
          <word guid="w-big">
            <item type="txt" lang="xyz">lo</item>
            <morphemes>
              <morph type="root"><item type="txt" lang="xyz">lo</item><item type="gls" lang="en">big</item></morph>
              <morph type="enclitic"><item type="txt" lang="xyz">=ya</item><item type="gls" lang="en">FOC</item></morph>
            </morphemes>
          </word>
        </words>
      </phrase>
      <phrase>
        <words>
          <word guid="w-house">
            <item type="txt" lang="xyz">kaapa</item>
            <morphemes>
              <morph type="root"><item type="txt" lang="xyz">apa</item><item type="gls" lang="en">home</item></morph>
            </morphemes>
          </word>
        </words>
      </phrase>
    </phrases></paragraph></paragraphs>
  </interlinear-text>
</document>`

func TestConvertSplitsClitics(t *testing.T) {
	s, _ := newTestSession(t, nil)
	set := convert(t, s, cliticDoc)

	examples := set.Get(types.ExamplesTable)
	require.Equal(t, 2, examples.Len())
	first := examples.Rows[0]
	assert.Equal(t, "ka=\tapa\t=ya\tlo\t=ya", first["Analyzed_Word"])
	assert.Equal(t, "DEF=\thouse\t=FOC\tbig\t=FOC", first["Gloss"])
	assert.Equal(t, "n\tn\tn\t?\t?", first["Part_Of_Speech"], "clitics inherit the host part of speech")
	assert.Equal(t, "kaapaya lo", first["Primary_Text"])
	assert.Equal(t, "cl-0-0", first["ID"])
	assert.Equal(t, "cl-0-1", examples.Rows[1]["ID"])

	wordforms := set.Get(types.WordformsTable)
	ids := wordforms.Column("ID")
	assert.Equal(t, []string{"ka-def", "w-house", "ya-foc", "w-big"}, ids, "identical clitics share one record")

	house := wordforms.Rows[1]
	assert.Equal(t, "apa", house["Form"])
	assert.Equal(t, "house; home", house["Meaning"])
	assert.Equal(t, "house; home", house["Parameter_ID"])

	parts := set.Get(types.ExamplePartsTable)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "0"}, parts.Column("Index"))
	assert.Equal(t, []string{"ka-def", "w-house", "ya-foc", "w-big", "ya-foc", "w-house"}, parts.Column("Wordform_ID"))
}

func TestConvertTierAlignment(t *testing.T) {
	s, _ := newTestSession(t, nil)
	set := convert(t, s, cliticDoc)
	for _, r := range set.Get(types.ExamplesTable).Rows {
		assert.Equal(t,
			len(strings.Split(r["Analyzed_Word"], "\t")),
			len(strings.Split(r["Gloss"], "\t")),
			r["ID"])
	}
}

func TestConvertWarnings(t *testing.T) {
	doc := `<document><interlinear-text>
		<paragraphs><paragraph><phrases>
			<phrase><words/></phrase>
			<phrase><words>
				<word guid="w-1"><item type="txt" lang="xyz">apa</item><morphemes>
					<morph type="root"><item type="txt" lang="xyz">apa</item></morph>
				</morphemes></word>
			</words></phrase>
			<phrase><words>
				<word><item type="txt" lang="xyz">unanalyzed</item></word>
			</words></phrase>
		</phrases></paragraph></paragraphs>
	</interlinear-text></document>`
	s, buf := newTestSession(t, nil)
	set := convert(t, s, doc)
	log := buf.String()

	assert.Contains(t, log, "text has no title-abbreviation")
	assert.Contains(t, log, "phrase has no words, skipping")
	assert.Contains(t, log, "unglossed morpheme /apa/ in missing-text-id-0-1")
	assert.Contains(t, log, "missing-text-id-0-2 has no glossing")

	examples := set.Get(types.ExamplesTable)
	assert.Equal(t, []string{"missing-text-id-0-1", "missing-text-id-0-2"}, examples.Column("ID"), "skipped phrases leave a gap")
	assert.Equal(t, "***", examples.Rows[0]["Gloss"])
	assert.Equal(t, "", examples.Rows[1]["Analyzed_Word"])
	assert.Equal(t, "unanalyzed", examples.Rows[1]["Primary_Text"])
	assert.Equal(t, []string{"missing-text-id"}, set.Get(types.TextsTable).Column("ID"))
	assert.Equal(t, []string{"_MISSING_"}, set.Get(types.TextsTable).Column("Title"))
}

func TestConvertMappingsAndDrop(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Mappings = map[string]string{"gls_en": "Free_Translation", "speaker": "Consultant"}
	cfg.Drop = []string{"guid", "End"}
	cfg.SentenceSlices = false
	s := NewSession(cfg, Options{})
	set := convert(t, s, apaneDoc)

	ex := set.Get(types.ExamplesTable)
	assert.Equal(t, "‘She went.’", ex.Rows[0]["Free_Translation"])
	assert.Equal(t, "", ex.Rows[0]["Translated_Text"])
	assert.Equal(t, "AB", ex.Rows[0]["Consultant"])
	assert.False(t, ex.HasColumn("guid"))
	assert.False(t, ex.HasColumn("End"))
	assert.True(t, ex.HasColumn("Start"))
	assert.Nil(t, set.Get(types.ExamplePartsTable))
}

func TestConvertMappingOntoCoreColumnIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	cfg := types.DefaultConfig()
	cfg.Mappings = map[string]string{"gls_en": "Gloss", "speaker": "ID"}
	s := NewSession(cfg, Options{Logger: zerolog.New(&buf)})
	set := convert(t, s, apaneDoc)

	ex := set.Get(types.ExamplesTable).Rows[0]
	assert.Equal(t, "ss-1-1", ex["ID"])
	assert.Equal(t, "go-PST", ex["Gloss"])
	assert.Equal(t, "", ex["Translated_Text"])
	assert.Contains(t, buf.String(), "gls_en is mapped onto the core column Gloss")
	assert.Contains(t, buf.String(), "speaker is mapped onto the core column ID")
}

const homographDoc = `<document><interlinear-text>
	<item type="title-abbreviation" lang="en">HN</item>
	<paragraphs><paragraph><phrases>
		<phrase><item type="segnum" lang="en">1</item><words>
			<word guid="w-hn">
				<item type="txt" lang="xyz">apane</item>
				<morphemes>
					<morph type="root">
						<item type="cf" lang="xyz">apa</item>
						<item type="hn" lang="xyz">2</item>
						<item type="gls" lang="en">go</item>
					</morph>
					<morph type="suffix">
						<item type="txt" lang="xyz">-ne</item>
						<item type="gls" lang="en">PST</item>
					</morph>
				</morphemes>
			</word>
		</words></phrase>
	</phrases></paragraph></paragraphs>
</interlinear-text></document>`

func TestConvertAppendsHomographNumberToCitation(t *testing.T) {
	s, _ := newTestSession(t, nil)
	set := convert(t, s, homographDoc)

	ex := set.Get(types.ExamplesTable).Rows[0]
	assert.Equal(t, "apa2-ne", ex["Analyzed_Word"])
	assert.Equal(t, "go-PST", ex["Gloss"])
	assert.Equal(t, "apane", ex["Primary_Text"])

	wf := set.Get(types.WordformsTable).Rows[0]
	assert.Equal(t, "w-hn", wf["ID"])
	assert.Equal(t, "apa2ne", wf["Form"])
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _ := newTestSession(t, nil)
	b, _ := newTestSession(t, nil)
	convert(t, a, apaneDoc)
	setA := a.Tables()
	setB := convert(t, b, apaneDoc)
	assert.Equal(t, setA.Get(types.ExamplesTable).Column("ID"), setB.Get(types.ExamplesTable).Column("ID"))
}

func TestConvertRejectsOtherDocuments(t *testing.T) {
	s, _ := newTestSession(t, nil)
	err := s.Convert(parseDoc(t, `<lift/>`))
	require.ErrorIs(t, err, types.ErrMalformedDocument)
}
