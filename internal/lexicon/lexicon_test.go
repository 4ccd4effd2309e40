package lexicon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

func TestBare(t *testing.T) {
	assert.Equal(t, "apane", Bare("apa-ne"))
	assert.Equal(t, "ko", Bare("=ko"))
	assert.Equal(t, "kain", Bare("k<in>ain"))
	assert.Equal(t, "re", Bare("re~"))
}

func TestFromTable(t *testing.T) {
	tbl := table.New("morphs", "ID", "Form", "Meaning", "Parameter_ID", "Type")
	tbl.Append(table.Row{"ID": "m1", "Form": "apa; apo", "Meaning": "go; walk", "Parameter_ID": "go; walk", "Type": "root"})
	tbl.Append(table.Row{"ID": "m2", "Form": "-ne", "Meaning": "PST", "Type": "suffix"})

	lex, err := FromTable(tbl, "; ")
	require.NoError(t, err)
	require.Equal(t, 2, lex.Len())
	assert.Equal(t, []string{"apa", "apo"}, lex.Entries[0].BareForms)
	assert.Equal(t, []string{"ne"}, lex.Entries[1].BareForms)
	assert.Equal(t, []string{"go", "walk"}, lex.Entries[0].ParameterIDs)
	assert.Empty(t, lex.Entries[1].ParameterIDs)
}

func TestFromTableAcceptsGlossColumn(t *testing.T) {
	tbl := table.New("morphs", "ID", "Form", "Gloss")
	tbl.Append(table.Row{"ID": "m1", "Form": "apa", "Gloss": "go"})
	lex, err := FromTable(tbl, "; ")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, lex.Entries[0].Glosses)
}

func TestFromTableRejectsMissingColumns(t *testing.T) {
	_, err := FromTable(table.New("morphs", "ID", "Form"), "; ")
	assert.ErrorIs(t, err, types.ErrLexiconFormat)

	_, err = FromTable(table.New("morphs", "Form", "Meaning"), "; ")
	assert.ErrorIs(t, err, types.ErrLexiconFormat)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morphs.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,Form,Meaning,Type\nm1,apa,go,root\nm2,-ne,PST,suffix\n"), 0o644))

	lex, err := LoadCSV(path, "; ")
	require.NoError(t, err)
	assert.Equal(t, 2, lex.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), "; ")
	assert.Error(t, err)
}

func newTestMatcher(entries []Entry) (*Matcher, *bytes.Buffer) {
	for i := range entries {
		for _, f := range entries[i].Forms {
			entries[i].BareForms = append(entries[i].BareForms, Bare(f))
		}
	}
	var buf bytes.Buffer
	return NewMatcher(New(entries), zerolog.New(&buf)), &buf
}

func TestMatchSingleCandidate(t *testing.T) {
	m, _ := newTestMatcher([]Entry{
		{ID: "m1", Forms: []string{"apa"}, Glosses: []string{"go"}, Type: "root"},
		{ID: "m2", Forms: []string{"-ne"}, Glosses: []string{"PST"}, Type: "suffix"},
	})

	got, ok := m.Match("apa", "go", "root", "ex-1")
	require.True(t, ok)
	assert.Equal(t, "m1", got.EntryID)

	got, ok = m.Match("ne", "PST", "suffix", "ex-1")
	require.True(t, ok)
	assert.Equal(t, "m2", got.EntryID)
}

func TestMatchAlignsSenseWithGloss(t *testing.T) {
	m, _ := newTestMatcher([]Entry{
		{ID: "m1", Forms: []string{"apa"}, Glosses: []string{"go", "walk"}, ParameterIDs: []string{"s-go", "s-walk"}},
	})
	got, ok := m.Match("apa", "walk", "root", "ex-1")
	require.True(t, ok)
	assert.Equal(t, Match{EntryID: "m1", SenseID: "s-walk"}, got)
}

func TestMatchIgnoresCliticMarkersOnGloss(t *testing.T) {
	m, _ := newTestMatcher([]Entry{
		{ID: "c1", Forms: []string{"=ko"}, Glosses: []string{"FOC"}, Type: "enclitic"},
	})
	got, ok := m.Match("ko", "=FOC", "enclitic", "ex-1")
	require.True(t, ok)
	assert.Equal(t, "c1", got.EntryID)
}

func TestMatchNarrowsByType(t *testing.T) {
	m, buf := newTestMatcher([]Entry{
		{ID: "root-ne", Forms: []string{"ne"}, Glosses: []string{"PST"}, Type: "root"},
		{ID: "suffix-ne", Forms: []string{"-ne"}, Glosses: []string{"PST"}, Type: "suffix"},
	})
	got, ok := m.Match("ne", "PST", "suffix", "ex-1")
	require.True(t, ok)
	assert.Equal(t, "suffix-ne", got.EntryID)
	assert.Empty(t, buf.String())
}

func TestMatchAmbiguousUsesFirstAndWarns(t *testing.T) {
	m, buf := newTestMatcher([]Entry{
		{ID: "first", Forms: []string{"ne"}, Glosses: []string{"PST"}, Type: "suffix"},
		{ID: "second", Forms: []string{"ne"}, Glosses: []string{"PST"}, Type: "suffix"},
	})
	got, ok := m.Match("ne", "PST", "suffix", "ex-1")
	require.True(t, ok)
	assert.Equal(t, "first", got.EntryID)
	assert.Contains(t, buf.String(), "multiple lexicon entries for ne 'PST'")
}

func TestMatchMissWarnsOnce(t *testing.T) {
	m, buf := newTestMatcher([]Entry{
		{ID: "m1", Forms: []string{"apa"}, Glosses: []string{"go"}},
	})
	for i := 0; i < 3; i++ {
		_, ok := m.Match("apa", "come", "root", "ex-1")
		assert.False(t, ok)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "no hits for /apa/ 'come'"))
}

func TestMatchMissWarnsOnceAcrossMorphTypes(t *testing.T) {
	m, buf := newTestMatcher([]Entry{
		{ID: "m1", Forms: []string{"apa"}, Glosses: []string{"go"}, Type: "root"},
	})
	for _, typ := range []string{"root", "stem", "suffix"} {
		_, ok := m.Match("apa", "come", typ, "ex-1")
		assert.False(t, ok, typ)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "no hits for /apa/ 'come'"))

	got, ok := m.Match("apa", "go", "suffix", "ex-1")
	require.True(t, ok, "a miss for one gloss does not hide other glosses")
	assert.Equal(t, "m1", got.EntryID)
}

func TestMatchRequiresFormAndGloss(t *testing.T) {
	m, _ := newTestMatcher([]Entry{
		{ID: "m1", Forms: []string{"apa"}, Glosses: []string{"go"}},
		{ID: "m2", Forms: []string{"ito"}, Glosses: []string{"come"}},
	})
	_, ok := m.Match("apa", "come", "root", "ex-1")
	assert.False(t, ok)
}
