package xmltree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="utf-8"?>
<document>
  <interlinear-text guid="t1">
    <item type="title" lang="en">A story</item>
    <paragraphs>
      <paragraph><phrases><phrase guid="p1"><item type="gls" lang="en">first</item></phrase></phrases></paragraph>
      <paragraph><phrases>
        <phrase guid="p2"/>
        <phrase guid="p3"><item type="gls" lang="en"/></phrase>
      </phrases></paragraph>
    </paragraphs>
  </interlinear-text>
</document>`

func TestParseSingleAndMultipleChildrenAreLists(t *testing.T) {
	root, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "document", root.Name)

	texts := root.All("interlinear-text")
	require.Len(t, texts, 1)

	paragraphs := texts[0].Path("paragraphs", "paragraph")
	require.Len(t, paragraphs, 2)

	phrases := texts[0].Path("paragraphs", "paragraph", "phrases", "phrase")
	require.Len(t, phrases, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{
		phrases[0].Attr("guid"), phrases[1].Attr("guid"), phrases[2].Attr("guid"),
	})
}

func TestItems(t *testing.T) {
	root, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	phrases := root.Path("interlinear-text", "paragraphs", "paragraph", "phrases", "phrase")

	v, ok := phrases[0].Item("gls", "en")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = phrases[2].Item("gls", "en")
	assert.False(t, ok, "empty item must not count as present")

	items := phrases[2].Items()
	require.Len(t, items, 1)
	assert.Equal(t, "gls_en", items[0].Key())
	assert.False(t, items[0].Present)
}

func TestItemAnyPrefersLanguageOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(`<word>
		<item type="txt" lang="xyz">apa</item>
		<item type="gls" lang="de">gehen</item>
		<item type="gls" lang="en">go</item>
	</word>`))
	require.NoError(t, err)

	it, ok := root.ItemAny("gls", "en")
	require.True(t, ok)
	assert.Equal(t, "go", it.Value)

	it, ok = root.ItemAny("gls", "fr")
	require.True(t, ok)
	assert.Equal(t, "de", it.Lang)

	_, ok = root.ItemAny("pos")
	assert.False(t, ok)
}

func TestTextIsNFCNormalized(t *testing.T) {
	// "e" followed by a combining acute accent.
	root, err := Parse(strings.NewReader("<item>cafe\u0301</item>"))
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", root.Text())
}

func TestInnerTextIncludesDescendants(t *testing.T) {
	root, err := Parse(strings.NewReader(`<text>big <span lang="en">red</span> dog</text>`))
	require.NoError(t, err)
	assert.Equal(t, "big red dog", root.InnerText())
	assert.Equal(t, "big  dog", root.Text())
}

func TestParseRejectsBrokenXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<document><item>"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWalkSkipsChildren(t *testing.T) {
	root, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "paragraphs"
	})
	assert.NotContains(t, names, "paragraph")
	assert.Contains(t, names, "paragraphs")
}
