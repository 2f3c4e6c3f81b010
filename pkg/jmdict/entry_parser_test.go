package jmdict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<table>
  <tr class="resrow">
    <td><input type="checkbox" name="e" value="1387990"></td>
    <td>先生</td>
  </tr>
  <tr class="resrow">
    <td><input type="checkbox" name="e" value="2423950"></td>
    <td>先生</td>
  </tr>
  <tr class="resrow">
    <td><input type="checkbox" name="e" value="broken"></td>
  </tr>
</table>
</body></html>`

func TestParseSearchHTML(t *testing.T) {
	ids, err := ParseSearchHTML(strings.NewReader(searchPage))
	require.NoError(t, err)
	assert.Equal(t, []int64{1387990, 2423950}, ids)
}

func TestParseSearchHTMLEmpty(t *testing.T) {
	ids, err := ParseSearchHTML(strings.NewReader(`<html><body>No entries found.</body></html>`))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

const entryPage = `<html><body>
<div class="item">
  <span class="kanj">先生</span>
  <span class="rdng">せんせい</span>
</div>
<table>
  <tr class="sense">
    <td>
      <span class="pos"><span class="abbr">n</span></span>
      <span class="glossx">▶ teacher</span>
      <span class="glossx">▶ instructor</span>
    </td>
  </tr>
  <tr class="sense">
    <td>
      <span class="pos"><span class="abbr">n</span>, <span class="abbr">hon</span></span>
      <span class="glossx">▶ master</span>
    </td>
  </tr>
</table>
<p>Entry <a href="srchres.py?svc=jmdict&amp;s1=1">1387990</a></p>
</body></html>`

func TestParseEntryHTML(t *testing.T) {
	entry, err := ParseEntryHTML(strings.NewReader(entryPage))
	require.NoError(t, err)
	assert.Equal(t, []string{"先生"}, entry.Kanji)
	assert.Equal(t, []string{"せんせい"}, entry.Furigana)
	assert.Equal(t, []Definition{
		{Pos: []string{"n"}, Meanings: []string{"teacher", "instructor"}},
		{Pos: []string{"n", "hon"}, Meanings: []string{"master"}},
	}, entry.Definitions)
	assert.Equal(t, int64(1387990), entry.ID)
}

func TestParseEntryHTMLNoID(t *testing.T) {
	entry, err := ParseEntryHTML(strings.NewReader(`<html><body><span class="rdng">はい</span></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"はい"}, entry.Furigana)
	assert.Zero(t, entry.ID)
}
