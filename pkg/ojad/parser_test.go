package ojad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phrasingPage = `<html><body>
<div id="phrasing_result">
  <div class="phrasing_phrase_wrapper">
    <div class="phrasing_text">
      <span class="accent_plain">お</span><span class="accent_top">か</span><span class="">ね</span><span class="">を</span>
    </div>
    <div class="phrasing_subscript">
      <span>お金を</span><span class="halt">、</span>
    </div>
  </div>
  <div class="phrasing_phrase_wrapper">
    <div class="phrasing_text">
      <span class="accent_plain">か</span><span class="accent_plain">せ</span><span class="accent_plain">ぐ</span>
    </div>
    <div class="phrasing_subscript">
      <span>稼ぐ</span>
    </div>
  </div>
</div>
</body></html>`

func TestParsePhrasingHTML(t *testing.T) {
	morae, err := ParsePhrasingHTML(strings.NewReader(phrasingPage))
	require.NoError(t, err)
	expected := []Mora{
		{Text: "お", Accent: AccentPlain},
		{Text: "か", Accent: AccentTop},
		{Text: "ね", Accent: AccentNone},
		{Text: "を", Accent: AccentNone},
		{Text: "か", Accent: AccentPlain},
		{Text: "せ", Accent: AccentPlain},
		{Text: "ぐ", Accent: AccentPlain},
	}
	assert.Equal(t, expected, morae)
}

func TestParsePhrasingHTMLEmpty(t *testing.T) {
	morae, err := ParsePhrasingHTML(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, morae)
}
