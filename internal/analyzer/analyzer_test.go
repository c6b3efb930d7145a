package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New()
	require.NoError(t, err)
	return a
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := newTestAnalyzer(t)

	tokens := a.Analyze("日本語を勉強する")

	require.NotEmpty(t, tokens)
	assert.Equal(t, "日本語", tokens[0].Surface)
	assert.Equal(t, "ニホンゴ", tokens[0].Reading)
	assert.Equal(t, "名詞", tokens[0].POS)

	last := tokens[len(tokens)-1]
	assert.Equal(t, "する", last.BaseForm)
}

func TestAnalyzer_AnalyzeConjugated(t *testing.T) {
	a := newTestAnalyzer(t)

	tokens := a.Analyze("食べた")

	require.NotEmpty(t, tokens)
	assert.Equal(t, "食べ", tokens[0].Surface)
	assert.Equal(t, "食べる", tokens[0].BaseForm)
}

func TestAnalyzer_AnalyzeBlank(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.Empty(t, a.Analyze("   "))
}

func TestAnalyzer_Parts(t *testing.T) {
	a := newTestAnalyzer(t)

	raw, err := a.Parts("日本語")
	require.NoError(t, err)

	var parts []Part
	require.NoError(t, json.Unmarshal(raw, &parts))
	require.Len(t, parts, 1)
	assert.Equal(t, "日本語", parts[0].Kanji)
	assert.Equal(t, []string{"ニホンゴ"}, parts[0].Reading)
}
