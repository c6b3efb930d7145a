// Package analyzer breaks Japanese vocabulary into morphological tokens
// using kagome with the IPA dictionary.
package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one morpheme of an analyzed word.
type Token struct {
	Surface  string `json:"surface"`
	BaseForm string `json:"base_form"`
	Reading  string `json:"reading,omitempty"`
	POS      string `json:"pos,omitempty"`
}

// Part is one entry of a word's parts breakdown.
type Part struct {
	Kanji   string   `json:"kanji"`
	Reading []string `json:"reading"`
}

// Analyzer wraps a kagome tokenizer. It is safe for concurrent use.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// New loads the IPA dictionary. Loading takes noticeable time and memory,
// so callers should share one Analyzer.
func New() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	return &Analyzer{t: t}, nil
}

// Analyze tokenizes text. Unknown words keep their surface as base form.
func (a *Analyzer) Analyze(text string) []Token {
	var result []Token
	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0 POS, 6 base form, 7 reading.
		features := token.Features()

		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		result = append(result, Token{
			Surface:  token.Surface,
			BaseForm: base,
			Reading:  reading,
			POS:      pos,
		})
	}
	return result
}

// Parts builds the JSON parts document for a word from its tokens.
func (a *Analyzer) Parts(text string) (json.RawMessage, error) {
	tokens := a.Analyze(text)
	parts := make([]Part, 0, len(tokens))
	for _, tok := range tokens {
		p := Part{Kanji: tok.Surface, Reading: []string{}}
		if tok.Reading != "" {
			p.Reading = append(p.Reading, tok.Reading)
		}
		parts = append(parts, p)
	}
	data, err := json.Marshal(parts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parts: %w", err)
	}
	return data, nil
}
