// Package textnorm canonicalizes free text for the classification pipeline.
// Training and serving both import this package, so a message and the pattern
// it should match always collapse to the same token string.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Normalize maps raw text to its canonical form: lowercase, tokenized into
// letter/digit runs (word-internal apostrophes kept), each token stemmed to
// its root, tokens rejoined with single spaces in order.
//
// Empty or punctuation-only input yields "". Normalize is idempotent: the
// output is already lowercase, stemmed, and single-spaced.
func Normalize(text string) string {
	tokens := Tokenize(strings.ToLower(text))
	for i, tok := range tokens {
		tokens[i] = english.Stem(tok, false)
	}
	return strings.Join(tokens, " ")
}

// Tokenize splits text into word tokens. A token is a maximal run of Unicode
// letters and digits; an apostrophe is part of a token only when flanked by
// letters or digits on both sides ("don't" stays one token, "'hello'" loses
// its quotes).
func Tokenize(text string) []string {
	runes := []rune(text)
	var tokens []string
	var cur []rune

	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case isWord(r):
			cur = append(cur, r)
		case r == '\'' && len(cur) > 0 && i+1 < len(runes) && isWord(runes[i+1]):
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}
