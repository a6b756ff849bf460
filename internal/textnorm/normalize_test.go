package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize_Lowercases(t *testing.T) {
	if got, want := Normalize("Hello"), Normalize("hello"); got != want {
		t.Errorf("case sensitivity: %q != %q", got, want)
	}
}

func TestNormalize_Stems(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"running", "run"},
		{"hours", "hour"},
		{"What are YOUR branch hours?", "what are your branch hour"},
		{"opened accounts", "open account"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello there!",
		"what are your branch hours",
		"I lost my card, help",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("empty input: got %q", got)
	}
}

func TestNormalize_PunctuationOnly(t *testing.T) {
	if got := Normalize("?!... --- !!!"); got != "" {
		t.Errorf("punctuation-only input: got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"don't stop", []string{"don't", "stop"}},
		{"'quoted'", []string{"quoted"}},
		{"card #4521, lost!", []string{"card", "4521", "lost"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", nil},
	}
	for _, tc := range tests {
		got := Tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
