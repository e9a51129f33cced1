package highlight

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

func TestAnnotate_Empty(t *testing.T) {
	if got := Annotate("Вход лонг по 100", nil); got != "" {
		t.Errorf("expected empty string for no matches, got %q", got)
	}
	if got := Annotate("", nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestAnnotate_SingleMatch(t *testing.T) {
	subject := "Вход лонг по 100"
	matches := []core.MatchSpan{
		{Start: 5, End: 9, Match: "лонг"},
	}

	got := Annotate(subject, matches)
	want := "Вход ⟪лонг⟫ по 100"
	if got != want {
		t.Errorf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_MultipleMatches(t *testing.T) {
	subject := "SBER лонг цель 250 стоп 240"
	matches := []core.MatchSpan{
		{Start: 0, End: 4, Match: "SBER"},
		{Start: 5, End: 9, Match: "лонг"},
		{Start: 15, End: 18, Match: "250"},
	}

	got := Annotate(subject, matches)
	want := "⟪SBER⟫ ⟪лонг⟫ цель ⟪250⟫ стоп 240"
	if got != want {
		t.Errorf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_LengthProperty(t *testing.T) {
	// For disjoint spans the output grows by exactly two markers per
	// match and every non-matched character is untouched.
	subject := "цена 100.5 вышла на 105"
	matches := []core.MatchSpan{
		{Start: 5, End: 10, Match: "100.5"},
		{Start: 20, End: 23, Match: "105"},
	}

	got := Annotate(subject, matches)

	wantRunes := utf8.RuneCountInString(subject) + 2*len(matches)
	if n := utf8.RuneCountInString(got); n != wantRunes {
		t.Errorf("expected %d runes, got %d (%q)", wantRunes, n, got)
	}

	stripped := strings.ReplaceAll(got, OpenMark, "")
	stripped = strings.ReplaceAll(stripped, CloseMark, "")
	if stripped != subject {
		t.Errorf("non-marker characters changed: %q", stripped)
	}
}

func TestAnnotate_MatchOrderDoesNotMatter(t *testing.T) {
	subject := "buy AAPL sell MSFT"
	forward := []core.MatchSpan{
		{Start: 4, End: 8, Match: "AAPL"},
		{Start: 14, End: 18, Match: "MSFT"},
	}
	reversed := []core.MatchSpan{forward[1], forward[0]}

	if a, b := Annotate(subject, forward), Annotate(subject, reversed); a != b {
		t.Errorf("order-dependent output: %q vs %q", a, b)
	}
}

func TestAnnotate_EmptySpan(t *testing.T) {
	got := Annotate("abc", []core.MatchSpan{{Start: 1, End: 1, Match: ""}})
	if got != "a⟪⟫bc" {
		t.Errorf("Annotate = %q, want %q", got, "a⟪⟫bc")
	}
}

func TestAnnotate_OutOfRangeClamped(t *testing.T) {
	// Hostile spans must not panic; they are clamped to the subject.
	subject := "abc"
	matches := []core.MatchSpan{
		{Start: -2, End: 1, Match: "a"},
		{Start: 2, End: 99, Match: "c"},
	}

	got := Annotate(subject, matches)
	if got != "⟪a⟫b⟪c⟫" {
		t.Errorf("Annotate = %q, want %q", got, "⟪a⟫b⟪c⟫")
	}
}

func TestAnnotate_OverlapIsTotal(t *testing.T) {
	// Overlapping spans are unspecified upstream: the only guarantee is
	// that the function returns without panicking and keeps every
	// subject character.
	subject := "abcdef"
	matches := []core.MatchSpan{
		{Start: 0, End: 4, Match: "abcd"},
		{Start: 2, End: 6, Match: "cdef"},
	}

	got := Annotate(subject, matches)

	stripped := strings.ReplaceAll(got, OpenMark, "")
	stripped = strings.ReplaceAll(stripped, CloseMark, "")
	if stripped != subject {
		t.Errorf("subject characters lost under overlap: %q", got)
	}
}
