package usecase

import (
	"reflect"
	"testing"
)

func TestStem(t *testing.T) {
	s := NewEnglishStemmer()

	t.Run("plural and singular share a stem", func(t *testing.T) {
		pairs := [][2]string{
			{"nutrient", "nutrients"},
			{"fertilizer", "fertilizers"},
			{"meter", "meters"},
			{"filter", "filters"},
		}
		for _, pair := range pairs {
			if s.Stem(pair[0]) != s.Stem(pair[1]) {
				t.Errorf("Stem(%q) = %q, Stem(%q) = %q, want equal",
					pair[0], s.Stem(pair[0]), pair[1], s.Stem(pair[1]))
			}
		}
	})

	t.Run("case and whitespace normalize", func(t *testing.T) {
		if s.Stem("  NUTRIENTS ") != s.Stem("nutrients") {
			t.Error("expected identical stems regardless of case and padding")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := s.Stem(""); got != "" {
			t.Errorf("Stem(\"\") = %q, want empty", got)
		}
	})

	t.Run("cache returns a stable answer", func(t *testing.T) {
		first := s.Stem("hydroponics")
		second := s.Stem("hydroponics")
		if first != second {
			t.Errorf("cached stem changed: %q vs %q", first, second)
		}
	})
}

func TestStemTokens(t *testing.T) {
	s := NewEnglishStemmer()

	t.Run("stems every token", func(t *testing.T) {
		got := s.StemTokens([]string{"nutrients", "meters"})
		want := []string{s.Stem("nutrient"), s.Stem("meter")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("StemTokens = %v, want %v", got, want)
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		if got := s.StemTokens(nil); got != nil {
			t.Errorf("StemTokens(nil) = %v, want nil", got)
		}
	})
}
