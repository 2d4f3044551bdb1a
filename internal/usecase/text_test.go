package usecase

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"FloraGro", "floragro"},
		{"Flora-Gro  1 Quart!", "floragro1quart"},
		{"", ""},
		{"---", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := normalizeKey(tc.input); got != tc.want {
				t.Errorf("normalizeKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeTitleKey(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"FloraGro 1 Quart", "floragro 1 quart"},
		{"  Bluelab   pH Pen! ", "bluelab ph pen"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := normalizeTitleKey(tc.input); got != tc.want {
				t.Errorf("normalizeTitleKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTitleWords(t *testing.T) {
	t.Run("drops short words", func(t *testing.T) {
		got := titleWords("FloraGro by GH in a 1 qt jug")
		want := []string{"floragro", "jug"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("titleWords = %v, want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := titleWords(""); got != nil {
			t.Errorf("titleWords(\"\") = %v, want nil", got)
		}
	})
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "FloraGro", "floragro"},
		{"spaces and punctuation", "FloraGro, 1 Quart!", "floragro-1-quart"},
		{"leading and trailing junk", "  --FloraGro-- ", "floragro"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slugify(tc.input); got != tc.want {
				t.Errorf("slugify(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}

	t.Run("long titles cap at a dash boundary", func(t *testing.T) {
		long := strings.Repeat("hydroponic nutrient ", 10)
		got := slugify(long)
		if len(got) > 80 {
			t.Errorf("slug length = %d, want <= 80", len(got))
		}
		if strings.HasSuffix(got, "-") {
			t.Errorf("slug %q ends with a dash", got)
		}
	})
}

func TestIsNumeric(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"12345", true},
		{"0", true},
		{"12.5", false},
		{"GH1421", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := isNumeric(tc.input); got != tc.want {
				t.Errorf("isNumeric(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
