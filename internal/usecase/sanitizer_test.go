package usecase

import (
	"strings"
	"testing"

	"github.com/greenthumb/backend/internal/domain"
)

func TestContainsHTML(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain title", "FloraGro 1 Quart", false},
		{"paragraph tag", "<p>FloraGro</p>", true},
		{"self-closing break", "FloraGro<br/>Concentrate", true},
		{"anchor with attributes", `<a href="/floragro">FloraGro</a>`, true},
		{"comparison operators are not markup", "a < b and b > c", false},
		{"empty string", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsHTML(tc.input); got != tc.want {
				t.Errorf("ContainsHTML(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"nested tags", "<p>Base nutrient for <b>vegetative</b> growth.</p>", "Base nutrient for vegetative growth."},
		{"plain text passes through", "Base nutrient", "Base nutrient"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTMLToText(tc.input); got != tc.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheckCorrupted(t *testing.T) {
	t.Run("clean record passes", func(t *testing.T) {
		rec := domain.RawProductRecord{
			Handle: "floragro-1-quart",
			Title:  "FloraGro 1 Quart",
		}
		if reason, corrupt := CheckCorrupted(rec); corrupt {
			t.Errorf("clean record flagged: %q", reason)
		}
	})

	t.Run("html in title drops the record", func(t *testing.T) {
		rec := domain.RawProductRecord{Title: "<p>FloraGro</p>", Handle: "floragro"}
		if _, corrupt := CheckCorrupted(rec); !corrupt {
			t.Error("expected corrupt")
		}
	})

	t.Run("html in handle drops the record", func(t *testing.T) {
		rec := domain.RawProductRecord{Title: "FloraGro", Handle: "<span>floragro</span>"}
		if _, corrupt := CheckCorrupted(rec); !corrupt {
			t.Error("expected corrupt")
		}
	})

	t.Run("long sentence title drops the record", func(t *testing.T) {
		sentence := strings.Repeat("This product is the finest available. ", 8)
		rec := domain.RawProductRecord{Title: sentence, Handle: "x"}
		if _, corrupt := CheckCorrupted(rec); !corrupt {
			t.Error("expected corrupt")
		}
	})

	t.Run("long but name-like title survives", func(t *testing.T) {
		rec := domain.RawProductRecord{
			Title:  "General Hydroponics FloraGro 2-1-6 Liquid Plant Food Vegetative Growth Formula",
			Handle: "floragro",
		}
		if reason, corrupt := CheckCorrupted(rec); corrupt {
			t.Errorf("name-like title flagged: %q", reason)
		}
	})

	t.Run("flattened description handle drops the record", func(t *testing.T) {
		rec := domain.RawProductRecord{
			Title:  "FloraGro",
			Handle: "free-shipping-on-all-orders-over-fifty-dollars-today",
		}
		if _, corrupt := CheckCorrupted(rec); !corrupt {
			t.Error("expected corrupt")
		}
	})

	t.Run("eight segment handle is still acceptable", func(t *testing.T) {
		rec := domain.RawProductRecord{
			Title:  "FloraGro",
			Handle: "general-hydroponics-floragro-liquid-plant-food-one-quart",
		}
		if reason, corrupt := CheckCorrupted(rec); corrupt {
			t.Errorf("eight-segment handle flagged: %q", reason)
		}
	})
}
