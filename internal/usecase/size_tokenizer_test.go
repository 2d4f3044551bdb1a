package usecase

import (
	"math"
	"testing"
)

func TestParseSize(t *testing.T) {
	tok := NewSizeTokenizer()

	testCases := []struct {
		name      string
		title     string
		wantLabel string
		wantRank  float64
		wantOK    bool
	}{
		{
			name:      "quart",
			title:     "FloraGro 1 Quart",
			wantLabel: "1 Quart",
			wantRank:  946,
			wantOK:    true,
		},
		{
			name:      "gallon",
			title:     "FloraGro 1 Gallon",
			wantLabel: "1 Gallon",
			wantRank:  3785,
			wantOK:    true,
		},
		{
			name:      "half gallon spelled with slash",
			title:     "Silica Blast 1/2 Gallon",
			wantLabel: "1/2 Gallon",
			wantRank:  0.5 * 3785,
			wantOK:    true,
		},
		{
			name:      "liters without space",
			title:     "CANNA Coco A 5L",
			wantLabel: "5 L",
			wantRank:  5000,
			wantOK:    true,
		},
		{
			name:      "milliliters",
			title:     "Clonex Rooting Gel 100ml",
			wantLabel: "100 ml",
			wantRank:  100,
			wantOK:    true,
		},
		{
			name:      "fl oz",
			title:     "pH Down 8 fl oz",
			wantLabel: "8 oz",
			wantRank:  8 * 29.6,
			wantOK:    true,
		},
		{
			name:      "fractional pounds",
			title:     "Mykos 2.5 lb",
			wantLabel: "2.5 lb",
			wantRank:  2.5 * 453.6,
			wantOK:    true,
		},
		{
			name:      "wattage",
			title:     "Gavita Pro 600W HPS Lamp",
			wantLabel: "600 Watt",
			wantRank:  600,
			wantOK:    true,
		},
		{
			name:      "inches with full spelling",
			title:     "AC Infinity 6 inch Inline Fan",
			wantLabel: "6 inch",
			wantRank:  6,
			wantOK:    true,
		},
		{
			name:      "count",
			title:     "Rapid Rooter Plugs 50 ct",
			wantLabel: "50 ct",
			wantRank:  50,
			wantOK:    true,
		},
		{
			name:      "bare liter word with no digit",
			title:     "FloraMicro Liter",
			wantLabel: "1 L",
			wantRank:  1000,
			wantOK:    true,
		},
		{
			name:   "no size token",
			title:  "Rapid Rooter Tray",
			wantOK: false,
		},
		{
			name:   "empty title",
			title:  "",
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := tok.ParseSize(tc.title)
			if ok != tc.wantOK {
				t.Fatalf("ParseSize(%q) ok = %v, want %v", tc.title, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if token.Label != tc.wantLabel {
				t.Errorf("ParseSize(%q) label = %q, want %q", tc.title, token.Label, tc.wantLabel)
			}
			if token.Rank != tc.wantRank {
				t.Errorf("ParseSize(%q) rank = %v, want %v", tc.title, token.Rank, tc.wantRank)
			}
		})
	}
}

func TestParseSize_RankOrdering(t *testing.T) {
	tok := NewSizeTokenizer()

	t.Run("liter sizes order by volume", func(t *testing.T) {
		titles := []string{"FloraMicro 1 L", "FloraMicro 5 L", "FloraMicro 20 L"}
		var ranks []float64
		for _, title := range titles {
			token, ok := tok.ParseSize(title)
			if !ok {
				t.Fatalf("ParseSize(%q) did not match", title)
			}
			ranks = append(ranks, token.Rank)
		}
		if !(ranks[0] < ranks[1] && ranks[1] < ranks[2]) {
			t.Errorf("ranks not ascending: %v", ranks)
		}
	})

	t.Run("imperial sizes order by volume", func(t *testing.T) {
		pint, _ := tok.ParseSize("FloraGro 1 Pint")
		quart, _ := tok.ParseSize("FloraGro 1 Quart")
		gallon, _ := tok.ParseSize("FloraGro 1 Gallon")
		if !(pint.Rank < quart.Rank && quart.Rank < gallon.Rank) {
			t.Errorf("expected pint < quart < gallon, got %v, %v, %v",
				pint.Rank, quart.Rank, gallon.Rank)
		}
	})
}

func TestRankForLabel(t *testing.T) {
	tok := NewSizeTokenizer()

	t.Run("recovers rank from stored label", func(t *testing.T) {
		if got := tok.RankForLabel("1 Quart"); got != 946 {
			t.Errorf("RankForLabel(\"1 Quart\") = %v, want 946", got)
		}
	})

	t.Run("unknown label sorts last", func(t *testing.T) {
		got := tok.RankForLabel("Default")
		if !math.IsInf(got, 1) {
			t.Errorf("RankForLabel(\"Default\") = %v, want +Inf", got)
		}
		if got != UnknownRank {
			t.Errorf("RankForLabel(\"Default\") = %v, want the UnknownRank sentinel", got)
		}
	})
}

func TestExtractBaseTitle(t *testing.T) {
	tok := NewSizeTokenizer()

	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "strips trailing quart",
			title: "FloraGro 1 Quart",
			want:  "FloraGro",
		},
		{
			name:  "strips attached liter suffix",
			title: "CANNA Coco A 5L",
			want:  "CANNA Coco A",
		},
		{
			name:  "normalizes dash-joined unit before stripping",
			title: "General Hydroponics FloraBloom, 1-Gallon",
			want:  "General Hydroponics FloraBloom",
		},
		{
			name:  "strips parenthesized size entirely",
			title: "Bud Candy (500 ml)",
			want:  "Bud Candy",
		},
		{
			name:  "mid-title size collapses to single space",
			title: "FoxFarm 12 Quart Ocean Forest",
			want:  "FoxFarm Ocean Forest",
		},
		{
			name:  "size-only title reduces to empty",
			title: "1 Gallon",
			want:  "",
		},
		{
			name:  "no size leaves title untouched",
			title: "Rapid Rooter Tray",
			want:  "Rapid Rooter Tray",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.ExtractBaseTitle(tc.title)
			if got != tc.want {
				t.Errorf("ExtractBaseTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestExtractBaseTitle_Idempotent(t *testing.T) {
	tok := NewSizeTokenizer()

	titles := []string{
		"FloraGro 1 Quart",
		"CANNA Coco A 5L",
		"General Hydroponics FloraBloom, 1-Gallon",
		"Silica Blast 1/2 Gallon",
		"Gavita Pro 600W HPS Lamp",
		"Rapid Rooter Tray",
		"",
	}

	for _, title := range titles {
		once := tok.ExtractBaseTitle(title)
		twice := tok.ExtractBaseTitle(once)
		if once != twice {
			t.Errorf("ExtractBaseTitle not idempotent for %q: first %q, second %q",
				title, once, twice)
		}
	}
}
