package depth

import (
	"testing"

	"dexdepth/internal/model"
)

func fptr(v float64) *float64 { return &v }

func TestScoreBands(t *testing.T) {
	cases := []struct {
		name    string
		maxSize uint64
		impact  *float64
		want    int
	}{
		{"deep and tight", 5000, fptr(1.9), 100},
		{"deep moderate", 5000, fptr(4), 90},
		{"deep loose", 5000, fptr(9.9), 75},
		{"deep heavy impact", 5000, fptr(15), 60},
		{"deep no impact evidence", 5000, nil, 60},
		{"mid tight", 1000, fptr(4), 70},
		{"mid moderate", 1000, fptr(9), 50},
		{"mid heavy", 1000, fptr(12), 30},
		{"mid no impact evidence", 1000, nil, 30},
		{"small tight", 100, fptr(5), 35},
		{"small heavy", 100, fptr(11), 20},
		{"small no impact evidence", 100, nil, 20},
		{"tiny", 10, nil, 10},
		{"only smallest", 1, nil, 5},
		{"nothing worked", 0, nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := model.DepthProfile{
				MaxWorkingSize: tc.maxSize,
				ImpactAtMax:    tc.impact,
			}
			if got := Score(profile); got != tc.want {
				t.Fatalf("Score(max=%d, impact=%v) = %d, want %d", tc.maxSize, tc.impact, got, tc.want)
			}
		})
	}
}

func TestScoreBoundaryIsExclusive(t *testing.T) {
	// Exactly at a ceiling falls through to the next band.
	profile := model.DepthProfile{MaxWorkingSize: 5000, ImpactAtMax: fptr(2)}
	if got := Score(profile); got != 90 {
		t.Fatalf("impact exactly 2%% should score 90, got %d", got)
	}
}
