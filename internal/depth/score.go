package depth

import "dexdepth/internal/model"

// Score maps a depth profile to a 0-100 liquidity score. Bands are evaluated
// top-down, first match wins. A missing impact is scored through the worst
// branch of its band: one successful point is not evidence of low impact.
func Score(profile model.DepthProfile) int {
	maxSize := profile.MaxWorkingSize
	impact := profile.ImpactAtMax

	below := func(ceiling float64) bool {
		return impact != nil && *impact < ceiling
	}

	switch {
	case maxSize >= 5000:
		switch {
		case below(2):
			return 100
		case below(5):
			return 90
		case below(10):
			return 75
		default:
			return 60
		}
	case maxSize >= 1000:
		switch {
		case below(5):
			return 70
		case below(10):
			return 50
		default:
			return 30
		}
	case maxSize >= 100:
		if below(10) {
			return 35
		}
		return 20
	case maxSize >= 10:
		return 10
	case maxSize > 0:
		// Only the smallest ladder size worked.
		return 5
	default:
		return 0
	}
}
