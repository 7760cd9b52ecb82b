package scoring

const (
	// MaxScore is the upper bound of a per-option score; also the normaliser for MaxPossible.
	MaxScore = 5
	MinScore = 0

	// MaxWeightHint is the upper bound presentation layers offer for weights.
	// The engine itself only enforces the lower bound.
	MaxWeightHint = 20

	DefaultWeight = 5
	DefaultScore  = 3
)

// TotalWeight returns the sum of all criterion weights.
func TotalWeight(criteria []Criterion) int {
	var total int
	for _, c := range criteria {
		total += c.Weight
	}
	return total
}

// WeightShare returns w as a fraction of total, or 0 when total is 0.
func WeightShare(w, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(w) / float64(total)
}

func clampWeight(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampScore(v int) int {
	return clamp(v, MinScore, MaxScore)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
