package scoring

// DominatedOptions returns the options that are Pareto-dominated by another option.
// An option is dominated if some other option scores >= on every criterion
// and strictly better on at least one. Weights play no part.
// O(n^2 * criteria), fine for four options.
func DominatedOptions(criteria []Criterion) []Option {
	if len(criteria) == 0 {
		return []Option{}
	}

	out := []Option{}
	for _, b := range Options {
		for _, a := range Options {
			if a == b {
				continue
			}
			if dominates(criteria, a, b) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// dominates returns true if a dominates b.
func dominates(criteria []Criterion, a, b Option) bool {
	strictly := false
	for _, c := range criteria {
		sa, sb := c.Scores[a], c.Scores[b]
		if sa < sb {
			return false
		}
		if sa > sb {
			strictly = true
		}
	}
	return strictly
}

// ParetoFrontier returns the options no other option dominates, in option order.
func ParetoFrontier(criteria []Criterion) []Option {
	dominated := make(map[Option]bool)
	for _, o := range DominatedOptions(criteria) {
		dominated[o] = true
	}
	var frontier []Option
	for _, o := range Options {
		if !dominated[o] {
			frontier = append(frontier, o)
		}
	}
	return frontier
}
