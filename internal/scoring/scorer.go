package scoring

// OptionResult captures the complete scoring output for a single option.
type OptionResult struct {
	Option          Option         `json:"option"`
	Score           int            `json:"score"`
	MaxPossible     int            `json:"max_possible"`
	Percent         float64        `json:"percent"`
	Best            bool           `json:"best"`
	Worst           bool           `json:"worst"`
	TopContributors []Contribution `json:"top_contributors"`
}

// RowResult is one criterion's contribution to every option.
type RowResult struct {
	CriterionID   int            `json:"criterion_id"`
	Name          string         `json:"name"`
	Weight        int            `json:"weight"`
	WeightShare   float64        `json:"weight_share"`
	Contributions map[Option]int `json:"contributions"`
}

// Analysis is the read-only view presentation layers render.
type Analysis struct {
	TotalWeight int            `json:"total_weight"`
	Criteria    int            `json:"criteria"`
	Options     []OptionResult `json:"options"`
	Rows        []RowResult    `json:"rows"`
	Best        Option         `json:"best"`
	Worst       Option         `json:"worst"`
	Dominated   []Option       `json:"dominated"`
}

// Option returns the result for opt and whether it was found.
func (a Analysis) Option(opt Option) (OptionResult, bool) {
	for _, r := range a.Options {
		if r.Option == opt {
			return r, true
		}
	}
	return OptionResult{}, false
}

// topContributorCount is how many factors are reported per option.
const topContributorCount = 2

// Analyze derives totals, normalised percentages, top factors and the best/worst options.
// It is pure: the same criteria always produce the same Analysis.
func Analyze(criteria []Criterion) Analysis {
	total := TotalWeight(criteria)
	maxPossible := total * MaxScore

	a := Analysis{
		TotalWeight: total,
		Criteria:    len(criteria),
		Options:     make([]OptionResult, 0, len(Options)),
		Rows:        make([]RowResult, 0, len(criteria)),
		Dominated:   DominatedOptions(criteria),
	}

	for _, opt := range Options {
		var score int
		for _, c := range criteria {
			score += c.Weight * c.Scores[opt]
		}
		r := OptionResult{
			Option:          opt,
			Score:           score,
			MaxPossible:     maxPossible,
			TopContributors: topContributions(criteria, opt, topContributorCount),
		}
		if maxPossible > 0 {
			r.Percent = float64(score) / float64(maxPossible) * 100
		}
		a.Options = append(a.Options, r)
	}

	best, worst := 0, 0
	for i := 1; i < len(a.Options); i++ {
		if a.Options[i].Score > a.Options[best].Score {
			best = i
		}
		if a.Options[i].Score < a.Options[worst].Score {
			worst = i
		}
	}
	a.Options[best].Best = true
	a.Options[worst].Worst = true
	a.Best = a.Options[best].Option
	a.Worst = a.Options[worst].Option

	for _, c := range criteria {
		row := RowResult{
			CriterionID:   c.ID,
			Name:          c.Name,
			Weight:        c.Weight,
			WeightShare:   WeightShare(c.Weight, total),
			Contributions: make(map[Option]int, len(Options)),
		}
		for _, opt := range Options {
			row.Contributions[opt] = c.Weight * c.Scores[opt]
		}
		a.Rows = append(a.Rows, row)
	}

	return a
}

// Contributions returns every criterion's contribution to opt, ranked by value
// with ties in list order. Unknown options yield an empty list.
func Contributions(criteria []Criterion, opt Option) []Contribution {
	if !opt.Valid() {
		return []Contribution{}
	}
	cs := contributionsFor(criteria, opt)
	rankContributions(cs)
	return cs
}
