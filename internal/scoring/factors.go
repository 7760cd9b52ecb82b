package scoring

import "sort"

// Contribution captures one criterion's share of an option's weighted score.
type Contribution struct {
	CriterionID int    `json:"criterion_id"`
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Score       int    `json:"score"`
	Value       int    `json:"value"`
}

// contributionsFor returns weight×score for every criterion against opt, in list order.
func contributionsFor(criteria []Criterion, opt Option) []Contribution {
	out := make([]Contribution, 0, len(criteria))
	for _, c := range criteria {
		s := c.Scores[opt]
		out = append(out, Contribution{
			CriterionID: c.ID,
			Name:        c.Name,
			Weight:      c.Weight,
			Score:       s,
			Value:       c.Weight * s,
		})
	}
	return out
}

// rankContributions sorts by value descending. Equal values keep list order.
func rankContributions(cs []Contribution) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Value > cs[j].Value
	})
}

// topContributions returns at most n contributions ranked by value.
func topContributions(criteria []Criterion, opt Option, n int) []Contribution {
	cs := contributionsFor(criteria, opt)
	rankContributions(cs)
	if len(cs) > n {
		cs = cs[:n]
	}
	return cs
}
