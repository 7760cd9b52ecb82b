package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Option identifies one of the fixed candidates being compared.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionI Option = "I"
	OptionN Option = "N"
)

// Options lists the candidates in their fixed order. Ties are always broken by this order.
var Options = []Option{OptionA, OptionB, OptionI, OptionN}

// Valid reports whether o is one of the fixed options.
func (o Option) Valid() bool {
	for _, opt := range Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Criterion is a named, weighted attribute scored against every option.
type Criterion struct {
	ID     int            `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Weight int            `json:"weight" yaml:"weight"`
	Scores map[Option]int `json:"scores" yaml:"scores"`
}

func (c Criterion) clone() Criterion {
	scores := make(map[Option]int, len(c.Scores))
	for k, v := range c.Scores {
		scores[k] = v
	}
	c.Scores = scores
	return c
}

func uniformScores(v int) map[Option]int {
	scores := make(map[Option]int, len(Options))
	for _, opt := range Options {
		scores[opt] = v
	}
	return scores
}

func row(id int, name string, weight, a, b, i, n int) Criterion {
	return Criterion{
		ID:     id,
		Name:   name,
		Weight: weight,
		Scores: map[Option]int{OptionA: a, OptionB: b, OptionI: i, OptionN: n},
	}
}

// DefaultSeed returns a fresh copy of the built-in criteria list.
func DefaultSeed() []Criterion {
	return []Criterion{
		row(1, "Stability # years", 11, 1, 3, 5, 3),
		row(2, "House", 7, 2, 2, 5, 2),
		row(3, "Easy travels", 8, 2, 4, 3, 5),
		row(4, "Family visits", 10, 1, 3, 5, 3),
		row(5, "Friends", 6, 5, 2, 3, 1),
		row(6, "Air quality", 6, 5, 5, 1, 5),
		row(7, "Outdoor activity", 4, 5, 3, 2, 3),
		row(8, "Low Bureaucracy", 2, 4, 2, 1, 4),
		row(9, "Tax outcome", 4, 1, 2, 2, 3),
		row(10, "Income", 9, 4, 3, 1, 2),
	}
}

type seedFile struct {
	Criteria []seedEntry `yaml:"criteria"`
}

type seedEntry struct {
	Name   string         `yaml:"name"`
	Weight *int           `yaml:"weight"`
	Scores map[string]int `yaml:"scores"`
}

// LoadSeed reads a YAML seed file. Entries get ids 1..n in file order and are
// normalised with the same clamps the engine applies to edits.
func LoadSeed(path string) ([]Criterion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML. Missing weights default to DefaultWeight and
// missing option scores to DefaultScore; unknown option keys are ignored.
func ParseSeed(data []byte) ([]Criterion, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	out := make([]Criterion, 0, len(f.Criteria))
	for i, e := range f.Criteria {
		c := Criterion{
			ID:     i + 1,
			Name:   e.Name,
			Weight: DefaultWeight,
			Scores: uniformScores(DefaultScore),
		}
		if e.Weight != nil {
			c.Weight = clampWeight(*e.Weight)
		}
		for k, v := range e.Scores {
			opt := Option(k)
			if opt.Valid() {
				c.Scores[opt] = clampScore(v)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// MarshalSeed renders criteria in the seed file format.
func MarshalSeed(criteria []Criterion) ([]byte, error) {
	f := seedFile{Criteria: make([]seedEntry, 0, len(criteria))}
	for _, c := range criteria {
		w := c.Weight
		scores := make(map[string]int, len(c.Scores))
		for k, v := range c.Scores {
			scores[string(k)] = v
		}
		f.Criteria = append(f.Criteria, seedEntry{Name: c.Name, Weight: &w, Scores: scores})
	}
	return yaml.Marshal(f)
}
