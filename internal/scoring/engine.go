package scoring

import (
	"strings"
	"sync"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeWeight ChangeKind = "weight"
	ChangeScore  ChangeKind = "score"
	ChangeRename ChangeKind = "rename"
	ChangeAdd    ChangeKind = "add"
	ChangeRemove ChangeKind = "remove"
	ChangeReset  ChangeKind = "reset"
	// ChangeUpdate edits several fields of one criterion at once.
	ChangeUpdate ChangeKind = "update"
)

// Change describes an applied mutation together with the analysis that followed it.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	CriterionID int        `json:"criterion_id,omitempty"`
	Option      Option     `json:"option,omitempty"`
	Name        string     `json:"name,omitempty"`
	Value       int        `json:"value"`
	Analysis    Analysis   `json:"analysis"`
}

// Listener is notified after every applied mutation.
type Listener func(Change)

// Engine owns the ordered criteria list. Mutations never fail: out-of-range
// values are clamped and unknown targets are ignored.
//
// Listeners run synchronously while the engine lock is held and must not call
// back into the engine.
type Engine struct {
	mu        sync.RWMutex
	criteria  []Criterion
	seed      []Criterion
	listeners []Listener
}

// NewEngine creates an Engine seeded with a copy of seed.
// A nil seed means the built-in DefaultSeed.
func NewEngine(seed []Criterion) *Engine {
	if seed == nil {
		seed = DefaultSeed()
	}
	e := &Engine{seed: cloneAll(seed)}
	e.criteria = cloneAll(e.seed)
	return e
}

// Subscribe registers l. Listeners are called in registration order.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Analyze computes the analysis of the current criteria.
func (e *Engine) Analyze() Analysis {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Analyze(e.criteria)
}

// Contributions ranks every criterion's contribution to opt.
func (e *Engine) Contributions(opt Option) []Contribution {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Contributions(e.criteria, opt)
}

// Criteria returns a deep copy of the current list.
func (e *Engine) Criteria() []Criterion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.criteria)
}

// Seed returns a deep copy of the list Reset restores.
func (e *Engine) Seed() []Criterion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.seed)
}

// Criterion returns a copy of the criterion with the given id.
func (e *Engine) Criterion(id int) (Criterion, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i := e.indexOf(id)
	if i < 0 {
		return Criterion{}, false
	}
	return e.criteria[i].clone(), true
}

// Edit is a single mutation for Apply. Kind selects which fields are read:
//
//	ChangeWeight  CriterionID, Weight
//	ChangeScore   CriterionID, Option, Score
//	ChangeRename  CriterionID, Name
//	ChangeUpdate  CriterionID, any of Name, Weight, Scores
//	ChangeAdd     Name, optional Weight and Scores
//	ChangeRemove  CriterionID
//	ChangeReset   nothing
type Edit struct {
	Kind        ChangeKind
	CriterionID int
	Option      Option
	Name        *string
	Weight      *int
	Score       *int
	Scores      map[Option]int
}

// Result is the outcome of Apply. Analysis reflects the criteria right after
// the edit, whether or not it was applied.
type Result struct {
	ID       int
	Applied  bool
	Analysis Analysis
}

// Apply performs ed atomically: listeners and the returned analysis both see
// exactly this edit's state.
func (e *Engine) Apply(ed Edit) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch, ok := e.apply(ed)
	a := Analyze(e.criteria)
	if ok {
		ch.Analysis = a
		for _, l := range e.listeners {
			l(ch)
		}
	}
	return Result{ID: ch.CriterionID, Applied: ok, Analysis: a}
}

// UpdateWeight sets the weight of criterion id to max(0, v).
func (e *Engine) UpdateWeight(id, v int) bool {
	return e.Apply(Edit{Kind: ChangeWeight, CriterionID: id, Weight: &v}).Applied
}

// UpdateScore sets criterion id's score for opt to v clamped to [0,5].
func (e *Engine) UpdateScore(id int, opt Option, v int) bool {
	return e.Apply(Edit{Kind: ChangeScore, CriterionID: id, Option: opt, Score: &v}).Applied
}

// Rename replaces the display name verbatim. Duplicate names are allowed.
func (e *Engine) Rename(id int, name string) bool {
	return e.Apply(Edit{Kind: ChangeRename, CriterionID: id, Name: &name}).Applied
}

// Add appends a criterion with the default weight and scores and returns its id.
// Names that are empty after trimming are ignored; the stored name is not trimmed.
func (e *Engine) Add(name string) (int, bool) {
	r := e.Apply(Edit{Kind: ChangeAdd, Name: &name})
	return r.ID, r.Applied
}

// Remove deletes the criterion with the given id.
func (e *Engine) Remove(id int) bool {
	return e.Apply(Edit{Kind: ChangeRemove, CriterionID: id}).Applied
}

// Reset discards every edit and restores a fresh copy of the seed.
func (e *Engine) Reset() {
	e.Apply(Edit{Kind: ChangeReset})
}

// apply must be called with e.mu held.
func (e *Engine) apply(ed Edit) (Change, bool) {
	switch ed.Kind {
	case ChangeReset:
		e.criteria = cloneAll(e.seed)
		return Change{Kind: ChangeReset, Value: len(e.criteria)}, true
	case ChangeAdd:
		return e.add(ed)
	}

	i := e.indexOf(ed.CriterionID)
	if i < 0 {
		return Change{}, false
	}
	c := &e.criteria[i]
	ch := Change{Kind: ed.Kind, CriterionID: c.ID}

	switch ed.Kind {
	case ChangeWeight:
		if ed.Weight == nil {
			return Change{}, false
		}
		c.Weight = clampWeight(*ed.Weight)
		ch.Value = c.Weight
	case ChangeScore:
		if ed.Score == nil || !ed.Option.Valid() {
			return Change{}, false
		}
		c.Scores[ed.Option] = clampScore(*ed.Score)
		ch.Option = ed.Option
		ch.Value = c.Scores[ed.Option]
	case ChangeRename:
		if ed.Name == nil {
			return Change{}, false
		}
		c.Name = *ed.Name
		ch.Name = c.Name
	case ChangeUpdate:
		if ed.Name == nil && ed.Weight == nil && len(validScores(ed.Scores)) == 0 {
			return Change{}, false
		}
		if ed.Name != nil {
			c.Name = *ed.Name
			ch.Name = c.Name
		}
		if ed.Weight != nil {
			c.Weight = clampWeight(*ed.Weight)
		}
		for opt, v := range validScores(ed.Scores) {
			c.Scores[opt] = clampScore(v)
		}
		ch.Value = c.Weight
	case ChangeRemove:
		ch.Name = c.Name
		e.criteria = append(e.criteria[:i:i], e.criteria[i+1:]...)
	default:
		return Change{}, false
	}
	return ch, true
}

func (e *Engine) add(ed Edit) (Change, bool) {
	if ed.Name == nil || strings.TrimSpace(*ed.Name) == "" {
		return Change{}, false
	}

	id := 0
	for _, c := range e.criteria {
		if c.ID > id {
			id = c.ID
		}
	}
	id++

	c := Criterion{
		ID:     id,
		Name:   *ed.Name,
		Weight: DefaultWeight,
		Scores: uniformScores(DefaultScore),
	}
	if ed.Weight != nil {
		c.Weight = clampWeight(*ed.Weight)
	}
	for opt, v := range validScores(ed.Scores) {
		c.Scores[opt] = clampScore(v)
	}
	e.criteria = append(e.criteria, c)
	return Change{Kind: ChangeAdd, CriterionID: id, Name: c.Name, Value: c.Weight}, true
}

// validScores drops entries for options outside the fixed set.
func validScores(scores map[Option]int) map[Option]int {
	out := make(map[Option]int, len(scores))
	for opt, v := range scores {
		if opt.Valid() {
			out[opt] = v
		}
	}
	return out
}

func (e *Engine) indexOf(id int) int {
	for i, c := range e.criteria {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(cs []Criterion) []Criterion {
	out := make([]Criterion, len(cs))
	for i, c := range cs {
		out[i] = c.clone()
	}
	return out
}
