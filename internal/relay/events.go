package relay

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

func entryFromChange(c scoring.Change) *store.Entry {
	e := &store.Entry{
		Kind:        store.EntryKind(c.Kind),
		CriterionID: c.CriterionID,
		Option:      string(c.Option),
		Name:        c.Name,
		Value:       c.Value,
		BestOption:  string(c.Analysis.Best),
		TotalWeight: c.Analysis.TotalWeight,
	}
	if best, ok := c.Analysis.Option(c.Analysis.Best); ok {
		e.BestScore = best.Score
	}
	return e
}

// changeEvent picks the subject and payload for a single change.
func changeEvent(c scoring.Change) (string, interface{}) {
	now := time.Now().UTC()
	if c.Kind == scoring.ChangeReset {
		return hermes.SubjectReset, hermes.ResetEvent{
			EventID:   uuid.NewString(),
			Criteria:  c.Analysis.Criteria,
			Timestamp: now,
		}
	}

	subject := hermes.SubjectCriterionUpdated(c.CriterionID)
	switch c.Kind {
	case scoring.ChangeAdd:
		subject = hermes.SubjectCriterionAdded(c.CriterionID)
	case scoring.ChangeRemove:
		subject = hermes.SubjectCriterionRemoved(c.CriterionID)
	}
	return subject, hermes.CriterionChangedEvent{
		EventID:     uuid.NewString(),
		CriterionID: c.CriterionID,
		Change:      string(c.Kind),
		Option:      string(c.Option),
		Name:        c.Name,
		Value:       c.Value,
		Timestamp:   now,
	}
}

func analysisEvent(a scoring.Analysis) hermes.AnalysisUpdatedEvent {
	ev := hermes.AnalysisUpdatedEvent{
		EventID:     uuid.NewString(),
		Best:        string(a.Best),
		Worst:       string(a.Worst),
		TotalWeight: a.TotalWeight,
		Totals:      make([]hermes.OptionTotal, 0, len(a.Options)),
		Timestamp:   time.Now().UTC(),
	}
	for _, r := range a.Options {
		ev.Totals = append(ev.Totals, hermes.OptionTotal{
			Option:  string(r.Option),
			Score:   r.Score,
			Percent: r.Percent,
		})
	}
	return ev
}
