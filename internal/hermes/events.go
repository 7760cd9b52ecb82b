package hermes

import "time"

type CriterionChangedEvent struct {
	EventID     string    `json:"event_id"`
	CriterionID int       `json:"criterion_id"`
	Change      string    `json:"change"`
	Option      string    `json:"option,omitempty"`
	Name        string    `json:"name,omitempty"`
	Value       int       `json:"value"`
	Timestamp   time.Time `json:"timestamp"`
}

type ResetEvent struct {
	EventID   string    `json:"event_id"`
	Criteria  int       `json:"criteria"`
	Timestamp time.Time `json:"timestamp"`
}

type OptionTotal struct {
	Option  string  `json:"option"`
	Score   int     `json:"score"`
	Percent float64 `json:"percent"`
}

type AnalysisUpdatedEvent struct {
	EventID     string        `json:"event_id"`
	Best        string        `json:"best"`
	Worst       string        `json:"worst"`
	TotalWeight int           `json:"total_weight"`
	Totals      []OptionTotal `json:"totals"`
	Timestamp   time.Time     `json:"timestamp"`
}
