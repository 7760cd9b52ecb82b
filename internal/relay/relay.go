package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

const (
	sinkJournal = "journal"
	sinkHermes  = "hermes"

	sinkTimeout = 5 * time.Second
)

// Relay carries engine changes to the journal, the event bus and metrics
// without blocking the engine. Either sink may be nil.
type Relay struct {
	journal store.Journal
	hermes  hermes.Client
	logger  *slog.Logger
	queue   chan scoring.Change

	statsMu sync.Mutex
	stats   Stats

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// Stats summarises relay throughput since start.
type Stats struct {
	Delivered  int64            `json:"delivered"`
	Dropped    int64            `json:"dropped"`
	SinkErrors map[string]int64 `json:"sink_errors"`
	Queued     int              `json:"queued"`
}

func New(j store.Journal, h hermes.Client, bufferSize int, logger *slog.Logger) *Relay {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Relay{
		journal: j,
		hermes:  h,
		logger:  logger,
		queue:   make(chan scoring.Change, bufferSize),
		stats:   Stats{SinkErrors: make(map[string]int64)},
		stopCh:  make(chan struct{}),
	}
}

// Enqueue is a scoring.Listener. It never blocks: a full buffer drops the
// change, though the state gauges are still refreshed from it.
func (r *Relay) Enqueue(c scoring.Change) {
	select {
	case r.queue <- c:
	default:
		r.statsMu.Lock()
		r.stats.Dropped++
		r.statsMu.Unlock()
		metrics.RelayDropped.Inc()
		metrics.Observe(c.Analysis)
		r.logger.Warn("relay buffer full, dropping change", "kind", c.Kind, "criterion_id", c.CriterionID)
	}
}

func (r *Relay) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop delivers whatever is still queued and waits for the loop to exit.
func (r *Relay) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Relay) Stats() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	out := Stats{
		Delivered:  r.stats.Delivered,
		Dropped:    r.stats.Dropped,
		SinkErrors: make(map[string]int64, len(r.stats.SinkErrors)),
		Queued:     len(r.queue),
	}
	for k, v := range r.stats.SinkErrors {
		out.SinkErrors[k] = v
	}
	return out
}

func (r *Relay) loop(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-r.stopCh:
			r.drain()
			return
		case <-ctx.Done():
			r.drain()
			return
		case c := <-r.queue:
			r.deliver(ctx, c)
		}
	}
}

func (r *Relay) drain() {
	for {
		select {
		case c := <-r.queue:
			r.deliver(context.Background(), c)
		default:
			return
		}
	}
}

func (r *Relay) deliver(ctx context.Context, c scoring.Change) {
	metrics.ObserveChange(c)

	if r.journal != nil {
		jctx, cancel := context.WithTimeout(ctx, sinkTimeout)
		err := r.journal.Append(jctx, entryFromChange(c))
		cancel()
		if err != nil {
			r.fail(sinkJournal, c, err)
		}
	}

	if r.hermes != nil {
		if err := r.publish(c); err != nil {
			r.fail(sinkHermes, c, err)
		}
	}

	r.statsMu.Lock()
	r.stats.Delivered++
	r.statsMu.Unlock()
	r.logger.Debug("change relayed", "kind", c.Kind, "criterion_id", c.CriterionID, "best", c.Analysis.Best)
}

func (r *Relay) publish(c scoring.Change) error {
	subject, event := changeEvent(c)
	if err := r.hermes.Publish(subject, event); err != nil {
		return err
	}
	return r.hermes.Publish(hermes.SubjectAnalysisUpdated, analysisEvent(c.Analysis))
}

func (r *Relay) fail(sink string, c scoring.Change, err error) {
	r.statsMu.Lock()
	r.stats.SinkErrors[sink]++
	r.statsMu.Unlock()
	metrics.SinkErrors.WithLabelValues(sink).Inc()
	r.logger.Warn("relay sink failed", "sink", sink, "kind", c.Kind, "criterion_id", c.CriterionID, "error", err)
}
