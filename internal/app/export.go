package app

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/store"
)

const (
	exportTimeout = 5 * time.Second
	exportBacklog = 64
)

// Exporter copies recorded examples to a CompletionRepo on its own
// goroutine, in record order. A failed write is logged; the in-memory ledger
// stays authoritative.
type Exporter struct {
	repo  store.CompletionRepo
	log   *logging.Logger
	queue chan ledger.CompletedExample
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewExporter(repo store.CompletionRepo, log *logging.Logger) *Exporter {
	if log == nil {
		log = logging.Nop()
	}
	x := &Exporter{
		repo:  repo,
		log:   log,
		queue: make(chan ledger.CompletedExample, exportBacklog),
		done:  make(chan struct{}),
	}
	go x.run()
	return x
}

// Observe is the ledger observer. It never waits on the database; with a
// full backlog the example is dropped from the export and logged.
func (x *Exporter) Observe(e ledger.CompletedExample) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		x.log.Warn("export after close", "example_id", e.ID)
		return
	}
	select {
	case x.queue <- e:
	default:
		x.log.Error("export backlog full, completion dropped", "example_id", e.ID)
	}
}

// Close stops accepting examples and waits until the backlog is written.
func (x *Exporter) Close() {
	x.mu.Lock()
	if !x.closed {
		x.closed = true
		close(x.queue)
	}
	x.mu.Unlock()
	<-x.done
}

func (x *Exporter) run() {
	defer close(x.done)
	for e := range x.queue {
		x.write(e)
	}
}

func (x *Exporter) write(e ledger.CompletedExample) {
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	seq, err := x.repo.AppendCompletion(ctx, store.CompletionRecord{
		ExampleID:   e.ID,
		RoleID:      e.RoleID,
		SituationID: e.SituationID,
		Title:       e.Title,
		Reflection:  e.Reflection,
		CompletedAt: e.CompletedAt,
	})
	if err != nil {
		x.log.Error("export completion failed", "example_id", e.ID, "error", err)
		return
	}
	x.log.Debug("exported completion", "example_id", e.ID, "sequence", seq)
}
