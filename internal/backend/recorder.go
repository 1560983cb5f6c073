// Package backend persists progress off the UI goroutine.
package backend

import (
	"context"
	"sync"

	"github.com/tmux-dojo/dojo/internal/catalog"
	"github.com/tmux-dojo/dojo/internal/logging/events"
	"github.com/tmux-dojo/dojo/internal/store"
)

// Kind represents the type of work a request or event carries.
type Kind int

const (
	KindSnapshot Kind = iota
	KindCompletion
	KindStat
)

func (k Kind) String() string {
	switch k {
	case KindSnapshot:
		return "snapshot"
	case KindCompletion:
		return "completion"
	case KindStat:
		return "stat"
	default:
		return "unknown"
	}
}

// Request asks the recorder to persist something.
type Request struct {
	Kind    Kind
	LevelID int
	Title   string
	Stat    string
}

// Event conveys refreshed progress or an error after a request was applied.
type Event struct {
	Kind    Kind
	Data    store.Progress
	Awarded []string
	Err     error
}

// Sink is the persistence the recorder writes through.
type Sink interface {
	RecordCompletion(ctx context.Context, levelID int, title string) (int, error)
	BumpStat(ctx context.Context, name string) (int, error)
	Award(ctx context.Context, ids []string) ([]string, error)
	Snapshot(ctx context.Context) (store.Progress, error)
}

// Recorder applies requests to a Sink on its own goroutine and publishes
// the resulting progress.
type Recorder struct {
	sink    Sink
	catalog *catalog.Catalog

	ctx    context.Context
	cancel context.CancelFunc

	requests chan Request
	events   chan Event
	wg       sync.WaitGroup
}

// NewRecorder starts a recorder. The first event is always a snapshot of
// what the sink already holds.
func NewRecorder(sink Sink, cat *catalog.Catalog) *Recorder {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Recorder{
		sink:     sink,
		catalog:  cat,
		ctx:      ctx,
		cancel:   cancel,
		requests: make(chan Request, 32),
		events:   make(chan Event, 16),
	}
	r.wg.Add(1)
	go r.run()
	go func() {
		r.wg.Wait()
		close(r.events)
	}()
	return r
}

// Events returns a channel of recorder events.
func (r *Recorder) Events() <-chan Event {
	return r.events
}

// Submit queues a request without blocking. It reports false when the
// queue is full or the recorder has stopped.
func (r *Recorder) Submit(req Request) bool {
	select {
	case <-r.ctx.Done():
		events.Store.Dropped(req.Kind.String())
		return false
	default:
	}
	select {
	case r.requests <- req:
		return true
	default:
		events.Store.Dropped(req.Kind.String())
		return false
	}
}

// Stop cancels the recorder. Requests still queued are discarded.
func (r *Recorder) Stop() {
	r.cancel()
}

// Wait blocks until the worker has exited and the events channel is
// closed.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

func (r *Recorder) run() {
	defer r.wg.Done()

	if !r.emit(r.refresh(KindSnapshot)) {
		return
	}
	for {
		select {
		case <-r.ctx.Done():
			return
		case req := <-r.requests:
			if !r.emit(r.apply(req)) {
				return
			}
		}
	}
}

func (r *Recorder) apply(req Request) Event {
	var err error
	switch req.Kind {
	case KindCompletion:
		_, err = r.sink.RecordCompletion(r.ctx, req.LevelID, req.Title)
	case KindStat:
		_, err = r.sink.BumpStat(r.ctx, req.Stat)
	}
	if err != nil {
		return Event{Kind: req.Kind, Err: err}
	}
	return r.refresh(req.Kind)
}

// refresh reads the sink, awards any newly earned medals and re-reads if
// something was awarded.
func (r *Recorder) refresh(kind Kind) Event {
	p, err := r.sink.Snapshot(r.ctx)
	if err != nil {
		return Event{Kind: kind, Err: err}
	}
	if r.catalog == nil {
		return Event{Kind: kind, Data: p}
	}
	awarded, err := r.sink.Award(r.ctx, store.DeriveMedals(p, r.catalog))
	if err != nil {
		return Event{Kind: kind, Data: p, Err: err}
	}
	if len(awarded) > 0 {
		if p, err = r.sink.Snapshot(r.ctx); err != nil {
			return Event{Kind: kind, Err: err}
		}
	}
	return Event{Kind: kind, Data: p, Awarded: awarded}
}

func (r *Recorder) emit(evt Event) bool {
	select {
	case <-r.ctx.Done():
		return false
	case r.events <- evt:
		return true
	}
}
