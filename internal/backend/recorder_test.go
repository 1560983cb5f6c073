package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmux-dojo/dojo/internal/catalog"
	"github.com/tmux-dojo/dojo/internal/store"
)

type fakeSink struct {
	mu      sync.Mutex
	counts  map[int]int
	stats   map[string]int
	medals  map[string]time.Time
	failing bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{counts: map[int]int{}, stats: map[string]int{}, medals: map[string]time.Time{}}
}

func (f *fakeSink) RecordCompletion(_ context.Context, id int, _ string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errors.New("disk full")
	}
	f.counts[id]++
	return f.counts[id], nil
}

func (f *fakeSink) BumpStat(_ context.Context, name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[name]++
	return f.stats[name], nil
}

func (f *fakeSink) Award(_ context.Context, ids []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, id := range ids {
		if _, ok := f.medals[id]; ok {
			continue
		}
		f.medals[id] = time.Time{}
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeSink) Snapshot(context.Context) (store.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := store.Progress{Counts: f.counts, Stats: f.stats, Medals: f.medals}
	return p.Clone(), nil
}

func next(t *testing.T, r *Recorder) Event {
	t.Helper()
	select {
	case evt, ok := <-r.Events():
		require.True(t, ok, "events channel closed")
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recorder event")
		return Event{}
	}
}

func TestRecorderEmitsInitialSnapshot(t *testing.T) {
	sink := newFakeSink()
	sink.counts[4] = 2
	r := NewRecorder(sink, catalog.Default())
	defer func() { r.Stop(); r.Wait() }()

	evt := next(t, r)
	require.NoError(t, evt.Err)
	assert.Equal(t, KindSnapshot, evt.Kind)
	assert.Equal(t, 2, evt.Data.Counts[4])
	assert.Equal(t, []string{"first-steps"}, evt.Awarded)
}

func TestRecorderAppliesRequestsInOrder(t *testing.T) {
	sink := newFakeSink()
	r := NewRecorder(sink, catalog.Default())
	defer func() { r.Stop(); r.Wait() }()
	next(t, r)

	require.True(t, r.Submit(Request{Kind: KindCompletion, LevelID: 1, Title: "Split"}))
	evt := next(t, r)
	require.NoError(t, evt.Err)
	assert.Equal(t, KindCompletion, evt.Kind)
	assert.Equal(t, 1, evt.Data.Counts[1])
	assert.Equal(t, []string{"first-steps"}, evt.Awarded)
	assert.Contains(t, evt.Data.Medals, "first-steps")

	require.True(t, r.Submit(Request{Kind: KindStat, Stat: store.StatClocks}))
	evt = next(t, r)
	assert.Equal(t, KindStat, evt.Kind)
	assert.Equal(t, 1, evt.Data.Stats[store.StatClocks])
	assert.Empty(t, evt.Awarded)
}

func TestRecorderReportsSinkErrors(t *testing.T) {
	sink := newFakeSink()
	sink.failing = true
	r := NewRecorder(sink, nil)
	defer func() { r.Stop(); r.Wait() }()
	next(t, r)

	r.Submit(Request{Kind: KindCompletion, LevelID: 2})
	evt := next(t, r)
	assert.Error(t, evt.Err)
	assert.Equal(t, KindCompletion, evt.Kind)
}

func TestRecorderStopClosesEvents(t *testing.T) {
	r := NewRecorder(newFakeSink(), nil)
	r.Stop()
	r.Wait()
	for range r.Events() {
	}
	assert.False(t, r.Submit(Request{Kind: KindStat, Stat: store.StatFlashes}))
}
