package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tmux-dojo/dojo/internal/store"
)

func TestProgressStoreClonesOnReadAndWrite(t *testing.T) {
	s := NewProgressStore()
	assert.False(t, s.Loaded())

	in := store.Progress{Counts: map[int]int{1: 1}}
	s.SetProgress(in)
	in.Counts[1] = 7
	assert.True(t, s.Loaded())
	assert.Equal(t, 1, s.Progress().Counts[1])

	out := s.Progress()
	out.Counts[1] = 9
	assert.Equal(t, 1, s.Progress().Counts[1])
}

func TestProgressStoreStampsUpdates(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &progressStore{now: func() time.Time { return fixed }}
	s.SetProgress(store.Progress{})
	assert.Equal(t, fixed, s.UpdatedAt())
}

func TestMedalStoreQueue(t *testing.T) {
	m := NewMedalStore()
	_, ok := m.Pop()
	assert.False(t, ok)

	m.Push("first-steps", "splitter")
	m.Push("navigator")

	var got []string
	for {
		id, ok := m.Pop()
		if !ok {
			break
		}
		got = append(got, id)
	}
	assert.Equal(t, []string{"first-steps", "splitter", "navigator"}, got)
}
