package state

import (
	"time"

	"github.com/tmux-dojo/dojo/internal/store"
)

// ProgressStore holds the most recent persisted progress for rendering.
type ProgressStore interface {
	Progress() store.Progress
	SetProgress(store.Progress)
	Loaded() bool
	UpdatedAt() time.Time
}

type progressStore struct {
	progress store.Progress
	loaded   bool
	updated  time.Time
	now      func() time.Time
}

func NewProgressStore() ProgressStore {
	return &progressStore{now: time.Now}
}

func (p *progressStore) Progress() store.Progress {
	return p.progress.Clone()
}

func (p *progressStore) SetProgress(progress store.Progress) {
	p.progress = progress.Clone()
	p.loaded = true
	p.updated = p.now()
}

func (p *progressStore) Loaded() bool {
	return p.loaded
}

func (p *progressStore) UpdatedAt() time.Time {
	return p.updated
}
