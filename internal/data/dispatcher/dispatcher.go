package dispatcher

import (
	"github.com/tmux-dojo/dojo/internal/backend"
	"github.com/tmux-dojo/dojo/internal/logging"
	"github.com/tmux-dojo/dojo/internal/state"
)

type Result struct {
	ProgressUpdated bool
	Awarded         []string
	Err             error
}

type Dispatcher struct {
	progress state.ProgressStore
	medals   state.MedalStore
}

func New(p state.ProgressStore, m state.MedalStore) *Dispatcher {
	return &Dispatcher{progress: p, medals: m}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		logging.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	d.progress.SetProgress(evt.Data)
	res.ProgressUpdated = true
	if len(evt.Awarded) > 0 {
		d.medals.Push(evt.Awarded...)
		res.Awarded = append([]string(nil), evt.Awarded...)
	}
	return res
}
