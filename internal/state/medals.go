package state

// MedalStore queues medal announcements until the UI has shown them.
type MedalStore interface {
	Push(ids ...string)
	Pop() (string, bool)
}

type medalStore struct {
	pending []string
}

func NewMedalStore() MedalStore {
	return &medalStore{}
}

func (m *medalStore) Push(ids ...string) {
	m.pending = append(m.pending, ids...)
}

func (m *medalStore) Pop() (string, bool) {
	if len(m.pending) == 0 {
		return "", false
	}
	id := m.pending[0]
	m.pending = m.pending[1:]
	return id, true
}
