package agents

import (
	"fmt"
	"slices"
	"sync"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// DefaultCheckpointCapacity bounds the runs a MemoryCheckpoints retains.
const DefaultCheckpointCapacity = 128

// MemoryCheckpoints is an in-process state.CheckpointStore. Completed runs are
// removed by the graph; runs that fail are kept until capacity evicts the oldest.
type MemoryCheckpoints struct {
	mu       sync.RWMutex
	states   map[string]state.State
	order    []string
	capacity int
}

// NewMemoryCheckpoints creates an empty MemoryCheckpoints holding at most
// DefaultCheckpointCapacity runs.
func NewMemoryCheckpoints() *MemoryCheckpoints {
	return NewMemoryCheckpointsWithCapacity(DefaultCheckpointCapacity)
}

// NewMemoryCheckpointsWithCapacity creates a store that retains at most capacity
// runs. A non-positive capacity is unbounded.
func NewMemoryCheckpointsWithCapacity(capacity int) *MemoryCheckpoints {
	return &MemoryCheckpoints{
		states:   make(map[string]state.State),
		capacity: capacity,
	}
}

func (m *MemoryCheckpoints) Save(st state.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.states[st.RunID]; !ok {
		m.order = append(m.order, st.RunID)
	}
	m.states[st.RunID] = st

	for m.capacity > 0 && len(m.order) > m.capacity {
		delete(m.states, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *MemoryCheckpoints) Load(runID string) (state.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.states[runID]
	if !ok {
		return state.State{}, fmt.Errorf("checkpoint not found: %s", runID)
	}
	return st, nil
}

func (m *MemoryCheckpoints) Delete(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, runID)
	if i := slices.Index(m.order, runID); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

// List returns run ids newest first.
func (m *MemoryCheckpoints) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.Clone(m.order)
	slices.Reverse(ids)
	return ids, nil
}
