package machine

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

type State interface {
	~string
}

// Transition lists the states reachable from one state
type Transition[S State] struct {
	from S
	to   []S
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Transition[S]
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Transition[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Transition[S] {
	tb.transition.to = to
	return tb.transition
}

// StateMachine holds a current state and only moves along declared transitions.
// It is safe for concurrent use.
type StateMachine[S State] struct {
	mu          sync.Mutex
	current     S
	transitions map[S][]S
}

func New[S State](initial S, transitions ...Transition[S]) *StateMachine[S] {
	m := &StateMachine[S]{
		current:     initial,
		transitions: make(map[S][]S),
	}

	for _, t := range transitions {
		m.transitions[t.from] = append(m.transitions[t.from], t.to...)
	}

	return m
}

// Current returns the state the machine is in
func (m *StateMachine[S]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CanTransition reports whether the machine may move to s from where it is now
func (m *StateMachine[S]) CanTransition(s S) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.transitions[m.current], s)
}

// Transition moves the machine to s. The state is unchanged when the move isn't allowed.
func (m *StateMachine[S]) Transition(s S) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(m.transitions[m.current], s) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, m.current, s)
	}

	m.current = s
	return nil
}
