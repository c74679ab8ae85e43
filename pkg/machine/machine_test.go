package machine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState string

const (
	statePending   testState = "Pending"
	stateSubmitted testState = "Submitted"
	stateCanceled  testState = "Canceled"
	stateDone      testState = "Done"
)

func newTestMachine(initial testState) *StateMachine[testState] {
	return New(initial,
		From(statePending).To(stateSubmitted),
		From(stateSubmitted).To(stateDone, stateCanceled),
	)
}

func TestStateMachine_Transition(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		machine := newTestMachine(statePending)

		assert.True(t, machine.CanTransition(stateSubmitted))
		require.NoError(t, machine.Transition(stateSubmitted))
		assert.Equal(t, stateSubmitted, machine.Current())

		require.NoError(t, machine.Transition(stateDone))
		assert.Equal(t, stateDone, machine.Current())
	})

	t.Run("invalid transition", func(t *testing.T) {
		machine := newTestMachine(stateSubmitted)

		assert.False(t, machine.CanTransition(statePending))
		err := machine.Transition(statePending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.EqualError(t, err, "invalid state transition: Submitted to Pending")
		assert.Equal(t, stateSubmitted, machine.Current())
	})

	t.Run("terminal state", func(t *testing.T) {
		machine := newTestMachine(stateDone)
		assert.ErrorIs(t, machine.Transition(stateSubmitted), ErrInvalidTransition)
	})

	t.Run("transitions from the same state are merged", func(t *testing.T) {
		machine := New(statePending,
			From(statePending).To(stateSubmitted),
			From(statePending).To(stateCanceled),
		)
		assert.True(t, machine.CanTransition(stateSubmitted))
		assert.True(t, machine.CanTransition(stateCanceled))
	})
}

func TestStateMachine_ConcurrentTransition(t *testing.T) {
	machine := newTestMachine(statePending)

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- machine.Transition(stateSubmitted)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, stateSubmitted, machine.Current())
}
