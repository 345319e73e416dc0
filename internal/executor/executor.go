// Package executor handles the bounded parallel execution of transfer units.
// This includes managing the concurrency budget and isolating unit failures.
//
// The executor is work-conserving: a freed slot is handed to the next queued
// unit immediately, with no ordering guarantees between units.
package executor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rohaquinlop/robinzhon/errors"
)

// Unit executes the transfer at index i and returns its classified failure,
// or nil. A unit's error never stops other units; the executor only inspects
// it for batch-wide fatality.
type Unit func(ctx context.Context, i int) error

// Executor runs transfer units with a fixed concurrency budget.
type Executor struct {
	budget    int
	failFast  bool
	semaphore chan struct{}
}

// New creates an executor with the specified concurrency budget.
func New(budget int) *Executor {
	if budget < 1 {
		budget = 1
	}

	return &Executor{
		budget:    budget,
		semaphore: make(chan struct{}, budget),
	}
}

// WithFailFast makes the executor stop admitting new units once a unit
// resolves with a fatal error. Units already in flight still drain.
func (e *Executor) WithFailFast(on bool) *Executor {
	e.failFast = on
	return e
}

// Run executes unit for every index in [0, n), keeping at most budget units
// in flight. It returns the number of units admitted and the first fatal
// error observed, if any.
//
// Admission stops early when ctx is cancelled or, in fail-fast mode, after a
// fatal unit error. Admitted units always drain to a terminal state before
// Run returns; indexes at or beyond the returned count were never started.
func (e *Executor) Run(ctx context.Context, n int, unit Unit) (int, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstFatal error
	var stop atomic.Bool

	admitted := 0
admission:
	for i := 0; i < n; i++ {
		if stop.Load() {
			break
		}

		// Check if context is cancelled
		select {
		case <-ctx.Done():
			break admission
		default:
		}

		// Acquire semaphore
		select {
		case e.semaphore <- struct{}{}:
		case <-ctx.Done():
			break admission
		}

		// A unit may have turned fatal while we waited for a slot.
		if stop.Load() {
			<-e.semaphore
			break
		}

		admitted++
		wg.Add(1)
		go func(i int) {
			defer func() {
				// Release semaphore
				<-e.semaphore
				wg.Done()
			}()

			err := unit(ctx, i)
			if err == nil || !errors.IsFatal(err) {
				return
			}

			mu.Lock()
			if firstFatal == nil {
				firstFatal = err
			}
			mu.Unlock()

			if e.failFast {
				stop.Store(true)
			}
		}(i)
	}

	// Wait for all admitted units to complete
	wg.Wait()

	return admitted, firstFatal
}

// GetStats returns current execution statistics.
func (e *Executor) GetStats() Stats {
	return Stats{
		Budget:             e.budget,
		CurrentConcurrency: len(e.semaphore),
		AvailableSlots:     cap(e.semaphore) - len(e.semaphore),
	}
}

// Stats contains statistics about the executor's current state.
type Stats struct {
	// Budget is the maximum allowed concurrent units
	Budget int

	// CurrentConcurrency is the current number of running units
	CurrentConcurrency int

	// AvailableSlots is the number of free concurrency slots
	AvailableSlots int
}
