package sim

import (
	"sync"

	"github.com/soypat/meshcsg/solver"
)

// Job is a running RunAsync invocation: Cancel requests cooperative stop
// before the next substep, and Wait blocks until the background stepper
// has exited, returning the error Step last produced (nil if it ran
// every requested step, or solver.ErrCancelled if Cancel stopped it
// before any failure).
type Job struct {
	cancel chan struct{}
	done   chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error
}

// Cancel requests the background stepper stop at the next opportunity.
// Safe to call multiple times or concurrently with Wait.
func (j *Job) Cancel() {
	j.once.Do(func() { close(j.cancel) })
}

// Wait blocks until the stepper has stopped, returning its final error.
func (j *Job) Wait() error {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// RunAsync steps s in a background goroutine, either forever (steps<=0)
// or for the given number of steps, calling onStep (if non-nil) after
// every committed step. It mirrors a background-job wrapper polling a
// cancellation flag: the returned Job's Cancel requests cooperative stop
// before the solver begins its next step, rather than interrupting one
// already in progress.
func RunAsync(s *Solver, steps int, onStep func(step int, err error)) *Job {
	j := &Job{cancel: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(j.done)
		for i := 0; steps <= 0 || i < steps; i++ {
			select {
			case <-j.cancel:
				j.mu.Lock()
				j.err = solver.ErrCancelled
				j.mu.Unlock()
				return
			default:
			}
			err := s.Step()
			if onStep != nil {
				onStep(i, err)
			}
			if err != nil {
				j.mu.Lock()
				j.err = err
				j.mu.Unlock()
				return
			}
		}
	}()
	return j
}
