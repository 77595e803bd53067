// Package host runs a machine on its own goroutine, under the control of
// the caller's goroutine.
package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrInterrupted = errors.New(f("the system was interrupted"))
	ErrRunning     = errors.New(f("the system is already running"))
)

// Machine is stepped by the run loop.
type Machine interface {
	Tick() (done bool, err error)
	Finally() error
	PC() uint64
}

// Control carries break and step requests into the run loop.
// *debug.Debugger is one.
type Control interface {
	Break()
	BreakActive() bool
	TakeStep() bool
	Wake() <-chan struct{}
}

// Runner owns the execution goroutine.
//
// Requests are only observed between instructions. When the loop exits,
// for any reason, Machine.Finally is called on the execution goroutine.
type Runner struct {
	Verbose bool
	Log     logrus.FieldLogger

	Machine Machine
	Control Control

	Limit   uint64             // Stop once Ticks reaches this, if non-zero.
	OnBreak func()             // Called on the execution goroutine at each break.
	OnTick  func(ticks uint64) // Called after every tick, if set.

	mutex   sync.Mutex
	group   *errgroup.Group
	cancel  context.CancelFunc
	ticks   atomic.Uint64
	running atomic.Bool
}

// NewRunner creates a runner for a machine.
func NewRunner(machine Machine, control Control, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{
		Log:     log.WithField("component", "host"),
		Machine: machine,
		Control: control,
	}
}

// Start the run loop. It returns once the loop goroutine is running.
func (r *Runner) Start(ctx context.Context) (err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.running.Load() {
		err = ErrRunning
		return
	}

	r.running.Store(true)

	stop := &atomic.Bool{}

	group, gctx := errgroup.WithContext(ctx)
	loopCtx, cancel := context.WithCancel(gctx)
	r.group = group
	r.cancel = cancel

	group.Go(func() error {
		defer cancel()
		return r.loop(loopCtx, stop)
	})

	// Watch for cancellation from outside the loop.
	group.Go(func() error {
		<-loopCtx.Done()
		stop.Store(true)
		return nil
	})

	return
}

// Resume restarts the run loop after an interrupt or a failure. The tick
// count is kept.
func (r *Runner) Resume(ctx context.Context) error {
	return r.Start(ctx)
}

// Interrupt asks the run loop to exit with ErrInterrupted.
func (r *Runner) Interrupt() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
}

// Wait for the run loop to exit, returning its error.
func (r *Runner) Wait() error {
	r.mutex.Lock()
	group := r.group
	r.mutex.Unlock()

	if group == nil {
		return nil
	}
	return group.Wait()
}

// Running returns true while the run loop goroutine is active.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Ticks returns the number of ticks run by this runner.
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

func (r *Runner) loop(ctx context.Context, stop *atomic.Bool) (err error) {
	defer func() {
		err = errors.Join(err, r.Machine.Finally())
		r.running.Store(false)
	}()

	if r.Verbose {
		r.Log.Infof("continue at 0x%08x", uint32(r.Machine.PC()))
	}

	var stepping, broken bool
	for !stop.Load() {
		if r.Control != nil {
			if r.Control.TakeStep() {
				stepping = true
				broken = false
			}

			if !stepping && r.Control.BreakActive() {
				if !broken {
					broken = true
					if r.Verbose {
						r.Log.Infof("break at 0x%08x", uint32(r.Machine.PC()))
					}
					if r.OnBreak != nil {
						r.OnBreak()
					}
				}

				select {
				case <-ctx.Done():
					stop.Store(true)
				case <-r.Control.Wake():
				}
				continue
			}
			broken = false
		}

		var done bool
		done, err = r.Machine.Tick()
		if err != nil {
			return
		}

		ticks := r.ticks.Add(1)
		if r.OnTick != nil {
			r.OnTick(ticks)
		}

		if done || (r.Limit != 0 && ticks >= r.Limit) {
			return
		}

		if stepping {
			stepping = false
			r.Control.Break()
		}
	}

	err = ErrInterrupted
	return
}
