package host

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/vr4300/debug"
)

var errTest = errors.New("tick failed")

// testMachine counts ticks, finishing or failing at a given tick.
type testMachine struct {
	ticks    atomic.Uint64
	finally  atomic.Int32
	doneAt   uint64
	failAt   uint64
	finalErr error
}

func (tm *testMachine) Tick() (done bool, err error) {
	ticks := tm.ticks.Add(1)
	if tm.failAt != 0 && ticks == tm.failAt {
		err = errTest
		return
	}
	done = tm.doneAt != 0 && ticks >= tm.doneAt
	return
}

func (tm *testMachine) Finally() error {
	tm.finally.Add(1)
	return tm.finalErr
}

func (tm *testMachine) PC() uint64 {
	return 0x8000_0000 + 4*tm.ticks.Load()
}

func waitBreak(t *testing.T, breaks chan struct{}) {
	select {
	case <-breaks:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for a break")
	}
}

func TestRunner_Done(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{doneAt: 1000}
	r := NewRunner(tm, nil, nil)

	require.NoError(t, r.Start(context.Background()))
	assert.NoError(r.Wait())

	assert.False(r.Running())
	assert.Equal(uint64(1000), tm.ticks.Load())
	assert.Equal(uint64(1000), r.Ticks())
	assert.Equal(int32(1), tm.finally.Load())
}

func TestRunner_Limit(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{}
	r := NewRunner(tm, nil, nil)
	r.Limit = 50

	var last atomic.Uint64
	r.OnTick = func(ticks uint64) { last.Store(ticks) }

	require.NoError(t, r.Start(context.Background()))
	assert.NoError(r.Wait())
	assert.Equal(uint64(50), tm.ticks.Load())
	assert.Equal(uint64(50), last.Load())
}

func TestRunner_Error(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{failAt: 5, finalErr: errors.New("finalize")}
	r := NewRunner(tm, nil, nil)

	require.NoError(t, r.Start(context.Background()))
	err := r.Wait()
	assert.ErrorIs(err, errTest)
	assert.ErrorContains(err, "finalize")
	assert.Equal(uint64(4), r.Ticks())
	assert.Equal(int32(1), tm.finally.Load())
}

func TestRunner_BreakStep(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{}
	d := debug.NewDebugger(nil)
	r := NewRunner(tm, d, nil)

	breaks := make(chan struct{}, 4)
	r.OnBreak = func() { breaks <- struct{}{} }

	// A break requested before the start stops before the first tick.
	d.Break()
	require.NoError(t, r.Start(context.Background()))
	waitBreak(t, breaks)
	assert.True(r.Running())
	assert.Equal(uint64(0), tm.ticks.Load())

	assert.ErrorIs(r.Start(context.Background()), ErrRunning)

	// Each step runs exactly one tick, then stops again.
	for n := range 3 {
		d.StepNext()
		waitBreak(t, breaks)
		assert.Equal(uint64(n+1), tm.ticks.Load())
		assert.True(d.BreakActive())
	}

	r.Interrupt()
	assert.ErrorIs(r.Wait(), ErrInterrupted)
	assert.False(r.Running())
	assert.Equal(uint64(3), tm.ticks.Load())
	assert.Equal(int32(1), tm.finally.Load())
}

func TestRunner_InterruptResume(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{}
	d := debug.NewDebugger(nil)
	r := NewRunner(tm, d, nil)

	breaks := make(chan struct{}, 4)
	r.OnBreak = func() { breaks <- struct{}{} }

	require.NoError(t, r.Start(context.Background()))
	d.Break()
	waitBreak(t, breaks)

	r.Interrupt()
	assert.ErrorIs(r.Wait(), ErrInterrupted)
	stopped := tm.ticks.Load()

	// Resumed, the machine runs on to completion.
	tm.doneAt = stopped + 10
	d.Resume()
	require.NoError(t, r.Resume(context.Background()))
	assert.NoError(r.Wait())
	assert.Equal(stopped+10, tm.ticks.Load())
	assert.Equal(int32(2), tm.finally.Load())
}

func TestRunner_Cancel(t *testing.T) {
	assert := assert.New(t)

	tm := &testMachine{}
	r := NewRunner(tm, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, r.Start(ctx))
	cancel()

	assert.ErrorIs(r.Wait(), ErrInterrupted)
	assert.Equal(int32(1), tm.finally.Load())
}

func TestRunner_Idle(t *testing.T) {
	assert := assert.New(t)

	r := NewRunner(&testMachine{}, nil, nil)
	assert.NoError(r.Wait())
	assert.False(r.Running())
	r.Interrupt()
}
