package view

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"gcodeview/hal"
)

// LoopState is the lifecycle state of a RenderLoop.
type LoopState uint8

const (
	LoopRunning LoopState = iota
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	default:
		return fmt.Sprintf("LoopState(%d)", uint8(s))
	}
}

var errNoScheduler = errors.New("view: no frame scheduler")

// PanicError is a panic recovered from a frame.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// RenderLoop calls a frame function once per host frame until it is stopped,
// its context is cancelled, or a frame fails. A stopped loop never restarts.
type RenderLoop struct {
	ctx   context.Context
	sched hal.FrameScheduler
	log   hal.Logger
	frame func() error

	state  LoopState
	id     hal.FrameID
	err    error
	frames uint64
}

// StartLoop schedules frame on the next host frame and returns the running
// loop. A frame error or panic is logged and stops the loop; Err keeps it.
func StartLoop(ctx context.Context, sched hal.FrameScheduler, log hal.Logger, frame func() error) *RenderLoop {
	if ctx == nil {
		ctx = context.Background()
	}
	l := &RenderLoop{ctx: ctx, sched: sched, log: log, frame: frame}
	if sched == nil || frame == nil {
		l.state = LoopStopped
		l.err = errNoScheduler
		return l
	}
	l.id = sched.RequestFrame(l.tick)
	return l
}

func (l *RenderLoop) State() LoopState { return l.state }

// Alive reports whether the loop is still scheduling frames.
func (l *RenderLoop) Alive() bool { return l.state == LoopRunning }

// Err returns the error that stopped the loop, if any.
func (l *RenderLoop) Err() error { return l.err }

// Frames returns the number of frames completed without error.
func (l *RenderLoop) Frames() uint64 { return l.frames }

// Stop cancels the pending frame. It is safe to call more than once and from
// inside the frame function.
func (l *RenderLoop) Stop() {
	if l.state == LoopStopped {
		return
	}
	l.state = LoopStopped
	if l.id != 0 {
		l.sched.CancelFrame(l.id)
		l.id = 0
	}
}

func (l *RenderLoop) tick() {
	l.id = 0
	if l.state != LoopRunning {
		return
	}
	if l.ctx.Err() != nil {
		l.Stop()
		return
	}
	if err := l.runFrame(); err != nil {
		l.fail(err)
		return
	}
	l.frames++
	if l.state == LoopRunning {
		l.id = l.sched.RequestFrame(l.tick)
	}
}

func (l *RenderLoop) runFrame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return l.frame()
}

func (l *RenderLoop) fail(err error) {
	l.err = err
	l.Stop()
	if l.log == nil {
		return
	}
	l.log.WriteLineString("view: render failed: " + err.Error())
	var pe *PanicError
	if errors.As(err, &pe) {
		for _, line := range strings.Split(string(pe.Stack), "\n") {
			if line == "" {
				continue
			}
			l.log.WriteLineString(line)
		}
	}
}
