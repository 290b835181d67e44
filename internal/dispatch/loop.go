package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrLoopClosed is returned for work submitted after Close.
var ErrLoopClosed = errors.New("render loop closed")

type task struct {
	fn     func() error
	result chan error
}

// Loop runs render closures one at a time on a single goroutine, in the
// order they were handed over. Every surface mutation goes through it.
type Loop struct {
	tasks     chan task
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewLoop starts the render goroutine.
func NewLoop() *Loop {
	l := &Loop{
		tasks:   make(chan task),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case t := <-l.tasks:
			t.result <- l.exec(t.fn)
		case <-l.done:
			return
		}
	}
}

func (l *Loop) exec(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()
	return fn()
}

// Do runs fn on the loop and waits for its result. If ctx ends before the
// loop accepts fn, fn never runs.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	t := task{fn: fn, result: make(chan error, 1)}
	select {
	case l.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopClosed
	}
	return <-t.result
}

// Close stops the loop after the closure in progress, if any, returns.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
	<-l.stopped
}
