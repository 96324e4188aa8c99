// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a fixed-size worker pool whose lifetime is scoped
// to a single parallel operation.
//
// Workers are spawned by New and stay alive until Close, which also waits for
// every worker goroutine to exit. Tasks report failures by returning an error
// or by panicking; both are collected and returned from Run, so a failed
// operation is never mistaken for a completed one.
//
// Usage:
//
//	pool := workerpool.New(workers)
//	defer pool.Close()
//
//	err := pool.Run(len(ranges), func(i int) error {
//	    return processRows(ranges[i])
//	})
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrClosed is returned when work is submitted to a closed pool.
	ErrClosed = errors.New("workerpool: pool is closed")

	// ErrPanic wraps the value of a task that panicked.
	ErrPanic = errors.New("workerpool: task panicked")
)

// Pool is a fixed set of worker goroutines consuming tasks from a shared channel.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	// exited is released by each worker goroutine on return.
	exited sync.WaitGroup
	live   atomic.Int32
}

// workItem is one task plus the barrier and error sink of the Run call that submitted it.
type workItem struct {
	fn      func() error
	barrier *sync.WaitGroup
	errs    *collector
}

// collector accumulates task failures from concurrent workers.
type collector struct {
	mu  sync.Mutex
	err *multierror.Error
}

func (c *collector) add(err error) {
	c.mu.Lock()
	c.err = multierror.Append(c.err, err)
	c.mu.Unlock()
}

func (c *collector) result() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err.ErrorOrNil()
}

// New creates a pool with numWorkers goroutines, spawned immediately.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	p.exited.Add(numWorkers)
	p.live.Add(int32(numWorkers))
	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker() {
	defer func() {
		p.live.Add(-1)
		p.exited.Done()
	}()
	for item := range p.workC {
		if err := call(item.fn); err != nil {
			item.errs.add(err)
		}
		item.barrier.Done()
	}
}

// call runs fn, converting a panic into an error wrapping ErrPanic.
func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Live returns the number of worker goroutines that have not yet exited.
// It is zero once Close has returned.
func (p *Pool) Live() int {
	return int(p.live.Load())
}

// Close stops accepting work and blocks until every worker goroutine has exited.
// Tasks already queued still run. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
	p.exited.Wait()
}

// Run executes fn(i) for each i in [0, n) on the pool's workers and blocks
// until all of them have finished. Every failure is collected; the returned
// error is nil only if all n tasks succeeded. Run must not race with Close.
func (p *Pool) Run(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if p.closed.Load() {
		return ErrClosed
	}

	var (
		wg   sync.WaitGroup
		errs collector
	)
	wg.Add(n)
	for i := range n {
		p.workC <- workItem{
			fn: func() error {
				return fn(i)
			},
			barrier: &wg,
			errs:    &errs,
		}
	}

	wg.Wait()
	return errs.result()
}
