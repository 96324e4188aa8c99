// Copyright 2026 The go-matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// WorkersPool bounds the number of goroutines running fork/join tasks.
//
// The goroutine that starts the computation counts as one worker, so at most
// maxParallelism-1 extra goroutines are forked at any time. When the pool is
// full, a forked task runs inline on the caller instead of waiting.
type WorkersPool struct {
	maxParallelism int

	mu         sync.Mutex
	numRunning int
	peak       int

	// running is released by every forked goroutine on exit.
	running sync.WaitGroup
}

// NewWorkersPoolWithMax creates a pool allowing maxParallelism concurrent workers,
// the calling goroutine included. Values below 1 are treated as 1.
func NewWorkersPoolWithMax(maxParallelism int) *WorkersPool {
	return &WorkersPool{maxParallelism: max(maxParallelism, 1)}
}

// MaxParallelism returns the configured max parallelism.
func (p *WorkersPool) MaxParallelism() int {
	return p.maxParallelism
}

// lockedIsFull returns whether all workers are busy (must hold lock).
func (p *WorkersPool) lockedIsFull() bool {
	return p.numRunning >= p.maxParallelism-1
}

// StartIfAvailable runs task on g in a new goroutine if a worker is free.
// Returns false, without running task, if the pool is full.
func (p *WorkersPool) StartIfAvailable(g *errgroup.Group, task func() error) bool {
	p.mu.Lock()
	if p.lockedIsFull() {
		p.mu.Unlock()
		return false
	}
	p.numRunning++
	p.peak = max(p.peak, p.numRunning)
	p.running.Add(1)
	p.mu.Unlock()

	g.Go(func() error {
		defer p.release()
		return task()
	})
	return true
}

func (p *WorkersPool) release() {
	p.mu.Lock()
	p.numRunning--
	p.mu.Unlock()
	p.running.Done()
}

// Invoke runs left and right, possibly concurrently, and returns once both
// have completed. left is forked onto a free worker when one is available and
// otherwise runs inline; right always runs on the calling goroutine. The
// left error takes precedence over the right one.
func (p *WorkersPool) Invoke(left, right func() error) error {
	var (
		g       errgroup.Group
		leftErr error
	)
	if !p.StartIfAvailable(&g, left) {
		leftErr = left()
	}
	rightErr := right()
	if err := g.Wait(); err != nil {
		leftErr = err
	}
	if leftErr != nil {
		return leftErr
	}
	return rightErr
}

// Running returns the number of forked goroutines that have not finished.
func (p *WorkersPool) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numRunning
}

// Peak returns the largest number of forked goroutines alive at once.
func (p *WorkersPool) Peak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}

// Wait blocks until every forked goroutine has finished.
func (p *WorkersPool) Wait() {
	p.running.Wait()
}
