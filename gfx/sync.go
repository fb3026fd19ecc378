// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"context"
	"sync"
)

// Fence is a host-visible completion signal. Once signaled it stays
// signaled until Reset is called. The zero value is an unsignaled fence.
type Fence struct {
	mu       sync.Mutex
	signaled bool
	done     chan struct{}
}

// NewFence creates a fence, optionally already signaled.
func NewFence(signaled bool) *Fence {
	f := &Fence{done: make(chan struct{})}
	if signaled {
		f.signaled = true
		close(f.done)
	}
	return f
}

// Signal marks the fence as signaled and wakes every waiter.
func (f *Fence) Signal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lazyInit()
	if !f.signaled {
		f.signaled = true
		close(f.done)
	}
}

// Signaled reports the current state without blocking.
func (f *Fence) Signaled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signaled || f.done == nil {
		f.signaled = false
		f.done = make(chan struct{})
	}
}

// Wait blocks until the fence is signaled or ctx is done.
func (f *Fence) Wait(ctx context.Context) error {
	f.mu.Lock()
	f.lazyInit()
	done := f.done
	f.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lazyInit must be called with f.mu held.
func (f *Fence) lazyInit() {
	if f.done == nil {
		f.done = make(chan struct{})
	}
}

// Semaphore is a binary signal consumed by exactly one wait.
// The zero value is an unsignaled semaphore.
type Semaphore struct {
	once sync.Once
	ch   chan struct{}
}

// NewSemaphore creates an unsignaled semaphore.
func NewSemaphore() *Semaphore {
	return &Semaphore{ch: make(chan struct{}, 1)}
}

// Signal sets the semaphore. Signaling an already signaled semaphore
// has no further effect.
func (s *Semaphore) Signal() {
	s.init()
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the semaphore is signaled, consuming the signal,
// or until ctx is done.
func (s *Semaphore) Wait(ctx context.Context) error {
	s.init()
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Semaphore) init() {
	s.once.Do(func() {
		if s.ch == nil {
			s.ch = make(chan struct{}, 1)
		}
	})
}
