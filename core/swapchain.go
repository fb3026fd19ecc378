// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	"github.com/sirupsen/logrus"
)

// Framebuffer is an opaque handle to a framebuffer object.
type Framebuffer uint32

// FramebufferAllocator creates and frees the framebuffers backing a swapchain.
type FramebufferAllocator interface {
	// Allocate creates count framebuffers of the given extent and format.
	Allocate(count uint32, extent gfx.Extent2D, format gfx.Format) ([]Framebuffer, error)

	// Release frees framebuffers previously returned by Allocate.
	Release(fbos []Framebuffer)
}

type swapchainState int

const (
	swapchainReady swapchainState = iota
	swapchainOutOfDate
	swapchainSurfaceLost
)

var _ gfx.Releasable = (*Swapchain)(nil)

// Swapchain is the chain of framebuffers presented to a surface.
type Swapchain struct {
	mu    sync.Mutex
	alloc FramebufferAllocator
	cfg   gfx.SwapchainConfig
	fbos  []Framebuffer
	state swapchainState
}

func (sc *Swapchain) build(s Surface, pd *device.PhysicalDevice, cfg gfx.SwapchainConfig) error {
	caps, formats, modes := s.Compatibility(pd)
	if len(formats) == 0 {
		return gfx.ErrUnsupportedFormat
	}
	if err := validateConfig(caps, formats, modes, cfg); err != nil {
		return err
	}

	fbos, err := sc.alloc.Allocate(cfg.ImageCount, cfg.Extent, cfg.Format)
	if err != nil {
		return fmt.Errorf("framebuffer allocation: %w", err)
	}
	if uint32(len(fbos)) != cfg.ImageCount {
		sc.alloc.Release(fbos)
		return fmt.Errorf("framebuffer allocation returned %d of %d framebuffers", len(fbos), cfg.ImageCount)
	}

	sc.cfg = cfg
	sc.fbos = fbos
	sc.state = swapchainReady

	Logger().WithFields(logrus.Fields{
		"extent":      cfg.Extent.String(),
		"format":      cfg.Format.String(),
		"images":      cfg.ImageCount,
		"presentMode": cfg.PresentMode.String(),
	}).Debug("swapchain created")
	return nil
}

// Extent returns the extent agreed at creation.
func (sc *Swapchain) Extent() gfx.Extent2D {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg.Extent
}

// Config returns the configuration the swapchain was created with.
func (sc *Swapchain) Config() gfx.SwapchainConfig {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg
}

// Framebuffers returns the framebuffer handles in presentation order.
func (sc *Swapchain) Framebuffers() []Framebuffer {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return append([]Framebuffer(nil), sc.fbos...)
}

// AcquireImage returns the index of the next image to render into and
// whether the swapchain no longer matches the surface exactly.
// The window's default framebuffer is always the target, so the index is
// always zero and the call never blocks; timeout is accepted for
// compatibility with backends that wait. When non-nil, sem and fence are
// signaled once the image is ready for rendering.
func (sc *Swapchain) AcquireImage(timeout time.Duration, sem *gfx.Semaphore, fence *gfx.Fence) (uint32, bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := sc.stateErr(); err != nil {
		return 0, false, err
	}
	if sem != nil {
		sem.Signal()
	}
	if fence != nil {
		fence.Signal()
	}
	return 0, false, nil
}

// Present queues the image at index for presentation.
func (sc *Swapchain) Present(index uint32) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := sc.stateErr(); err != nil {
		return err
	}
	if int(index) >= len(sc.fbos) {
		return fmt.Errorf("image %d of %d: %w", index, len(sc.fbos), gfx.ErrInvalidImage)
	}
	return nil
}

// MarkOutOfDate records that the surface changed since creation.
// Acquisition fails with gfx.ErrOutOfDate until Recreate is called.
func (sc *Swapchain) MarkOutOfDate() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.state == swapchainReady {
		sc.state = swapchainOutOfDate
	}
}

// MarkSurfaceLost records that the native surface was destroyed.
// Acquisition fails with gfx.ErrSurfaceLost from then on.
func (sc *Swapchain) MarkSurfaceLost() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.state = swapchainSurfaceLost
}

// Recreate releases the current framebuffers and builds the swapchain again
// against the surface's current state. If the build fails the swapchain
// reports gfx.ErrOutOfDate until a later Recreate succeeds.
func (sc *Swapchain) Recreate(s Surface, pd *device.PhysicalDevice, cfg gfx.SwapchainConfig) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.state == swapchainSurfaceLost {
		return gfx.ErrSurfaceLost
	}
	// Without framebuffers the chain stays out of date until a build succeeds.
	sc.state = swapchainOutOfDate
	sc.releaseFramebuffers()
	return sc.build(s, pd, cfg)
}

// Release frees the swapchain's framebuffers.
func (sc *Swapchain) Release() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.releaseFramebuffers()
}

func (sc *Swapchain) releaseFramebuffers() {
	if len(sc.fbos) > 0 {
		sc.alloc.Release(sc.fbos)
	}
	sc.fbos = nil
}

func (sc *Swapchain) stateErr() error {
	switch sc.state {
	case swapchainOutOfDate:
		return gfx.ErrOutOfDate
	case swapchainSurfaceLost:
		return gfx.ErrSurfaceLost
	}
	return nil
}
