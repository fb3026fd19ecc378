// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koruwsi/core"
	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
)

type recordingAllocator struct {
	next     core.Framebuffer
	live     map[core.Framebuffer]bool
	events   []string
	failWith error
}

func newRecordingAllocator() *recordingAllocator {
	return &recordingAllocator{next: 1, live: map[core.Framebuffer]bool{}}
}

func (a *recordingAllocator) Allocate(count uint32, extent gfx.Extent2D, format gfx.Format) ([]core.Framebuffer, error) {
	if a.failWith != nil {
		return nil, a.failWith
	}
	a.events = append(a.events, "allocate")
	fbos := make([]core.Framebuffer, count)
	for i := range fbos {
		fbos[i] = a.next
		a.live[a.next] = true
		a.next++
	}
	return fbos, nil
}

func (a *recordingAllocator) Release(fbos []core.Framebuffer) {
	a.events = append(a.events, "release")
	for _, fbo := range fbos {
		delete(a.live, fbo)
	}
}

func newTestSwapchain(c *qt.C, w core.Window) (core.Surface, *device.PhysicalDevice, *core.Swapchain, *recordingAllocator) {
	s := core.FromWindow(w)
	pd := s.EnumerateAdapters()[0].PhysicalDevice
	caps, formats, modes := s.Compatibility(pd)
	cfg, err := core.NegotiateConfig(caps, formats, modes, gfx.SwapchainConfig{})
	c.Assert(err, qt.IsNil)

	alloc := newRecordingAllocator()
	sc, err := s.NewSwapchain(pd, cfg, alloc)
	c.Assert(err, qt.IsNil)
	return s, pd, sc, alloc
}

func TestSwapchainCreation(t *testing.T) {
	c := qt.New(t)
	_, _, sc, alloc := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	c.Assert(sc.Extent(), qt.Equals, gfx.Extent2D{Width: 800, Height: 600})
	c.Assert(len(sc.Framebuffers()), qt.Equals, 2)
	c.Assert(len(alloc.live), qt.Equals, 2)
	c.Assert(sc.Config().Format, qt.Equals, gfx.FormatRGBA8Unorm)

	sc.Release()
	c.Assert(len(alloc.live), qt.Equals, 0)
	c.Assert(len(sc.Framebuffers()), qt.Equals, 0)
}

func TestSwapchainSingleBuffered(t *testing.T) {
	c := qt.New(t)
	_, _, sc, _ := newTestSwapchain(c, windowWithFormat(core.PixelFormat{ColorBits: 24, AlphaBits: 8}))
	c.Assert(len(sc.Framebuffers()), qt.Equals, 1)
}

func TestAcquireImageReturnsZero(t *testing.T) {
	c := qt.New(t)
	_, _, sc, _ := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	for _, timeout := range []time.Duration{0, time.Nanosecond, time.Second, time.Duration(1<<63 - 1)} {
		index, suboptimal, err := sc.AcquireImage(timeout, nil, nil)
		c.Assert(err, qt.IsNil)
		c.Assert(index, qt.Equals, uint32(0))
		c.Assert(suboptimal, qt.Equals, false)
	}
}

func TestAcquireImageSignalsSync(t *testing.T) {
	c := qt.New(t)
	_, _, sc, _ := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	sem := gfx.NewSemaphore()
	fence := gfx.NewFence(false)
	_, _, err := sc.AcquireImage(0, sem, fence)
	c.Assert(err, qt.IsNil)
	c.Assert(fence.Signaled(), qt.Equals, true)

	ctx, cancel := contextWithTimeout(time.Second)
	defer cancel()
	c.Assert(sem.Wait(ctx), qt.IsNil)
	c.Assert(sc.Present(0), qt.IsNil)
}

func TestPresentInvalidIndex(t *testing.T) {
	c := qt.New(t)
	_, _, sc, _ := newTestSwapchain(c, core.NewDefaultWindow(800, 600))
	err := sc.Present(2)
	c.Assert(errors.Is(err, gfx.ErrInvalidImage), qt.Equals, true)
}

func TestAcquireOutOfDateAndRecreate(t *testing.T) {
	c := qt.New(t)
	_, pd, sc, alloc := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	sc.MarkOutOfDate()
	fence := gfx.NewFence(false)
	_, _, err := sc.AcquireImage(0, nil, fence)
	c.Assert(errors.Is(err, gfx.ErrOutOfDate), qt.Equals, true)
	c.Assert(fence.Signaled(), qt.Equals, false)
	c.Assert(errors.Is(sc.Present(0), gfx.ErrOutOfDate), qt.Equals, true)

	resized := core.FromWindow(core.NewDefaultWindow(1024, 768))
	caps, formats, modes := resized.Compatibility(pd)
	cfg, err := core.NegotiateConfig(caps, formats, modes, sc.Config())
	c.Assert(err, qt.IsNil)
	c.Assert(sc.Recreate(resized, pd, cfg), qt.IsNil)

	c.Assert(alloc.events, qt.DeepEquals, []string{"allocate", "release", "allocate"})
	c.Assert(sc.Extent(), qt.Equals, gfx.Extent2D{Width: 1024, Height: 768})
	c.Assert(len(alloc.live), qt.Equals, 2)

	_, _, err = sc.AcquireImage(0, nil, nil)
	c.Assert(err, qt.IsNil)
}

func TestAcquireSurfaceLost(t *testing.T) {
	c := qt.New(t)
	s, pd, sc, _ := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	sc.MarkSurfaceLost()
	sc.MarkOutOfDate()
	_, _, err := sc.AcquireImage(0, nil, nil)
	c.Assert(errors.Is(err, gfx.ErrSurfaceLost), qt.Equals, true)
	c.Assert(errors.Is(sc.Recreate(s, pd, sc.Config()), gfx.ErrSurfaceLost), qt.Equals, true)
}

func TestNewSwapchainRejectsIncompatibleConfig(t *testing.T) {
	c := qt.New(t)
	s := core.FromWindow(core.NewDefaultWindow(800, 600))
	pd := s.EnumerateAdapters()[0].PhysicalDevice
	base := gfx.SwapchainConfig{
		Format:         gfx.FormatBGRA8Unorm,
		Extent:         gfx.Extent2D{Width: 800, Height: 600},
		ImageCount:     2,
		ImageLayers:    1,
		PresentMode:    gfx.PresentModeFifo,
		CompositeAlpha: gfx.CompositeAlphaOpaque,
		Usage:          gfx.UsageColorAttachment,
	}

	alloc := newRecordingAllocator()
	sc, err := s.NewSwapchain(pd, base, alloc)
	c.Assert(err, qt.IsNil)
	sc.Release()

	tests := []struct {
		name   string
		modify func(*gfx.SwapchainConfig)
		want   error
	}{
		{"format", func(cfg *gfx.SwapchainConfig) { cfg.Format = gfx.FormatRGBA8Srgb }, gfx.ErrUnsupportedFormat},
		{"image count", func(cfg *gfx.SwapchainConfig) { cfg.ImageCount = 3 }, gfx.ErrIncompatibleConfig},
		{"extent", func(cfg *gfx.SwapchainConfig) { cfg.Extent.Width = 801 }, gfx.ErrIncompatibleConfig},
		{"layers", func(cfg *gfx.SwapchainConfig) { cfg.ImageLayers = 2 }, gfx.ErrIncompatibleConfig},
		{"present mode", func(cfg *gfx.SwapchainConfig) { cfg.PresentMode = gfx.PresentModeMailbox }, gfx.ErrIncompatibleConfig},
		{"composite alpha", func(cfg *gfx.SwapchainConfig) { cfg.CompositeAlpha = gfx.CompositeAlphaPreMultiplied }, gfx.ErrIncompatibleConfig},
		{"usage", func(cfg *gfx.SwapchainConfig) { cfg.Usage |= gfx.UsageStorage }, gfx.ErrIncompatibleConfig},
	}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			cfg := base
			test.modify(&cfg)
			_, err := s.NewSwapchain(pd, cfg, alloc)
			c.Assert(errors.Is(err, test.want), qt.Equals, true, qt.Commentf("got %v", err))
		})
	}
	c.Assert(len(alloc.live), qt.Equals, 0)
}

func TestNewSwapchainUnsupportedPixelFormat(t *testing.T) {
	c := qt.New(t)
	s := core.FromWindow(windowWithFormat(core.PixelFormat{ColorBits: 16, DoubleBuffer: true}))
	_, err := s.NewSwapchain(nil, gfx.SwapchainConfig{}, newRecordingAllocator())
	c.Assert(errors.Is(err, gfx.ErrUnsupportedFormat), qt.Equals, true)
}

func TestNewSwapchainAllocationFailure(t *testing.T) {
	c := qt.New(t)
	s := core.FromWindow(core.NewDefaultWindow(800, 600))
	caps, formats, modes := s.Compatibility(nil)
	cfg, err := core.NegotiateConfig(caps, formats, modes, gfx.SwapchainConfig{})
	c.Assert(err, qt.IsNil)

	alloc := newRecordingAllocator()
	alloc.failWith = errors.New("out of framebuffers")
	_, err = s.NewSwapchain(nil, cfg, alloc)
	c.Assert(err, qt.ErrorMatches, "framebuffer allocation: out of framebuffers")
}

func TestRecreateFailureLeavesOutOfDate(t *testing.T) {
	c := qt.New(t)
	s, pd, sc, alloc := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	sc.MarkOutOfDate()
	alloc.failWith = errors.New("out of framebuffers")
	err := sc.Recreate(s, pd, sc.Config())
	c.Assert(err, qt.ErrorMatches, "framebuffer allocation: out of framebuffers")
	c.Assert(sc.Framebuffers(), qt.HasLen, 0)

	_, _, err = sc.AcquireImage(0, nil, nil)
	c.Assert(errors.Is(err, gfx.ErrOutOfDate), qt.Equals, true)
	c.Assert(errors.Is(sc.Present(0), gfx.ErrOutOfDate), qt.Equals, true)

	alloc.failWith = nil
	c.Assert(sc.Recreate(s, pd, sc.Config()), qt.IsNil)
	index, _, err := sc.AcquireImage(0, nil, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(sc.Present(index), qt.IsNil)
}

func TestRecreateFailureFromReadyState(t *testing.T) {
	c := qt.New(t)
	s, pd, sc, alloc := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	alloc.failWith = errors.New("out of framebuffers")
	c.Assert(sc.Recreate(s, pd, sc.Config()), qt.Not(qt.IsNil))

	_, _, err := sc.AcquireImage(0, nil, nil)
	c.Assert(errors.Is(err, gfx.ErrOutOfDate), qt.Equals, true)
}

func TestNewSwapchainNilAllocator(t *testing.T) {
	c := qt.New(t)
	s := core.FromWindow(core.NewDefaultWindow(800, 600))
	caps, formats, modes := s.Compatibility(nil)
	cfg, err := core.NegotiateConfig(caps, formats, modes, gfx.SwapchainConfig{})
	c.Assert(err, qt.IsNil)

	sc, err := s.NewSwapchain(nil, cfg, nil)
	c.Assert(err, qt.ErrorMatches, "swapchain requires a framebuffer allocator")
	c.Assert(sc, qt.IsNil)
}

func TestAcquireImageZeroValueSync(t *testing.T) {
	c := qt.New(t)
	_, _, sc, _ := newTestSwapchain(c, core.NewDefaultWindow(800, 600))

	var sem gfx.Semaphore
	var fence gfx.Fence
	_, _, err := sc.AcquireImage(0, &sem, &fence)
	c.Assert(err, qt.IsNil)
	c.Assert(fence.Signaled(), qt.Equals, true)

	ctx, cancel := contextWithTimeout(time.Second)
	defer cancel()
	c.Assert(sem.Wait(ctx), qt.IsNil)
}

func BenchmarkAcquirePresent(b *testing.B) {
	s := core.FromWindow(core.NewDefaultWindow(800, 600))
	caps, formats, modes := s.Compatibility(nil)
	cfg, err := core.NegotiateConfig(caps, formats, modes, gfx.SwapchainConfig{})
	if err != nil {
		b.Fatal(err)
	}
	sc, err := s.NewSwapchain(nil, cfg, newRecordingAllocator())
	if err != nil {
		b.Fatal(err)
	}
	fence := gfx.NewFence(false)
	for idx := 0; idx < b.N; idx++ {
		fence.Reset()
		index, _, err := sc.AcquireImage(0, nil, fence)
		if err != nil {
			b.Fatal(err)
		}
		if err := sc.Present(index); err != nil {
			b.Fatal(err)
		}
	}
}
