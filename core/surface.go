// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	"github.com/sirupsen/logrus"
)

// Surface is the presentable target bound to a window.
// Everything it reports is derived from the window at query time.
type Surface struct {
	window Window
}

// FromWindow creates a surface holding a copy of w.
func FromWindow(w Window) Surface {
	return Surface{window: w}
}

// Window returns the surface's window.
func (s Surface) Window() Window {
	return s.window
}

// SwapchainFormats returns the formats matching the window's pixel format,
// most preferred first. An empty list means no compatible format is known.
func (s Surface) SwapchainFormats() []gfx.Format {
	pf := s.window.PixelFormat()

	switch {
	case pf.ColorBits == 24 && pf.AlphaBits == 8 && pf.SRGB:
		return []gfx.Format{gfx.FormatRGBA8Srgb, gfx.FormatBGRA8Srgb}
	case pf.ColorBits == 24 && pf.AlphaBits == 8:
		return []gfx.Format{gfx.FormatRGBA8Unorm, gfx.FormatBGRA8Unorm}
	}
	return []gfx.Format{}
}

// PreferredFormat returns the first recommended format, or
// gfx.ErrUnsupportedFormat when the surface recommends none.
func (s Surface) PreferredFormat() (gfx.Format, error) {
	formats := s.SwapchainFormats()
	if len(formats) == 0 {
		pf := s.window.PixelFormat()
		Logger().WithFields(logrus.Fields{
			"colorBits": pf.ColorBits,
			"alphaBits": pf.AlphaBits,
			"srgb":      pf.SRGB,
		}).Warn("no swapchain format for pixel format")
		return gfx.FormatUndefined, gfx.ErrUnsupportedFormat
	}
	return formats[0], nil
}

// Compatibility reports the surface capabilities, the recommended formats and
// the supported present modes for an adapter. The format list is never nil;
// an empty list means no format is recommended, while nil would mean any
// format is accepted.
func (s Surface) Compatibility(pd *device.PhysicalDevice) (gfx.SurfaceCapabilities, []gfx.Format, []gfx.PresentMode) {
	extent := s.window.WindowExtent().To2D()
	pf := s.window.PixelFormat()

	count := pf.ImageCount()
	caps := gfx.SurfaceCapabilities{
		ImageCount:     gfx.ImageCountRange{Min: count, Max: count},
		CurrentExtent:  &extent,
		Extents:        gfx.ExtentRange{Start: extent, End: extent},
		MaxImageLayers: 1,
		Usage:          gfx.UsageColorAttachment | gfx.UsageTransferSrc,
		CompositeAlpha: gfx.CompositeAlphaOpaque,
	}

	modes := append([]gfx.PresentMode(nil), s.window.nativeProfile().PresentModes()...)
	return caps, s.SwapchainFormats(), modes
}

// SupportsQueueFamily reports whether the family can present to the surface.
func (s Surface) SupportsQueueFamily(family device.QueueFamily) bool {
	return s.window.nativeProfile().SupportsPresentation(family)
}

var _ Instance = Surface{}

// EnumerateAdapters implements Instance. The surface's window context
// provides a single canvas-backed adapter.
func (s Surface) EnumerateAdapters() []device.Adapter {
	canvas := device.NewCanvas(s.window.Extent())
	adapter := device.NewAdapter(device.Selector{}, canvas)

	Logger().WithFields(logrus.Fields{
		"adapter": adapter.Info.Name,
		"backend": adapter.Info.Backend,
		"canvas":  canvas.ID(),
	}).Info("adapter enumerated")
	return []device.Adapter{adapter}
}

// NewSwapchain validates cfg against the surface's current capabilities
// and allocates its framebuffers through alloc, which must not be nil.
func (s Surface) NewSwapchain(pd *device.PhysicalDevice, cfg gfx.SwapchainConfig, alloc FramebufferAllocator) (*Swapchain, error) {
	if alloc == nil {
		return nil, errors.New("swapchain requires a framebuffer allocator")
	}
	sc := &Swapchain{alloc: alloc}
	if err := sc.build(s, pd, cfg); err != nil {
		return nil, err
	}
	return sc, nil
}
