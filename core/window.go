// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	"github.com/sirupsen/logrus"
)

// PixelFormat describes the pixel layout of a window's drawable.
type PixelFormat struct {
	ColorBits    uint32 `json:"colorBits"`
	AlphaBits    uint32 `json:"alphaBits"`
	SRGB         bool   `json:"srgb"`
	DoubleBuffer bool   `json:"doubleBuffer"`

	// Samples is the multisampling level, zero when disabled.
	Samples uint32 `json:"samples,omitempty"`
}

// Multisampling returns the sample count if multisampling is enabled.
func (pf PixelFormat) Multisampling() (uint32, bool) {
	return pf.Samples, pf.Samples != 0
}

// ImageCount is the number of presentable images the format implies.
func (pf PixelFormat) ImageCount() uint32 {
	if pf.DoubleBuffer {
		return 2
	}
	return 1
}

// Profile answers the native capability queries of a platform.
type Profile interface {
	// PixelFormat returns the pixel format of the native drawable.
	PixelFormat() PixelFormat

	// HiDPIFactor returns the device pixel ratio of the display.
	HiDPIFactor() float64

	// PresentModes returns the supported present modes, most preferred first.
	PresentModes() []gfx.PresentMode

	// SupportsPresentation reports whether the queue family can present.
	SupportsPresentation(family device.QueueFamily) bool
}

// DefaultProfile is the fixed policy used when no native query is available:
// 24 color bits, 8 alpha bits, linear, double-buffered, no multisampling,
// a device pixel ratio of one and FIFO presentation from every queue family.
type DefaultProfile struct{}

// PixelFormat implements Profile.
func (DefaultProfile) PixelFormat() PixelFormat {
	return PixelFormat{
		ColorBits:    24,
		AlphaBits:    8,
		SRGB:         false,
		DoubleBuffer: true,
	}
}

// HiDPIFactor implements Profile.
func (DefaultProfile) HiDPIFactor() float64 {
	return 1.0
}

// PresentModes implements Profile.
func (DefaultProfile) PresentModes() []gfx.PresentMode {
	return []gfx.PresentMode{gfx.PresentModeFifo}
}

// SupportsPresentation implements Profile.
func (DefaultProfile) SupportsPresentation(device.QueueFamily) bool {
	return true
}

// StaticProfile answers every query from fixed values. Every queue family
// can present.
type StaticProfile struct {
	Format PixelFormat
	DPI    float64
	Modes  []gfx.PresentMode
}

// PixelFormat implements Profile.
func (p StaticProfile) PixelFormat() PixelFormat {
	return p.Format
}

// HiDPIFactor implements Profile. A zero DPI reports 1.0.
func (p StaticProfile) HiDPIFactor() float64 {
	if p.DPI == 0 {
		return 1.0
	}
	return p.DPI
}

// PresentModes implements Profile. No modes reports FIFO.
func (p StaticProfile) PresentModes() []gfx.PresentMode {
	if len(p.Modes) == 0 {
		return []gfx.PresentMode{gfx.PresentModeFifo}
	}
	return p.Modes
}

// SupportsPresentation implements Profile.
func (StaticProfile) SupportsPresentation(device.QueueFamily) bool {
	return true
}

// Window is a snapshot of an on-screen surface's drawable state.
// It is a small value and is copied rather than shared.
type Window struct {
	extent  gfx.Extent2D
	profile Profile
}

// NewWindow creates a window snapshot. A nil profile selects DefaultProfile.
func NewWindow(extent gfx.Extent2D, profile Profile) Window {
	if profile == nil {
		profile = DefaultProfile{}
	}
	return Window{
		extent:  extent,
		profile: profile,
	}
}

// NewDefaultWindow creates a window of the given size using DefaultProfile.
func NewDefaultWindow(width, height uint32) Window {
	return NewWindow(gfx.Extent2D{Width: width, Height: height}, nil)
}

func (w Window) nativeProfile() Profile {
	if w.profile == nil {
		return DefaultProfile{}
	}
	return w.profile
}

// PixelFormat returns the window's current pixel format.
func (w Window) PixelFormat() PixelFormat {
	return w.nativeProfile().PixelFormat()
}

// Extent returns the drawable size.
func (w Window) Extent() gfx.Extent2D {
	return w.extent
}

// WindowExtent returns the drawable size as a 3D extent with a depth of one.
func (w Window) WindowExtent() gfx.Extent3D {
	return gfx.Extent3D{
		Width:  w.extent.Width,
		Height: w.extent.Height,
		Depth:  1,
	}
}

// HiDPIFactor returns the device pixel ratio of the window's display.
func (w Window) HiDPIFactor() float64 {
	return w.nativeProfile().HiDPIFactor()
}

// Resize accepts a resize request. The windowing system performs the
// resize itself; the snapshot is unchanged.
func (w Window) Resize(params ...interface{}) {
	Logger().WithFields(logrus.Fields{
		"extent": w.extent.String(),
		"params": params,
	}).Debug("window resize requested")
}
