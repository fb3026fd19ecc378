// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sdlwin answers native capability queries for SDL2 windows.
package sdlwin

import (
	"github.com/devblok/koruwsi/core"
	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	"github.com/veandco/go-sdl2/sdl"
)

// Profile implements core.Profile for an SDL2 window with a GL context.
type Profile struct {
	window *sdl.Window
}

// NewProfile creates a profile querying w.
func NewProfile(w *sdl.Window) *Profile {
	return &Profile{window: w}
}

// Window snapshots the current drawable size of the SDL window.
func (p *Profile) Window() core.Window {
	w, h := p.window.GLGetDrawableSize()
	return core.NewWindow(gfx.Extent2D{Width: uint32(w), Height: uint32(h)}, p)
}

func glAttribute(attr sdl.GLattr) uint32 {
	v, err := sdl.GLGetAttribute(attr)
	if err != nil || v < 0 {
		return 0
	}
	return uint32(v)
}

// PixelFormat implements core.Profile. Color bits are the sum of the red,
// green and blue channel sizes.
func (p *Profile) PixelFormat() core.PixelFormat {
	pf := core.PixelFormat{
		ColorBits:    glAttribute(sdl.GL_RED_SIZE) + glAttribute(sdl.GL_GREEN_SIZE) + glAttribute(sdl.GL_BLUE_SIZE),
		AlphaBits:    glAttribute(sdl.GL_ALPHA_SIZE),
		SRGB:         glAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE) != 0,
		DoubleBuffer: glAttribute(sdl.GL_DOUBLEBUFFER) != 0,
	}
	if glAttribute(sdl.GL_MULTISAMPLEBUFFERS) != 0 {
		pf.Samples = glAttribute(sdl.GL_MULTISAMPLESAMPLES)
	}
	return pf
}

// HiDPIFactor implements core.Profile as the ratio between drawable
// pixels and window coordinates.
func (p *Profile) HiDPIFactor() float64 {
	w, _ := p.window.GetSize()
	dw, _ := p.window.GLGetDrawableSize()
	if w <= 0 || dw <= 0 {
		return 1.0
	}
	return float64(dw) / float64(w)
}

// PresentModes implements core.Profile. A zero swap interval presents
// immediately, a negative one uses adaptive vsync.
func (p *Profile) PresentModes() []gfx.PresentMode {
	interval, err := sdl.GLGetSwapInterval()
	if err != nil {
		return []gfx.PresentMode{gfx.PresentModeFifo}
	}
	switch {
	case interval == 0:
		return []gfx.PresentMode{gfx.PresentModeImmediate, gfx.PresentModeFifo}
	case interval < 0:
		return []gfx.PresentMode{gfx.PresentModeFifoRelaxed, gfx.PresentModeFifo}
	}
	return []gfx.PresentMode{gfx.PresentModeFifo}
}

// SupportsPresentation implements core.Profile. A GL context presents from
// its graphics queue only.
func (p *Profile) SupportsPresentation(family device.QueueFamily) bool {
	return family.Graphics
}
