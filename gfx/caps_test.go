// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koruwsi/gfx"
)

func TestImageCountRange(t *testing.T) {
	c := qt.New(t)
	r := gfx.ImageCountRange{Min: 2, Max: 3}

	c.Assert(r.Contains(1), qt.Equals, false)
	c.Assert(r.Contains(2), qt.Equals, true)
	c.Assert(r.Contains(3), qt.Equals, true)
	c.Assert(r.Contains(4), qt.Equals, false)

	c.Assert(r.Clamp(0), qt.Equals, uint32(2))
	c.Assert(r.Clamp(3), qt.Equals, uint32(3))
	c.Assert(r.Clamp(8), qt.Equals, uint32(3))
}

func TestExtentRange(t *testing.T) {
	c := qt.New(t)
	r := gfx.ExtentRange{
		Start: gfx.Extent2D{Width: 100, Height: 100},
		End:   gfx.Extent2D{Width: 800, Height: 600},
	}

	c.Assert(r.Contains(gfx.Extent2D{Width: 800, Height: 600}), qt.Equals, true)
	c.Assert(r.Contains(gfx.Extent2D{Width: 801, Height: 600}), qt.Equals, false)
	c.Assert(r.Contains(gfx.Extent2D{Width: 400, Height: 50}), qt.Equals, false)
	c.Assert(r.Clamp(gfx.Extent2D{Width: 1920, Height: 10}), qt.Equals, gfx.Extent2D{Width: 800, Height: 100})
}

func TestExtentConversions(t *testing.T) {
	c := qt.New(t)
	e := gfx.Extent2D{Width: 640, Height: 480}

	c.Assert(e.To3D(), qt.Equals, gfx.Extent3D{Width: 640, Height: 480, Depth: 1})
	c.Assert(e.To3D().To2D(), qt.Equals, e)
	c.Assert(e.String(), qt.Equals, "640x480")
	c.Assert(e.IsZero(), qt.Equals, false)
	c.Assert(gfx.Extent2D{Width: 640}.IsZero(), qt.Equals, true)
}

func TestFlagStrings(t *testing.T) {
	c := qt.New(t)

	c.Assert((gfx.UsageColorAttachment | gfx.UsageTransferSrc).String(), qt.Equals, "transfer-src|color-attachment")
	c.Assert(gfx.Usage(0).String(), qt.Equals, "none")
	c.Assert(gfx.CompositeAlphaOpaque.String(), qt.Equals, "opaque")
	c.Assert((gfx.CompositeAlphaOpaque | gfx.CompositeAlphaInherit).Contains(gfx.CompositeAlphaInherit), qt.Equals, true)
	c.Assert(gfx.CompositeAlphaOpaque.Contains(gfx.CompositeAlphaPreMultiplied), qt.Equals, false)
}

func TestParse(t *testing.T) {
	c := qt.New(t)

	m, err := gfx.ParsePresentMode("Mailbox")
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, gfx.PresentModeMailbox)

	_, err = gfx.ParsePresentMode("vsync")
	c.Assert(err, qt.Not(qt.IsNil))

	f, err := gfx.ParseFormat("bgra8-srgb")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, gfx.FormatBGRA8Srgb)
	c.Assert(f.IsSrgb(), qt.Equals, true)

	_, err = gfx.ParseFormat("rgb565")
	c.Assert(err, qt.Not(qt.IsNil))
}
