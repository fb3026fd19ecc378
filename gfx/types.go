// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"strings"
)

// Extent2D is a two dimensional size in pixels.
type Extent2D struct {
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

// Extent3D is a three dimensional size in pixels.
type Extent3D struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Depth  uint32 `json:"depth"`
}

// To2D drops the depth component.
func (e Extent3D) To2D() Extent2D {
	return Extent2D{Width: e.Width, Height: e.Height}
}

// To3D returns the extent with a depth of one.
func (e Extent2D) To3D() Extent3D {
	return Extent3D{Width: e.Width, Height: e.Height, Depth: 1}
}

// IsZero reports whether either dimension is zero.
func (e Extent2D) IsZero() bool {
	return e.Width == 0 || e.Height == 0
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// Format identifies a swapchain image pixel format.
type Format int

// Formats a surface can recommend.
const (
	FormatUndefined Format = iota
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatBGRA8Unorm
	FormatBGRA8Srgb
)

var formatNames = map[Format]string{
	FormatUndefined:  "undefined",
	FormatRGBA8Unorm: "rgba8-unorm",
	FormatRGBA8Srgb:  "rgba8-srgb",
	FormatBGRA8Unorm: "bgra8-unorm",
	FormatBGRA8Srgb:  "bgra8-srgb",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// IsSrgb reports whether the format stores sRGB encoded color.
func (f Format) IsSrgb() bool {
	return f == FormatRGBA8Srgb || f == FormatBGRA8Srgb
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// PresentMode is the queuing policy used when presenting images.
type PresentMode int

// Present modes.
const (
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeMailbox
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeFifoRelaxed:
		return "fifo-relaxed"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	}
	return fmt.Sprintf("present-mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m PresentMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// CompositeAlpha describes how the presented alpha channel blends with
// the host compositor.
type CompositeAlpha uint32

// Composite alpha modes. Several may be set at once when reporting support.
const (
	CompositeAlphaOpaque CompositeAlpha = 1 << iota
	CompositeAlphaPreMultiplied
	CompositeAlphaPostMultiplied
	CompositeAlphaInherit
)

// Contains reports whether all bits of o are set in a.
func (a CompositeAlpha) Contains(o CompositeAlpha) bool {
	return a&o == o
}

func (a CompositeAlpha) String() string {
	return flagString(uint32(a), []string{"opaque", "pre-multiplied", "post-multiplied", "inherit"})
}

// MarshalText implements encoding.TextMarshaler.
func (a CompositeAlpha) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Usage is a set of image usage flags.
type Usage uint32

// Image usage flags.
const (
	UsageTransferSrc Usage = 1 << iota
	UsageTransferDst
	UsageSampled
	UsageStorage
	UsageColorAttachment
	UsageDepthStencilAttachment
)

// Contains reports whether all bits of o are set in u.
func (u Usage) Contains(o Usage) bool {
	return u&o == o
}

func (u Usage) String() string {
	return flagString(uint32(u), []string{"transfer-src", "transfer-dst", "sampled", "storage", "color-attachment", "depth-stencil-attachment"})
}

// MarshalText implements encoding.TextMarshaler.
func (u Usage) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func flagString(bits uint32, names []string) string {
	if bits == 0 {
		return "none"
	}
	var parts []string
	for i, name := range names {
		if bits&(1<<uint(i)) != 0 {
			parts = append(parts, name)
			bits &^= 1 << uint(i)
		}
	}
	if bits != 0 {
		parts = append(parts, fmt.Sprintf("%#x", bits))
	}
	return strings.Join(parts, "|")
}

// ParsePresentMode parses the String form of a present mode.
func ParsePresentMode(s string) (PresentMode, error) {
	for _, m := range []PresentMode{PresentModeFifo, PresentModeFifoRelaxed, PresentModeMailbox, PresentModeImmediate} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return PresentModeFifo, fmt.Errorf("gfx: unknown present mode %q", s)
}

// ParseFormat parses the String form of a format.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return FormatUndefined, fmt.Errorf("gfx: unknown format %q", s)
}
