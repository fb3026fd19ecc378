// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkr maps the presentation vocabulary onto Vulkan and queries
// surface capabilities from a Vulkan implementation.
package vkr

import (
	"math"

	"github.com/devblok/koruwsi/gfx"
	vk "github.com/devblok/vulkan"
)

var formats = []struct {
	gfx gfx.Format
	vk  vk.Format
}{
	{gfx.FormatRGBA8Unorm, vk.FormatR8g8b8a8Unorm},
	{gfx.FormatRGBA8Srgb, vk.FormatR8g8b8a8Srgb},
	{gfx.FormatBGRA8Unorm, vk.FormatB8g8r8a8Unorm},
	{gfx.FormatBGRA8Srgb, vk.FormatB8g8r8a8Srgb},
}

// Format converts f to its Vulkan equivalent.
func Format(f gfx.Format) vk.Format {
	for _, e := range formats {
		if e.gfx == f {
			return e.vk
		}
	}
	return vk.FormatUndefined
}

// FromFormat converts a Vulkan format. The second result is false for
// formats without a gfx equivalent.
func FromFormat(f vk.Format) (gfx.Format, bool) {
	for _, e := range formats {
		if e.vk == f {
			return e.gfx, true
		}
	}
	return gfx.FormatUndefined, false
}

// PresentMode converts m to its Vulkan equivalent.
func PresentMode(m gfx.PresentMode) vk.PresentMode {
	switch m {
	case gfx.PresentModeFifoRelaxed:
		return vk.PresentModeFifoRelaxed
	case gfx.PresentModeMailbox:
		return vk.PresentModeMailbox
	case gfx.PresentModeImmediate:
		return vk.PresentModeImmediate
	}
	return vk.PresentModeFifo
}

// FromPresentMode converts a Vulkan present mode.
func FromPresentMode(m vk.PresentMode) (gfx.PresentMode, bool) {
	switch m {
	case vk.PresentModeFifo:
		return gfx.PresentModeFifo, true
	case vk.PresentModeFifoRelaxed:
		return gfx.PresentModeFifoRelaxed, true
	case vk.PresentModeMailbox:
		return gfx.PresentModeMailbox, true
	case vk.PresentModeImmediate:
		return gfx.PresentModeImmediate, true
	}
	return gfx.PresentModeFifo, false
}

var compositeAlphaBits = []struct {
	gfx gfx.CompositeAlpha
	vk  vk.CompositeAlphaFlagBits
}{
	{gfx.CompositeAlphaOpaque, vk.CompositeAlphaOpaqueBit},
	{gfx.CompositeAlphaPreMultiplied, vk.CompositeAlphaPreMultipliedBit},
	{gfx.CompositeAlphaPostMultiplied, vk.CompositeAlphaPostMultipliedBit},
	{gfx.CompositeAlphaInherit, vk.CompositeAlphaInheritBit},
}

// CompositeAlpha converts a set of composite alpha modes.
func CompositeAlpha(a gfx.CompositeAlpha) vk.CompositeAlphaFlags {
	var flags vk.CompositeAlphaFlags
	for _, e := range compositeAlphaBits {
		if a&e.gfx != 0 {
			flags |= vk.CompositeAlphaFlags(e.vk)
		}
	}
	return flags
}

// FromCompositeAlpha converts a set of Vulkan composite alpha flags.
func FromCompositeAlpha(flags vk.CompositeAlphaFlags) gfx.CompositeAlpha {
	var a gfx.CompositeAlpha
	for _, e := range compositeAlphaBits {
		if flags&vk.CompositeAlphaFlags(e.vk) != 0 {
			a |= e.gfx
		}
	}
	return a
}

var usageBits = []struct {
	gfx gfx.Usage
	vk  vk.ImageUsageFlagBits
}{
	{gfx.UsageTransferSrc, vk.ImageUsageTransferSrcBit},
	{gfx.UsageTransferDst, vk.ImageUsageTransferDstBit},
	{gfx.UsageSampled, vk.ImageUsageSampledBit},
	{gfx.UsageStorage, vk.ImageUsageStorageBit},
	{gfx.UsageColorAttachment, vk.ImageUsageColorAttachmentBit},
	{gfx.UsageDepthStencilAttachment, vk.ImageUsageDepthStencilAttachmentBit},
}

// Usage converts a set of image usage flags.
func Usage(u gfx.Usage) vk.ImageUsageFlags {
	var flags vk.ImageUsageFlags
	for _, e := range usageBits {
		if u&e.gfx != 0 {
			flags |= vk.ImageUsageFlags(e.vk)
		}
	}
	return flags
}

// FromUsage converts a set of Vulkan image usage flags.
func FromUsage(flags vk.ImageUsageFlags) gfx.Usage {
	var u gfx.Usage
	for _, e := range usageBits {
		if flags&vk.ImageUsageFlags(e.vk) != 0 {
			u |= e.gfx
		}
	}
	return u
}

// Extent2D converts e to its Vulkan equivalent.
func Extent2D(e gfx.Extent2D) vk.Extent2D {
	return vk.Extent2D{Width: e.Width, Height: e.Height}
}

// FromSurfaceCapabilities converts capabilities reported by Vulkan.
// A current extent of 0xFFFFFFFF means the swapchain decides the size and
// is reported as a nil CurrentExtent. A maximum image count of zero means
// no limit.
func FromSurfaceCapabilities(caps vk.SurfaceCapabilities) gfx.SurfaceCapabilities {
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	maxImages := caps.MaxImageCount
	if maxImages == 0 {
		maxImages = math.MaxUint32
	}

	out := gfx.SurfaceCapabilities{
		ImageCount: gfx.ImageCountRange{Min: caps.MinImageCount, Max: maxImages},
		Extents: gfx.ExtentRange{
			Start: gfx.Extent2D{Width: caps.MinImageExtent.Width, Height: caps.MinImageExtent.Height},
			End:   gfx.Extent2D{Width: caps.MaxImageExtent.Width, Height: caps.MaxImageExtent.Height},
		},
		MaxImageLayers: caps.MaxImageArrayLayers,
		Usage:          FromUsage(caps.SupportedUsageFlags),
		CompositeAlpha: FromCompositeAlpha(caps.SupportedCompositeAlpha),
	}
	if caps.CurrentExtent.Width != math.MaxUint32 {
		current := gfx.Extent2D{Width: caps.CurrentExtent.Width, Height: caps.CurrentExtent.Height}
		out.CurrentExtent = &current
	}
	return out
}

// AcquireResult maps the result of an image acquisition onto the
// acquisition error kinds.
func AcquireResult(res vk.Result) (suboptimal bool, err error) {
	switch res {
	case vk.Success:
		return false, nil
	case vk.Suboptimal:
		return true, nil
	case vk.Timeout, vk.NotReady:
		return false, gfx.ErrTimeout
	case vk.ErrorOutOfDate:
		return false, gfx.ErrOutOfDate
	case vk.ErrorSurfaceLost:
		return false, gfx.ErrSurfaceLost
	}
	return false, vk.Error(res)
}
