// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/devblok/koruwsi/gfx"
)

// NegotiateConfig fits the wanted configuration into what a surface reported.
// The wanted format is kept when listed, otherwise the first listed format is
// used; a nil list accepts any format and an empty list yields
// gfx.ErrUnsupportedFormat. Image count and extent are clamped to the reported
// ranges. When the wanted present mode is unavailable FIFO is used if listed,
// otherwise the first listed mode; an empty mode list is incompatible.
func NegotiateConfig(caps gfx.SurfaceCapabilities, formats []gfx.Format, modes []gfx.PresentMode, want gfx.SwapchainConfig) (gfx.SwapchainConfig, error) {
	cfg := want

	switch {
	case formats == nil:
		if cfg.Format == gfx.FormatUndefined {
			return gfx.SwapchainConfig{}, gfx.ErrUnsupportedFormat
		}
	case len(formats) == 0:
		return gfx.SwapchainConfig{}, gfx.ErrUnsupportedFormat
	case !containsFormat(formats, cfg.Format):
		cfg.Format = formats[0]
	}

	if cfg.Extent.IsZero() && caps.CurrentExtent != nil {
		cfg.Extent = *caps.CurrentExtent
	}
	cfg.Extent = caps.Extents.Clamp(cfg.Extent)

	cfg.ImageCount = caps.ImageCount.Clamp(cfg.ImageCount)

	if cfg.ImageLayers == 0 {
		cfg.ImageLayers = 1
	}
	if cfg.ImageLayers > caps.MaxImageLayers {
		return gfx.SwapchainConfig{}, fmt.Errorf("%d image layers, surface allows %d: %w", cfg.ImageLayers, caps.MaxImageLayers, gfx.ErrIncompatibleConfig)
	}

	switch {
	case len(modes) == 0:
		return gfx.SwapchainConfig{}, fmt.Errorf("no present modes: %w", gfx.ErrIncompatibleConfig)
	case containsPresentMode(modes, cfg.PresentMode):
	case containsPresentMode(modes, gfx.PresentModeFifo):
		cfg.PresentMode = gfx.PresentModeFifo
	default:
		cfg.PresentMode = modes[0]
	}

	if cfg.CompositeAlpha == 0 || !caps.CompositeAlpha.Contains(cfg.CompositeAlpha) {
		cfg.CompositeAlpha = firstCompositeAlpha(caps.CompositeAlpha)
	}

	if cfg.Usage == 0 {
		cfg.Usage = gfx.UsageColorAttachment
	}
	if !caps.Usage.Contains(cfg.Usage) {
		return gfx.SwapchainConfig{}, fmt.Errorf("usage %s, surface allows %s: %w", cfg.Usage, caps.Usage, gfx.ErrIncompatibleConfig)
	}
	return cfg, nil
}

// validateConfig checks that cfg lies entirely inside what the surface reported.
func validateConfig(caps gfx.SurfaceCapabilities, formats []gfx.Format, modes []gfx.PresentMode, cfg gfx.SwapchainConfig) error {
	if formats != nil && !containsFormat(formats, cfg.Format) {
		return fmt.Errorf("format %s: %w", cfg.Format, gfx.ErrUnsupportedFormat)
	}
	if !caps.ImageCount.Contains(cfg.ImageCount) {
		return fmt.Errorf("image count %d outside %d..%d: %w", cfg.ImageCount, caps.ImageCount.Min, caps.ImageCount.Max, gfx.ErrIncompatibleConfig)
	}
	if !caps.Extents.Contains(cfg.Extent) {
		return fmt.Errorf("extent %s outside %s..%s: %w", cfg.Extent, caps.Extents.Start, caps.Extents.End, gfx.ErrIncompatibleConfig)
	}
	if cfg.ImageLayers == 0 || cfg.ImageLayers > caps.MaxImageLayers {
		return fmt.Errorf("%d image layers: %w", cfg.ImageLayers, gfx.ErrIncompatibleConfig)
	}
	if !containsPresentMode(modes, cfg.PresentMode) {
		return fmt.Errorf("present mode %s: %w", cfg.PresentMode, gfx.ErrIncompatibleConfig)
	}
	if cfg.CompositeAlpha == 0 || !caps.CompositeAlpha.Contains(cfg.CompositeAlpha) {
		return fmt.Errorf("composite alpha %s: %w", cfg.CompositeAlpha, gfx.ErrIncompatibleConfig)
	}
	if !caps.Usage.Contains(cfg.Usage) {
		return fmt.Errorf("usage %s: %w", cfg.Usage, gfx.ErrIncompatibleConfig)
	}
	return nil
}

func containsFormat(formats []gfx.Format, f gfx.Format) bool {
	for _, v := range formats {
		if v == f {
			return true
		}
	}
	return false
}

func containsPresentMode(modes []gfx.PresentMode, m gfx.PresentMode) bool {
	for _, v := range modes {
		if v == m {
			return true
		}
	}
	return false
}

func firstCompositeAlpha(supported gfx.CompositeAlpha) gfx.CompositeAlpha {
	for bit := gfx.CompositeAlphaOpaque; bit <= gfx.CompositeAlphaInherit; bit <<= 1 {
		if supported&bit != 0 {
			return bit
		}
	}
	return gfx.CompositeAlphaOpaque
}
