// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// ImageCountRange is an inclusive range of swapchain image counts.
type ImageCountRange struct {
	Min uint32 `json:"min"`
	Max uint32 `json:"max"`
}

// Contains reports whether n lies in the range.
func (r ImageCountRange) Contains(n uint32) bool {
	return n >= r.Min && n <= r.Max
}

// Clamp returns n limited to the range.
func (r ImageCountRange) Clamp(n uint32) uint32 {
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}

// ExtentRange is an inclusive range of image extents.
type ExtentRange struct {
	Start Extent2D `json:"start"`
	End   Extent2D `json:"end"`
}

// Contains reports whether e lies in the range in both dimensions.
func (r ExtentRange) Contains(e Extent2D) bool {
	return e.Width >= r.Start.Width && e.Width <= r.End.Width &&
		e.Height >= r.Start.Height && e.Height <= r.End.Height
}

// Clamp returns e limited to the range in both dimensions.
func (r ExtentRange) Clamp(e Extent2D) Extent2D {
	return Extent2D{
		Width:  clamp(e.Width, r.Start.Width, r.End.Width),
		Height: clamp(e.Height, r.Start.Height, r.End.Height),
	}
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SurfaceCapabilities describes what a surface supports for one adapter.
// It is produced fresh on every query and never cached.
type SurfaceCapabilities struct {
	ImageCount ImageCountRange `json:"imageCount"`

	// CurrentExtent is nil when the surface size is decided by the swapchain.
	CurrentExtent *Extent2D   `json:"currentExtent,omitempty"`
	Extents       ExtentRange `json:"extents"`

	MaxImageLayers uint32         `json:"maxImageLayers"`
	Usage          Usage          `json:"usage"`
	CompositeAlpha CompositeAlpha `json:"compositeAlpha"`
}

// SwapchainConfig is a concrete swapchain configuration agreed between
// a surface and its consumer.
type SwapchainConfig struct {
	Format         Format         `json:"format"`
	Extent         Extent2D       `json:"extent"`
	ImageCount     uint32         `json:"imageCount"`
	ImageLayers    uint32         `json:"imageLayers"`
	PresentMode    PresentMode    `json:"presentMode"`
	CompositeAlpha CompositeAlpha `json:"compositeAlpha"`
	Usage          Usage          `json:"usage"`
}
