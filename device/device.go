// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device describes graphics adapters and the native canvas they
// draw into.
package device

import (
	"sync/atomic"

	"github.com/devblok/koruwsi/gfx"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int      `json:"id"`
	VendorID      int      `json:"vendorId"`
	DriverVersion int      `json:"driverVersion"`
	Name          string   `json:"name"`
	Backend       string   `json:"backend"`
	Invalid       bool     `json:"invalid"`
	Extensions    []string `json:"extensions,omitempty"`
	Layers        []string `json:"layers,omitempty"`
	Memory        uint     `json:"memory"`
}

// QueueFamily describes a group of queues with identical capabilities.
type QueueFamily struct {
	Index    int  `json:"index"`
	Count    int  `json:"count"`
	Graphics bool `json:"graphics"`
	Compute  bool `json:"compute"`
	Transfer bool `json:"transfer"`
}

// Selector is the token used to pick the physical device behind a canvas.
// The zero value selects the default device.
type Selector struct {
	PowerPreference string
}

var canvasIDs uint64

// Canvas is the native drawing context an adapter renders into.
type Canvas struct {
	id     uint64
	extent gfx.Extent2D
}

// NewCanvas creates a drawing context container of the given size.
func NewCanvas(extent gfx.Extent2D) *Canvas {
	return &Canvas{
		id:     atomic.AddUint64(&canvasIDs, 1),
		extent: extent,
	}
}

// ID returns a process-unique canvas identifier.
func (c *Canvas) ID() uint64 {
	return c.id
}

// Extent returns the size the canvas was created with.
func (c *Canvas) Extent() gfx.Extent2D {
	return c.extent
}

// PhysicalDevice is a handle to one graphics device bound to a canvas.
type PhysicalDevice struct {
	info     PhysicalDeviceInfo
	canvas   *Canvas
	families []QueueFamily
}

// Info returns the device metadata.
func (pd *PhysicalDevice) Info() PhysicalDeviceInfo {
	return pd.info
}

// Canvas returns the drawing context the device was created for.
func (pd *PhysicalDevice) Canvas() *Canvas {
	return pd.canvas
}

// QueueFamilies returns the queue families exposed by the device.
func (pd *PhysicalDevice) QueueFamilies() []QueueFamily {
	return append([]QueueFamily(nil), pd.families...)
}

// Adapter is a physical device together with its capability metadata.
type Adapter struct {
	Info           PhysicalDeviceInfo `json:"info"`
	QueueFamilies  []QueueFamily      `json:"queueFamilies"`
	PhysicalDevice *PhysicalDevice    `json:"-"`
}

// NewAdapter constructs the adapter for a canvas. A canvas context exposes
// a single queue family that does graphics, compute and transfer work.
func NewAdapter(sel Selector, canvas *Canvas) Adapter {
	info := PhysicalDeviceInfo{
		Name:    "canvas",
		Backend: "gl",
	}
	if sel.PowerPreference != "" {
		info.Name = "canvas (" + sel.PowerPreference + ")"
	}
	families := []QueueFamily{{
		Index:    0,
		Count:    1,
		Graphics: true,
		Compute:  true,
		Transfer: true,
	}}
	pd := &PhysicalDevice{
		info:     info,
		canvas:   canvas,
		families: families,
	}
	return Adapter{
		Info:           info,
		QueueFamilies:  pd.QueueFamilies(),
		PhysicalDevice: pd,
	}
}
