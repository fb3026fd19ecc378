// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sdlwin

import (
	"fmt"

	"github.com/devblok/koruwsi/core"
	"github.com/devblok/koruwsi/gfx"
)

// WindowFramebuffers allocates the window system's own color buffers.
// Handle 0 is the back buffer the GL context draws into, handle 1 the
// front buffer of a double-buffered window.
type WindowFramebuffers struct {
	inUse bool
}

// Allocate implements core.FramebufferAllocator.
func (a *WindowFramebuffers) Allocate(count uint32, extent gfx.Extent2D, format gfx.Format) ([]core.Framebuffer, error) {
	if a.inUse {
		return nil, fmt.Errorf("window framebuffers already bound to a swapchain")
	}
	if count == 0 || count > 2 {
		return nil, fmt.Errorf("window provides 1 or 2 framebuffers, %d requested", count)
	}
	fbos := make([]core.Framebuffer, count)
	for i := range fbos {
		fbos[i] = core.Framebuffer(i)
	}
	a.inUse = true
	return fbos, nil
}

// Release implements core.FramebufferAllocator.
func (a *WindowFramebuffers) Release([]core.Framebuffer) {
	a.inUse = false
}
