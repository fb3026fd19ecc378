// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import "errors"

// ErrUnsupportedFormat means the surface recommends no format the caller
// can use. Whether to fall back or give up is the caller's decision.
var ErrUnsupportedFormat = errors.New("gfx: no supported swapchain format")

// ErrIncompatibleConfig means a swapchain configuration lies outside the
// capabilities reported by the surface.
var ErrIncompatibleConfig = errors.New("gfx: swapchain configuration not supported by surface")

// ErrSurfaceLost means the native surface was destroyed.
// The surface and its swapchain must be recreated.
var ErrSurfaceLost = errors.New("gfx: surface lost")

// ErrOutOfDate means the surface changed since the swapchain was created.
// The swapchain must be recreated.
var ErrOutOfDate = errors.New("gfx: swapchain out of date")

// ErrTimeout means no image became available within the given timeout.
// The call may be retried.
var ErrTimeout = errors.New("gfx: image acquisition timed out")

// ErrInvalidImage means an image index does not belong to the swapchain.
var ErrInvalidImage = errors.New("gfx: invalid swapchain image index")

// IsAcquireError reports whether err is one of the acquisition failure kinds.
func IsAcquireError(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrOutOfDate) || errors.Is(err, ErrTimeout)
}
