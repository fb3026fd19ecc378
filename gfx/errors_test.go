// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"fmt"
	"testing"

	"github.com/devblok/koruwsi/gfx"
)

func TestIsAcquireError(t *testing.T) {
	for _, err := range []error{gfx.ErrSurfaceLost, gfx.ErrOutOfDate, gfx.ErrTimeout, fmt.Errorf("present: %w", gfx.ErrOutOfDate)} {
		if !gfx.IsAcquireError(err) {
			t.Errorf("%v should be an acquire error", err)
		}
	}
	for _, err := range []error{nil, gfx.ErrUnsupportedFormat, gfx.ErrInvalidImage} {
		if gfx.IsAcquireError(err) {
			t.Errorf("%v should not be an acquire error", err)
		}
	}
}
