// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	"github.com/devblok/koruwsi/core"
)

func TestTimeFrameInterval(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 50, EventPollDelay: 20})
	defer tm.Stop()

	if tm.Fps() != 50 {
		t.Fatalf("incorrect fps: %d", tm.Fps())
	}
	if tm.FrameInterval() != 20*time.Millisecond {
		t.Fatalf("incorrect frame interval: %s", tm.FrameInterval())
	}

	select {
	case <-tm.FpsTicker().C:
	case <-time.After(time.Second):
		t.Fatal("fps ticker did not tick")
	}
	select {
	case <-tm.EventTicker().C:
	case <-time.After(time.Second):
		t.Fatal("event ticker did not tick")
	}
}

func TestTimeUnlimited(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()

	if tm.FrameInterval() != time.Nanosecond {
		t.Fatalf("unlimited fps should tick every nanosecond, got: %s", tm.FrameInterval())
	}
}
