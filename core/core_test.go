// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"context"
	"io/ioutil"
	"testing"
	"time"

	"github.com/devblok/koruwsi/core"
	"github.com/sirupsen/logrus"
)

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func TestSetLogger(t *testing.T) {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)

	core.SetLogger(l)
	if core.Logger() != logrus.FieldLogger(l) {
		t.Error("logger not replaced")
	}

	core.SetLogger(nil)
	if core.Logger() != logrus.FieldLogger(logrus.StandardLogger()) {
		t.Error("nil logger should restore the standard logger")
	}
}
