// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core negotiates presentation capabilities between a window
// surface and the graphics backend, and drives the resulting swapchain.
package core

import (
	"sync"

	"github.com/devblok/koruwsi/device"
	"github.com/sirupsen/logrus"
)

// Instance produces the adapters usable with a windowing context.
type Instance interface {
	// EnumerateAdapters returns the adapters that can present to the
	// instance's surface. An empty result means no compatible device.
	EnumerateAdapters() []device.Adapter
}

var (
	loggerMu sync.RWMutex
	logger   logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger replaces the logger used by the package.
// Passing nil restores the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Logger returns the logger used by the package.
func Logger() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
