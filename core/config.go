// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"

	"github.com/devblok/koruwsi/gfx"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time   TimeConfiguration   `yaml:"time"`
	Window WindowConfiguration `yaml:"window"`
	Log    LogConfiguration    `yaml:"log"`
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `yaml:"framesPerSecond"`

	// EventPollDelay is the window event polling interval in milliseconds
	EventPollDelay int `yaml:"eventPollDelay"`
}

// WindowConfiguration describes the window and the swapchain wanted for it
type WindowConfiguration struct {
	Title       string `yaml:"title"`
	Width       uint32 `yaml:"width"`
	Height      uint32 `yaml:"height"`
	SRGB        bool   `yaml:"srgb"`
	Format      string `yaml:"format"`
	PresentMode string `yaml:"presentMode"`
	ImageCount  uint32 `yaml:"imageCount"`
}

// LogConfiguration selects the log verbosity
type LogConfiguration struct {
	Level string `yaml:"level"`
}

// DefaultConfiguration returns the configuration used when nothing overrides it.
func DefaultConfiguration() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  50,
		},
		Window: WindowConfiguration{
			Title:       "Koru3D",
			Width:       800,
			Height:      600,
			PresentMode: gfx.PresentModeFifo.String(),
			ImageCount:  2,
		},
		Log: LogConfiguration{
			Level: logrus.InfoLevel.String(),
		},
	}
}

// LoadConfiguration decodes a YAML document over the default configuration.
func LoadConfiguration(r io.Reader) (Configuration, error) {
	return LoadConfigurationOver(DefaultConfiguration(), r)
}

// LoadConfigurationOver decodes a YAML document over base. Keys missing
// from the document keep their value from base.
func LoadConfigurationOver(base Configuration, r io.Reader) (Configuration, error) {
	cfg := base
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return base, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile makes the variables of a dotenv file visible to ApplyEnvironment.
func LoadEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	for k, v := range vars {
		envy.Set(k, v)
	}
	return nil
}

// ApplyEnvironment overrides cfg with KORU_* environment variables.
func ApplyEnvironment(cfg *Configuration) error {
	var err error
	if cfg.Time.FramesPerSecond, err = envInt("KORU_FPS", cfg.Time.FramesPerSecond); err != nil {
		return err
	}
	if cfg.Time.EventPollDelay, err = envInt("KORU_EVENT_POLL_DELAY", cfg.Time.EventPollDelay); err != nil {
		return err
	}
	if cfg.Window.Width, err = envUint32("KORU_WINDOW_WIDTH", cfg.Window.Width); err != nil {
		return err
	}
	if cfg.Window.Height, err = envUint32("KORU_WINDOW_HEIGHT", cfg.Window.Height); err != nil {
		return err
	}
	if cfg.Window.ImageCount, err = envUint32("KORU_IMAGE_COUNT", cfg.Window.ImageCount); err != nil {
		return err
	}
	if v := envy.Get("KORU_SRGB", ""); v != "" {
		if cfg.Window.SRGB, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("configuration: KORU_SRGB: %w", err)
		}
	}
	cfg.Window.Title = envy.Get("KORU_WINDOW_TITLE", cfg.Window.Title)
	cfg.Window.Format = envy.Get("KORU_FORMAT", cfg.Window.Format)
	cfg.Window.PresentMode = envy.Get("KORU_PRESENT_MODE", cfg.Window.PresentMode)
	cfg.Log.Level = envy.Get("KORU_LOG_LEVEL", cfg.Log.Level)
	return nil
}

func envInt(key string, fallback int) (int, error) {
	v := envy.Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("configuration: %s: %w", key, err)
	}
	return n, nil
}

func envUint32(key string, fallback uint32) (uint32, error) {
	v := envy.Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fallback, fmt.Errorf("configuration: %s: %w", key, err)
	}
	return uint32(n), nil
}

// Apply sets the level of l.
func (c LogConfiguration) Apply(l *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	l.SetLevel(level)
	return nil
}

// Extent returns the configured window size.
func (c WindowConfiguration) Extent() gfx.Extent2D {
	return gfx.Extent2D{Width: c.Width, Height: c.Height}
}

// SwapchainConfig returns the swapchain configuration asked for. It still
// has to go through NegotiateConfig against a surface.
func (c WindowConfiguration) SwapchainConfig() (gfx.SwapchainConfig, error) {
	cfg := gfx.SwapchainConfig{
		Extent:         c.Extent(),
		ImageCount:     c.ImageCount,
		ImageLayers:    1,
		CompositeAlpha: gfx.CompositeAlphaOpaque,
		Usage:          gfx.UsageColorAttachment,
	}
	if c.Format != "" {
		f, err := gfx.ParseFormat(c.Format)
		if err != nil {
			return cfg, err
		}
		cfg.Format = f
	}
	if c.PresentMode != "" {
		m, err := gfx.ParsePresentMode(c.PresentMode)
		if err != nil {
			return cfg, err
		}
		cfg.PresentMode = m
	}
	return cfg, nil
}
