// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/devblok/koruwsi/config"
	"github.com/devblok/koruwsi/core"
	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	log "github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	envPath    = flag.String("env", "", "dotenv file with KORU_* overrides")
	vulkan     = flag.Bool("vulkan", false, "Also list Vulkan physical devices")
)

type adapterReport struct {
	Adapter      device.Adapter          `json:"adapter"`
	Capabilities gfx.SurfaceCapabilities `json:"capabilities"`
	Formats      []gfx.Format            `json:"formats"`
	PresentModes []gfx.PresentMode       `json:"presentModes"`
	Presentable  []int                   `json:"presentQueues"`
	Swapchain    *gfx.SwapchainConfig    `json:"swapchain,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

type report struct {
	Extent      gfx.Extent3D                `json:"extent"`
	HiDPIFactor float64                     `json:"hidpiFactor"`
	PixelFormat core.PixelFormat            `json:"pixelFormat"`
	Adapters    []adapterReport             `json:"adapters"`
	Vulkan      []device.PhysicalDeviceInfo `json:"vulkan,omitempty"`
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Log.Apply(log.StandardLogger()); err != nil {
		log.Fatal(err)
	}
	log.SetOutput(os.Stderr)

	pf := core.DefaultProfile{}.PixelFormat()
	pf.SRGB = cfg.Window.SRGB
	window := core.NewWindow(cfg.Window.Extent(), core.StaticProfile{Format: pf})
	surface := core.FromWindow(window)

	want, err := cfg.Window.SwapchainConfig()
	if err != nil {
		log.Fatal(err)
	}

	out := report{
		Extent:      window.WindowExtent(),
		HiDPIFactor: window.HiDPIFactor(),
		PixelFormat: window.PixelFormat(),
		Adapters:    []adapterReport{},
	}

	adapters := surface.EnumerateAdapters()
	if len(adapters) == 0 {
		log.Warn("no compatible graphics device available")
	}
	for _, adapter := range adapters {
		caps, formats, modes := surface.Compatibility(adapter.PhysicalDevice)
		ar := adapterReport{
			Adapter:      adapter,
			Capabilities: caps,
			Formats:      formats,
			PresentModes: modes,
		}
		for _, family := range adapter.QueueFamilies {
			if surface.SupportsQueueFamily(family) {
				ar.Presentable = append(ar.Presentable, family.Index)
			}
		}
		if sc, err := core.NegotiateConfig(caps, formats, modes, want); err != nil {
			ar.Error = err.Error()
		} else {
			ar.Swapchain = &sc
		}
		out.Adapters = append(out.Adapters, ar)
	}

	if *vulkan {
		devices, err := device.VulkanDevices(device.DefaultVulkanApplicationInfo)
		if err != nil {
			log.WithError(err).Warn("vulkan unavailable")
		}
		out.Vulkan = devices
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
