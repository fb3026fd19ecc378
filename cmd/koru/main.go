// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/devblok/koruwsi/config"
	"github.com/devblok/koruwsi/core"
	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	"github.com/devblok/koruwsi/sdlwin"
	"github.com/devblok/koruwsi/vkr"
	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var (
	configPath = flag.String("config", "", "YAML configuration file")
	envPath    = flag.String("env", "", "dotenv file with KORU_* overrides")
	vkCaps     = flag.Bool("vkcaps", false, "Print Vulkan surface capabilities and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Log.Apply(log.StandardLogger()); err != nil {
		log.Fatal(err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	if *vkCaps {
		if err := probeVulkan(cfg.Window); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func newWindow(cfg core.WindowConfiguration, flags uint32) (*sdl.Window, error) {
	return sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags|sdl.WINDOW_RESIZABLE)
}

func run(cfg core.Configuration) error {
	if cfg.Window.SRGB {
		sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)
	}
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	sdlWindow, err := newWindow(cfg.Window, sdl.WINDOW_OPENGL)
	if err != nil {
		return err
	}
	defer sdlWindow.Destroy()

	glContext, err := sdlWindow.GLCreateContext()
	if err != nil {
		return err
	}
	defer sdl.GLDeleteContext(glContext)

	profile := sdlwin.NewProfile(sdlWindow)
	surface := core.FromWindow(profile.Window())

	adapters := surface.EnumerateAdapters()
	if len(adapters) == 0 {
		return errors.New("no compatible graphics device available")
	}
	pd := adapters[0].PhysicalDevice

	want, err := cfg.Window.SwapchainConfig()
	if err != nil {
		return err
	}
	alloc := &sdlwin.WindowFramebuffers{}

	negotiate := func(s core.Surface) (gfx.SwapchainConfig, error) {
		want.Extent = s.Window().Extent()
		caps, formats, modes := s.Compatibility(pd)
		return core.NegotiateConfig(caps, formats, modes, want)
	}

	scCfg, err := negotiate(surface)
	if err != nil {
		return err
	}
	swapchain, err := surface.NewSwapchain(pd, scCfg, alloc)
	if err != nil {
		return err
	}
	defer swapchain.Release()

	timeService := core.NewTime(cfg.Time)
	defer timeService.Stop()

	imageReady := gfx.NewSemaphore()
	frameFence := gfx.NewFence(false)
	ctx := context.Background()

	for {
		select {
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						return nil
					}
				case *sdl.WindowEvent:
					switch et.Event {
					case sdl.WINDOWEVENT_SIZE_CHANGED:
						swapchain.MarkOutOfDate()
					case sdl.WINDOWEVENT_CLOSE:
						swapchain.MarkSurfaceLost()
					}
				case *sdl.QuitEvent:
					return nil
				}
			}
		case <-timeService.FpsTicker().C:
			frameFence.Reset()
			index, suboptimal, err := swapchain.AcquireImage(timeService.FrameInterval(), imageReady, frameFence)
			switch {
			case errors.Is(err, gfx.ErrOutOfDate) || suboptimal:
				surface = core.FromWindow(profile.Window())
				if scCfg, err = negotiate(surface); err != nil {
					return err
				}
				if err := swapchain.Recreate(surface, pd, scCfg); err != nil {
					return err
				}
				log.WithField("extent", scCfg.Extent.String()).Info("swapchain recreated")
				continue
			case errors.Is(err, gfx.ErrSurfaceLost):
				log.Info("surface lost")
				return nil
			case errors.Is(err, gfx.ErrTimeout):
				continue
			case err != nil:
				return err
			}

			if err := imageReady.Wait(ctx); err != nil {
				return err
			}
			if err := frameFence.Wait(ctx); err != nil {
				return err
			}
			sdlWindow.GLSwap()
			if err := swapchain.Present(index); err != nil && !gfx.IsAcquireError(err) {
				return err
			}
		}
	}
}

func probeVulkan(cfg core.WindowConfiguration) error {
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow, err := newWindow(cfg, sdl.WINDOW_VULKAN)
	if err != nil {
		return err
	}
	defer sdlWindow.Destroy()

	instance, err := vkr.NewInstance(device.DefaultVulkanApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), sdlWindow.VulkanGetInstanceExtensions())
	if err != nil {
		return err
	}
	defer vk.DestroyInstance(instance, nil)

	srf, err := sdlWindow.VulkanCreateSurface(instance)
	if err != nil {
		return err
	}
	surface := vk.SurfaceFromPointer(uintptr(srf))
	defer vk.DestroySurface(instance, surface, nil)

	reports, err := vkr.Probe(instance, surface)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
