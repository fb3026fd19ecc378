// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/devblok/koruwsi/device"
	"github.com/devblok/koruwsi/gfx"
	vk "github.com/devblok/vulkan"
)

// NewInstance loads Vulkan through procAddr and creates an instance with
// the given extensions enabled. A nil procAddr uses the system loader.
func NewInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, extensions []string) (vk.Instance, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}
	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	exts := safeStrings(extensions)
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}
	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(instance)
	return instance, nil
}

// Compatibility queries what the surface supports on the physical device.
// Formats without a gfx equivalent are skipped. A single undefined format
// means the surface accepts any format and is reported as a nil list.
func Compatibility(pd vk.PhysicalDevice, surface vk.Surface) (gfx.SurfaceCapabilities, []gfx.Format, []gfx.PresentMode, error) {
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(pd, surface, &surfaceCapabilities)); err != nil {
		return gfx.SurfaceCapabilities{}, nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	caps := FromSurfaceCapabilities(surfaceCapabilities)

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &formatCount, nil)); err != nil {
		return caps, nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	surfaceFormats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &formatCount, surfaceFormats)); err != nil {
		return caps, nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &modeCount, nil)); err != nil {
		return caps, nil, nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	presentModes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &modeCount, presentModes)); err != nil {
		return caps, nil, nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}

	return caps, convertFormats(surfaceFormats), convertPresentModes(presentModes), nil
}

func convertFormats(surfaceFormats []vk.SurfaceFormat) []gfx.Format {
	for i := range surfaceFormats {
		surfaceFormats[i].Deref()
	}
	if len(surfaceFormats) == 1 && surfaceFormats[0].Format == vk.FormatUndefined {
		return nil
	}

	out := []gfx.Format{}
	for _, sf := range surfaceFormats {
		if f, ok := FromFormat(sf.Format); ok {
			out = append(out, f)
		}
	}
	return out
}

func convertPresentModes(modes []vk.PresentMode) []gfx.PresentMode {
	var out []gfx.PresentMode
	for _, m := range modes {
		if pm, ok := FromPresentMode(m); ok {
			out = append(out, pm)
		}
	}
	return out
}

// SupportsQueueFamily asks Vulkan whether the queue family can present to
// the surface.
func SupportsQueueFamily(pd vk.PhysicalDevice, surface vk.Surface, family device.QueueFamily) (bool, error) {
	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(pd, uint32(family.Index), surface, &supported)); err != nil {
		return false, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
	}
	return supported.B(), nil
}

// QueueFamilies lists the queue families of a physical device.
func QueueFamilies(pd vk.PhysicalDevice) []device.QueueFamily {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, props)

	families := make([]device.QueueFamily, len(props))
	for i := range props {
		props[i].Deref()
		flags := props[i].QueueFlags
		families[i] = device.QueueFamily{
			Index:    i,
			Count:    int(props[i].QueueCount),
			Graphics: flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Compute:  flags&vk.QueueFlags(vk.QueueComputeBit) != 0,
			Transfer: flags&vk.QueueFlags(vk.QueueTransferBit) != 0,
		}
	}
	return families
}

// Report is the negotiation result of one physical device and a surface.
type Report struct {
	Device        int                     `json:"device"`
	Capabilities  gfx.SurfaceCapabilities `json:"capabilities"`
	Formats       []gfx.Format            `json:"formats"`
	PresentModes  []gfx.PresentMode       `json:"presentModes"`
	PresentQueues []int                   `json:"presentQueues"`
}

// Probe queries every physical device of the instance against the surface.
// Devices that fail a query are skipped; an instance without devices
// yields an empty report list.
func Probe(instance vk.Instance, surface vk.Surface) ([]Report, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, devices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}

	reports := []Report{}
	for i, pd := range devices {
		caps, formats, modes, err := Compatibility(pd, surface)
		if err != nil {
			continue
		}
		report := Report{
			Device:       i,
			Capabilities: caps,
			Formats:      formats,
			PresentModes: modes,
		}
		for _, family := range QueueFamilies(pd) {
			if ok, err := SupportsQueueFamily(pd, surface, family); err == nil && ok {
				report.PresentQueues = append(report.PresentQueues, family.Index)
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		if len(s) > 0 && s[len(s)-1] == 0 {
			safe = append(safe, s)
			continue
		}
		safe = append(safe, s+"\x00")
	}
	return safe
}
