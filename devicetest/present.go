package devicetest

import (
	"time"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
)

// CreateSwapchain creates a swapchain with imageCount presentable images in the given
// format and extent. Swapchain creation belongs to the windowing layer, so this is not part
// of device.Device.
func (d *Device) CreateSwapchain(imageCount int, format core1_0.Format, extent core1_0.Extent2D) (device.Swapchain, []device.Image) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	swapchain := d.newObject(KindSwapchain)
	for i := 0; i < imageCount; i++ {
		image := d.newObject(KindImage)
		image.swapchain = true
		image.layout = core1_0.ImageLayoutUndefined
		image.imageInfo = device.ImageCreateInfo{
			ImageType:   core1_0.ImageType2D,
			Format:      format,
			Extent:      core1_0.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1},
			MipLevels:   1,
			ArrayLayers: 1,
			Samples:     core1_0.Samples1,
			Usage:       core1_0.ImageUsageColorAttachment,
		}
		swapchain.images = append(swapchain.images, device.Image(image.handle))
	}

	return device.Swapchain(swapchain.handle), append([]device.Image(nil), swapchain.images...)
}

// DestroySwapchain destroys a swapchain along with its images
func (d *Device) DestroySwapchain(swapchain device.Swapchain) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.destroy(uint64(swapchain), KindSwapchain)
	if !ok {
		return
	}

	for _, image := range obj.images {
		d.objects.Delete(uint64(image))
	}
}

// InvalidateSwapchain makes every subsequent acquire and present on the swapchain report
// khr_swapchain.VKErrorOutOfDate, as happens when the window is resized
func (d *Device) InvalidateSwapchain(swapchain device.Swapchain) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if obj, ok := d.lookup(uint64(swapchain), KindSwapchain); ok {
		obj.outOfDate = true
	}
}

func (d *Device) AcquireNextImage(swapchain device.Swapchain, timeout time.Duration, semaphore device.Semaphore, fence device.Fence) (int, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	suboptimal := false
	if res, failed := d.takeFailure("AcquireNextImage"); failed {
		if res < 0 {
			return -1, res, res.ToError()
		}
		suboptimal = res == khr_swapchain.VKSuboptimal
	}
	if d.deviceLost {
		return -1, core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError()
	}

	obj, ok := d.lookup(uint64(swapchain), KindSwapchain)
	if !ok {
		d.violate("acquired from swapchain %d, which does not exist", swapchain)
		return -1, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if obj.outOfDate {
		return -1, khr_swapchain.VKErrorOutOfDate, khr_swapchain.VKErrorOutOfDate.ToError()
	}

	if semaphore != device.NullHandle {
		semObj, ok := d.lookup(uint64(semaphore), KindSemaphore)
		if !ok {
			d.violate("acquired with semaphore %d, which does not exist", semaphore)
		} else {
			if semObj.signaled || semObj.pendingSignal > 0 {
				d.violate("acquired with semaphore %d, which is already signaled", semaphore)
			}
			semObj.signaled = true
		}
	}
	if fence != device.NullHandle {
		if fenceObj, ok := d.lookup(uint64(fence), KindFence); ok {
			fenceObj.signaled = true
			d.cond.Broadcast()
		}
	}

	imageIndex := obj.nextImage
	obj.nextImage = (obj.nextImage + 1) % len(obj.images)

	if suboptimal {
		return imageIndex, khr_swapchain.VKSuboptimal, nil
	}
	return imageIndex, core1_0.VKSuccess, nil
}

func (d *Device) QueuePresent(queue device.Queue, info device.PresentInfo) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	suboptimal := false
	if res, failed := d.takeFailure("QueuePresent"); failed {
		if res < 0 {
			return res, res.ToError()
		}
		suboptimal = res == khr_swapchain.VKSuboptimal
	}
	if d.deviceLost {
		return core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError()
	}

	obj, ok := d.lookup(uint64(info.Swapchain), KindSwapchain)
	if !ok {
		d.violate("presented to swapchain %d, which does not exist", info.Swapchain)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	for _, semaphore := range info.WaitSemaphores {
		semObj, ok := d.lookup(uint64(semaphore), KindSemaphore)
		if !ok {
			d.violate("presented waiting on semaphore %d, which does not exist", semaphore)
			continue
		}
		if !semObj.signaled && semObj.pendingSignal == 0 {
			d.violate("presented waiting on semaphore %d, which nothing will signal", semaphore)
		}
		// Presentation consumes the signal, or the pending one once the rendering work completes
		if semObj.signaled {
			semObj.signaled = false
		} else {
			semObj.consumeOnSignal++
		}
	}

	if obj.outOfDate {
		return khr_swapchain.VKErrorOutOfDate, khr_swapchain.VKErrorOutOfDate.ToError()
	}
	if info.ImageIndex < 0 || info.ImageIndex >= len(obj.images) {
		d.violate("presented image %d of swapchain %d, which has %d images", info.ImageIndex, info.Swapchain, len(obj.images))
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	d.presented = append(d.presented, info.ImageIndex)
	if suboptimal {
		return khr_swapchain.VKSuboptimal, nil
	}
	return core1_0.VKSuccess, nil
}

// Presented lists the swapchain image indices presented so far, in order
func (d *Device) Presented() []int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return append([]int(nil), d.presented...)
}
