package frame

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
)

// Presenter is the surface the Controller draws to. Acquire and Present report an invalid
// surface with khr_swapchain.VKErrorOutOfDate or khr_surface.VKErrorSurfaceLost, and a
// usable but mismatched one with khr_swapchain.VKSuboptimal. Recreate rebuilds the surface
// images after the device has gone idle.
type Presenter interface {
	Acquire(semaphore device.Semaphore) (int, common.VkResult, error)
	Present(queue device.Queue, imageIndex int, waitSemaphore device.Semaphore) (common.VkResult, error)
	Recreate() error
}

func surfaceInvalid(res common.VkResult) bool {
	return res == khr_swapchain.VKErrorOutOfDate || res == khr_surface.VKErrorSurfaceLost
}

func surfaceStale(res common.VkResult) bool {
	return surfaceInvalid(res) || res == khr_swapchain.VKSuboptimal
}

// RecreateFunc builds a replacement for old, a swapchain that no longer matches its surface.
// The old swapchain is still alive when it is called and may be passed along as the new
// swapchain's predecessor.
type RecreateFunc func(old device.Swapchain) (device.Swapchain, error)

// SwapchainPresenter presents through a device swapchain
type SwapchainPresenter struct {
	dev       device.PresentDevice
	swapchain device.Swapchain
	recreate  RecreateFunc
}

func NewSwapchainPresenter(dev device.PresentDevice, swapchain device.Swapchain, recreate RecreateFunc) *SwapchainPresenter {
	return &SwapchainPresenter{
		dev:       dev,
		swapchain: swapchain,
		recreate:  recreate,
	}
}

func (p *SwapchainPresenter) Swapchain() device.Swapchain {
	return p.swapchain
}

func (p *SwapchainPresenter) Acquire(semaphore device.Semaphore) (int, common.VkResult, error) {
	return p.dev.AcquireNextImage(p.swapchain, common.NoTimeout, semaphore, device.NullHandle)
}

func (p *SwapchainPresenter) Present(queue device.Queue, imageIndex int, waitSemaphore device.Semaphore) (common.VkResult, error) {
	return p.dev.QueuePresent(queue, device.PresentInfo{
		WaitSemaphores: []device.Semaphore{waitSemaphore},
		Swapchain:      p.swapchain,
		ImageIndex:     imageIndex,
	})
}

func (p *SwapchainPresenter) Recreate() error {
	if p.recreate == nil {
		return errors.New("the swapchain is out of date, but the presenter has no way to recreate it")
	}

	swapchain, err := p.recreate(p.swapchain)
	if err != nil {
		return errors.Wrap(err, "failed to recreate the swapchain")
	}

	p.swapchain = swapchain
	return nil
}
