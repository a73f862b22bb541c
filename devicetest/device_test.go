package devicetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"golang.org/x/sync/errgroup"
)

func TestWaitBlocksUntilSignal(t *testing.T) {
	dev := New(DefaultOptions())

	fence, _, err := dev.CreateFence(false)
	require.NoError(t, err)

	_, err = dev.QueueSubmit(1, []device.SubmitInfo{{}}, fence)
	require.NoError(t, err)
	require.Equal(t, 1, dev.Pending())

	var group errgroup.Group
	group.Go(func() error {
		_, err := dev.WaitForFences([]device.Fence{fence}, true, common.NoTimeout)
		return err
	})

	require.Eventually(t, func() bool {
		return dev.BlockedWaiters() == 1
	}, time.Second, time.Millisecond)
	require.False(t, dev.FenceSignaled(fence))

	require.True(t, dev.Signal())
	require.NoError(t, group.Wait())
	require.True(t, dev.FenceSignaled(fence))
	require.Equal(t, 0, dev.BlockedWaiters())
	require.False(t, dev.Signal())

	dev.DestroyFence(fence)
	require.Empty(t, dev.Violations())
}

func TestWaitTimeout(t *testing.T) {
	dev := New(DefaultOptions())

	fence, _, err := dev.CreateFence(false)
	require.NoError(t, err)

	res, err := dev.WaitForFences([]device.Fence{fence}, true, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKTimeout, res)
}

func TestLoseDeviceWakesWaiters(t *testing.T) {
	dev := New(DefaultOptions())

	fence, _, err := dev.CreateFence(false)
	require.NoError(t, err)
	_, err = dev.QueueSubmit(1, []device.SubmitInfo{{}}, fence)
	require.NoError(t, err)

	var res common.VkResult
	var group errgroup.Group
	group.Go(func() error {
		var err error
		res, err = dev.WaitForFences([]device.Fence{fence}, true, common.NoTimeout)
		return err
	})

	require.Eventually(t, func() bool {
		return dev.BlockedWaiters() == 1
	}, time.Second, time.Millisecond)
	dev.LoseDevice()

	require.Error(t, group.Wait())
	require.Equal(t, core1_0.VKErrorDeviceLost, res)
}

func TestDescriptorPoolExhaustion(t *testing.T) {
	dev := New(DefaultOptions())

	layout, _, err := dev.CreateDescriptorSetLayout(device.DescriptorSetLayoutCreateInfo{
		Bindings: []device.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: core1_0.DescriptorTypeUniformBuffer, DescriptorCount: 2},
		},
	})
	require.NoError(t, err)

	pool, _, err := dev.CreateDescriptorPool(device.DescriptorPoolCreateInfo{
		MaxSets: 4,
		PoolSizes: []core1_0.DescriptorPoolSize{
			{Type: core1_0.DescriptorTypeUniformBuffer, DescriptorCount: 5},
		},
	})
	require.NoError(t, err)

	_, _, err = dev.AllocateDescriptorSet(pool, layout)
	require.NoError(t, err)
	_, _, err = dev.AllocateDescriptorSet(pool, layout)
	require.NoError(t, err)

	_, res, err := dev.AllocateDescriptorSet(pool, layout)
	require.Error(t, err)
	require.Equal(t, core1_1.VkErrorOutOfPoolMemory, res)
	require.Equal(t, 2, dev.DescriptorPoolSetCount(pool))

	_, err = dev.ResetDescriptorPool(pool)
	require.NoError(t, err)
	require.Equal(t, 0, dev.DescriptorPoolSetCount(pool))
	require.Equal(t, 0, dev.LiveObjects(KindDescriptorSet))

	dev.DestroyDescriptorPool(pool)
	dev.DestroyDescriptorSetLayout(layout)
	require.Empty(t, dev.Violations())
}

func TestCopyExecutesOnCompletion(t *testing.T) {
	dev := New(DefaultOptions())

	memory, _, err := dev.AllocateMemory(1024, 1)
	require.NoError(t, err)
	ptr, _, err := dev.MapMemory(memory, 0, -1)
	require.NoError(t, err)
	mapped := (*[1024]byte)(ptr)

	src, _, err := dev.CreateBuffer(device.BufferCreateInfo{Size: 16})
	require.NoError(t, err)
	dst, _, err := dev.CreateBuffer(device.BufferCreateInfo{Size: 16})
	require.NoError(t, err)
	_, err = dev.BindBufferMemory(src, memory, 0)
	require.NoError(t, err)
	_, err = dev.BindBufferMemory(dst, memory, 512)
	require.NoError(t, err)

	copy(mapped[0:4], []byte{1, 2, 3, 4})

	pool, _, err := dev.CreateCommandPool(0)
	require.NoError(t, err)
	cmd, _, err := dev.AllocateCommandBuffer(pool)
	require.NoError(t, err)

	_, err = dev.BeginCommandBuffer(cmd, core1_0.CommandBufferUsageOneTimeSubmit)
	require.NoError(t, err)
	dev.CmdCopyBuffer(cmd, src, dst, []core1_0.BufferCopy{{Size: 4}})
	_, err = dev.EndCommandBuffer(cmd)
	require.NoError(t, err)
	require.Equal(t, []string{"CmdCopyBuffer"}, dev.RecordedCommands(cmd))

	_, err = dev.QueueSubmit(1, []device.SubmitInfo{{CommandBuffers: []device.CommandBuffer{cmd}}}, device.NullHandle)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, dev.BufferContents(dst)[:4])

	require.Equal(t, 1, dev.SignalAll())
	require.Equal(t, []byte{1, 2, 3, 4}, dev.BufferContents(dst)[:4])

	dev.DestroyCommandPool(pool)
	dev.DestroyBuffer(src)
	dev.DestroyBuffer(dst)
	dev.UnmapMemory(memory)
	dev.FreeMemory(memory)

	require.Empty(t, dev.Violations())
	require.Equal(t, 0, dev.HeapUsage(1))
}

func TestViolations(t *testing.T) {
	testCases := map[string]struct {
		Misuse    func(t *testing.T, dev *Device)
		Violation string
	}{
		"DoubleDestroy": {
			Misuse: func(t *testing.T, dev *Device) {
				sampler, _, err := dev.CreateSampler(device.SamplerCreateInfo{})
				require.NoError(t, err)
				dev.DestroySampler(sampler)
				dev.DestroySampler(sampler)
			},
			Violation: "destroyed Sampler 1, which does not exist",
		},
		"DestroyInFlight": {
			Misuse: func(t *testing.T, dev *Device) {
				pool, _, err := dev.CreateCommandPool(0)
				require.NoError(t, err)
				cmd, _, err := dev.AllocateCommandBuffer(pool)
				require.NoError(t, err)
				_, err = dev.BeginCommandBuffer(cmd, 0)
				require.NoError(t, err)
				_, err = dev.EndCommandBuffer(cmd)
				require.NoError(t, err)
				_, err = dev.QueueSubmit(1, []device.SubmitInfo{{CommandBuffers: []device.CommandBuffer{cmd}}}, device.NullHandle)
				require.NoError(t, err)
				dev.FreeCommandBuffer(pool, cmd)
			},
			Violation: "freed command buffer 2 while it is pending",
		},
		"MapDeviceLocal": {
			Misuse: func(t *testing.T, dev *Device) {
				memory, _, err := dev.AllocateMemory(64, 0)
				require.NoError(t, err)
				_, _, err = dev.MapMemory(memory, 0, -1)
				require.Error(t, err)
			},
			Violation: "mapped memory 1 from memory type 0, which is not host visible",
		},
		"DestroySwapchainImage": {
			Misuse: func(t *testing.T, dev *Device) {
				_, images := dev.CreateSwapchain(2, core1_0.FormatB8G8R8A8SRGB, core1_0.Extent2D{Width: 4, Height: 4})
				dev.DestroyImage(images[0])
			},
			Violation: "destroyed swapchain image 2",
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			dev := New(DefaultOptions())
			testCase.Misuse(t, dev)
			require.Equal(t, []string{testCase.Violation}, dev.Violations())
		})
	}
}

func TestSwapchainInvalidation(t *testing.T) {
	dev := New(DefaultOptions())

	swapchain, images := dev.CreateSwapchain(3, core1_0.FormatB8G8R8A8SRGB, core1_0.Extent2D{Width: 4, Height: 4})
	require.Len(t, images, 3)

	semaphore, _, err := dev.CreateSemaphore()
	require.NoError(t, err)

	index, _, err := dev.AcquireNextImage(swapchain, common.NoTimeout, semaphore, device.NullHandle)
	require.NoError(t, err)
	require.Equal(t, 0, index)

	_, err = dev.QueuePresent(1, device.PresentInfo{
		WaitSemaphores: []device.Semaphore{semaphore},
		Swapchain:      swapchain,
		ImageIndex:     index,
	})
	require.NoError(t, err)
	require.Equal(t, []int{0}, dev.Presented())

	dev.FailNext("AcquireNextImage", khr_swapchain.VKSuboptimal)
	index, res, err := dev.AcquireNextImage(swapchain, common.NoTimeout, semaphore, device.NullHandle)
	require.NoError(t, err)
	require.Equal(t, khr_swapchain.VKSuboptimal, res)
	require.Equal(t, 1, index)

	dev.InvalidateSwapchain(swapchain)
	_, res, err = dev.AcquireNextImage(swapchain, common.NoTimeout, device.NullHandle, device.NullHandle)
	require.Error(t, err)
	require.Equal(t, khr_swapchain.VKErrorOutOfDate, res)

	dev.DestroySwapchain(swapchain)
	require.Equal(t, 0, dev.LiveObjects(KindImage))
	require.Empty(t, dev.Violations())
}

func TestDumpObjects(t *testing.T) {
	dev := New(DefaultOptions())

	_, _, err := dev.CreateFence(true)
	require.NoError(t, err)
	_, _, err = dev.AllocateMemory(256, 1)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"Pending": 0,
		"Violations": 0,
		"Objects": {
			"Memory": [{"Handle": "2", "Size": 256, "MemoryTypeIndex": 1, "Mapped": false}],
			"Fence": [{"Handle": "1", "Signaled": true, "PendingSignals": 0}]
		}
	}`, dev.DumpObjects())
}
