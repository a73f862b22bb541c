package frame

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/resman/descriptor"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/devicetest"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/arsenal/resman/mocks"
	"github.com/vkngwrapper/arsenal/resman/ownership"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const testQueue = device.Queue(1)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

type testHarness struct {
	dev         *devicetest.Device
	allocator   *gpumem.Allocator
	presenter   *SwapchainPresenter
	controller  *Controller
	recreations int
}

func newHarness(t *testing.T, autoComplete bool, options CreateOptions) *testHarness {
	deviceOptions := devicetest.DefaultOptions()
	deviceOptions.AutoComplete = autoComplete
	dev := devicetest.New(deviceOptions)

	allocator, err := gpumem.New(testLogger(), dev, gpumem.CreateOptions{})
	require.NoError(t, err)

	harness := &testHarness{dev: dev, allocator: allocator}

	swapchain, _ := dev.CreateSwapchain(3, core1_0.FormatB8G8R8A8UnsignedNormalized, core1_0.Extent2D{Width: 800, Height: 600})
	harness.presenter = NewSwapchainPresenter(dev, swapchain, func(old device.Swapchain) (device.Swapchain, error) {
		harness.recreations++
		dev.DestroySwapchain(old)
		replacement, _ := dev.CreateSwapchain(3, core1_0.FormatB8G8R8A8UnsignedNormalized, core1_0.Extent2D{Width: 1024, Height: 768})
		return replacement, nil
	})

	options.Queue = testQueue
	harness.controller, _, err = New(dev, allocator, harness.presenter, testLogger(), options)
	require.NoError(t, err)

	return harness
}

func (h *testHarness) frame(t *testing.T) *Slot {
	slot, err := h.controller.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, h.controller.EndFrame())

	return slot
}

func (h *testHarness) finish(t *testing.T) {
	h.controller.Destroy()
	h.dev.DestroySwapchain(h.presenter.Swapchain())

	require.NoError(t, h.allocator.Destroy())
	for _, kind := range []devicetest.ObjectKind{
		devicetest.KindSemaphore,
		devicetest.KindFence,
		devicetest.KindCommandPool,
		devicetest.KindCommandBuffer,
		devicetest.KindDescriptorPool,
		devicetest.KindSwapchain,
		devicetest.KindMemory,
	} {
		require.Equal(t, 0, h.dev.LiveObjects(kind), kind.String())
	}
	require.Empty(t, h.dev.Violations())
}

func TestSlotsRotate(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	require.Equal(t, 2, harness.controller.FramesInFlight())
	require.Equal(t, 2, harness.dev.LiveObjects(devicetest.KindFence))
	require.Equal(t, 4, harness.dev.LiveObjects(devicetest.KindSemaphore))

	var slots []int
	for i := 0; i < 4; i++ {
		require.Equal(t, i, harness.controller.FrameIndex())
		slots = append(slots, harness.frame(t).Index())
	}

	require.Equal(t, []int{0, 1, 0, 1}, slots)
	require.Equal(t, 4, harness.controller.FrameIndex())
	require.Equal(t, 0, harness.controller.SlotIndex())
	require.Equal(t, []int{0, 1, 2, 0}, harness.dev.Presented())

	harness.finish(t)
}

func TestFrameWaitsForSlotFence(t *testing.T) {
	harness := newHarness(t, false, CreateOptions{})
	controller := harness.controller
	dev := harness.dev

	// Both fences start signaled, so the first two frames never wait
	harness.frame(t)
	harness.frame(t)
	require.Equal(t, 2, dev.Pending())

	begin := func() (*errgroup.Group, *atomic.Bool) {
		var done atomic.Bool
		var group errgroup.Group
		group.Go(func() error {
			_, err := controller.BeginFrame()
			done.Store(true)
			return err
		})

		require.Eventually(t, func() bool {
			return dev.BlockedWaiters() == 1
		}, time.Second, time.Millisecond)
		return &group, &done
	}

	// Frame 2 reuses slot 0 and waits for frame 0
	group, done := begin()
	require.False(t, done.Load())
	require.True(t, dev.Signal())
	require.NoError(t, group.Wait())
	require.Equal(t, 0, controller.SlotIndex())
	require.NoError(t, controller.EndFrame())

	// Frame 3 reuses slot 1 and waits for frame 1, which is still pending behind frame 2
	group, done = begin()
	require.Equal(t, 2, dev.Pending())
	require.False(t, done.Load())
	require.False(t, dev.FenceSignaled(controller.slots[1].InFlight()))

	require.True(t, dev.Signal())
	require.NoError(t, group.Wait())
	require.True(t, done.Load())
	require.Equal(t, 1, controller.SlotIndex())
	require.NoError(t, controller.EndFrame())

	require.Equal(t, 2, dev.SignalAll())
	require.Equal(t, []int{0, 1, 2, 0}, dev.Presented())
	harness.finish(t)
}

func TestDeferredDestructorRunsWhenSlotReturns(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	dev := harness.dev

	scratch, _, err := dev.CreateSemaphore()
	require.NoError(t, err)

	slot, err := harness.controller.BeginFrame()
	require.NoError(t, err)
	slot.Queue().PushFunc("scratch semaphore", ownership.KindDevice, func(dev device.Device, _ *gpumem.Allocator) {
		dev.DestroySemaphore(scratch)
	})
	require.NoError(t, harness.controller.EndFrame())

	harness.frame(t)
	require.True(t, dev.Exists(uint64(scratch)))

	// Slot 0 comes back around
	slot, err = harness.controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 0, slot.Index())
	require.False(t, dev.Exists(uint64(scratch)))
	require.Equal(t, 0, slot.Queue().Len())

	// Anything still deferred to a slot runs when the controller is destroyed
	late, _, err := dev.CreateSemaphore()
	require.NoError(t, err)
	slot.Queue().PushFunc("late semaphore", ownership.KindDevice, func(dev device.Device, _ *gpumem.Allocator) {
		dev.DestroySemaphore(late)
	})
	require.NoError(t, harness.controller.EndFrame())

	harness.finish(t)
}

func TestRecreateOnOutOfDate(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	controller := harness.controller
	dev := harness.dev

	harness.frame(t)

	// Invalid at acquire: the surface is rebuilt and the acquire retried within BeginFrame
	dev.InvalidateSwapchain(harness.presenter.Swapchain())
	slot, err := controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 1, harness.recreations)
	require.Equal(t, 0, slot.ImageIndex())
	require.NoError(t, controller.EndFrame())

	// Invalid at present: the frame still ends and the surface is rebuilt before the next one
	_, err = controller.BeginFrame()
	require.NoError(t, err)
	dev.InvalidateSwapchain(harness.presenter.Swapchain())
	require.NoError(t, controller.EndFrame())
	require.Equal(t, 1, harness.recreations)
	require.Equal(t, 3, controller.FrameIndex())

	harness.frame(t)
	require.Equal(t, 2, harness.recreations)

	require.Equal(t, []int{0, 0, 0}, dev.Presented())
	harness.finish(t)
}

func TestRecreateOnSuboptimal(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})

	// A suboptimal image is still drawn and presented
	harness.dev.FailNext("AcquireNextImage", khr_swapchain.VKSuboptimal)
	harness.frame(t)
	require.Equal(t, 0, harness.recreations)

	harness.frame(t)
	require.Equal(t, 1, harness.recreations)

	harness.controller.NotifyResized()
	harness.frame(t)
	require.Equal(t, 2, harness.recreations)

	require.Equal(t, []int{0, 0, 0}, harness.dev.Presented())
	harness.finish(t)
}

func TestRecreateFailureLeavesSlotReusable(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	dev := harness.dev

	failing := true
	swapchain := harness.presenter.Swapchain()
	harness.presenter.recreate = func(old device.Swapchain) (device.Swapchain, error) {
		if failing {
			return device.NullHandle, errors.New("the window is minimized")
		}

		dev.DestroySwapchain(old)
		replacement, _ := dev.CreateSwapchain(2, core1_0.FormatB8G8R8A8UnsignedNormalized, core1_0.Extent2D{Width: 640, Height: 480})
		return replacement, nil
	}

	dev.InvalidateSwapchain(swapchain)
	_, err := harness.controller.BeginFrame()
	require.ErrorContains(t, err, "the window is minimized")
	require.Equal(t, 0, harness.controller.FrameIndex())

	// The fence was never reset, so trying again doesn't wait on a submission that never happened
	require.True(t, dev.FenceSignaled(harness.controller.slots[0].InFlight()))

	failing = false
	slot, err := harness.controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 0, slot.Index())
	require.NoError(t, harness.controller.EndFrame())

	harness.finish(t)
}

func TestSurfaceThatStaysInvalid(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	dev := harness.dev

	harness.presenter.recreate = func(old device.Swapchain) (device.Swapchain, error) {
		return old, nil
	}

	dev.InvalidateSwapchain(harness.presenter.Swapchain())
	_, err := harness.controller.BeginFrame()
	require.EqualError(t, err, "the surface was still invalid after being recreated 3 times")

	dev.DestroySwapchain(harness.presenter.Swapchain())
	swapchain, _ := dev.CreateSwapchain(2, core1_0.FormatB8G8R8A8UnsignedNormalized, core1_0.Extent2D{Width: 640, Height: 480})
	harness.presenter.swapchain = swapchain

	harness.frame(t)
	harness.finish(t)
}

func TestFenceTimeoutIsFatal(t *testing.T) {
	harness := newHarness(t, false, CreateOptions{
		FramesInFlight: 1,
		FenceTimeout:   10 * time.Millisecond,
	})

	harness.frame(t)
	require.Equal(t, 1, harness.dev.Pending())

	require.PanicsWithError(t, "frame slot 0 did not complete within 10ms: "+core1_0.VKErrorDeviceLost.ToError().Error(), func() {
		_, _ = harness.controller.BeginFrame()
	})

	harness.dev.SignalAll()
	harness.frame(t)
	harness.dev.SignalAll()

	harness.finish(t)
}

func TestFenceWaitFailureIsFatal(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})

	harness.dev.FailNext("WaitForFences", core1_0.VKErrorDeviceLost)
	require.Panics(t, func() {
		_, _ = harness.controller.BeginFrame()
	})

	harness.frame(t)
	harness.finish(t)
}

func TestTransientDescriptorsReset(t *testing.T) {
	var counts descriptor.TypeCounts
	counts.Add(core1_0.DescriptorTypeUniformBuffer, 1)

	harness := newHarness(t, true, CreateOptions{
		TransientCounts:     counts,
		TransientMultiplier: 2,
	})
	dev := harness.dev
	require.Equal(t, 2, dev.LiveObjects(devicetest.KindDescriptorPool))

	layout, _, err := descriptor.NewLayoutBuilder().
		AddBinding(0, core1_0.DescriptorTypeUniformBuffer, 1, core1_0.StageVertex).
		Build(dev)
	require.NoError(t, err)

	slot, err := harness.controller.BeginFrame()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, _, err = slot.Descriptors().Allocate(dev, layout)
		require.NoError(t, err)
	}
	_, _, err = slot.Descriptors().Allocate(dev, layout)
	require.ErrorIs(t, err, descriptor.ErrPoolExhausted)
	require.NoError(t, harness.controller.EndFrame())

	slot, err = harness.controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 2, slot.Descriptors().SetsRemaining())
	require.NoError(t, harness.controller.EndFrame())

	slot, err = harness.controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 0, slot.Index())
	require.Equal(t, 2, slot.Descriptors().SetsRemaining())
	require.Equal(t, 0, dev.DescriptorPoolSetCount(slot.Descriptors().Handle()))
	require.NoError(t, harness.controller.EndFrame())

	layout.Destroy(dev)
	harness.finish(t)
}

func TestControllerMisuse(t *testing.T) {
	harness := newHarness(t, true, CreateOptions{})
	controller := harness.controller

	require.PanicsWithValue(t, "frame: ended a frame that was never begun", func() {
		_ = controller.EndFrame()
	})

	_, err := controller.BeginFrame()
	require.NoError(t, err)
	require.PanicsWithValue(t, "frame: began a frame while the previous frame had not ended", func() {
		_, _ = controller.BeginFrame()
	})
	require.PanicsWithValue(t, "frame: destroyed a frame controller while a frame was being recorded", func() {
		controller.Destroy()
	})
	require.NoError(t, controller.EndFrame())

	harness.finish(t)
	require.PanicsWithValue(t, "frame: began a frame on a frame controller that was already destroyed", func() {
		_, _ = controller.BeginFrame()
	})
}

func TestNewValidation(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())
	swapchain, _ := dev.CreateSwapchain(2, core1_0.FormatB8G8R8A8UnsignedNormalized, core1_0.Extent2D{Width: 8, Height: 8})
	presenter := NewSwapchainPresenter(dev, swapchain, nil)

	testCases := map[string]struct {
		presenter Presenter
		options   CreateOptions
		err       string
	}{
		"no presenter": {
			options: CreateOptions{},
			err:     "a frame controller needs a presenter",
		},
		"negative frames in flight": {
			presenter: presenter,
			options:   CreateOptions{FramesInFlight: -1},
			err:       "frames in flight must be at least 1, but was -1",
		},
		"negative transient multiplier": {
			presenter: presenter,
			options:   CreateOptions{TransientMultiplier: -2},
			err:       "transient multiplier must be at least 1, but was -2",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := New(dev, nil, testCase.presenter, testLogger(), testCase.options)
			require.EqualError(t, err, testCase.err)
		})
	}

	// A slot that fails partway through creation releases what it had already created
	dev.FailNext("AllocateCommandBuffer", core1_0.VKErrorOutOfDeviceMemory)
	_, res, err := New(dev, nil, presenter, testLogger(), CreateOptions{})
	require.Error(t, err)
	require.Equal(t, core1_0.VKErrorOutOfDeviceMemory, res)
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindSemaphore))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindFence))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandPool))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandBuffer))

	// Without a recreate function an invalid surface can't be recovered
	controller, _, err := New(dev, nil, presenter, testLogger(), CreateOptions{})
	require.NoError(t, err)
	dev.InvalidateSwapchain(swapchain)
	_, err = controller.BeginFrame()
	require.ErrorContains(t, err, "the presenter has no way to recreate it")
	controller.Destroy()

	require.Empty(t, dev.Violations())
}

func TestBeginFrameResetsFenceAfterAcquire(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := mocks.NewMockDevice(ctrl)

	gomock.InOrder(
		dev.EXPECT().CreateSemaphore().Return(device.Semaphore(1), core1_0.VKSuccess, nil),
		dev.EXPECT().CreateSemaphore().Return(device.Semaphore(2), core1_0.VKSuccess, nil),
		dev.EXPECT().CreateFence(true).Return(device.Fence(3), core1_0.VKSuccess, nil),
		dev.EXPECT().CreateCommandPool(0).Return(device.CommandPool(4), core1_0.VKSuccess, nil),
		dev.EXPECT().AllocateCommandBuffer(device.CommandPool(4)).Return(device.CommandBuffer(5), core1_0.VKSuccess, nil),
	)

	presenter := NewSwapchainPresenter(dev, device.Swapchain(9), nil)
	controller, _, err := New(dev, nil, presenter, testLogger(), CreateOptions{FramesInFlight: 1})
	require.NoError(t, err)

	gomock.InOrder(
		dev.EXPECT().WaitForFences([]device.Fence{3}, true, common.NoTimeout).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().AcquireNextImage(device.Swapchain(9), common.NoTimeout, device.Semaphore(1), device.Fence(0)).Return(2, core1_0.VKSuccess, nil),
		dev.EXPECT().ResetFences([]device.Fence{3}).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().ResetCommandBuffer(device.CommandBuffer(5)).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().BeginCommandBuffer(device.CommandBuffer(5), core1_0.CommandBufferUsageOneTimeSubmit).Return(core1_0.VKSuccess, nil),
	)

	slot, err := controller.BeginFrame()
	require.NoError(t, err)
	require.Equal(t, 2, slot.ImageIndex())

	gomock.InOrder(
		dev.EXPECT().EndCommandBuffer(device.CommandBuffer(5)).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().QueueSubmit(device.Queue(0), []device.SubmitInfo{
			{
				WaitSemaphores:   []device.Semaphore{1},
				WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
				CommandBuffers:   []device.CommandBuffer{5},
				SignalSemaphores: []device.Semaphore{2},
			},
		}, device.Fence(3)).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().QueuePresent(device.Queue(0), device.PresentInfo{
			WaitSemaphores: []device.Semaphore{2},
			Swapchain:      device.Swapchain(9),
			ImageIndex:     2,
		}).Return(core1_0.VKSuccess, nil),
	)

	require.NoError(t, controller.EndFrame())

	// An acquire that fails outright leaves the fence alone
	gomock.InOrder(
		dev.EXPECT().WaitForFences([]device.Fence{3}, true, common.NoTimeout).Return(core1_0.VKSuccess, nil),
		dev.EXPECT().AcquireNextImage(device.Swapchain(9), common.NoTimeout, device.Semaphore(1), device.Fence(0)).
			Return(-1, core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()),
	)

	_, err = controller.BeginFrame()
	require.ErrorContains(t, err, "failed to acquire a surface image for frame slot 0")
}
