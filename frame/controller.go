// Package frame runs the frame loop. A Controller rotates a fixed number of Slots, each with
// its own synchronization primitives, command buffer, transient descriptor pool and
// destruction queue, so that the host can record one frame while the device is still
// executing the previous ones.
package frame

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/descriptor"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"
	"golang.org/x/exp/slog"
)

const (
	DefaultFramesInFlight      = 2
	DefaultTransientMultiplier = 10

	// maxRecreateAttempts bounds how many times a single BeginFrame will rebuild a surface
	// that keeps reporting itself invalid
	maxRecreateAttempts = 3
)

type CreateOptions struct {
	// FramesInFlight is the number of slots. Zero means DefaultFramesInFlight.
	FramesInFlight int
	// FenceTimeout bounds the wait for a slot's previous submission. Zero means
	// common.NoTimeout. A bounded wait that expires is treated as a lost device.
	FenceTimeout time.Duration

	// TransientCounts is the number of descriptors of each type a single transient set
	// uses. Each slot gets a descriptor pool holding TransientMultiplier such sets, reset
	// every time the slot comes back around. Zero counts mean slots have no descriptor pool.
	TransientCounts descriptor.TypeCounts
	// TransientMultiplier is the number of transient sets per slot. Zero means
	// DefaultTransientMultiplier.
	TransientMultiplier int

	// Queue receives frame submissions and presents
	Queue            device.Queue
	QueueFamilyIndex int
}

// Controller drives the frame loop: BeginFrame waits for the current slot to come free and
// acquires a surface image, and EndFrame submits the slot's command buffer, presents and
// advances to the next slot.
//
// The Controller is not safe for concurrent use.
type Controller struct {
	logger    *slog.Logger
	dev       device.Device
	allocator *gpumem.Allocator
	presenter Presenter
	options   CreateOptions

	slots      []*Slot
	frameIndex int

	recording     bool
	needsRecreate bool
	destroyed     bool
}

// New creates a Controller and all of its slots. allocator is passed to the slots'
// destruction queues and may be nil if nothing deferred to a slot needs it.
func New(dev device.Device, allocator *gpumem.Allocator, presenter Presenter, logger *slog.Logger, options CreateOptions) (*Controller, common.VkResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if presenter == nil {
		return nil, core1_0.VKErrorUnknown, errors.New("a frame controller needs a presenter")
	}

	if options.FramesInFlight == 0 {
		options.FramesInFlight = DefaultFramesInFlight
	}
	if options.FenceTimeout == 0 {
		options.FenceTimeout = common.NoTimeout
	}
	if options.TransientMultiplier == 0 {
		options.TransientMultiplier = DefaultTransientMultiplier
	}
	if options.FramesInFlight < 1 {
		return nil, core1_0.VKErrorUnknown, errors.Newf("frames in flight must be at least 1, but was %d", options.FramesInFlight)
	}
	if options.TransientMultiplier < 1 {
		return nil, core1_0.VKErrorUnknown, errors.Newf("transient multiplier must be at least 1, but was %d", options.TransientMultiplier)
	}

	controller := &Controller{
		logger:    logger,
		dev:       dev,
		allocator: allocator,
		presenter: presenter,
		options:   options,
	}

	res := core1_0.VKSuccess
	for i := 0; i < options.FramesInFlight; i++ {
		slot, slotRes, err := newSlot(dev, logger, i, options)
		if err != nil {
			for _, created := range controller.slots {
				created.destroy(dev)
			}
			return nil, slotRes, err
		}

		res = slotRes
		controller.slots = append(controller.slots, slot)
	}

	logger.Debug("Controller::New",
		slog.Int("FramesInFlight", options.FramesInFlight),
		slog.String("TransientCounts", options.TransientCounts.String()),
	)

	return controller, res, nil
}

// FrameIndex is the number of frames that have ended
func (c *Controller) FrameIndex() int { return c.frameIndex }

// SlotIndex is the slot the next (or current) frame uses
func (c *Controller) SlotIndex() int { return c.frameIndex % len(c.slots) }

func (c *Controller) FramesInFlight() int { return len(c.slots) }

// NotifyResized tells the controller the surface has changed size. The surface is rebuilt
// before the next image is acquired.
func (c *Controller) NotifyResized() {
	c.needsRecreate = true
}

func (c *Controller) checkLive(operation string) {
	if c.destroyed {
		panic("frame: " + operation + " on a frame controller that was already destroyed")
	}
}

// BeginFrame waits until the current slot's previous submission has completed, releases
// everything deferred to the slot, and acquires the next surface image. It returns the slot
// with its command buffer reset and recording.
//
// An invalid surface is rebuilt through the Presenter and the acquire is retried. A failed
// or expired fence wait means the device is gone, and panics.
func (c *Controller) BeginFrame() (*Slot, error) {
	c.checkLive("began a frame")
	if c.recording {
		panic("frame: began a frame while the previous frame had not ended")
	}

	slot := c.slots[c.SlotIndex()]
	c.logger.Debug("Controller::BeginFrame",
		slog.Int("FrameIndex", c.frameIndex),
		slog.Int("SlotIndex", slot.index),
	)

	c.waitSlot(slot)

	err := slot.release(c.dev, c.allocator)
	if err != nil {
		return nil, err
	}

	imageIndex, err := c.acquire(slot)
	if err != nil {
		return nil, err
	}

	// The fence is only reset once an image is in hand: an acquire that fails leaves it
	// signaled, so the next BeginFrame doesn't wait forever on a submission that never happened
	_, err = c.dev.ResetFences([]device.Fence{slot.inFlight})
	if err != nil {
		panic(errors.Wrapf(err, "failed to reset the in flight fence of frame slot %d", slot.index))
	}

	_, err = c.dev.ResetCommandBuffer(slot.commandBuffer)
	if err != nil {
		panic(errors.Wrapf(err, "failed to reset the command buffer of frame slot %d", slot.index))
	}

	_, err = c.dev.BeginCommandBuffer(slot.commandBuffer, core1_0.CommandBufferUsageOneTimeSubmit)
	if err != nil {
		panic(errors.Wrapf(err, "failed to begin the command buffer of frame slot %d", slot.index))
	}

	slot.imageIndex = imageIndex
	c.recording = true
	return slot, nil
}

func (c *Controller) waitSlot(slot *Slot) {
	res, err := c.dev.WaitForFences([]device.Fence{slot.inFlight}, true, c.options.FenceTimeout)
	if err != nil {
		panic(errors.Wrapf(err, "failed to wait for frame slot %d", slot.index))
	} else if res == core1_0.VKTimeout {
		panic(errors.Wrapf(core1_0.VKErrorDeviceLost.ToError(), "frame slot %d did not complete within %s", slot.index, c.options.FenceTimeout))
	}
}

func (c *Controller) acquire(slot *Slot) (int, error) {
	recreations := 0
	for {
		if c.needsRecreate {
			if recreations == maxRecreateAttempts {
				return -1, errors.Newf("the surface was still invalid after being recreated %d times", recreations)
			}

			err := c.recreate()
			if err != nil {
				return -1, err
			}
			recreations++
		}

		imageIndex, res, err := c.presenter.Acquire(slot.imageAvailable)
		if surfaceInvalid(res) {
			c.logger.Debug("  Acquire found an invalid surface", slog.String("Result", res.String()))
			c.needsRecreate = true
			continue
		} else if err != nil {
			return -1, errors.Wrapf(err, "failed to acquire a surface image for frame slot %d", slot.index)
		}

		// A suboptimal image has still been acquired and has to be presented
		if res == khr_swapchain.VKSuboptimal {
			c.needsRecreate = true
		}

		return imageIndex, nil
	}
}

func (c *Controller) recreate() error {
	c.logger.Debug("Controller::recreate", slog.Int("FrameIndex", c.frameIndex))

	_, err := c.dev.DeviceWaitIdle()
	if err != nil {
		panic(errors.Wrap(err, "failed to wait for the device to go idle before recreating the surface"))
	}

	err = c.presenter.Recreate()
	if err != nil {
		return err
	}

	c.needsRecreate = false
	return nil
}

// EndFrame ends the current slot's command buffer, submits it and presents the acquired
// image, then advances to the next slot. A surface that reports itself invalid or
// suboptimal at present is rebuilt at the start of the next frame.
func (c *Controller) EndFrame() error {
	c.checkLive("ended a frame")
	if !c.recording {
		panic("frame: ended a frame that was never begun")
	}

	slot := c.slots[c.SlotIndex()]
	c.logger.Debug("Controller::EndFrame",
		slog.Int("FrameIndex", c.frameIndex),
		slog.Int("SlotIndex", slot.index),
		slog.Int("ImageIndex", slot.imageIndex),
	)

	_, err := c.dev.EndCommandBuffer(slot.commandBuffer)
	if err != nil {
		panic(errors.Wrapf(err, "failed to end the command buffer of frame slot %d", slot.index))
	}

	_, err = c.dev.QueueSubmit(c.options.Queue, []device.SubmitInfo{
		{
			WaitSemaphores:   []device.Semaphore{slot.imageAvailable},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []device.CommandBuffer{slot.commandBuffer},
			SignalSemaphores: []device.Semaphore{slot.renderFinished},
		},
	}, slot.inFlight)
	if err != nil {
		panic(errors.Wrapf(err, "failed to submit frame slot %d", slot.index))
	}

	c.recording = false
	c.frameIndex++

	res, err := c.presenter.Present(c.options.Queue, slot.imageIndex, slot.renderFinished)
	if surfaceStale(res) {
		c.logger.Debug("  Present found a stale surface", slog.String("Result", res.String()))
		c.needsRecreate = true
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "failed to present image %d from frame slot %d", slot.imageIndex, slot.index)
	}

	return nil
}

// Destroy waits for the device to go idle, runs every slot's deferred destructors and
// destroys the slots
func (c *Controller) Destroy() {
	c.checkLive("destroyed")
	if c.recording {
		panic("frame: destroyed a frame controller while a frame was being recorded")
	}

	_, err := c.dev.DeviceWaitIdle()
	if err != nil {
		panic(errors.Wrap(err, "failed to wait for the device to go idle before destroying the frame controller"))
	}

	for _, slot := range c.slots {
		slot.queue.Dispatch(c.dev, c.allocator)
		slot.destroy(c.dev)
	}

	c.slots = nil
	c.destroyed = true
}
