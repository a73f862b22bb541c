package frame

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/descriptor"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/arsenal/resman/ownership"
	"github.com/vkngwrapper/core/v2/common"
	"golang.org/x/exp/slog"
)

// Slot is one of the Controller's frames in flight. Everything a Slot holds is only safe
// to touch between the BeginFrame that returned it and the matching EndFrame.
type Slot struct {
	index      int
	imageIndex int

	imageAvailable device.Semaphore
	renderFinished device.Semaphore
	inFlight       device.Fence

	commandPool   device.CommandPool
	commandBuffer device.CommandBuffer

	descriptors *descriptor.Pool
	queue       *ownership.DestructionQueue
}

func (s *Slot) Index() int                          { return s.index }
func (s *Slot) ImageIndex() int                     { return s.imageIndex }
func (s *Slot) CommandBuffer() device.CommandBuffer { return s.commandBuffer }
func (s *Slot) Descriptors() *descriptor.Pool       { return s.descriptors }
func (s *Slot) Queue() *ownership.DestructionQueue  { return s.queue }
func (s *Slot) ImageAvailable() device.Semaphore    { return s.imageAvailable }
func (s *Slot) RenderFinished() device.Semaphore    { return s.renderFinished }
func (s *Slot) InFlight() device.Fence              { return s.inFlight }

func newSlot(dev device.Device, logger *slog.Logger, index int, options CreateOptions) (*Slot, common.VkResult, error) {
	slot := &Slot{
		index:      index,
		imageIndex: -1,
		queue:      ownership.NewDestructionQueue(logger),
	}

	var res common.VkResult
	var err error

	slot.imageAvailable, res, err = dev.CreateSemaphore()
	if err != nil {
		slot.destroy(dev)
		return nil, res, errors.Wrapf(err, "failed to create the image available semaphore of frame slot %d", index)
	}

	slot.renderFinished, res, err = dev.CreateSemaphore()
	if err != nil {
		slot.destroy(dev)
		return nil, res, errors.Wrapf(err, "failed to create the render finished semaphore of frame slot %d", index)
	}

	// Created signaled so that the first wait on each slot returns immediately
	slot.inFlight, res, err = dev.CreateFence(true)
	if err != nil {
		slot.destroy(dev)
		return nil, res, errors.Wrapf(err, "failed to create the in flight fence of frame slot %d", index)
	}

	slot.commandPool, res, err = dev.CreateCommandPool(options.QueueFamilyIndex)
	if err != nil {
		slot.destroy(dev)
		return nil, res, errors.Wrapf(err, "failed to create the command pool of frame slot %d", index)
	}

	slot.commandBuffer, res, err = dev.AllocateCommandBuffer(slot.commandPool)
	if err != nil {
		slot.destroy(dev)
		return nil, res, errors.Wrapf(err, "failed to allocate the command buffer of frame slot %d", index)
	}

	if !options.TransientCounts.IsZero() {
		slot.descriptors, res, err = descriptor.NewPool(dev, descriptor.PoolCreateInfo{
			Name:    fmt.Sprintf("frame slot %d", index),
			Counts:  options.TransientCounts,
			MaxSets: options.TransientMultiplier,
		})
		if err != nil {
			slot.destroy(dev)
			return nil, res, err
		}
	}

	return slot, res, nil
}

// release runs the slot's deferred destructors. The slot's previous submission must have
// completed.
func (s *Slot) release(dev device.Device, allocator *gpumem.Allocator) error {
	s.queue.Dispatch(dev, allocator)

	if s.descriptors != nil {
		_, err := s.descriptors.Reset(dev)
		if err != nil {
			return errors.Wrapf(err, "failed to reset the descriptor pool of frame slot %d", s.index)
		}
	}

	return nil
}

// destroy tears down whatever part of the slot exists. The slot's queue must already be empty.
func (s *Slot) destroy(dev device.Device) {
	s.queue.Drop()

	if s.descriptors != nil {
		s.descriptors.Destroy(dev)
		s.descriptors = nil
	}
	if s.commandBuffer != device.NullHandle {
		dev.FreeCommandBuffer(s.commandPool, s.commandBuffer)
		s.commandBuffer = device.NullHandle
	}
	if s.commandPool != device.NullHandle {
		dev.DestroyCommandPool(s.commandPool)
		s.commandPool = device.NullHandle
	}
	if s.inFlight != device.NullHandle {
		dev.DestroyFence(s.inFlight)
		s.inFlight = device.NullHandle
	}
	if s.renderFinished != device.NullHandle {
		dev.DestroySemaphore(s.renderFinished)
		s.renderFinished = device.NullHandle
	}
	if s.imageAvailable != device.NullHandle {
		dev.DestroySemaphore(s.imageAvailable)
		s.imageAvailable = device.NullHandle
	}
}
