package gpumem

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"golang.org/x/exp/slog"
)

// deviceMemoryBlock is a single device memory object that allocations are carved out of
type deviceMemoryBlock struct {
	id              int
	memory          *deviceMemory
	memoryTypeIndex int
	logger          *slog.Logger

	metadata     *blockMetadata
	deviceMemory *deviceMemoryProperties
}

func newDeviceMemoryBlock(
	logger *slog.Logger,
	deviceMemory *deviceMemoryProperties,
	memoryTypeIndex int,
	memory *deviceMemory,
	id int,
) *deviceMemoryBlock {
	if memory == nil {
		panic("attempting to initialize a device memory block without a device memory object")
	}

	return &deviceMemoryBlock{
		id:              id,
		memory:          memory,
		memoryTypeIndex: memoryTypeIndex,
		logger:          logger,
		metadata:        newBlockMetadata(memory.size, deviceMemory.CalculateBufferImageGranularity()),
		deviceMemory:    deviceMemory,
	}
}

// Destroy returns the block's memory to the device. A block that still holds allocations
// logs each of them and is left intact.
func (b *deviceMemoryBlock) Destroy() error {
	if !b.metadata.IsEmpty() {
		b.metadata.VisitAllBlocks(func(handle metadata.BlockAllocationHandle, offset int, size int, userData any, free bool) {
			if free {
				return
			}

			b.logUnreleasedMemory(offset, size, userData)
		})

		return errors.Newf("%d allocations were not freed before the destruction of memory block %d", b.metadata.AllocationCount(), b.id)
	}

	if b.memory == nil {
		panic("attempting to destroy a memory block, but it did not have a backing device memory object")
	}

	b.deviceMemory.FreeDeviceMemory(b.memoryTypeIndex, b.memory)

	b.memory = nil
	b.metadata = nil
	return nil
}

func (b *deviceMemoryBlock) logUnreleasedMemory(offset, size int, userData any) {
	allocation, ok := userData.(*Allocation)
	if !ok {
		b.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed suballocation",
			slog.Int("offset", offset),
			slog.Int("size", size),
		)
		return
	}

	name := allocation.Name()
	if name == "" {
		name = "empty"
	}

	b.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed allocation",
		slog.Int("offset", offset),
		slog.Int("size", size),
		slog.Any("userData", allocation.UserData()),
		slog.String("name", name),
		slog.String("location", allocation.Location().String()),
	)
}

func (b *deviceMemoryBlock) Validate() error {
	if b.memory == nil {
		return errors.New("no valid memory for this memory block")
	}
	if b.metadata.Size() < 1 {
		return errors.New("this memory block's metadata has an invalid size")
	}

	var err error
	b.metadata.VisitAllBlocks(func(handle metadata.BlockAllocationHandle, offset, size int, userData any, free bool) {
		if err != nil {
			return
		}

		allocation, isAllocation := userData.(*Allocation)
		if free && isAllocation {
			err = errors.Newf("an allocation at offset %d is marked as free but contains an allocation object", offset)
		} else if !free && (!isAllocation || allocation == nil) {
			err = errors.Newf("an allocation at offset %d is marked as allocated but has no allocation object", offset)
		}
	})
	if err != nil {
		return err
	}

	return b.metadata.Validate()
}

func (b *deviceMemoryBlock) String() string {
	return fmt.Sprintf("deviceMemoryBlock{id: %d, memoryTypeIndex: %d, %s}", b.id, b.memoryTypeIndex, b.metadata.String())
}
