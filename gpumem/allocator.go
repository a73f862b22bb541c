package gpumem

import (
	"context"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/docker/go-units"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// AllocationCreateInfo describes an allocation request
type AllocationCreateInfo struct {
	// Name is a debugging label carried by the allocation and reported in leak logs and
	// statistics output
	Name string
	// Location selects the memory type the allocation is placed in
	Location Location
	// Flags tune placement: AllocationCreateDedicatedMemory, AllocationCreateNeverAllocate,
	// AllocationCreateWithinBudget and the AllocationCreateStrategy flags are honored
	Flags memutils.AllocationCreateFlags
	// SuballocationType describes the resource that will be bound to the allocation so that
	// linear and optimal resources are kept apart according to the device's
	// BufferImageGranularity. The zero value is treated as metadata.SuballocationUnknown.
	SuballocationType metadata.SuballocationType
	UserData          any
}

// Allocator hands out ranges of device memory. Small allocations share large device memory
// blocks, one list of blocks per memory type; large allocations get a device memory object
// of their own.
type Allocator struct {
	useMutex    bool
	logger      *slog.Logger
	device      device.Device
	createFlags CreateFlags

	deviceMemory                *deviceMemoryProperties
	preferredLargeHeapBlockSize int
	globalMemoryTypeBits        uint32

	memoryBlockLists     [common.MaxMemoryTypes]*memoryBlockList
	dedicatedAllocations [common.MaxMemoryTypes]*dedicatedAllocationList

	nextAllocationID uint64
	liveMutex        utils.OptionalMutex
	live             *swiss.Map[uint64, *Allocation]
}

// FindMemoryTypeIndex picks the memory type best suited to the location among the types
// allowed by memoryTypeBits. Types missing a required property flag are never picked; among
// the rest, the type with the fewest missing preferred flags and present unwanted flags wins.
func (a *Allocator) FindMemoryTypeIndex(memoryTypeBits uint32, location Location) (int, common.VkResult, error) {
	memoryTypeBits &= a.globalMemoryTypeBits

	requiredFlags, preferredFlags, notPreferredFlags, ok := location.memoryPreferences()
	if !ok {
		return -1, core1_0.VKErrorFeatureNotPresent, errors.Newf("unknown memory location %d", location)
	}

	bestMemoryTypeIndex := -1
	minCost := math.MaxInt

	for memTypeIndex := 0; memTypeIndex < a.deviceMemory.MemoryTypeCount(); memTypeIndex++ {
		memTypeBit := uint32(1 << memTypeIndex)

		if memTypeBit&memoryTypeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		flags := a.deviceMemory.MemoryTypeProperties(memTypeIndex).PropertyFlags
		if requiredFlags&flags != requiredFlags {
			// This memory type is missing required flags
			continue
		}

		missingPreferredFlags := preferredFlags & ^flags
		presentNotPreferredFlags := notPreferredFlags & flags
		cost := bits.OnesCount32(uint32(missingPreferredFlags)) + bits.OnesCount32(uint32(presentNotPreferredFlags))
		if cost == 0 {
			return memTypeIndex, core1_0.VKSuccess, nil
		} else if cost < minCost {
			bestMemoryTypeIndex = memTypeIndex
			minCost = cost
		}
	}

	if bestMemoryTypeIndex < 0 {
		return -1, core1_0.VKErrorFeatureNotPresent, errors.Wrapf(core1_0.VKErrorFeatureNotPresent.ToError(), "no memory type satisfies %s with memory type bits %#x", location, memoryTypeBits)
	}

	return bestMemoryTypeIndex, core1_0.VKSuccess, nil
}

// Allocate finds memory satisfying the requirements in the requested location. If the best
// memory type cannot satisfy the request, the next best type is tried until none remain.
func (a *Allocator) Allocate(requirements core1_0.MemoryRequirements, info AllocationCreateInfo) (*Allocation, common.VkResult, error) {
	a.logger.Debug("Allocator::Allocate",
		slog.String("Name", info.Name),
		slog.Int("Size", requirements.Size),
		slog.Int("Alignment", requirements.Alignment),
		slog.String("Location", info.Location.String()),
	)

	if requirements.Size < 1 {
		return nil, core1_0.VKErrorUnknown, errors.Newf("attempted to allocate %d bytes for %q", requirements.Size, info.Name)
	}

	alignment := requirements.Alignment
	if alignment < 1 {
		alignment = 1
	}
	err := memutils.CheckPow2(alignment, "requirements.Alignment")
	if err != nil {
		return nil, core1_0.VKErrorUnknown, err
	}

	memoryTypeBits := requirements.MemoryTypeBits
	memoryTypeIndex, res, err := a.FindMemoryTypeIndex(memoryTypeBits, info.Location)
	if err != nil {
		return nil, res, err
	}

	for {
		alloc := &Allocation{
			parentAllocator: a,
			name:            info.Name,
			userData:        info.UserData,
			location:        info.Location,
		}

		res, err = a.allocateMemoryOfType(requirements.Size, alignment, &info, memoryTypeIndex, alloc)
		if err == nil {
			alloc.id = atomic.AddUint64(&a.nextAllocationID, 1)

			a.liveMutex.Lock()
			a.live.Put(alloc.id, alloc)
			a.liveMutex.Unlock()

			return alloc, res, nil
		}

		// Remove old memory type from list of possibilities and try again
		memoryTypeBits &= ^(1 << memoryTypeIndex)
		nextIndex, _, findErr := a.FindMemoryTypeIndex(memoryTypeBits, info.Location)
		if findErr != nil {
			a.logger.Debug("  Allocate FAILED", slog.String("Name", info.Name), slog.Any("error", err))
			return nil, res, errors.Wrapf(err, "failed to allocate %s for %q", units.BytesSize(float64(requirements.Size)), info.Name)
		}
		memoryTypeIndex = nextIndex
	}
}

func (a *Allocator) allocateMemoryOfType(size int, alignment int, createInfo *AllocationCreateInfo, memoryTypeIndex int, outAlloc *Allocation) (common.VkResult, error) {
	a.logger.Debug("Allocator::allocateMemoryOfType", slog.Int("MemoryTypeIndex", memoryTypeIndex), slog.Int("Size", size))

	minAlignment := a.deviceMemory.MemoryTypeMinimumAlignment(memoryTypeIndex)
	if alignment < minAlignment {
		alignment = minAlignment
	}

	blockAllocations := a.memoryBlockLists[memoryTypeIndex]
	dedicatedAllocations := a.dedicatedAllocations[memoryTypeIndex]

	if createInfo.Flags&memutils.AllocationCreateDedicatedMemory != 0 {
		return a.allocateDedicatedMemory(size, createInfo, memoryTypeIndex, dedicatedAllocations, outAlloc)
	}

	canAllocateDedicated := createInfo.Flags&memutils.AllocationCreateNeverAllocate == 0

	// Allocate dedicated memory if requested size is more than half of preferred block size
	dedicatedPreferred := canAllocateDedicated && size > blockAllocations.PreferredBlockSize()/2
	if dedicatedPreferred {
		res, err := a.allocateDedicatedMemory(size, createInfo, memoryTypeIndex, dedicatedAllocations, outAlloc)
		if err == nil {
			a.logger.Debug("  Allocated as DedicatedMemory")
			return res, nil
		}
	}

	res, err := blockAllocations.Allocate(size, alignment, createInfo, outAlloc)
	if err == nil {
		return res, nil
	}

	// Try dedicated memory
	if canAllocateDedicated && !dedicatedPreferred {
		res, err = a.allocateDedicatedMemory(size, createInfo, memoryTypeIndex, dedicatedAllocations, outAlloc)
		if err == nil {
			a.logger.Debug("  Allocated as DedicatedMemory")
			return res, nil
		}
	}

	a.logger.Debug("  allocateMemoryOfType FAILED")
	return res, err
}

func (a *Allocator) allocateDedicatedMemory(
	size int,
	createInfo *AllocationCreateInfo,
	memoryTypeIndex int,
	dedicatedAllocations *dedicatedAllocationList,
	outAlloc *Allocation,
) (res common.VkResult, err error) {
	if createInfo.Flags&memutils.AllocationCreateWithinBudget != 0 {
		heapIndex := a.deviceMemory.MemoryTypeIndexToHeapIndex(memoryTypeIndex)

		budget := HeapBudget{}
		a.deviceMemory.HeapBudget(heapIndex, &budget)
		if budget.Usage+size > budget.Budget {
			return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
		}
	}

	mem, res, err := a.deviceMemory.AllocateDeviceMemory(memoryTypeIndex, size)
	if err != nil {
		a.logger.Debug("    Allocator::allocateDedicatedMemory FAILED")
		return res, err
	}
	defer func() {
		if err != nil {
			a.logger.Debug("    Allocator::allocateDedicatedMemory FAILED")
			a.deviceMemory.FreeDeviceMemory(memoryTypeIndex, mem)
		}
	}()

	if a.deviceMemory.IsMemoryTypeHostVisible(memoryTypeIndex) {
		// Set up our persistent map
		_, res, err = mem.Map(a.device, 1)
		if err != nil {
			return res, err
		}
	}

	outAlloc.initDedicatedAllocation(memoryTypeIndex, mem, suballocationTypeOrUnknown(createInfo.SuballocationType), size)
	dedicatedAllocations.Register(outAlloc)
	a.deviceMemory.AddAllocation(a.deviceMemory.MemoryTypeIndexToHeapIndex(memoryTypeIndex), size)

	return core1_0.VKSuccess, nil
}

// Free returns an allocation's memory to the allocator. Freeing an allocation twice, or one
// that came from another allocator, returns an error and touches no device memory. An
// allocation whose free fails stays live, so it can be freed again and is still reported
// as a leak by Destroy.
func (a *Allocator) Free(alloc *Allocation) error {
	if alloc == nil {
		return errors.New("attempted to free nil allocation")
	}

	// Held until the free completes so that concurrent frees of one allocation can't both
	// pass the registry check
	a.liveMutex.Lock()
	defer a.liveMutex.Unlock()

	registered, isLive := a.live.Get(alloc.id)
	if !isLive || registered != alloc {
		return errors.Newf("allocation %d (%q) was already freed or does not belong to this allocator", alloc.id, alloc.name)
	}

	a.logger.Debug("Allocator::Free",
		slog.Uint64("ID", alloc.id),
		slog.String("Name", alloc.name),
		slog.Int("Size", alloc.size),
	)

	var err error
	switch alloc.allocationType {
	case allocationTypeBlock:
		err = a.memoryBlockLists[alloc.memoryTypeIndex].Free(alloc)
	case allocationTypeDedicated:
		err = a.freeDedicatedMemory(alloc)
	default:
		err = errors.Newf("attempted to free an allocation with invalid type %s", alloc.allocationType)
	}
	if err != nil {
		return err
	}

	a.live.Delete(alloc.id)
	alloc.allocationType = allocationTypeNone
	alloc.blockData = blockData{}
	alloc.dedicatedData = dedicatedData{}
	return nil
}

func (a *Allocator) freeDedicatedMemory(alloc *Allocation) error {
	if alloc.allocationType != allocationTypeDedicated {
		return errors.New("attempted to free dedicated memory for a non-dedicated allocation")
	}

	memoryTypeIndex := alloc.MemoryTypeIndex()
	heapIndex := a.deviceMemory.MemoryTypeIndexToHeapIndex(memoryTypeIndex)

	a.dedicatedAllocations[memoryTypeIndex].Unregister(alloc)
	a.deviceMemory.FreeDeviceMemory(memoryTypeIndex, alloc.dedicatedData.memory)
	a.deviceMemory.RemoveAllocation(heapIndex, alloc.Size())
	alloc.mapCount = 0

	return nil
}

// LiveAllocationCount is the number of allocations that have not been freed
func (a *Allocator) LiveAllocationCount() int {
	a.liveMutex.Lock()
	defer a.liveMutex.Unlock()

	return a.live.Count()
}

// DeviceMemoryCount is the number of device memory objects the allocator currently holds
func (a *Allocator) DeviceMemoryCount() int {
	return a.deviceMemory.DeviceMemoryCount()
}

// Validate checks the internal consistency of every block and dedicated list
func (a *Allocator) Validate() error {
	for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
		err := a.memoryBlockLists[typeIndex].Validate()
		if err != nil {
			return errors.Wrapf(err, "memory type %d", typeIndex)
		}

		err = a.dedicatedAllocations[typeIndex].Validate()
		if err != nil {
			return errors.Wrapf(err, "memory type %d", typeIndex)
		}
	}

	memoryCount := 0
	for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
		memoryCount += a.memoryBlockLists[typeIndex].BlockCount() + a.dedicatedAllocations[typeIndex].Count()
	}
	if memoryCount != a.DeviceMemoryCount() {
		return errors.Newf("the allocator holds %d blocks and dedicated allocations, but %d device memory objects", memoryCount, a.DeviceMemoryCount())
	}

	a.liveMutex.Lock()
	defer a.liveMutex.Unlock()

	var err error
	a.live.Iter(func(id uint64, alloc *Allocation) bool {
		if alloc.allocationType == allocationTypeBlock {
			err = a.memoryBlockLists[alloc.memoryTypeIndex].validateAllocation(alloc)
		}
		return err != nil
	})

	return err
}

// Destroy releases all device memory held by the allocator. Allocations that are still live
// are logged with an [UNRELEASED MEMORY] marker and their memory is left to the device, and
// Destroy returns an error.
func (a *Allocator) Destroy() error {
	liveCount := a.LiveAllocationCount()

	for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
		dedicated := a.dedicatedAllocations[typeIndex]
		if dedicated.IsEmpty() {
			continue
		}

		dedicated.Visit(func(alloc *Allocation) {
			name := alloc.name
			if name == "" {
				name = "empty"
			}

			a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed dedicated allocation",
				slog.Int("size", alloc.size),
				slog.Any("userData", alloc.userData),
				slog.String("name", name),
				slog.String("location", alloc.location.String()),
			)
		})
	}

	for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
		// Blocks with live allocations log them and stay behind
		blocks := a.memoryBlockLists[typeIndex]
		leaked := !blocks.HasNoAllocations()
		err := blocks.Destroy()
		if err != nil && !leaked {
			return errors.Wrapf(err, "failed to destroy the memory blocks of memory type %d", typeIndex)
		}
	}

	if liveCount > 0 {
		return errors.Newf("%d allocations were not freed before the allocator was destroyed", liveCount)
	}

	return nil
}
