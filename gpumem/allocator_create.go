package gpumem

import (
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
	"golang.org/x/exp/slog"
)

const (
	// defaultLargeHeapBlockSize is the value that is used as the PreferredLargeHeapBlockSize when none
	// is provided via CreateOptions. It is equal to 256Mb.
	defaultLargeHeapBlockSize int = 256 * 1024 * 1024
)

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags
	// PreferredLargeHeapBlockSize is the block size to use when allocating from heaps larger
	// than a gigabyte. Smaller heaps use an eighth of the heap size.
	PreferredLargeHeapBlockSize int

	// HeapSizeLimits can be left empty. If it is provided, though, it must be a slice
	// with a number of entries corresponding to the number of heaps reported by the device.
	// Each entry must be either the maximum number of bytes that should be allocated from the
	// corresponding heap, or 0 or -1 indicating no limit.
	//
	// Heap memory limits are enforced at runtime: the allocator returns
	// core1_0.VKErrorOutOfDeviceMemory rather than exceed them.
	HeapSizeLimits []int
}

// New creates a new Allocator
//
// logger - Receives debug traces of allocator activity and error reports for leaked allocations
//
// dev - The device that memory will be allocated from
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, dev device.Device, options CreateOptions) (*Allocator, error) {
	useMutex := options.Flags&CreateInternallySynchronized != 0

	allocator := &Allocator{
		useMutex:    useMutex,
		logger:      logger,
		device:      dev,
		createFlags: options.Flags,
		liveMutex:   utils.NewOptionalMutex(useMutex),
		live:        swiss.NewMap[uint64, *Allocation](64),
	}

	if options.PreferredLargeHeapBlockSize == 0 {
		allocator.preferredLargeHeapBlockSize = defaultLargeHeapBlockSize
	} else {
		allocator.preferredLargeHeapBlockSize = options.PreferredLargeHeapBlockSize
	}

	var err error
	allocator.deviceMemory, err = newDeviceMemoryProperties(dev, useMutex, options.HeapSizeLimits)
	if err != nil {
		return nil, err
	}

	allocator.globalMemoryTypeBits = allocator.deviceMemory.CalculateGlobalMemoryTypeBits()

	// Initialize memory block lists
	typeCount := allocator.deviceMemory.MemoryTypeCount()
	keepEmptyBlock := options.Flags&CreateKeepEmptyBlock != 0
	for typeIndex := 0; typeIndex < typeCount; typeIndex++ {
		preferredBlockSize := allocator.calculatePreferredBlockSize(typeIndex)
		allocator.memoryBlockLists[typeIndex] = newMemoryBlockList(allocator, typeIndex, preferredBlockSize, keepEmptyBlock, useMutex)
		allocator.dedicatedAllocations[typeIndex] = newDedicatedAllocationList(useMutex)
	}

	logger.Debug("Allocator::New",
		slog.Int("MemoryTypeCount", typeCount),
		slog.Int("MemoryHeapCount", allocator.deviceMemory.MemoryHeapCount()),
		slog.String("Flags", options.Flags.String()),
	)

	return allocator, nil
}

func (a *Allocator) calculatePreferredBlockSize(memTypeIndex int) int {
	heapIndex := a.deviceMemory.MemoryTypeIndexToHeapIndex(memTypeIndex)

	heapSize := a.deviceMemory.MemoryHeapProperties(heapIndex).Size
	rawSize := a.preferredLargeHeapBlockSize
	if heapSize <= smallHeapMaxSize {
		rawSize = heapSize / 8
	}

	return memutils.AlignUp(rawSize, 32)
}
