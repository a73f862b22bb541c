package gpumem

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const maxNewBlockSizeShift = 3

// memoryBlockList is the set of shared blocks for a single memory type. Blocks are kept
// sorted by ascending free space so that the default search fills the fullest block first.
type memoryBlockList struct {
	parentAllocator *Allocator
	deviceMemory    *deviceMemoryProperties
	logger          *slog.Logger

	memoryTypeIndex    int
	preferredBlockSize int
	keepEmptyBlock     bool

	mutex       utils.OptionalRWMutex
	blocks      []*deviceMemoryBlock
	nextBlockId int
}

func newMemoryBlockList(allocator *Allocator, memoryTypeIndex int, preferredBlockSize int, keepEmptyBlock bool, useMutex bool) *memoryBlockList {
	return &memoryBlockList{
		parentAllocator:    allocator,
		deviceMemory:       allocator.deviceMemory,
		logger:             allocator.logger,
		memoryTypeIndex:    memoryTypeIndex,
		preferredBlockSize: preferredBlockSize,
		keepEmptyBlock:     keepEmptyBlock,
		mutex:              utils.NewOptionalRWMutex(useMutex),
	}
}

func (l *memoryBlockList) MemoryTypeIndex() int    { return l.memoryTypeIndex }
func (l *memoryBlockList) PreferredBlockSize() int { return l.preferredBlockSize }

func (l *memoryBlockList) BlockCount() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.blocks)
}

// Destroy frees every block. Blocks that still carry allocations log them and fail, but the
// remaining blocks are still destroyed.
func (l *memoryBlockList) Destroy() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var firstErr error
	remaining := l.blocks[:0]
	for _, block := range l.blocks {
		err := block.Destroy()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			remaining = append(remaining, block)
		}
	}
	l.blocks = remaining

	return firstErr
}

func (l *memoryBlockList) AddStatistics(stats *memutils.Statistics) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, block := range l.blocks {
		block.metadata.AddStatistics(stats)
	}
}

func (l *memoryBlockList) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, block := range l.blocks {
		block.metadata.AddDetailedStatistics(stats)
	}
}

func (l *memoryBlockList) HasNoAllocations() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, block := range l.blocks {
		if !block.metadata.IsEmpty() {
			return false
		}
	}

	return true
}

func (l *memoryBlockList) Validate() error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, block := range l.blocks {
		err := block.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// validateAllocation checks that the block alloc lives in still records alloc as the owner
// of its range
func (l *memoryBlockList) validateAllocation(alloc *Allocation) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	userData, err := alloc.blockData.block.metadata.AllocationUserData(alloc.blockData.handle)
	if err != nil {
		return errors.Wrapf(err, "allocation %d (%q) has no range in its block", alloc.id, alloc.name)
	}
	if userData != alloc {
		return errors.Newf("the range of allocation %d (%q) is owned by something else", alloc.id, alloc.name)
	}

	return nil
}

func (l *memoryBlockList) createBlock(blockSize int) (*deviceMemoryBlock, common.VkResult, error) {
	memory, res, err := l.deviceMemory.AllocateDeviceMemory(l.memoryTypeIndex, blockSize)
	if err != nil {
		return nil, res, err
	}

	// Host visible blocks stay mapped for as long as they exist
	if l.deviceMemory.IsMemoryTypeHostVisible(l.memoryTypeIndex) {
		_, res, err = memory.Map(l.parentAllocator.device, 1)
		if err != nil {
			l.deviceMemory.FreeDeviceMemory(l.memoryTypeIndex, memory)
			return nil, res, err
		}
	}

	block := newDeviceMemoryBlock(l.logger, l.deviceMemory, l.memoryTypeIndex, memory, l.nextBlockId)
	l.nextBlockId++

	l.blocks = append(l.blocks, block)
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Created new block",
		slog.Int("block.id", block.id),
		slog.Int("block.size", blockSize),
		slog.Int("MemoryTypeIndex", l.memoryTypeIndex),
	)
	return block, res, nil
}

func (l *memoryBlockList) remove(block *deviceMemoryBlock) {
	index := slices.Index(l.blocks, block)
	if index < 0 {
		panic("attempted to remove a block from a block list that did not belong to it")
	}

	l.blocks = slices.Delete(l.blocks, index, index+1)
}

// Allocate places an allocation in an existing block if one has room, otherwise creates a
// new block. New blocks start at the preferred block size and are halved, up to three
// times, while they would still be at least twice the requested size and larger than any
// existing block, or when the device refuses the larger size.
func (l *memoryBlockList) Allocate(size int, alignment int, createInfo *AllocationCreateInfo, outAlloc *Allocation) (common.VkResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	heapIndex := l.deviceMemory.MemoryTypeIndexToHeapIndex(l.memoryTypeIndex)

	budget := HeapBudget{}
	l.deviceMemory.HeapBudget(heapIndex, &budget)
	freeMemory := budget.Budget - budget.Usage
	if freeMemory < 0 {
		freeMemory = 0
	}

	withinBudget := createInfo.Flags&memutils.AllocationCreateWithinBudget != 0
	canCreateNewBlock := createInfo.Flags&memutils.AllocationCreateNeverAllocate == 0
	strategy := createInfo.Flags & memutils.AllocationCreateStrategyMask

	// Early reject: requested allocation size is larger than maximum block size for this block list
	if size > l.preferredBlockSize {
		return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
	}

	// 1. Search existing blocks
	if strategy != memutils.AllocationCreateStrategyMinTime {
		// Prefer blocks with the smallest amount of free space by iterating forward
		for _, block := range l.blocks {
			res, err := l.allocFromBlock(block, size, alignment, createInfo, strategy, outAlloc)
			if err != nil {
				return res, err
			} else if res == core1_0.VKSuccess {
				l.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Returned from existing block", slog.Int("block.id", block.id))
				l.incrementallySortBlocks()
				return res, nil
			}
		}
	} else {
		// Prefer blocks with the largest amount of free space by iterating backward
		for blockIndex := len(l.blocks) - 1; blockIndex >= 0; blockIndex-- {
			block := l.blocks[blockIndex]
			res, err := l.allocFromBlock(block, size, alignment, createInfo, strategy, outAlloc)
			if err != nil {
				return res, err
			} else if res == core1_0.VKSuccess {
				l.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Returned from existing block", slog.Int("block.id", block.id))
				l.incrementallySortBlocks()
				return res, nil
			}
		}
	}

	if !canCreateNewBlock {
		return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
	}

	// 2. Try to create a new block
	newBlockSize := l.preferredBlockSize
	newBlockSizeShift := 0
	maxExistingBlockSize := l.calcMaxBlockSize()

	for i := 0; i < maxNewBlockSizeShift; i++ {
		smallerNewBlockSize := newBlockSize / 2
		if smallerNewBlockSize > maxExistingBlockSize && smallerNewBlockSize >= size*2 {
			newBlockSize = smallerNewBlockSize
			newBlockSizeShift++
		} else {
			break
		}
	}

	var block *deviceMemoryBlock
	var res common.VkResult
	var err error
	if !withinBudget || newBlockSize <= freeMemory {
		block, res, err = l.createBlock(newBlockSize)
	} else {
		res = core1_0.VKErrorOutOfDeviceMemory
		err = res.ToError()
	}

	for err != nil && newBlockSizeShift < maxNewBlockSizeShift {
		smallerNewBlockSize := newBlockSize / 2
		if smallerNewBlockSize < size {
			break
		}

		newBlockSize = smallerNewBlockSize
		newBlockSizeShift++
		if !withinBudget || newBlockSize <= freeMemory {
			block, res, err = l.createBlock(newBlockSize)
		}
	}

	if err != nil {
		return res, err
	}

	if block.metadata.Size() < size {
		panic(fmt.Sprintf("created a new block %d to hold an allocation of size %d but the created block was somehow only size %d", block.id, size, block.metadata.Size()))
	}

	res, err = l.allocFromBlock(block, size, alignment, createInfo, strategy, outAlloc)
	if err != nil {
		return res, err
	} else if res == core1_0.VKSuccess {
		l.incrementallySortBlocks()
		return res, nil
	}

	return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
}

// Free returns the allocation's range to its block. Empty blocks are released to the device
// unless the list was asked to keep one around, in which case a single empty block survives.
func (l *memoryBlockList) Free(alloc *Allocation) error {
	heapIndex := l.deviceMemory.MemoryTypeIndexToHeapIndex(l.memoryTypeIndex)
	blockToDelete, err := l.freeWithLock(alloc)
	if err != nil {
		return err
	}

	if blockToDelete != nil {
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Deleted empty block", slog.Int("block.id", blockToDelete.id))
		err = blockToDelete.Destroy()
		if err != nil {
			panic(fmt.Sprintf("unexpected failure when destroying a memory block in response to freeing an allocation: %+v", err))
		}
	}

	l.deviceMemory.RemoveAllocation(heapIndex, alloc.size)
	return nil
}

func (l *memoryBlockList) freeWithLock(alloc *Allocation) (blockToDelete *deviceMemoryBlock, err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	block := alloc.blockData.block

	for alloc.mapCount > 0 {
		err = alloc.Unmap()
		if err != nil {
			return nil, err
		}
	}

	hasEmptyBlockBeforeFree := l.hasEmptyBlock()
	err = block.metadata.Free(alloc.blockData.handle)
	if err != nil {
		panic(fmt.Sprintf("unexpected error when freeing allocation with handle %+v in metadata: %+v", alloc.blockData.handle, err))
	}

	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Freed from block", slog.Int("MemoryTypeIndex", l.memoryTypeIndex))

	if block.metadata.IsEmpty() && (hasEmptyBlockBeforeFree || !l.keepEmptyBlock) {
		blockToDelete = block
		l.remove(block)
	} else if !block.metadata.IsEmpty() && hasEmptyBlockBeforeFree && !l.keepEmptyBlock {
		// There is an empty block somewhere we don't need
		lastBlock := l.blocks[len(l.blocks)-1]
		if lastBlock.metadata.IsEmpty() {
			blockToDelete = lastBlock
			l.blocks = l.blocks[:len(l.blocks)-1]
		}
	}

	l.incrementallySortBlocks()

	return blockToDelete, nil
}

func (l *memoryBlockList) hasEmptyBlock() bool {
	for _, block := range l.blocks {
		if block.metadata.IsEmpty() {
			return true
		}
	}

	return false
}

func (l *memoryBlockList) incrementallySortBlocks() {
	for blockIndex := 1; blockIndex < len(l.blocks); blockIndex++ {
		if l.blocks[blockIndex-1].metadata.SumFreeSize() > l.blocks[blockIndex].metadata.SumFreeSize() {
			l.blocks[blockIndex-1], l.blocks[blockIndex] = l.blocks[blockIndex], l.blocks[blockIndex-1]
			return
		}
	}
}

func (l *memoryBlockList) calcMaxBlockSize() int {
	result := 0
	for blockIndex := len(l.blocks) - 1; blockIndex >= 0; blockIndex-- {
		blockSize := l.blocks[blockIndex].metadata.Size()
		if blockSize <= result {
			continue
		}

		result = blockSize
		if result >= l.preferredBlockSize {
			return result
		}
	}

	return result
}

func (l *memoryBlockList) allocFromBlock(block *deviceMemoryBlock, size int, alignment int, createInfo *AllocationCreateInfo, strategy memutils.AllocationCreateFlags, outAlloc *Allocation) (common.VkResult, error) {
	suballocType := suballocationTypeOrUnknown(createInfo.SuballocationType)

	var request allocationRequest
	success, err := block.metadata.PopulateAllocationRequest(size, alignment, suballocType, strategy, &request)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	} else if !success {
		return core1_0.VKErrorOutOfDeviceMemory, nil
	}

	handle, err := block.metadata.Alloc(&request, suballocType, outAlloc)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	}

	outAlloc.initBlockAllocation(block, handle, alignment, request.size, suballocType)

	heapIndex := l.deviceMemory.MemoryTypeIndexToHeapIndex(l.memoryTypeIndex)
	l.deviceMemory.AddAllocation(heapIndex, request.size)

	return core1_0.VKSuccess, nil
}

func suballocationTypeOrUnknown(suballocType metadata.SuballocationType) metadata.SuballocationType {
	if suballocType == metadata.SuballocationFree {
		return metadata.SuballocationUnknown
	}

	return suballocType
}

func (l *memoryBlockList) PrintDetailedMap(json *jwriter.ObjectState) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	blocksObj := json.Name("Blocks").Object()
	defer blocksObj.End()

	for _, block := range l.blocks {
		blockObj := blocksObj.Name(strconv.Itoa(block.id)).Object()

		blockObj.Name("MapReferences").Int(block.memory.References())
		blockObj.Name("TotalBytes").Int(block.metadata.Size())
		blockObj.Name("UnusedBytes").Int(block.metadata.SumFreeSize())
		blockObj.Name("Allocations").Int(block.metadata.AllocationCount())
		blockObj.Name("UnusedRanges").Int(block.metadata.FreeRegionsCount())

		l.printDetailedMapAllocations(block.metadata, &blockObj)

		blockObj.End()
	}
}

func (l *memoryBlockList) printDetailedMapAllocations(md *blockMetadata, json *jwriter.ObjectState) {
	arrayState := json.Name("Suballocations").Array()
	defer arrayState.End()

	md.VisitAllBlocks(func(handle metadata.BlockAllocationHandle, offset int, size int, userData any, free bool) {
		obj := arrayState.Object()
		defer obj.End()

		if free {
			obj.Name("Offset").Int(offset)
			obj.Name("Type").String(metadata.SuballocationFree.String())
			obj.Name("Size").Int(size)
			return
		}

		obj.Name("Offset").Int(offset)
		allocation, ok := userData.(*Allocation)
		if ok {
			allocation.printParameters(&obj)
		} else {
			obj.Name("Size").Int(size)
		}
	})
}
