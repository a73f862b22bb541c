package gpumem

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"golang.org/x/exp/slices"
)

// allocationRequest is a placement found by blockMetadata.PopulateAllocationRequest that has
// not been committed yet
type allocationRequest struct {
	// index of the free suballocation the request will be carved from
	freeIndex int
	offset    int
	size      int
}

// blockMetadata tracks the suballocations of one device memory block as an offset-ordered
// list that covers the whole block. Adjacent free ranges are always merged, so freeing
// every allocation leaves exactly one free range spanning the block.
//
// Allocation handles are the allocation's offset plus one, which keeps NoAllocation and
// the zero handle invalid.
type blockMetadata struct {
	size                   int
	bufferImageGranularity int

	suballocations  []metadata.Suballocation
	freeCount       int
	sumFreeSize     int
	allocationCount int
}

func newBlockMetadata(size int, bufferImageGranularity int) *blockMetadata {
	return &blockMetadata{
		size:                   size,
		bufferImageGranularity: bufferImageGranularity,
		suballocations: []metadata.Suballocation{
			{Offset: 0, Size: size, Type: metadata.SuballocationFree},
		},
		freeCount:   1,
		sumFreeSize: size,
	}
}

func (m *blockMetadata) Size() int            { return m.size }
func (m *blockMetadata) SumFreeSize() int     { return m.sumFreeSize }
func (m *blockMetadata) AllocationCount() int { return m.allocationCount }
func (m *blockMetadata) FreeRegionsCount() int {
	return m.freeCount
}
func (m *blockMetadata) IsEmpty() bool {
	return m.allocationCount == 0
}

func handleFromOffset(offset int) metadata.BlockAllocationHandle {
	return metadata.BlockAllocationHandle(offset + 1)
}

func (m *blockMetadata) findIndex(handle metadata.BlockAllocationHandle) (int, error) {
	if handle == 0 || handle == metadata.NoAllocation {
		return -1, errors.New("received an invalid allocation handle")
	}

	offset := int(handle) - 1
	index, found := slices.BinarySearchFunc(m.suballocations, offset, func(suballoc metadata.Suballocation, target int) int {
		return suballoc.Offset - target
	})
	if !found || m.suballocations[index].Type == metadata.SuballocationFree {
		return -1, errors.Newf("no allocation exists at offset %d", offset)
	}

	return index, nil
}

func (m *blockMetadata) AllocationOffset(handle metadata.BlockAllocationHandle) (int, error) {
	index, err := m.findIndex(handle)
	if err != nil {
		return 0, err
	}

	return m.suballocations[index].Offset, nil
}

func (m *blockMetadata) AllocationUserData(handle metadata.BlockAllocationHandle) (any, error) {
	index, err := m.findIndex(handle)
	if err != nil {
		return nil, err
	}

	return m.suballocations[index].UserData, nil
}

func blocksOnSamePage(resourceOffsetA, resourceSizeA, resourceOffsetB, pageSize int) bool {
	resourceEndA := resourceOffsetA + resourceSizeA - 1
	resourceEndPageA := resourceEndA & ^(pageSize - 1)
	resourceStartPageB := resourceOffsetB & ^(pageSize - 1)
	return resourceEndPageA == resourceStartPageB
}

// checkFreeRange attempts to place an allocation inside the free suballocation at index and
// returns the aligned offset. Neighbors of a conflicting linear/optimal type that would
// share a BufferImageGranularity page push the allocation onto a fresh page, or reject the
// range if that doesn't fit.
func (m *blockMetadata) checkFreeRange(index int, allocSize int, allocAlignment int, allocType metadata.SuballocationType) (int, bool) {
	freeRange := m.suballocations[index]
	offset := memutils.AlignUp(freeRange.Offset, uint(allocAlignment))

	granularity := m.bufferImageGranularity
	if granularity > 1 && index > 0 {
		prev := m.suballocations[index-1]
		if prev.Type != metadata.SuballocationFree &&
			metadata.IsBufferImageGranularityConflict(prev.Type, allocType) &&
			blocksOnSamePage(prev.Offset, prev.Size, offset, granularity) {
			offset = memutils.AlignUp(offset, uint(granularity))
		}
	}

	if offset+allocSize > freeRange.Offset+freeRange.Size {
		return 0, false
	}

	if granularity > 1 && index+1 < len(m.suballocations) {
		next := m.suballocations[index+1]
		if next.Type != metadata.SuballocationFree &&
			metadata.IsBufferImageGranularityConflict(allocType, next.Type) &&
			blocksOnSamePage(offset, allocSize, next.Offset, granularity) {
			return 0, false
		}
	}

	return offset, true
}

// PopulateAllocationRequest searches the block for room for allocSize bytes. The default
// strategy, like memutils.AllocationCreateStrategyMinMemory, picks the smallest free range
// that fits; AllocationCreateStrategyMinTime and AllocationCreateStrategyMinOffset take the
// first range that fits, which is also the lowest offset.
func (m *blockMetadata) PopulateAllocationRequest(
	allocSize int,
	allocAlignment int,
	allocType metadata.SuballocationType,
	strategy memutils.AllocationCreateFlags,
	request *allocationRequest,
) (bool, error) {
	if allocSize < 1 {
		return false, errors.Newf("invalid allocSize: %d", allocSize)
	}
	if allocAlignment < 1 {
		allocAlignment = 1
	}
	err := memutils.CheckPow2(allocAlignment, "allocAlignment")
	if err != nil {
		return false, err
	}

	if allocSize > m.sumFreeSize {
		return false, nil
	}

	firstFit := strategy&(memutils.AllocationCreateStrategyMinTime|memutils.AllocationCreateStrategyMinOffset) != 0

	found := false
	bestSize := 0
	for index, suballoc := range m.suballocations {
		if suballoc.Type != metadata.SuballocationFree || suballoc.Size < allocSize {
			continue
		}
		if found && suballoc.Size >= bestSize {
			continue
		}

		offset, fits := m.checkFreeRange(index, allocSize, allocAlignment, allocType)
		if !fits {
			continue
		}

		request.freeIndex = index
		request.offset = offset
		request.size = allocSize
		found = true
		bestSize = suballoc.Size

		if firstFit || suballoc.Size == allocSize {
			break
		}
	}

	return found, nil
}

// Alloc commits a request returned by PopulateAllocationRequest. Any alignment padding in
// front of the allocation and any remainder behind it stay in the free list.
func (m *blockMetadata) Alloc(request *allocationRequest, allocType metadata.SuballocationType, userData any) (metadata.BlockAllocationHandle, error) {
	if allocType == metadata.SuballocationFree {
		return metadata.NoAllocation, errors.New("cannot allocate a suballocation of type SuballocationFree")
	}
	if request.freeIndex < 0 || request.freeIndex >= len(m.suballocations) {
		return metadata.NoAllocation, errors.New("allocation request does not point at a suballocation in this block")
	}

	freeRange := m.suballocations[request.freeIndex]
	if freeRange.Type != metadata.SuballocationFree {
		return metadata.NoAllocation, errors.New("allocation request points at a suballocation that is not free")
	}

	paddingBegin := request.offset - freeRange.Offset
	paddingEnd := freeRange.Size - paddingBegin - request.size
	if paddingBegin < 0 || paddingEnd < 0 {
		return metadata.NoAllocation, errors.New("allocation request does not fit inside its free suballocation")
	}

	index := request.freeIndex
	m.suballocations[index] = metadata.Suballocation{
		Offset:   request.offset,
		Size:     request.size,
		UserData: userData,
		Type:     allocType,
	}
	m.freeCount--
	m.sumFreeSize -= freeRange.Size

	if paddingEnd > 0 {
		m.suballocations = slices.Insert(m.suballocations, index+1, metadata.Suballocation{
			Offset: request.offset + request.size,
			Size:   paddingEnd,
			Type:   metadata.SuballocationFree,
		})
		m.freeCount++
		m.sumFreeSize += paddingEnd
	}

	if paddingBegin > 0 {
		m.suballocations = slices.Insert(m.suballocations, index, metadata.Suballocation{
			Offset: freeRange.Offset,
			Size:   paddingBegin,
			Type:   metadata.SuballocationFree,
		})
		m.freeCount++
		m.sumFreeSize += paddingBegin
	}

	m.allocationCount++
	return handleFromOffset(request.offset), nil
}

func (m *blockMetadata) Free(handle metadata.BlockAllocationHandle) error {
	index, err := m.findIndex(handle)
	if err != nil {
		return err
	}

	m.suballocations[index].Type = metadata.SuballocationFree
	m.suballocations[index].UserData = nil
	m.freeCount++
	m.sumFreeSize += m.suballocations[index].Size
	m.allocationCount--

	// Merge with the following range
	if index+1 < len(m.suballocations) && m.suballocations[index+1].Type == metadata.SuballocationFree {
		m.suballocations[index].Size += m.suballocations[index+1].Size
		m.suballocations = slices.Delete(m.suballocations, index+1, index+2)
		m.freeCount--
	}

	// Merge with the preceding range
	if index > 0 && m.suballocations[index-1].Type == metadata.SuballocationFree {
		m.suballocations[index-1].Size += m.suballocations[index].Size
		m.suballocations = slices.Delete(m.suballocations, index, index+1)
		m.freeCount--
	}

	return nil
}

// VisitAllBlocks calls handleBlock for every range in the block, free or allocated, in
// offset order
func (m *blockMetadata) VisitAllBlocks(handleBlock func(handle metadata.BlockAllocationHandle, offset int, size int, userData any, free bool)) {
	for _, suballoc := range m.suballocations {
		free := suballoc.Type == metadata.SuballocationFree
		handle := metadata.NoAllocation
		if !free {
			handle = handleFromOffset(suballoc.Offset)
		}
		handleBlock(handle, suballoc.Offset, suballoc.Size, suballoc.UserData, free)
	}
}

func (m *blockMetadata) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount++
	stats.AllocationCount += m.allocationCount
	stats.BlockBytes += m.size
	stats.AllocationBytes += m.size - m.sumFreeSize
}

func (m *blockMetadata) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.BlockCount++
	stats.BlockBytes += m.size

	for _, suballoc := range m.suballocations {
		if suballoc.Type == metadata.SuballocationFree {
			stats.AddUnusedRange(suballoc.Size)
		} else {
			stats.AddAllocation(suballoc.Size)
		}
	}
}

func (m *blockMetadata) Validate() error {
	if len(m.suballocations) == 0 {
		return errors.New("block metadata has no suballocations")
	}

	offset := 0
	freeCount := 0
	sumFreeSize := 0
	allocationCount := 0
	prevFree := false

	for index, suballoc := range m.suballocations {
		if suballoc.Offset != offset {
			return errors.Newf("suballocation %d begins at offset %d, but the previous suballocation ended at %d", index, suballoc.Offset, offset)
		}
		if suballoc.Size < 1 {
			return errors.Newf("suballocation %d has invalid size %d", index, suballoc.Size)
		}

		free := suballoc.Type == metadata.SuballocationFree
		if free {
			if prevFree {
				return errors.Newf("suballocation %d is free and was not merged with the previous free suballocation", index)
			}
			if suballoc.UserData != nil {
				return errors.Newf("suballocation %d is free but has user data", index)
			}
			freeCount++
			sumFreeSize += suballoc.Size
		} else {
			allocationCount++
		}

		prevFree = free
		offset += suballoc.Size
	}

	if offset != m.size {
		return errors.Newf("suballocations cover %d bytes, but the block is %d bytes", offset, m.size)
	}
	if freeCount != m.freeCount {
		return errors.Newf("free count is %d, but %d free suballocations were found", m.freeCount, freeCount)
	}
	if sumFreeSize != m.sumFreeSize {
		return errors.Newf("free size is %d, but %d free bytes were found", m.sumFreeSize, sumFreeSize)
	}
	if allocationCount != m.allocationCount {
		return errors.Newf("allocation count is %d, but %d allocations were found", m.allocationCount, allocationCount)
	}

	return nil
}

func (m *blockMetadata) String() string {
	return fmt.Sprintf("blockMetadata{size: %d, allocations: %d, free: %d}", m.size, m.allocationCount, m.sumFreeSize)
}
