package gpumem

import (
	"fmt"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type allocationType byte

const (
	allocationTypeNone allocationType = iota
	allocationTypeBlock
	allocationTypeDedicated
)

var allocationTypeMapping = map[allocationType]string{
	allocationTypeNone:      "allocationTypeNone",
	allocationTypeBlock:     "allocationTypeBlock",
	allocationTypeDedicated: "allocationTypeDedicated",
}

func (t allocationType) String() string {
	return allocationTypeMapping[t]
}

type blockData struct {
	handle metadata.BlockAllocationHandle
	block  *deviceMemoryBlock
}

type dedicatedData struct {
	memory *deviceMemory
	next   *Allocation
	prev   *Allocation
}

// Allocation is a range of device memory handed out by an Allocator. It is either a
// suballocation of a shared block or the sole occupant of a dedicated device memory object.
// Allocations in host visible locations stay mapped for their whole lifetime.
type Allocation struct {
	id        uint64
	alignment int
	size      int
	userData  any
	name      string
	location  Location

	memoryTypeIndex   int
	allocationType    allocationType
	suballocationType metadata.SuballocationType
	mapCount          int

	parentAllocator *Allocator

	blockData     blockData
	dedicatedData dedicatedData
}

func (a *Allocation) initBlockAllocation(
	block *deviceMemoryBlock,
	allocHandle metadata.BlockAllocationHandle,
	alignment int,
	size int,
	suballocationType metadata.SuballocationType,
) {
	if a.allocationType != allocationTypeNone {
		panic("attempting to init an allocation that has already been initialized")
	}
	if block == nil || block.memory == nil {
		panic("attempting to init a block allocation using a nil memory block")
	}

	a.allocationType = allocationTypeBlock
	a.alignment = alignment
	a.size = size
	a.memoryTypeIndex = block.memoryTypeIndex
	a.suballocationType = suballocationType
	a.blockData.handle = allocHandle
	a.blockData.block = block
}

func (a *Allocation) initDedicatedAllocation(
	memoryTypeIndex int,
	memory *deviceMemory,
	suballocationType metadata.SuballocationType,
	size int,
) {
	if a.allocationType != allocationTypeNone {
		panic("attempting to init an allocation that has already been initialized")
	}
	if memory == nil {
		panic("attempting to init a dedicated allocation using a nil device memory")
	}

	a.allocationType = allocationTypeDedicated
	a.alignment = 0
	a.size = size
	a.memoryTypeIndex = memoryTypeIndex
	a.suballocationType = suballocationType
	a.dedicatedData.memory = memory
}

func (a *Allocation) memory() *deviceMemory {
	switch a.allocationType {
	case allocationTypeBlock:
		return a.blockData.block.memory
	case allocationTypeDedicated:
		return a.dedicatedData.memory
	}

	panic(fmt.Sprintf("attempted to get the memory of an allocation with invalid type %s", a.allocationType))
}

func (a *Allocation) SetName(name string) {
	a.name = name
}

func (a *Allocation) Name() string {
	return a.name
}

func (a *Allocation) SetUserData(userData any) {
	a.userData = userData
}

func (a *Allocation) UserData() any {
	return a.userData
}

func (a *Allocation) ID() uint64           { return a.id }
func (a *Allocation) Location() Location   { return a.location }
func (a *Allocation) MemoryTypeIndex() int { return a.memoryTypeIndex }
func (a *Allocation) Size() int            { return a.size }
func (a *Allocation) Alignment() int       { return a.alignment }
func (a *Allocation) IsDedicated() bool    { return a.allocationType == allocationTypeDedicated }
func (a *Allocation) Memory() device.Memory {
	return a.memory().Handle()
}
func (a *Allocation) MemoryType() core1_0.MemoryType {
	return a.parentAllocator.deviceMemory.MemoryTypeProperties(a.memoryTypeIndex)
}

// Offset is the allocation's offset within its device memory object
func (a *Allocation) Offset() int {
	if a.allocationType == allocationTypeBlock {
		offset, err := a.blockData.block.metadata.AllocationOffset(a.blockData.handle)
		if err != nil {
			panic(fmt.Sprintf("failed to locate offset for handle %+v: %+v", a.blockData.handle, err))
		}

		return offset
	}

	return 0
}

// MappedData is the host address of the first byte of the allocation, or nil if the
// allocation's memory type is not host visible
func (a *Allocation) MappedData() unsafe.Pointer {
	data := a.memory().MappedData()
	if data == nil {
		return nil
	}

	return unsafe.Add(data, a.Offset())
}

// Bytes exposes the allocation's mapped memory as a byte slice. It returns nil for
// allocations that are not host visible.
func (a *Allocation) Bytes() []byte {
	data := a.MappedData()
	if data == nil {
		return nil
	}

	return unsafe.Slice((*byte)(data), a.size)
}

// Map adds a mapping reference to the allocation's memory and returns the host address of
// the allocation. Each successful call must be balanced by Unmap.
func (a *Allocation) Map() (unsafe.Pointer, common.VkResult, error) {
	if !a.parentAllocator.deviceMemory.IsMemoryTypeHostVisible(a.memoryTypeIndex) {
		return nil, core1_0.VKErrorMemoryMapFailed, errors.Newf("allocation %d lives in memory type %d, which is not host visible", a.id, a.memoryTypeIndex)
	}

	data, res, err := a.memory().Map(a.parentAllocator.device, 1)
	if err != nil {
		return nil, res, err
	}
	a.mapCount++

	return unsafe.Add(data, a.Offset()), res, nil
}

func (a *Allocation) Unmap() error {
	if a.mapCount == 0 {
		return errors.New("attempted to unmap an allocation that is not mapped")
	}

	err := a.memory().Unmap(a.parentAllocator.device, 1)
	if err != nil {
		return err
	}
	a.mapCount--

	return nil
}

// Flush makes host writes to the given range of the allocation visible to the device. Size
// -1 means the rest of the allocation. Flushing host coherent memory does nothing.
func (a *Allocation) Flush(offset, size int) (common.VkResult, error) {
	return a.flushOrInvalidate(offset, size, cacheOperationFlush)
}

// Invalidate makes device writes to the given range of the allocation visible to the host.
// Size -1 means the rest of the allocation.
func (a *Allocation) Invalidate(offset, size int) (common.VkResult, error) {
	return a.flushOrInvalidate(offset, size, cacheOperationInvalidate)
}

func (a *Allocation) BindBufferMemory(buffer device.Buffer) (common.VkResult, error) {
	return a.parentAllocator.device.BindBufferMemory(buffer, a.Memory(), a.Offset())
}

func (a *Allocation) BindImageMemory(image device.Image) (common.VkResult, error) {
	return a.parentAllocator.device.BindImageMemory(image, a.Memory(), a.Offset())
}

// Free returns the allocation to its allocator
func (a *Allocation) Free() error {
	if a.parentAllocator == nil {
		return errors.New("attempted to free an allocation that does not belong to an allocator")
	}
	return a.parentAllocator.Free(a)
}

func (a *Allocation) printParameters(json *jwriter.ObjectState) {
	json.Name("ID").Int(int(a.id))
	json.Name("Type").String(a.suballocationType.String())
	json.Name("Location").String(a.location.String())
	json.Name("Size").Int(a.size)

	if a.userData != nil {
		json.Name("CustomData").String(fmt.Sprintf("%+v", a.userData))
	}

	if a.name != "" {
		json.Name("Name").String(a.name)
	}
}

func (a *Allocation) flushOrInvalidateRange(offset, size int, outRange *device.MappedMemoryRange) (bool, error) {
	// A size of -1 indicates the whole allocation
	if size == 0 || size < -1 || !a.parentAllocator.deviceMemory.IsMemoryTypeHostNonCoherent(a.memoryTypeIndex) {
		return false, nil
	}

	nonCoherentAtomSize := a.parentAllocator.deviceMemory.NonCoherentAtomSize()
	allocationSize := a.Size()

	if offset < 0 || offset > allocationSize {
		return false, errors.Newf("offset %d is outside of the allocation, which is size %d", offset, allocationSize)
	}
	if size > 0 && (offset+size) > allocationSize {
		return false, errors.Newf("offset %d places the end of the range %d past the end of the allocation, which is size %d", offset, offset+size, allocationSize)
	}

	outRange.Memory = a.Memory()
	outRange.Offset = memutils.AlignDown(offset, uint(nonCoherentAtomSize))

	switch a.allocationType {
	case allocationTypeDedicated:
		outRange.Size = allocationSize - outRange.Offset
		if size > 0 {
			alignedSize := memutils.AlignUp(size+(offset-outRange.Offset), uint(nonCoherentAtomSize))
			if alignedSize < outRange.Size {
				outRange.Size = alignedSize
			}
		}
		return true, nil
	case allocationTypeBlock:
		if size == -1 {
			size = allocationSize - offset
		}

		outRange.Size = memutils.AlignUp(size+(offset-outRange.Offset), uint(nonCoherentAtomSize))

		// Move the range from allocation space into block space
		allocationOffset := a.Offset()
		if allocationOffset%nonCoherentAtomSize != 0 {
			panic(fmt.Sprintf("the allocation has an invalid offset %d for non-coherent memory, which has an alignment of %d", allocationOffset, nonCoherentAtomSize))
		}

		blockSize := a.blockData.block.metadata.Size()
		outRange.Offset += allocationOffset

		restOfBlock := blockSize - outRange.Offset
		if restOfBlock < outRange.Size {
			outRange.Size = restOfBlock
		}
		return true, nil
	}

	return false, errors.Newf("attempted to get the flush or invalidate range of an allocation with invalid type %s", a.allocationType)
}

func (a *Allocation) flushOrInvalidate(offset, size int, operation cacheOperation) (common.VkResult, error) {
	var memRange device.MappedMemoryRange
	success, err := a.flushOrInvalidateRange(offset, size, &memRange)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	} else if !success {
		// Coherent memory needs no cache maintenance
		return core1_0.VKSuccess, nil
	}

	return a.parentAllocator.deviceMemory.FlushOrInvalidate([]device.MappedMemoryRange{memRange}, operation)
}
