package gpumem

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

const (
	smallHeapMaxSize int = 1024 * 1024 * 1024 // 1 GB
)

// HeapBudget reports the memory this allocator has taken from a single device heap
type HeapBudget struct {
	Statistics memutils.Statistics
	// Usage is the number of bytes of device memory currently allocated from the heap
	Usage int
	// Budget is the number of bytes the allocator considers safe to allocate from the heap
	Budget int
}

// deviceMemoryProperties caches the device's memory layout and keeps per-heap accounting
// of the device memory objects and the allocations carved out of them
type deviceMemoryProperties struct {
	device     device.Device
	properties device.MemoryProperties
	limits     device.Limits
	heapLimits []int
	useMutex   bool

	blockCount      [common.MaxMemoryHeaps]int32
	allocationCount [common.MaxMemoryHeaps]int32
	blockBytes      [common.MaxMemoryHeaps]int64
	allocationBytes [common.MaxMemoryHeaps]int64
	memoryCount     uint32
}

func newDeviceMemoryProperties(dev device.Device, useMutex bool, heapSizeLimits []int) (*deviceMemoryProperties, error) {
	props := &deviceMemoryProperties{
		device:     dev,
		useMutex:   useMutex,
		properties: dev.MemoryProperties(),
		limits:     dev.Limits(),
	}

	if len(props.properties.MemoryTypes) == 0 {
		return nil, errors.New("the device reported no memory types")
	}
	if len(props.properties.MemoryTypes) > common.MaxMemoryTypes {
		return nil, errors.Newf("the device reported %d memory types, but at most %d are supported", len(props.properties.MemoryTypes), common.MaxMemoryTypes)
	}
	if len(props.properties.MemoryHeaps) > common.MaxMemoryHeaps {
		return nil, errors.Newf("the device reported %d memory heaps, but at most %d are supported", len(props.properties.MemoryHeaps), common.MaxMemoryHeaps)
	}

	err := memutils.CheckPow2(props.CalculateBufferImageGranularity(), "device bufferImageGranularity")
	if err != nil {
		return nil, err
	}
	err = memutils.CheckPow2(props.NonCoherentAtomSize(), "device nonCoherentAtomSize")
	if err != nil {
		return nil, err
	}

	heapCount := props.MemoryHeapCount()
	if len(heapSizeLimits) > 0 && len(heapSizeLimits) != heapCount {
		return nil, errors.New("gpumem.CreateOptions.HeapSizeLimits was provided, but the length does not equal the number of device heaps")
	}

	props.heapLimits = make([]int, heapCount)
	copy(props.heapLimits, heapSizeLimits)

	return props, nil
}

func (m *deviceMemoryProperties) MemoryTypeCount() int {
	return len(m.properties.MemoryTypes)
}

func (m *deviceMemoryProperties) MemoryHeapCount() int {
	return len(m.properties.MemoryHeaps)
}

func (m *deviceMemoryProperties) MemoryTypeIndexToHeapIndex(memTypeIndex int) int {
	return m.properties.MemoryTypes[memTypeIndex].HeapIndex
}

func (m *deviceMemoryProperties) MemoryTypeProperties(memTypeIndex int) core1_0.MemoryType {
	return m.properties.MemoryTypes[memTypeIndex]
}

func (m *deviceMemoryProperties) MemoryHeapProperties(heapIndex int) core1_0.MemoryHeap {
	return m.properties.MemoryHeaps[heapIndex]
}

func (m *deviceMemoryProperties) IsMemoryTypeHostVisible(memTypeIndex int) bool {
	return m.properties.MemoryTypes[memTypeIndex].PropertyFlags&core1_0.MemoryPropertyHostVisible != 0
}

func (m *deviceMemoryProperties) IsMemoryTypeHostNonCoherent(memTypeIndex int) bool {
	flags := m.properties.MemoryTypes[memTypeIndex].PropertyFlags

	return flags&(core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent) == core1_0.MemoryPropertyHostVisible
}

// MemoryTypeMinimumAlignment is the alignment every suballocation from the memory type must
// honor. Non-coherent memory is flushed in NonCoherentAtomSize units, so suballocations are
// kept on atom boundaries to keep flushes from touching their neighbors.
func (m *deviceMemoryProperties) MemoryTypeMinimumAlignment(memTypeIndex int) int {
	if m.IsMemoryTypeHostNonCoherent(memTypeIndex) {
		return m.NonCoherentAtomSize()
	}

	return 1
}

func (m *deviceMemoryProperties) NonCoherentAtomSize() int {
	if m.limits.NonCoherentAtomSize < 1 {
		return 1
	}
	return m.limits.NonCoherentAtomSize
}

func (m *deviceMemoryProperties) CalculateBufferImageGranularity() int {
	if m.limits.BufferImageGranularity < 1 {
		return 1
	}
	return m.limits.BufferImageGranularity
}

func (m *deviceMemoryProperties) CalculateGlobalMemoryTypeBits() uint32 {
	var typeBits uint32

	for memoryTypeIndex := 0; memoryTypeIndex < m.MemoryTypeCount(); memoryTypeIndex++ {
		typeBits |= 1 << memoryTypeIndex
	}

	return typeBits
}

func (m *deviceMemoryProperties) addBlockAllocation(heapIndex int, allocationSize int) {
	atomic.AddInt64(&m.blockBytes[heapIndex], int64(allocationSize))
	atomic.AddInt32(&m.blockCount[heapIndex], 1)
}

func (m *deviceMemoryProperties) addBlockAllocationWithBudget(heapIndex, allocationSize, maxAllocatable int) (common.VkResult, error) {
	for {
		currentVal := atomic.LoadInt64(&m.blockBytes[heapIndex])
		targetVal := currentVal + int64(allocationSize)

		if targetVal > int64(maxAllocatable) {
			return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
		}

		if atomic.CompareAndSwapInt64(&m.blockBytes[heapIndex], currentVal, targetVal) {
			break
		}
	}

	atomic.AddInt32(&m.blockCount[heapIndex], 1)
	return core1_0.VKSuccess, nil
}

func (m *deviceMemoryProperties) removeBlockAllocation(heapIndex, allocationSize int) {
	newVal := atomic.AddInt64(&m.blockBytes[heapIndex], int64(-allocationSize))
	if newVal < 0 {
		panic(fmt.Sprintf("block bytes for heapIndex %d went negative", heapIndex))
	}

	newCountVal := atomic.AddInt32(&m.blockCount[heapIndex], -1)
	if newCountVal < 0 {
		panic(fmt.Sprintf("block count for heapIndex %d went negative", heapIndex))
	}
}

// AllocateDeviceMemory allocates a new device memory object of the given type, honoring
// any heap size limit, and wraps it for mapping
func (m *deviceMemoryProperties) AllocateDeviceMemory(memoryTypeIndex int, size int) (mem *deviceMemory, res common.VkResult, err error) {
	heapIndex := m.MemoryTypeIndexToHeapIndex(memoryTypeIndex)
	heapLimit := m.heapLimits[heapIndex]
	if heapLimit <= 0 {
		m.addBlockAllocation(heapIndex, size)
	} else {
		res, err = m.addBlockAllocationWithBudget(heapIndex, size, heapLimit)
		if err != nil {
			return nil, res, err
		}
	}
	defer func() {
		if err != nil {
			m.removeBlockAllocation(heapIndex, size)
		}
	}()

	handle, res, err := m.device.AllocateMemory(size, memoryTypeIndex)
	if err != nil {
		return nil, res, err
	}

	atomic.AddUint32(&m.memoryCount, 1)
	return &deviceMemory{
		handle:   handle,
		size:     size,
		mapMutex: utils.NewOptionalMutex(m.useMutex),
	}, res, nil
}

func (m *deviceMemoryProperties) FreeDeviceMemory(memoryTypeIndex int, memory *deviceMemory) {
	memory.free(m.device)

	m.removeBlockAllocation(m.MemoryTypeIndexToHeapIndex(memoryTypeIndex), memory.size)
	// Decrement
	atomic.AddUint32(&m.memoryCount, ^uint32(0))
}

func (m *deviceMemoryProperties) AddAllocation(heapIndex int, size int) {
	atomic.AddInt64(&m.allocationBytes[heapIndex], int64(size))
	atomic.AddInt32(&m.allocationCount[heapIndex], 1)
}

func (m *deviceMemoryProperties) RemoveAllocation(heapIndex int, size int) {
	newSizeVal := atomic.AddInt64(&m.allocationBytes[heapIndex], int64(-size))
	if newSizeVal < 0 {
		panic(fmt.Sprintf("allocation bytes for heapIndex %d went negative", heapIndex))
	}

	newCountVal := atomic.AddInt32(&m.allocationCount[heapIndex], -1)
	if newCountVal < 0 {
		panic(fmt.Sprintf("allocation count for heapIndex %d went negative", heapIndex))
	}
}

func (m *deviceMemoryProperties) DeviceMemoryCount() int {
	return int(atomic.LoadUint32(&m.memoryCount))
}

func (m *deviceMemoryProperties) HeapBudget(heapIndex int, budget *HeapBudget) {
	budget.Statistics.BlockCount = int(atomic.LoadInt32(&m.blockCount[heapIndex]))
	budget.Statistics.AllocationCount = int(atomic.LoadInt32(&m.allocationCount[heapIndex]))
	budget.Statistics.BlockBytes = int(atomic.LoadInt64(&m.blockBytes[heapIndex]))
	budget.Statistics.AllocationBytes = int(atomic.LoadInt64(&m.allocationBytes[heapIndex]))

	budget.Usage = budget.Statistics.BlockBytes
	budget.Budget = m.properties.MemoryHeaps[heapIndex].Size * 8 / 10
	if m.heapLimits[heapIndex] > 0 && m.heapLimits[heapIndex] < budget.Budget {
		budget.Budget = m.heapLimits[heapIndex]
	}
}

type cacheOperation uint32

const (
	cacheOperationFlush cacheOperation = iota
	cacheOperationInvalidate
)

var cacheOperationMapping = map[cacheOperation]string{
	cacheOperationFlush:      "cacheOperationFlush",
	cacheOperationInvalidate: "cacheOperationInvalidate",
}

func (o cacheOperation) String() string {
	return cacheOperationMapping[o]
}

func (m *deviceMemoryProperties) FlushOrInvalidate(memRanges []device.MappedMemoryRange, operation cacheOperation) (common.VkResult, error) {
	if len(memRanges) == 0 {
		return core1_0.VKSuccess, nil
	}

	switch operation {
	case cacheOperationFlush:
		return m.device.FlushMappedMemoryRanges(memRanges)
	case cacheOperationInvalidate:
		return m.device.InvalidateMappedMemoryRanges(memRanges)
	}

	return core1_0.VKErrorUnknown, errors.Newf("attempted to carry out invalid cache operation %s", operation.String())
}
