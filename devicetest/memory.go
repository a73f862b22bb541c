package devicetest

import (
	"unsafe"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func (d *Device) AllocateMemory(size int, memoryTypeIndex int) (device.Memory, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("AllocateMemory"); failed {
		return device.NullHandle, res, res.ToError()
	}

	if memoryTypeIndex < 0 || memoryTypeIndex >= len(d.options.MemoryTypes) {
		d.violate("allocated memory from memory type %d, which does not exist", memoryTypeIndex)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if size < 1 {
		d.violate("allocated %d bytes of memory", size)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	heapIndex := d.options.MemoryTypes[memoryTypeIndex].HeapIndex
	if d.heapUsage[heapIndex]+size > d.options.MemoryHeaps[heapIndex].Size {
		return device.NullHandle, core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
	}
	d.heapUsage[heapIndex] += size

	obj := d.newObject(KindMemory)
	obj.data = make([]byte, size)
	obj.size = size
	obj.memoryTypeIndex = memoryTypeIndex

	return device.Memory(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) FreeMemory(memory device.Memory) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.destroy(uint64(memory), KindMemory)
	if !ok {
		return
	}

	heapIndex := d.options.MemoryTypes[obj.memoryTypeIndex].HeapIndex
	d.heapUsage[heapIndex] -= obj.size
}

func (d *Device) MapMemory(memory device.Memory, offset int, size int) (unsafe.Pointer, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("MapMemory"); failed {
		return nil, res, res.ToError()
	}

	obj, ok := d.lookup(uint64(memory), KindMemory)
	if !ok {
		d.violate("mapped memory %d, which does not exist", memory)
		return nil, core1_0.VKErrorMemoryMapFailed, core1_0.VKErrorMemoryMapFailed.ToError()
	}

	if d.options.MemoryTypes[obj.memoryTypeIndex].PropertyFlags&core1_0.MemoryPropertyHostVisible == 0 {
		d.violate("mapped memory %d from memory type %d, which is not host visible", memory, obj.memoryTypeIndex)
		return nil, core1_0.VKErrorMemoryMapFailed, core1_0.VKErrorMemoryMapFailed.ToError()
	}
	if obj.mapped {
		d.violate("mapped memory %d, which is already mapped", memory)
		return nil, core1_0.VKErrorMemoryMapFailed, core1_0.VKErrorMemoryMapFailed.ToError()
	}

	if size == -1 {
		size = obj.size - offset
	}
	if offset < 0 || size < 1 || offset+size > obj.size {
		d.violate("mapped range [%d, %d) of memory %d, which is %d bytes", offset, offset+size, memory, obj.size)
		return nil, core1_0.VKErrorMemoryMapFailed, core1_0.VKErrorMemoryMapFailed.ToError()
	}

	obj.mapped = true
	return unsafe.Pointer(&obj.data[offset]), core1_0.VKSuccess, nil
}

func (d *Device) UnmapMemory(memory device.Memory) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(memory), KindMemory)
	if !ok {
		d.violate("unmapped memory %d, which does not exist", memory)
		return
	}
	if !obj.mapped {
		d.violate("unmapped memory %d, which is not mapped", memory)
	}

	obj.mapped = false
}

func (d *Device) checkMappedRanges(ranges []device.MappedMemoryRange) {
	atomSize := d.options.Limits.NonCoherentAtomSize
	if atomSize < 1 {
		atomSize = 1
	}

	for _, memRange := range ranges {
		obj, ok := d.lookup(uint64(memRange.Memory), KindMemory)
		if !ok {
			d.violate("flushed or invalidated memory %d, which does not exist", memRange.Memory)
			continue
		}
		if !obj.mapped {
			d.violate("flushed or invalidated memory %d, which is not mapped", memRange.Memory)
		}
		if memRange.Offset%atomSize != 0 {
			d.violate("flushed or invalidated memory %d at offset %d, which is not a multiple of the atom size %d", memRange.Memory, memRange.Offset, atomSize)
		}
		if memRange.Size%atomSize != 0 && memRange.Offset+memRange.Size != obj.size {
			d.violate("flushed or invalidated %d bytes of memory %d, which is not a multiple of the atom size %d and does not reach the end of the memory", memRange.Size, memRange.Memory, atomSize)
		}
		if memRange.Offset+memRange.Size > obj.size {
			d.violate("flushed or invalidated range [%d, %d) of memory %d, which is %d bytes", memRange.Offset, memRange.Offset+memRange.Size, memRange.Memory, obj.size)
		}
	}
}

func (d *Device) FlushMappedMemoryRanges(ranges []device.MappedMemoryRange) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("FlushMappedMemoryRanges"); failed {
		return res, res.ToError()
	}

	d.checkMappedRanges(ranges)
	d.flushes = append(d.flushes, ranges...)
	return core1_0.VKSuccess, nil
}

func (d *Device) InvalidateMappedMemoryRanges(ranges []device.MappedMemoryRange) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("InvalidateMappedMemoryRanges"); failed {
		return res, res.ToError()
	}

	d.checkMappedRanges(ranges)
	return core1_0.VKSuccess, nil
}

// FlushedRanges lists every range passed to FlushMappedMemoryRanges so far
func (d *Device) FlushedRanges() []device.MappedMemoryRange {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return append([]device.MappedMemoryRange(nil), d.flushes...)
}

// MemoryContents returns a copy of a memory object's bytes
func (d *Device) MemoryContents(memory device.Memory) []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(memory), KindMemory)
	if !ok {
		return nil
	}

	return append([]byte(nil), obj.data...)
}
