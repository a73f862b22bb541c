package gpumem

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// deviceMemory is a single device memory object together with its reference counted host
// mapping. Blocks and dedicated allocations each own exactly one.
type deviceMemory struct {
	handle device.Memory
	size   int

	mapReferences int
	mapData       unsafe.Pointer
	mapMutex      utils.OptionalMutex
}

func (m *deviceMemory) Handle() device.Memory {
	return m.handle
}

func (m *deviceMemory) MappedData() unsafe.Pointer {
	return m.mapData
}

func (m *deviceMemory) References() int {
	return m.mapReferences
}

// Map adds references to the memory object's host mapping, mapping the whole object on the
// first reference
func (m *deviceMemory) Map(dev device.MemoryDevice, references int) (unsafe.Pointer, common.VkResult, error) {
	if references == 0 {
		return nil, core1_0.VKSuccess, nil
	}

	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapReferences > 0 {
		if m.mapData == nil {
			return nil, core1_0.VKErrorUnknown, errors.New("the memory is showing existing mapping references, but no mapped memory")
		}

		m.mapReferences += references
		return m.mapData, core1_0.VKSuccess, nil
	}

	mappedData, res, err := dev.MapMemory(m.handle, 0, -1)
	if err != nil {
		return nil, res, err
	}

	m.mapData = mappedData
	m.mapReferences = references
	return mappedData, res, nil
}

func (m *deviceMemory) Unmap(dev device.MemoryDevice, references int) error {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapReferences < references {
		return errors.New("device memory has more references being unmapped than are currently mapped")
	}

	m.mapReferences -= references
	if m.mapReferences == 0 && m.mapData != nil {
		dev.UnmapMemory(m.handle)
		m.mapData = nil
	}

	return nil
}

func (m *deviceMemory) free(dev device.MemoryDevice) {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapData != nil {
		dev.UnmapMemory(m.handle)
		m.mapData = nil
		m.mapReferences = 0
	}

	dev.FreeMemory(m.handle)
	m.handle = device.NullHandle
}
