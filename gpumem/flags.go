package gpumem

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

var createFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	createFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return createFlagsMapping.FlagsToString(f)
}

const (
	// CreateInternallySynchronized guards the allocator and every allocation created from it
	// with internal mutexes. Without it, the consumer must guarantee the allocator is only
	// used from one thread at a time, which is the case when it is driven from a frame loop.
	CreateInternallySynchronized CreateFlags = 1 << iota
	// CreateKeepEmptyBlock keeps the last empty block of each memory type alive instead of
	// returning it to the device, trading memory for fewer device allocations when a
	// workload repeatedly allocates and frees.
	CreateKeepEmptyBlock
)

func init() {
	CreateInternallySynchronized.Register("CreateInternallySynchronized")
	CreateKeepEmptyBlock.Register("CreateKeepEmptyBlock")
}

// Location describes where an allocation should live and how the host intends to access it
type Location int32

const (
	// LocationGPUOnly is for resources only the device touches: render targets, sampled
	// textures after upload, vertex and index data written through staging
	LocationGPUOnly Location = iota
	// LocationCPUToGPU is host visible, coherent memory the host writes and the device reads:
	// staging buffers and per-frame uniforms
	LocationCPUToGPU
	// LocationGPUToCPU is host visible memory, preferably cached, the device writes and the
	// host reads back
	LocationGPUToCPU
)

var locationMapping = map[Location]string{
	LocationGPUOnly:  "LocationGPUOnly",
	LocationCPUToGPU: "LocationCPUToGPU",
	LocationGPUToCPU: "LocationGPUToCPU",
}

func (l Location) String() string {
	str, ok := locationMapping[l]
	if !ok {
		return "unknown Location"
	}

	return str
}

// IsHostVisible reports whether allocations in this location are mapped for host access
func (l Location) IsHostVisible() bool {
	return l == LocationCPUToGPU || l == LocationGPUToCPU
}

func (l Location) memoryPreferences() (requiredFlags, preferredFlags, notPreferredFlags core1_0.MemoryPropertyFlags, ok bool) {
	switch l {
	case LocationGPUOnly:
		return 0, core1_0.MemoryPropertyDeviceLocal, core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCached, true
	case LocationCPUToGPU:
		return core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent, core1_0.MemoryPropertyDeviceLocal, core1_0.MemoryPropertyHostCached, true
	case LocationGPUToCPU:
		return core1_0.MemoryPropertyHostVisible, core1_0.MemoryPropertyHostCached, 0, true
	}

	return 0, 0, 0, false
}
