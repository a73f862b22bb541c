package device

import (
	"github.com/vkngwrapper/core/v2/core1_0"
)

// MemoryProperties describes the memory types and heaps exposed by a device
type MemoryProperties struct {
	MemoryTypes []core1_0.MemoryType
	MemoryHeaps []core1_0.MemoryHeap
}

// Limits carries the subset of physical device limits the resource manager consults
type Limits struct {
	// BufferImageGranularity is the granularity, in bytes, at which linear and optimal
	// resources bound to the same memory object must be separated to avoid aliasing
	BufferImageGranularity int
	// NonCoherentAtomSize bounds flush and invalidate ranges on memory that is not
	// HostCoherent
	NonCoherentAtomSize int
}

type MappedMemoryRange struct {
	Memory Memory
	Offset int
	Size   int
}

type BufferCreateInfo struct {
	Size        int
	Usage       core1_0.BufferUsageFlags
	SharingMode core1_0.SharingMode
}

type ImageCreateInfo struct {
	ImageType     core1_0.ImageType
	Format        core1_0.Format
	Extent        core1_0.Extent3D
	MipLevels     int
	ArrayLayers   int
	Samples       core1_0.SampleCountFlags
	Tiling        core1_0.ImageTiling
	Usage         core1_0.ImageUsageFlags
	SharingMode   core1_0.SharingMode
	InitialLayout core1_0.ImageLayout
}

type ImageViewCreateInfo struct {
	Image            Image
	ViewType         core1_0.ImageViewType
	Format           core1_0.Format
	SubresourceRange core1_0.ImageSubresourceRange
}

type SamplerCreateInfo struct {
	MagFilter    core1_0.Filter
	MinFilter    core1_0.Filter
	AddressModeU core1_0.SamplerAddressMode
	AddressModeV core1_0.SamplerAddressMode
	AddressModeW core1_0.SamplerAddressMode
}

type DescriptorSetLayoutBinding struct {
	Binding         int
	DescriptorType  core1_0.DescriptorType
	DescriptorCount int
	StageFlags      core1_0.ShaderStageFlags
}

type DescriptorSetLayoutCreateInfo struct {
	Bindings []DescriptorSetLayoutBinding
}

type DescriptorPoolCreateInfo struct {
	MaxSets   int
	PoolSizes []core1_0.DescriptorPoolSize
}

type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout core1_0.ImageLayout
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset int
	Range  int
}

// WriteDescriptorSet updates DescriptorCount consecutive descriptors of a single binding. Exactly
// one of ImageInfo and BufferInfo is populated, depending on DescriptorType.
type WriteDescriptorSet struct {
	DstSet          DescriptorSet
	DstBinding      int
	DstArrayElement int
	DescriptorType  core1_0.DescriptorType

	ImageInfo  []DescriptorImageInfo
	BufferInfo []DescriptorBufferInfo
}

type ImageMemoryBarrier struct {
	SrcAccessMask    core1_0.AccessFlags
	DstAccessMask    core1_0.AccessFlags
	OldLayout        core1_0.ImageLayout
	NewLayout        core1_0.ImageLayout
	Image            Image
	SubresourceRange core1_0.ImageSubresourceRange
}

type SubmitInfo struct {
	WaitSemaphores   []Semaphore
	WaitDstStageMask []core1_0.PipelineStageFlags
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
}

type PresentInfo struct {
	WaitSemaphores []Semaphore
	Swapchain      Swapchain
	ImageIndex     int
}
