package device

import (
	"time"
	"unsafe"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

//go:generate mockgen -source device.go -destination ../mocks/device.go -package mocks

// MemoryDevice allocates, maps and releases raw device memory
type MemoryDevice interface {
	MemoryProperties() MemoryProperties
	Limits() Limits

	AllocateMemory(size int, memoryTypeIndex int) (Memory, common.VkResult, error)
	FreeMemory(memory Memory)
	// MapMemory maps size bytes of memory starting at offset. A size of -1 maps to the end
	// of the allocation.
	MapMemory(memory Memory, offset int, size int) (unsafe.Pointer, common.VkResult, error)
	UnmapMemory(memory Memory)
	FlushMappedMemoryRanges(ranges []MappedMemoryRange) (common.VkResult, error)
	InvalidateMappedMemoryRanges(ranges []MappedMemoryRange) (common.VkResult, error)
}

// ResourceDevice creates and destroys buffers, images and the objects that read from them
type ResourceDevice interface {
	CreateBuffer(info BufferCreateInfo) (Buffer, common.VkResult, error)
	DestroyBuffer(buffer Buffer)
	BufferMemoryRequirements(buffer Buffer) core1_0.MemoryRequirements
	BindBufferMemory(buffer Buffer, memory Memory, offset int) (common.VkResult, error)

	CreateImage(info ImageCreateInfo) (Image, common.VkResult, error)
	DestroyImage(image Image)
	ImageMemoryRequirements(image Image) core1_0.MemoryRequirements
	BindImageMemory(image Image, memory Memory, offset int) (common.VkResult, error)

	CreateImageView(info ImageViewCreateInfo) (ImageView, common.VkResult, error)
	DestroyImageView(view ImageView)

	CreateSampler(info SamplerCreateInfo) (Sampler, common.VkResult, error)
	DestroySampler(sampler Sampler)

	// Pipelines are built outside of this module, so only their destruction is modeled
	DestroyPipeline(pipeline Pipeline)
	DestroyPipelineLayout(layout PipelineLayout)
}

// DescriptorDevice manages descriptor set layouts, pools and sets
type DescriptorDevice interface {
	CreateDescriptorSetLayout(info DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, common.VkResult, error)
	DestroyDescriptorSetLayout(layout DescriptorSetLayout)

	CreateDescriptorPool(info DescriptorPoolCreateInfo) (DescriptorPool, common.VkResult, error)
	DestroyDescriptorPool(pool DescriptorPool)
	// ResetDescriptorPool returns every set allocated from the pool back to it
	ResetDescriptorPool(pool DescriptorPool) (common.VkResult, error)
	AllocateDescriptorSet(pool DescriptorPool, layout DescriptorSetLayout) (DescriptorSet, common.VkResult, error)
	UpdateDescriptorSets(writes []WriteDescriptorSet)
}

// CommandDevice records work into command buffers
type CommandDevice interface {
	CreateCommandPool(queueFamilyIndex int) (CommandPool, common.VkResult, error)
	DestroyCommandPool(pool CommandPool)
	AllocateCommandBuffer(pool CommandPool) (CommandBuffer, common.VkResult, error)
	FreeCommandBuffer(pool CommandPool, buffer CommandBuffer)

	ResetCommandBuffer(buffer CommandBuffer) (common.VkResult, error)
	BeginCommandBuffer(buffer CommandBuffer, usage core1_0.CommandBufferUsageFlags) (common.VkResult, error)
	EndCommandBuffer(buffer CommandBuffer) (common.VkResult, error)

	CmdPipelineBarrier(buffer CommandBuffer, srcStageMask, dstStageMask core1_0.PipelineStageFlags, imageBarriers []ImageMemoryBarrier)
	CmdCopyBuffer(buffer CommandBuffer, src Buffer, dst Buffer, regions []core1_0.BufferCopy)
	CmdCopyBufferToImage(buffer CommandBuffer, src Buffer, dst Image, dstLayout core1_0.ImageLayout, regions []core1_0.BufferImageCopy)
}

// SyncDevice owns the host/device synchronization primitives and queue submission
type SyncDevice interface {
	CreateSemaphore() (Semaphore, common.VkResult, error)
	DestroySemaphore(semaphore Semaphore)

	CreateFence(signaled bool) (Fence, common.VkResult, error)
	DestroyFence(fence Fence)
	// WaitForFences blocks until all (or, if waitAll is false, any) of the fences are
	// signaled. It returns core1_0.VKTimeout, which is not an error, if timeout elapses
	// first. common.NoTimeout waits forever.
	WaitForFences(fences []Fence, waitAll bool, timeout time.Duration) (common.VkResult, error)
	ResetFences(fences []Fence) (common.VkResult, error)

	QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) (common.VkResult, error)
	DeviceWaitIdle() (common.VkResult, error)
}

// PresentDevice talks to the swapchain. Acquire and present report a stale surface with
// khr_swapchain.VKErrorOutOfDate, khr_swapchain.VKSuboptimal or khr_surface.VKErrorSurfaceLost.
type PresentDevice interface {
	AcquireNextImage(swapchain Swapchain, timeout time.Duration, semaphore Semaphore, fence Fence) (int, common.VkResult, error)
	QueuePresent(queue Queue, info PresentInfo) (common.VkResult, error)
}

// Device is the complete collaborator consumed by the resource manager
type Device interface {
	MemoryDevice
	ResourceDevice
	DescriptorDevice
	CommandDevice
	SyncDevice
	PresentDevice
}
