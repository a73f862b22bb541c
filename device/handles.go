package device

// Native handles issued by a Device. Each handle type is distinct so that an image can't be
// passed where a buffer is expected. The zero value of every handle type is the null handle.
type (
	Memory              uint64
	Buffer              uint64
	Image               uint64
	ImageView           uint64
	Sampler             uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	PipelineLayout      uint64
	Pipeline            uint64
	Semaphore           uint64
	Fence               uint64
	CommandPool         uint64
	CommandBuffer       uint64
	Swapchain           uint64
	Queue               uint64
)

// NullHandle is the untyped null handle, assignable to every handle type
const NullHandle = 0
