// Package devicetest provides an in-memory device.Device for tests. Memory is backed by
// real host bytes, command buffers are replayed when their submission completes, and
// queue submissions only complete when the test says so, which lets tests observe exactly
// what the host side does while work is still in flight.
//
// Misuse that a validation layer would report (reading destroyed objects from in-flight
// work, re-recording pending command buffers, unbalanced semaphores) is collected and
// exposed through Violations instead of failing the call.
package devicetest

import (
	"fmt"
	"sync"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// ObjectKind identifies the type of a device object tracked by the fake
type ObjectKind int

const (
	KindMemory ObjectKind = iota
	KindBuffer
	KindImage
	KindImageView
	KindSampler
	KindDescriptorSetLayout
	KindDescriptorPool
	KindDescriptorSet
	KindPipelineLayout
	KindPipeline
	KindSemaphore
	KindFence
	KindCommandPool
	KindCommandBuffer
	KindSwapchain
)

var objectKindMapping = map[ObjectKind]string{
	KindMemory:              "Memory",
	KindBuffer:              "Buffer",
	KindImage:               "Image",
	KindImageView:           "ImageView",
	KindSampler:             "Sampler",
	KindDescriptorSetLayout: "DescriptorSetLayout",
	KindDescriptorPool:      "DescriptorPool",
	KindDescriptorSet:       "DescriptorSet",
	KindPipelineLayout:      "PipelineLayout",
	KindPipeline:            "Pipeline",
	KindSemaphore:           "Semaphore",
	KindFence:               "Fence",
	KindCommandPool:         "CommandPool",
	KindCommandBuffer:       "CommandBuffer",
	KindSwapchain:           "Swapchain",
}

func (k ObjectKind) String() string {
	str, ok := objectKindMapping[k]
	if !ok {
		return "unknown ObjectKind"
	}

	return str
}

// Options configures a fake Device
type Options struct {
	MemoryTypes []core1_0.MemoryType
	MemoryHeaps []core1_0.MemoryHeap
	Limits      device.Limits

	// BufferAlignment and ImageAlignment are reported in memory requirements. Zero means 16
	// for buffers and 256 for images.
	BufferAlignment int
	ImageAlignment  int

	// UnsupportedFormats makes CreateImage fail with core1_0.VKErrorFormatNotSupported
	UnsupportedFormats []core1_0.Format

	// AutoComplete makes every submission complete as soon as it is submitted
	AutoComplete bool
}

const (
	defaultHeapSize        = 64 * 1024 * 1024
	defaultBufferAlignment = 16
	defaultImageAlignment  = 256
)

// DefaultOptions describes a small discrete GPU: device local memory on heap 0, and a host
// visible coherent type plus a host visible cached, non-coherent type on heap 1
func DefaultOptions() Options {
	return Options{
		MemoryTypes: []core1_0.MemoryType{
			{PropertyFlags: core1_0.MemoryPropertyDeviceLocal, HeapIndex: 0},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent, HeapIndex: 1},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCached, HeapIndex: 1},
		},
		MemoryHeaps: []core1_0.MemoryHeap{
			{Size: defaultHeapSize, Flags: core1_0.MemoryHeapDeviceLocal},
			{Size: defaultHeapSize},
		},
		Limits: device.Limits{
			BufferImageGranularity: 1,
			NonCoherentAtomSize:    64,
		},
	}
}

type object struct {
	kind   ObjectKind
	handle uint64

	// KindMemory
	data            []byte
	memoryTypeIndex int
	mapped          bool

	// KindBuffer, KindImage
	size         int
	bufferInfo   device.BufferCreateInfo
	imageInfo    device.ImageCreateInfo
	layout       core1_0.ImageLayout
	memory       device.Memory
	memoryOffset int
	bound        bool
	swapchain    bool

	// KindImageView
	viewInfo device.ImageViewCreateInfo

	// KindDescriptorSetLayout
	bindings []device.DescriptorSetLayoutBinding

	// KindDescriptorPool
	maxSets       int
	capacity      map[core1_0.DescriptorType]int
	remaining     map[core1_0.DescriptorType]int
	setsRemaining int
	sets          []uint64

	// KindDescriptorSet
	pool   uint64
	writes []device.WriteDescriptorSet

	// KindSemaphore, KindFence
	signaled        bool
	pendingSignal   int
	consumeOnSignal int

	// KindCommandBuffer
	commandPool uint64
	recording   bool
	commands    []command
	pending     int

	// KindSwapchain
	images    []device.Image
	nextImage int
	outOfDate bool
}

// Device is a fake device.Device. All methods are safe for concurrent use.
type Device struct {
	mutex   sync.Mutex
	cond    *sync.Cond
	options Options

	nextHandle uint64
	objects    *swiss.Map[uint64, *object]
	heapUsage  []int

	failures   map[string][]common.VkResult
	pending    []*submission
	waiters    int
	deviceLost bool

	violations []string
	flushes    []device.MappedMemoryRange
	presented  []int
}

var _ device.Device = &Device{}

// New creates a fake device
func New(options Options) *Device {
	if options.BufferAlignment == 0 {
		options.BufferAlignment = defaultBufferAlignment
	}
	if options.ImageAlignment == 0 {
		options.ImageAlignment = defaultImageAlignment
	}

	d := &Device{
		options:   options,
		objects:   swiss.NewMap[uint64, *object](128),
		heapUsage: make([]int, len(options.MemoryHeaps)),
		failures:  make(map[string][]common.VkResult),
	}
	d.cond = sync.NewCond(&d.mutex)

	return d
}

func (d *Device) newObject(kind ObjectKind) *object {
	d.nextHandle++
	obj := &object{kind: kind, handle: d.nextHandle}
	d.objects.Put(obj.handle, obj)
	return obj
}

func (d *Device) lookup(handle uint64, kind ObjectKind) (*object, bool) {
	obj, ok := d.objects.Get(handle)
	if !ok || obj.kind != kind {
		return nil, false
	}

	return obj, true
}

// destroy removes an object, recording a violation if it does not exist. The null handle is
// silently ignored, as it is by the real API.
func (d *Device) destroy(handle uint64, kind ObjectKind) (*object, bool) {
	if handle == device.NullHandle {
		return nil, false
	}

	obj, ok := d.lookup(handle, kind)
	if !ok {
		d.violate("destroyed %s %d, which does not exist", kind, handle)
		return nil, false
	}

	d.objects.Delete(handle)
	return obj, true
}

func (d *Device) violate(format string, args ...any) {
	d.violations = append(d.violations, fmt.Sprintf(format, args...))
}

// FailNext makes the next call to the named Device method return result instead of doing
// its work. Calls to the same operation queue up in order. Non-negative results, such as
// khr_swapchain.VKSuboptimal, are returned alongside a successful operation for the methods
// that can report them.
func (d *Device) FailNext(operation string, result common.VkResult) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.failures[operation] = append(d.failures[operation], result)
}

func (d *Device) takeFailure(operation string) (common.VkResult, bool) {
	queued := d.failures[operation]
	if len(queued) == 0 {
		return core1_0.VKSuccess, false
	}

	d.failures[operation] = queued[1:]
	return queued[0], true
}

// LoseDevice makes every subsequent wait and submission report core1_0.VKErrorDeviceLost
func (d *Device) LoseDevice() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.deviceLost = true
	d.cond.Broadcast()
}

// Violations lists the misuse the device has observed so far
func (d *Device) Violations() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return append([]string(nil), d.violations...)
}

// LiveObjects counts the objects of the given kind that have not been destroyed
func (d *Device) LiveObjects(kind ObjectKind) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	count := 0
	d.objects.Iter(func(handle uint64, obj *object) bool {
		if obj.kind == kind {
			count++
		}
		return false
	})

	return count
}

// Exists reports whether a handle of any kind is still alive
func (d *Device) Exists(handle uint64) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.objects.Has(handle)
}

// HeapUsage is the number of bytes of device memory allocated from a heap
func (d *Device) HeapUsage(heapIndex int) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.heapUsage[heapIndex]
}

func (d *Device) MemoryProperties() device.MemoryProperties {
	return device.MemoryProperties{
		MemoryTypes: append([]core1_0.MemoryType(nil), d.options.MemoryTypes...),
		MemoryHeaps: append([]core1_0.MemoryHeap(nil), d.options.MemoryHeaps...),
	}
}

func (d *Device) Limits() device.Limits {
	return d.options.Limits
}
