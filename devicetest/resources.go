package devicetest

import (
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

var formatTexelSizes = map[core1_0.Format]int{
	core1_0.FormatR8UnsignedNormalized:       1,
	core1_0.FormatR8G8B8A8UnsignedNormalized: 4,
	core1_0.FormatR8G8B8A8SRGB:               4,
	core1_0.FormatB8G8R8A8UnsignedNormalized: 4,
	core1_0.FormatB8G8R8A8SRGB:               4,
	core1_0.FormatD32SignedFloat:             4,
	core1_0.FormatR32G32B32A32SignedFloat:    16,
}

// TexelSize is the number of bytes a single texel of the format occupies in the fake's
// tightly packed image memory. Unknown formats are treated as 4 bytes.
func TexelSize(format core1_0.Format) int {
	size, ok := formatTexelSizes[format]
	if !ok {
		return 4
	}

	return size
}

func (d *Device) allMemoryTypeBits() uint32 {
	return uint32(1<<len(d.options.MemoryTypes)) - 1
}

func (d *Device) CreateBuffer(info device.BufferCreateInfo) (device.Buffer, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateBuffer"); failed {
		return device.NullHandle, res, res.ToError()
	}
	if info.Size < 1 {
		d.violate("created a buffer of size %d", info.Size)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	obj := d.newObject(KindBuffer)
	obj.bufferInfo = info
	obj.size = info.Size

	return device.Buffer(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyBuffer(buffer device.Buffer) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(buffer), KindBuffer)
}

func (d *Device) BufferMemoryRequirements(buffer device.Buffer) core1_0.MemoryRequirements {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(buffer), KindBuffer)
	if !ok {
		d.violate("queried memory requirements of buffer %d, which does not exist", buffer)
		return core1_0.MemoryRequirements{}
	}

	return core1_0.MemoryRequirements{
		Size:           memutils.AlignUp(obj.size, uint(d.options.BufferAlignment)),
		Alignment:      d.options.BufferAlignment,
		MemoryTypeBits: d.allMemoryTypeBits(),
	}
}

func (d *Device) bindMemory(obj *object, memory device.Memory, offset int, alignment int) (common.VkResult, error) {
	memObj, ok := d.lookup(uint64(memory), KindMemory)
	if !ok {
		d.violate("bound %s %d to memory %d, which does not exist", obj.kind, obj.handle, memory)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if obj.bound {
		d.violate("bound %s %d to memory a second time", obj.kind, obj.handle)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if offset%alignment != 0 {
		d.violate("bound %s %d at offset %d, which does not honor alignment %d", obj.kind, obj.handle, offset, alignment)
	}
	if offset+obj.size > memObj.size {
		d.violate("bound %s %d of size %d at offset %d of memory %d, which is only %d bytes", obj.kind, obj.handle, obj.size, offset, memory, memObj.size)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	obj.memory = memory
	obj.memoryOffset = offset
	obj.bound = true
	return core1_0.VKSuccess, nil
}

func (d *Device) BindBufferMemory(buffer device.Buffer, memory device.Memory, offset int) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("BindBufferMemory"); failed {
		return res, res.ToError()
	}

	obj, ok := d.lookup(uint64(buffer), KindBuffer)
	if !ok {
		d.violate("bound buffer %d, which does not exist", buffer)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	return d.bindMemory(obj, memory, offset, d.options.BufferAlignment)
}

func imageByteSize(info device.ImageCreateInfo) int {
	layers := info.ArrayLayers
	if layers < 1 {
		layers = 1
	}
	depth := info.Extent.Depth
	if depth < 1 {
		depth = 1
	}

	return info.Extent.Width * info.Extent.Height * depth * layers * TexelSize(info.Format)
}

func (d *Device) CreateImage(info device.ImageCreateInfo) (device.Image, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateImage"); failed {
		return device.NullHandle, res, res.ToError()
	}
	if slices.Contains(d.options.UnsupportedFormats, info.Format) {
		return device.NullHandle, core1_0.VKErrorFormatNotSupported, core1_0.VKErrorFormatNotSupported.ToError()
	}
	if info.Extent.Width < 1 || info.Extent.Height < 1 {
		d.violate("created an image with extent %dx%d", info.Extent.Width, info.Extent.Height)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	obj := d.newObject(KindImage)
	obj.imageInfo = info
	obj.size = imageByteSize(info)
	obj.layout = info.InitialLayout

	return device.Image(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyImage(image device.Image) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(image), KindImage)
	if ok && obj.swapchain {
		d.violate("destroyed swapchain image %d", image)
		return
	}

	d.destroy(uint64(image), KindImage)
}

func (d *Device) ImageMemoryRequirements(image device.Image) core1_0.MemoryRequirements {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(image), KindImage)
	if !ok {
		d.violate("queried memory requirements of image %d, which does not exist", image)
		return core1_0.MemoryRequirements{}
	}

	return core1_0.MemoryRequirements{
		Size:           memutils.AlignUp(obj.size, uint(d.options.ImageAlignment)),
		Alignment:      d.options.ImageAlignment,
		MemoryTypeBits: d.allMemoryTypeBits(),
	}
}

func (d *Device) BindImageMemory(image device.Image, memory device.Memory, offset int) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("BindImageMemory"); failed {
		return res, res.ToError()
	}

	obj, ok := d.lookup(uint64(image), KindImage)
	if !ok {
		d.violate("bound image %d, which does not exist", image)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	return d.bindMemory(obj, memory, offset, d.options.ImageAlignment)
}

func (d *Device) CreateImageView(info device.ImageViewCreateInfo) (device.ImageView, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateImageView"); failed {
		return device.NullHandle, res, res.ToError()
	}

	image, ok := d.lookup(uint64(info.Image), KindImage)
	if !ok {
		d.violate("created a view of image %d, which does not exist", info.Image)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if !image.bound && !image.swapchain {
		d.violate("created a view of image %d, which is not bound to memory", info.Image)
	}

	obj := d.newObject(KindImageView)
	obj.viewInfo = info

	return device.ImageView(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyImageView(view device.ImageView) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(view), KindImageView)
}

func (d *Device) CreateSampler(info device.SamplerCreateInfo) (device.Sampler, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateSampler"); failed {
		return device.NullHandle, res, res.ToError()
	}

	obj := d.newObject(KindSampler)
	return device.Sampler(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroySampler(sampler device.Sampler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(sampler), KindSampler)
}

// CreatePipeline registers a pipeline object so that its destruction can be tracked.
// Pipelines are built outside of the resource manager, so this is not part of
// device.Device.
func (d *Device) CreatePipeline() device.Pipeline {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return device.Pipeline(d.newObject(KindPipeline).handle)
}

// CreatePipelineLayout registers a pipeline layout object, see CreatePipeline
func (d *Device) CreatePipelineLayout() device.PipelineLayout {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return device.PipelineLayout(d.newObject(KindPipelineLayout).handle)
}

func (d *Device) DestroyPipeline(pipeline device.Pipeline) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(pipeline), KindPipeline)
}

func (d *Device) DestroyPipelineLayout(layout device.PipelineLayout) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(layout), KindPipelineLayout)
}

// ImageLayout is the layout an image is in after all completed submissions
func (d *Device) ImageLayout(image device.Image) core1_0.ImageLayout {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(image), KindImage)
	if !ok {
		return core1_0.ImageLayoutUndefined
	}

	return obj.layout
}

func (d *Device) boundBytes(obj *object) ([]byte, bool) {
	if !obj.bound {
		return nil, false
	}

	memObj, ok := d.lookup(uint64(obj.memory), KindMemory)
	if !ok {
		return nil, false
	}

	return memObj.data[obj.memoryOffset : obj.memoryOffset+obj.size], true
}

// ImageContents returns a copy of an image's tightly packed texels
func (d *Device) ImageContents(image device.Image) []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(image), KindImage)
	if !ok {
		return nil
	}

	data, ok := d.boundBytes(obj)
	if !ok {
		return nil
	}

	return append([]byte(nil), data...)
}

// BufferContents returns a copy of a buffer's bytes
func (d *Device) BufferContents(buffer device.Buffer) []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(buffer), KindBuffer)
	if !ok {
		return nil
	}

	data, ok := d.boundBytes(obj)
	if !ok {
		return nil
	}

	return append([]byte(nil), data...)
}
