package devicetest

import (
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// command is recorded into a command buffer and executed, under the device lock, when the
// submission that carries it completes
type command struct {
	name string
	run  func(d *Device)
}

func (d *Device) CreateCommandPool(queueFamilyIndex int) (device.CommandPool, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateCommandPool"); failed {
		return device.NullHandle, res, res.ToError()
	}

	return device.CommandPool(d.newObject(KindCommandPool).handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyCommandPool(pool device.CommandPool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.destroy(uint64(pool), KindCommandPool); !ok {
		return
	}

	// Command buffers are freed along with their pool
	var owned []uint64
	d.objects.Iter(func(handle uint64, obj *object) bool {
		if obj.kind == KindCommandBuffer && obj.commandPool == uint64(pool) {
			if obj.pending > 0 {
				d.violate("destroyed command pool %d while command buffer %d is pending", pool, handle)
			}
			owned = append(owned, handle)
		}
		return false
	})
	for _, handle := range owned {
		d.objects.Delete(handle)
	}
}

func (d *Device) AllocateCommandBuffer(pool device.CommandPool) (device.CommandBuffer, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("AllocateCommandBuffer"); failed {
		return device.NullHandle, res, res.ToError()
	}
	if _, ok := d.lookup(uint64(pool), KindCommandPool); !ok {
		d.violate("allocated a command buffer from pool %d, which does not exist", pool)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	obj := d.newObject(KindCommandBuffer)
	obj.commandPool = uint64(pool)
	return device.CommandBuffer(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) FreeCommandBuffer(pool device.CommandPool, buffer device.CommandBuffer) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(buffer), KindCommandBuffer)
	if ok && obj.pending > 0 {
		d.violate("freed command buffer %d while it is pending", buffer)
	}
	if ok && obj.commandPool != uint64(pool) {
		d.violate("freed command buffer %d through pool %d, which did not allocate it", buffer, pool)
	}

	d.destroy(uint64(buffer), KindCommandBuffer)
}

func (d *Device) commandBuffer(buffer device.CommandBuffer, action string) (*object, bool) {
	obj, ok := d.lookup(uint64(buffer), KindCommandBuffer)
	if !ok {
		d.violate("%s command buffer %d, which does not exist", action, buffer)
		return nil, false
	}

	return obj, true
}

func (d *Device) ResetCommandBuffer(buffer device.CommandBuffer) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("ResetCommandBuffer"); failed {
		return res, res.ToError()
	}

	obj, ok := d.commandBuffer(buffer, "reset")
	if !ok {
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if obj.pending > 0 {
		d.violate("reset command buffer %d while it is pending", buffer)
	}

	obj.commands = nil
	obj.recording = false
	return core1_0.VKSuccess, nil
}

func (d *Device) BeginCommandBuffer(buffer device.CommandBuffer, usage core1_0.CommandBufferUsageFlags) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("BeginCommandBuffer"); failed {
		return res, res.ToError()
	}

	obj, ok := d.commandBuffer(buffer, "began")
	if !ok {
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if obj.pending > 0 {
		d.violate("began command buffer %d while it is pending", buffer)
	}
	if obj.recording {
		d.violate("began command buffer %d, which is already recording", buffer)
	}

	obj.commands = nil
	obj.recording = true
	return core1_0.VKSuccess, nil
}

func (d *Device) EndCommandBuffer(buffer device.CommandBuffer) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("EndCommandBuffer"); failed {
		return res, res.ToError()
	}

	obj, ok := d.commandBuffer(buffer, "ended")
	if !ok {
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	if !obj.recording {
		d.violate("ended command buffer %d, which is not recording", buffer)
	}

	obj.recording = false
	return core1_0.VKSuccess, nil
}

func (d *Device) record(buffer device.CommandBuffer, cmd command) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.commandBuffer(buffer, "recorded "+cmd.name+" into")
	if !ok {
		return
	}
	if !obj.recording {
		d.violate("recorded %s into command buffer %d, which is not recording", cmd.name, buffer)
		return
	}

	obj.commands = append(obj.commands, cmd)
}

func (d *Device) CmdPipelineBarrier(buffer device.CommandBuffer, srcStageMask, dstStageMask core1_0.PipelineStageFlags, imageBarriers []device.ImageMemoryBarrier) {
	barriers := append([]device.ImageMemoryBarrier(nil), imageBarriers...)

	d.record(buffer, command{
		name: "CmdPipelineBarrier",
		run: func(d *Device) {
			for _, barrier := range barriers {
				image, ok := d.lookup(uint64(barrier.Image), KindImage)
				if !ok {
					d.violate("executed a barrier on image %d, which was destroyed while in flight", barrier.Image)
					continue
				}

				if barrier.OldLayout != core1_0.ImageLayoutUndefined && barrier.OldLayout != image.layout {
					d.violate("executed a barrier on image %d from layout %s, but the image is in layout %s", barrier.Image, barrier.OldLayout, image.layout)
				}
				image.layout = barrier.NewLayout
			}
		},
	})
}

func (d *Device) CmdCopyBuffer(buffer device.CommandBuffer, src device.Buffer, dst device.Buffer, regions []core1_0.BufferCopy) {
	copies := append([]core1_0.BufferCopy(nil), regions...)

	d.record(buffer, command{
		name: "CmdCopyBuffer",
		run: func(d *Device) {
			srcData, ok := d.executionBytes(uint64(src), KindBuffer, "copied from")
			if !ok {
				return
			}
			dstData, ok := d.executionBytes(uint64(dst), KindBuffer, "copied to")
			if !ok {
				return
			}

			for _, region := range copies {
				if region.SrcOffset+region.Size > len(srcData) || region.DstOffset+region.Size > len(dstData) {
					d.violate("copied %d bytes between buffers %d and %d, which overruns one of them", region.Size, src, dst)
					continue
				}
				copy(dstData[region.DstOffset:region.DstOffset+region.Size], srcData[region.SrcOffset:region.SrcOffset+region.Size])
			}
		},
	})
}

func (d *Device) CmdCopyBufferToImage(buffer device.CommandBuffer, src device.Buffer, dst device.Image, dstLayout core1_0.ImageLayout, regions []core1_0.BufferImageCopy) {
	copies := append([]core1_0.BufferImageCopy(nil), regions...)

	d.record(buffer, command{
		name: "CmdCopyBufferToImage",
		run: func(d *Device) {
			srcData, ok := d.executionBytes(uint64(src), KindBuffer, "copied from")
			if !ok {
				return
			}
			image, ok := d.lookup(uint64(dst), KindImage)
			if !ok {
				d.violate("copied to image %d, which was destroyed while in flight", dst)
				return
			}
			if image.layout != dstLayout {
				d.violate("copied to image %d in layout %s, but the image is in layout %s", dst, dstLayout, image.layout)
			}
			dstData, ok := d.executionBytes(uint64(dst), KindImage, "copied to")
			if !ok {
				return
			}

			texelSize := TexelSize(image.imageInfo.Format)
			width := image.imageInfo.Extent.Width
			height := image.imageInfo.Extent.Height

			for _, region := range copies {
				rowLength := region.BufferRowLength
				if rowLength == 0 {
					rowLength = region.ImageExtent.Width
				}
				imageHeight := region.BufferImageHeight
				if imageHeight == 0 {
					imageHeight = region.ImageExtent.Height
				}
				depth := region.ImageExtent.Depth
				if depth < 1 {
					depth = 1
				}

				rowBytes := region.ImageExtent.Width * texelSize
				for z := 0; z < depth; z++ {
					for y := 0; y < region.ImageExtent.Height; y++ {
						srcOffset := region.BufferOffset + ((z*imageHeight+y)*rowLength)*texelSize
						dstOffset := (((region.ImageOffset.Z+z)*height+region.ImageOffset.Y+y)*width + region.ImageOffset.X) * texelSize

						if srcOffset+rowBytes > len(srcData) || dstOffset+rowBytes > len(dstData) {
							d.violate("copied row %d of buffer %d into image %d, which overruns one of them", y, src, dst)
							return
						}
						copy(dstData[dstOffset:dstOffset+rowBytes], srcData[srcOffset:srcOffset+rowBytes])
					}
				}
			}
		},
	})
}

// executionBytes resolves the bound memory of a buffer or image while a submission executes
func (d *Device) executionBytes(handle uint64, kind ObjectKind, action string) ([]byte, bool) {
	obj, ok := d.lookup(handle, kind)
	if !ok {
		d.violate("%s %s %d, which was destroyed while in flight", action, kind, handle)
		return nil, false
	}

	data, ok := d.boundBytes(obj)
	if !ok {
		d.violate("%s %s %d, which has no memory bound", action, kind, handle)
		return nil, false
	}

	return data, true
}

// RecordedCommands lists the names of the commands recorded into a command buffer
func (d *Device) RecordedCommands(buffer device.CommandBuffer) []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(buffer), KindCommandBuffer)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(obj.commands))
	for _, cmd := range obj.commands {
		names = append(names, cmd.name)
	}

	return names
}
