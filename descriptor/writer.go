package descriptor

import (
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Writer batches descriptor updates so they reach the device in a single call
type Writer struct {
	writes []device.WriteDescriptorSet
}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteBuffer points a buffer descriptor at size bytes of buffer starting at offset
func (w *Writer) WriteBuffer(set device.DescriptorSet, binding int, descriptorType core1_0.DescriptorType, buffer device.Buffer, offset, size int) *Writer {
	if classOf(descriptorType) != classBuffer {
		panic(fmt.Sprintf("descriptor: wrote a buffer to a %s descriptor", descriptorType))
	}

	w.writes = append(w.writes, device.WriteDescriptorSet{
		DstSet:         set,
		DstBinding:     binding,
		DescriptorType: descriptorType,
		BufferInfo: []device.DescriptorBufferInfo{
			{Buffer: buffer, Offset: offset, Range: size},
		},
	})

	return w
}

// WriteImage points an image or sampler descriptor at view and sampler. Either may be
// null when the descriptor type doesn't use it.
func (w *Writer) WriteImage(set device.DescriptorSet, binding int, descriptorType core1_0.DescriptorType, view device.ImageView, sampler device.Sampler, layout core1_0.ImageLayout) *Writer {
	class := classOf(descriptorType)
	if class != classImage && class != classSampler {
		panic(fmt.Sprintf("descriptor: wrote an image to a %s descriptor", descriptorType))
	}

	w.writes = append(w.writes, device.WriteDescriptorSet{
		DstSet:         set,
		DstBinding:     binding,
		DescriptorType: descriptorType,
		ImageInfo: []device.DescriptorImageInfo{
			{Sampler: sampler, ImageView: view, ImageLayout: layout},
		},
	})

	return w
}

func (w *Writer) Len() int {
	return len(w.writes)
}

// Flush sends every pending write to the device and empties the writer
func (w *Writer) Flush(dev device.DescriptorDevice) {
	if len(w.writes) == 0 {
		return
	}

	dev.UpdateDescriptorSets(w.writes)
	w.writes = nil
}
