package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/devicetest"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func TestWriterFlushesBatch(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())

	layout, _, err := NewLayoutBuilder().
		AddBinding(0, core1_0.DescriptorTypeUniformBuffer, 1, core1_0.StageVertex).
		AddBinding(1, core1_0.DescriptorTypeCombinedImageSampler, 1, core1_0.StageFragment).
		Build(dev)
	require.NoError(t, err)

	binding, ok := layout.Binding(1)
	require.True(t, ok)
	require.Equal(t, core1_0.DescriptorTypeCombinedImageSampler, binding.DescriptorType)
	_, ok = layout.Binding(2)
	require.False(t, ok)

	pool, _, err := NewPool(dev, PoolCreateInfo{Counts: layout.Counts(), MaxSets: 1})
	require.NoError(t, err)
	set, _, err := pool.Allocate(dev, layout)
	require.NoError(t, err)

	buffer, _, err := dev.CreateBuffer(device.BufferCreateInfo{Size: 256, Usage: core1_0.BufferUsageUniformBuffer})
	require.NoError(t, err)
	image, _, err := dev.CreateImage(device.ImageCreateInfo{
		ImageType:   core1_0.ImageType2D,
		Format:      core1_0.FormatR8G8B8A8UnsignedNormalized,
		Extent:      core1_0.Extent3D{Width: 4, Height: 4, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     core1_0.Samples1,
		Usage:       core1_0.ImageUsageSampled,
	})
	require.NoError(t, err)
	memory, _, err := dev.AllocateMemory(256, 0)
	require.NoError(t, err)
	_, err = dev.BindImageMemory(image, memory, 0)
	require.NoError(t, err)
	view, _, err := dev.CreateImageView(device.ImageViewCreateInfo{
		Image:    image,
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.FormatR8G8B8A8UnsignedNormalized,
	})
	require.NoError(t, err)
	sampler, _, err := dev.CreateSampler(device.SamplerCreateInfo{})
	require.NoError(t, err)

	writer := NewWriter().
		WriteBuffer(set, 0, core1_0.DescriptorTypeUniformBuffer, buffer, 0, 256).
		WriteImage(set, 1, core1_0.DescriptorTypeCombinedImageSampler, view, sampler, core1_0.ImageLayoutShaderReadOnlyOptimal)
	require.Equal(t, 2, writer.Len())

	writer.Flush(dev)
	require.Equal(t, 0, writer.Len())

	writes := dev.DescriptorWrites(set)
	require.Len(t, writes, 2)
	require.Equal(t, []device.DescriptorBufferInfo{{Buffer: buffer, Offset: 0, Range: 256}}, writes[0].BufferInfo)
	require.Equal(t, []device.DescriptorImageInfo{{
		Sampler:     sampler,
		ImageView:   view,
		ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	}}, writes[1].ImageInfo)
	require.Empty(t, dev.Violations())

	// An empty flush doesn't reach the device
	writer.Flush(dev)
	require.Len(t, dev.DescriptorWrites(set), 2)
}

func TestWriterRejectsMismatchedResources(t *testing.T) {
	writer := NewWriter()

	require.PanicsWithValue(t, "descriptor: wrote a buffer to a Sampler descriptor", func() {
		writer.WriteBuffer(1, 0, core1_0.DescriptorTypeSampler, 2, 0, 16)
	})
	require.PanicsWithValue(t, "descriptor: wrote an image to a Uniform Buffer descriptor", func() {
		writer.WriteImage(1, 0, core1_0.DescriptorTypeUniformBuffer, 2, 3, core1_0.ImageLayoutGeneral)
	})
	require.Equal(t, 0, writer.Len())
}

func TestLayoutBuilderRejectsBadBindings(t *testing.T) {
	require.PanicsWithValue(t, "descriptor: binding 0 declared twice", func() {
		NewLayoutBuilder().
			AddBinding(0, core1_0.DescriptorTypeUniformBuffer, 1, core1_0.StageVertex).
			AddBinding(0, core1_0.DescriptorTypeSampler, 1, core1_0.StageFragment)
	})
	require.PanicsWithValue(t, "descriptor: binding 2 declared with 0 descriptors", func() {
		NewLayoutBuilder().AddBinding(2, core1_0.DescriptorTypeSampler, 0, core1_0.StageFragment)
	})

	dev := devicetest.New(devicetest.DefaultOptions())
	_, _, err := NewLayoutBuilder().Build(dev)
	require.EqualError(t, err, "descriptor set layout has no bindings")
}
