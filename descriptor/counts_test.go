package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func TestDescriptorTypeTableIsComplete(t *testing.T) {
	types := []core1_0.DescriptorType{
		core1_0.DescriptorTypeSampler,
		core1_0.DescriptorTypeCombinedImageSampler,
		core1_0.DescriptorTypeSampledImage,
		core1_0.DescriptorTypeStorageImage,
		core1_0.DescriptorTypeUniformTexelBuffer,
		core1_0.DescriptorTypeStorageTexelBuffer,
		core1_0.DescriptorTypeUniformBuffer,
		core1_0.DescriptorTypeStorageBuffer,
		core1_0.DescriptorTypeUniformBufferDynamic,
		core1_0.DescriptorTypeStorageBufferDynamic,
		core1_0.DescriptorTypeInputAttachment,
	}

	seen := make(map[int]bool)
	for _, descriptorType := range types {
		require.True(t, IsSupported(descriptorType), descriptorType.String())

		index := indexOf(descriptorType)
		require.False(t, seen[index], "index %d assigned twice", index)
		seen[index] = true
		require.Equal(t, descriptorType, descriptorTypeTable[index].descriptorType)
	}
	require.Len(t, seen, typeCount)

	require.False(t, IsSupported(core1_0.DescriptorType(1000138000)))
	require.Panics(t, func() {
		var counts TypeCounts
		counts.Add(core1_0.DescriptorType(1000138000), 1)
	})
}

func TestTypeCounts(t *testing.T) {
	var counts TypeCounts
	require.True(t, counts.IsZero())
	require.Equal(t, "{}", counts.String())

	counts.Add(core1_0.DescriptorTypeUniformBuffer, 3)
	counts.Add(core1_0.DescriptorTypeSampler, 4)
	counts.Add(core1_0.DescriptorTypeUniformBuffer, 1)

	require.Equal(t, 4, counts.Get(core1_0.DescriptorTypeUniformBuffer))
	require.Equal(t, 4, counts.Get(core1_0.DescriptorTypeSampler))
	require.Equal(t, 0, counts.Get(core1_0.DescriptorTypeStorageImage))
	require.Equal(t, 8, counts.Total())
	require.Equal(t, "{Sampler:4, Uniform Buffer:4}", counts.String())

	scaled := counts.Scale(10)
	require.Equal(t, 80, scaled.Total())
	require.Equal(t, []core1_0.DescriptorPoolSize{
		{Type: core1_0.DescriptorTypeSampler, DescriptorCount: 40},
		{Type: core1_0.DescriptorTypeUniformBuffer, DescriptorCount: 40},
	}, scaled.PoolSizes())

	require.True(t, scaled.Fits(counts))
	require.False(t, counts.Fits(scaled))

	remaining := scaled.Sub(counts)
	require.Equal(t, 36, remaining.Get(core1_0.DescriptorTypeSampler))
	require.Equal(t, 80, scaled.Total())

	var storage TypeCounts
	storage.Add(core1_0.DescriptorTypeStorageBuffer, 1)
	require.False(t, scaled.Fits(storage))
	require.Panics(t, func() {
		scaled.Sub(storage)
	})

	require.PanicsWithValue(t, "descriptor: added -1 descriptors of type Sampler", func() {
		counts.Add(core1_0.DescriptorTypeSampler, -1)
	})
}
