package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/devicetest"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/sync/errgroup"
)

const testQueue = device.Queue(1)

func testUploader(t *testing.T, dev *devicetest.Device) *Uploader {
	uploader, _, err := NewUploader(testLogger(), dev, testQueue, 0)
	require.NoError(t, err)

	return uploader
}

func TestCreateTextureReadback(t *testing.T) {
	dev, allocator := testContext(t, gpumem.CreateOptions{})
	uploader := testUploader(t, dev)

	pixels := []byte{0x11, 0x22, 0x33, 0x44}
	image, err := CreateTexture(dev, allocator, uploader, ImageCreateInfo{
		Name:   "white",
		Kind:   ImageKindSampledTexture,
		Format: core1_0.FormatR8G8B8A8UnsignedNormalized,
		Extent: core1_0.Extent2D{Width: 1, Height: 1},
	}, pixels)
	require.NoError(t, err)

	require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, image.Layout())
	require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, dev.ImageLayout(image.Handle()))
	require.Equal(t, pixels, dev.ImageContents(image.Handle()))

	// The staging buffer, command buffer and fence are all released once the upload is done
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindBuffer))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandBuffer))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindFence))
	require.Equal(t, 1, allocator.LiveAllocationCount())

	image.Destroy(dev, allocator)
	uploader.Destroy(dev)
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandPool))
	requireClean(t, dev, allocator)
}

func TestCreateTextureRows(t *testing.T) {
	dev, allocator := testContext(t, gpumem.CreateOptions{})
	uploader := testUploader(t, dev)

	pixels := make([]byte, 3*2*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	image, err := CreateTexture(dev, allocator, uploader, ImageCreateInfo{
		Name:   "gradient",
		Kind:   ImageKindSampledTexture,
		Format: core1_0.FormatR8G8B8A8SRGB,
		Extent: core1_0.Extent2D{Width: 3, Height: 2},
	}, pixels)
	require.NoError(t, err)
	require.Equal(t, pixels, dev.ImageContents(image.Handle()))

	image.Destroy(dev, allocator)
	uploader.Destroy(dev)
	requireClean(t, dev, allocator)
}

func TestCreateTextureValidation(t *testing.T) {
	dev, allocator := testContext(t, gpumem.CreateOptions{})
	uploader := testUploader(t, dev)

	testCases := map[string]struct {
		info   ImageCreateInfo
		pixels []byte
		err    string
	}{
		"wrong size": {
			info: ImageCreateInfo{
				Name:   "short",
				Kind:   ImageKindSampledTexture,
				Format: core1_0.FormatR8G8B8A8UnsignedNormalized,
				Extent: core1_0.Extent2D{Width: 2, Height: 2},
			},
			pixels: make([]byte, 4),
			err:    "needs 16 bytes of pixels, but 4 were provided",
		},
		"not a transfer destination": {
			info: ImageCreateInfo{
				Name:   "depth",
				Kind:   ImageKindDepthTarget,
				Format: core1_0.FormatD32SignedFloat,
				Extent: core1_0.Extent2D{Width: 1, Height: 1},
			},
			pixels: make([]byte, 4),
			err:    `texture "depth" is a ImageKindDepthTarget, which cannot be uploaded to`,
		},
		"unsupported format": {
			info: ImageCreateInfo{
				Name:   "compressed",
				Kind:   ImageKindSampledTexture,
				Format: core1_0.FormatBC1_RGBUnsignedNormalized,
				Extent: core1_0.Extent2D{Width: 4, Height: 4},
			},
			pixels: make([]byte, 8),
			err:    "which uploads don't support",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := CreateTexture(dev, allocator, uploader, testCase.info, testCase.pixels)
			require.Error(t, err)
			require.Contains(t, err.Error(), testCase.err)
		})
	}

	uploader.Destroy(dev)
	requireClean(t, dev, allocator)
}

func TestCreateBufferWithDataStaged(t *testing.T) {
	dev, allocator := testContext(t, gpumem.CreateOptions{})
	uploader := testUploader(t, dev)

	vertices := make([]byte, 96)
	for i := range vertices {
		vertices[i] = byte(255 - i)
	}

	buffer, err := CreateBufferWithData(dev, allocator, uploader, BufferCreateInfo{
		Name: "triangle",
		Kind: BufferKindVertex,
	}, vertices)
	require.NoError(t, err)
	require.Equal(t, 96, buffer.Size())
	require.Equal(t, vertices, dev.BufferContents(buffer.Handle()))
	require.Equal(t, 1, dev.LiveObjects(devicetest.KindBuffer))

	// Copy it back out through a readback buffer
	readback, err := CreateBuffer(dev, allocator, BufferCreateInfo{Name: "readback", Kind: BufferKindReadback, Size: 96})
	require.NoError(t, err)
	require.Equal(t, gpumem.LocationGPUToCPU, readback.Allocation().Location())

	err = uploader.Submit(dev, func(commandBuffer device.CommandBuffer) {
		dev.CmdCopyBuffer(commandBuffer, buffer.Handle(), readback.Handle(), []core1_0.BufferCopy{{Size: 96}})
	})
	require.NoError(t, err)

	out := make([]byte, 96)
	require.NoError(t, readback.Read(0, out))
	require.Equal(t, vertices, out)

	readback.Destroy(dev, allocator)
	buffer.Destroy(dev, allocator)
	uploader.Destroy(dev)
	requireClean(t, dev, allocator)
}

func TestCreateBufferWithDataDirect(t *testing.T) {
	dev, allocator := testContext(t, gpumem.CreateOptions{})
	uploader := testUploader(t, dev)

	buffer, err := CreateBufferWithData(dev, allocator, uploader, BufferCreateInfo{
		Name: "material",
		Kind: BufferKindUniform,
		Size: 32,
	}, []byte{9, 8, 7})
	require.NoError(t, err)
	require.Equal(t, 32, buffer.Size())
	require.Equal(t, []byte{9, 8, 7}, dev.BufferContents(buffer.Handle())[:3])

	// Nothing was submitted
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandBuffer))

	_, err = CreateBufferWithData(dev, allocator, uploader, BufferCreateInfo{
		Name: "tiny",
		Kind: BufferKindUniform,
		Size: 2,
	}, []byte{9, 8, 7})
	require.EqualError(t, err, `buffer "tiny" is 2 bytes, which cannot hold 3 bytes of data`)

	buffer.Destroy(dev, allocator)
	uploader.Destroy(dev)
	requireClean(t, dev, allocator)
}

func TestOneShotBlocksUntilComplete(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())
	pool, _, err := dev.CreateCommandPool(0)
	require.NoError(t, err)

	recorded := false
	var group errgroup.Group
	group.Go(func() error {
		return OneShot(dev, testQueue, pool, func(buffer device.CommandBuffer) {
			recorded = true
		})
	})

	require.Eventually(t, func() bool {
		return dev.BlockedWaiters() == 1
	}, time.Second, time.Millisecond)
	require.Equal(t, 1, dev.Pending())
	require.Equal(t, 1, dev.LiveObjects(devicetest.KindFence))

	require.True(t, dev.Signal())
	require.NoError(t, group.Wait())
	require.True(t, recorded)

	require.Equal(t, 0, dev.LiveObjects(devicetest.KindFence))
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindCommandBuffer))

	dev.DestroyCommandPool(pool)
	require.Empty(t, dev.Violations())
}

func TestOneShotFailures(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())
	pool, _, err := dev.CreateCommandPool(0)
	require.NoError(t, err)

	dev.FailNext("AllocateCommandBuffer", core1_0.VKErrorOutOfHostMemory)
	err = OneShot(dev, testQueue, pool, func(device.CommandBuffer) {})
	require.Error(t, err)

	dev.FailNext("QueueSubmit", core1_0.VKErrorDeviceLost)
	require.Panics(t, func() {
		_ = OneShot(dev, testQueue, pool, func(device.CommandBuffer) {})
	})

	dev.FailNext("WaitForFences", core1_0.VKErrorDeviceLost)
	require.Panics(t, func() {
		_ = OneShot(dev, testQueue, pool, func(device.CommandBuffer) {})
	})
}
