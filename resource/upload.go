package resource

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// OneShot records a command buffer with record, submits it to queue and blocks until the
// device has finished executing it. The command buffer and fence it uses are released before
// it returns.
//
// Failing to allocate the command buffer or fence is reported as an error. Once recording has
// started, any device failure leaves the device in an unknown state and panics.
func OneShot(dev device.Device, queue device.Queue, pool device.CommandPool, record func(buffer device.CommandBuffer)) error {
	buffer, _, err := dev.AllocateCommandBuffer(pool)
	if err != nil {
		return errors.Wrap(err, "failed to allocate a one-shot command buffer")
	}
	defer dev.FreeCommandBuffer(pool, buffer)

	fence, _, err := dev.CreateFence(false)
	if err != nil {
		return errors.Wrap(err, "failed to create a one-shot fence")
	}
	defer dev.DestroyFence(fence)

	_, err = dev.BeginCommandBuffer(buffer, core1_0.CommandBufferUsageOneTimeSubmit)
	if err != nil {
		panic(errors.Wrap(err, "failed to begin a one-shot command buffer"))
	}

	record(buffer)

	_, err = dev.EndCommandBuffer(buffer)
	if err != nil {
		panic(errors.Wrap(err, "failed to end a one-shot command buffer"))
	}

	_, err = dev.QueueSubmit(queue, []device.SubmitInfo{
		{CommandBuffers: []device.CommandBuffer{buffer}},
	}, fence)
	if err != nil {
		panic(errors.Wrap(err, "failed to submit a one-shot command buffer"))
	}

	res, err := dev.WaitForFences([]device.Fence{fence}, true, common.NoTimeout)
	if err != nil {
		panic(errors.Wrap(err, "failed to wait for a one-shot command buffer"))
	} else if res != core1_0.VKSuccess {
		panic(errors.Newf("waiting for a one-shot command buffer returned %s", res))
	}

	return nil
}

// Uploader owns the command pool that staged uploads record into
type Uploader struct {
	logger *slog.Logger
	queue  device.Queue
	pool   device.CommandPool
}

func NewUploader(logger *slog.Logger, dev device.CommandDevice, queue device.Queue, queueFamilyIndex int) (*Uploader, common.VkResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, res, err := dev.CreateCommandPool(queueFamilyIndex)
	if err != nil {
		return nil, res, errors.Wrap(err, "failed to create the upload command pool")
	}

	return &Uploader{
		logger: logger,
		queue:  queue,
		pool:   pool,
	}, res, nil
}

// Submit runs record through OneShot on the uploader's queue
func (u *Uploader) Submit(dev device.Device, record func(buffer device.CommandBuffer)) error {
	u.logger.Debug("Uploader::Submit")
	return OneShot(dev, u.queue, u.pool, record)
}

func (u *Uploader) Destroy(dev device.Device) {
	if u.pool == device.NullHandle {
		panic("resource: destroyed an uploader that was already destroyed")
	}

	dev.DestroyCommandPool(u.pool)
	u.pool = device.NullHandle
}

func createStaging(dev device.Device, allocator *gpumem.Allocator, name string, data []byte) (*Buffer, error) {
	staging, err := CreateBuffer(dev, allocator, BufferCreateInfo{
		Name: name + " (staging)",
		Kind: BufferKindStaging,
		Size: len(data),
	})
	if err != nil {
		return nil, err
	}

	err = staging.Write(0, data)
	if err != nil {
		staging.Destroy(dev, allocator)
		return nil, err
	}

	return staging, nil
}

// CreateTexture creates an image and fills it with tightly packed pixels through a staging
// buffer. The image is left in ImageLayoutShaderReadOnlyOptimal.
func CreateTexture(dev device.Device, allocator *gpumem.Allocator, uploader *Uploader, info ImageCreateInfo, pixels []byte) (*Image, error) {
	if info.Kind.Info().Usage&core1_0.ImageUsageTransferDst == 0 {
		return nil, errors.Newf("texture %q is a %s, which cannot be uploaded to", info.Name, info.Kind)
	}

	texelSize, ok := TexelSize(info.Format)
	if !ok {
		return nil, errors.Newf("texture %q has format %s, which uploads don't support", info.Name, info.Format)
	}
	expected := info.Extent.Width * info.Extent.Height * texelSize
	if len(pixels) != expected {
		return nil, errors.Newf("texture %q is %dx%d %s, which needs %d bytes of pixels, but %d were provided", info.Name, info.Extent.Width, info.Extent.Height, info.Format, expected, len(pixels))
	}

	staging, err := createStaging(dev, allocator, info.Name, pixels)
	if err != nil {
		return nil, err
	}
	defer staging.Destroy(dev, allocator)

	image, err := CreateImage(dev, allocator, info)
	if err != nil {
		return nil, err
	}

	err = uploader.Submit(dev, func(buffer device.CommandBuffer) {
		image.transition(dev, buffer, core1_0.ImageLayoutTransferDstOptimal,
			0, core1_0.AccessTransferWrite,
			core1_0.PipelineStageTopOfPipe, core1_0.PipelineStageTransfer)

		dev.CmdCopyBufferToImage(buffer, staging.Handle(), image.Handle(), core1_0.ImageLayoutTransferDstOptimal, []core1_0.BufferImageCopy{
			{
				ImageSubresource: core1_0.ImageSubresourceLayers{
					AspectMask: info.Kind.Info().Aspect,
					LayerCount: 1,
				},
				ImageExtent: core1_0.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, Depth: 1},
			},
		})

		image.transition(dev, buffer, core1_0.ImageLayoutShaderReadOnlyOptimal,
			core1_0.AccessTransferWrite, core1_0.AccessShaderRead,
			core1_0.PipelineStageTransfer, core1_0.PipelineStageFragmentShader)
	})
	if err != nil {
		image.Destroy(dev, allocator)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageUpload, Result: core1_0.VKErrorUnknown, Err: err}
	}

	return image, nil
}

// CreateBufferWithData creates a buffer holding data. A zero info.Size sizes the buffer to
// fit data exactly. Host visible kinds are written directly; every other kind is filled by
// a staged copy.
func CreateBufferWithData(dev device.Device, allocator *gpumem.Allocator, uploader *Uploader, info BufferCreateInfo, data []byte) (*Buffer, error) {
	if info.Size == 0 {
		info.Size = len(data)
	}
	if len(data) > info.Size {
		return nil, errors.Newf("buffer %q is %d bytes, which cannot hold %d bytes of data", info.Name, info.Size, len(data))
	}

	kindInfo := info.Kind.Info()
	if !kindInfo.Location.IsHostVisible() && kindInfo.Usage&core1_0.BufferUsageTransferDst == 0 {
		return nil, errors.Newf("buffer %q is a %s, which can neither be written nor copied to", info.Name, info.Kind)
	}

	buffer, err := CreateBuffer(dev, allocator, info)
	if err != nil {
		return nil, err
	}

	if kindInfo.Location.IsHostVisible() {
		err = buffer.Write(0, data)
		if err != nil {
			buffer.Destroy(dev, allocator)
			return nil, err
		}

		return buffer, nil
	}

	if len(data) == 0 {
		return buffer, nil
	}

	staging, err := createStaging(dev, allocator, info.Name, data)
	if err != nil {
		buffer.Destroy(dev, allocator)
		return nil, err
	}
	defer staging.Destroy(dev, allocator)

	err = uploader.Submit(dev, func(commandBuffer device.CommandBuffer) {
		dev.CmdCopyBuffer(commandBuffer, staging.Handle(), buffer.Handle(), []core1_0.BufferCopy{
			{Size: len(data)},
		})
	})
	if err != nil {
		buffer.Destroy(dev, allocator)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageUpload, Result: core1_0.VKErrorUnknown, Err: err}
	}

	return buffer, nil
}
