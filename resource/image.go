package resource

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type ImageCreateInfo struct {
	// Name labels the image's allocation and appears in errors
	Name   string
	Kind   ImageKind
	Format core1_0.Format
	Extent core1_0.Extent2D
}

// Image is a 2D, single mip, single layer image bound to its own allocation
type Image struct {
	name   string
	kind   ImageKind
	format core1_0.Format
	extent core1_0.Extent2D
	layout core1_0.ImageLayout

	handle     device.Image
	view       device.ImageView
	allocation *gpumem.Allocation
}

func (i *Image) Name() string                   { return i.name }
func (i *Image) Kind() ImageKind                { return i.kind }
func (i *Image) Format() core1_0.Format         { return i.format }
func (i *Image) Extent() core1_0.Extent2D       { return i.extent }
func (i *Image) Handle() device.Image           { return i.handle }
func (i *Image) Allocation() *gpumem.Allocation { return i.allocation }

// View is the image's view, or the null handle for kinds that don't declare one
func (i *Image) View() device.ImageView { return i.view }

// Layout is the layout the image was left in by the last operation this package recorded
// against it
func (i *Image) Layout() core1_0.ImageLayout { return i.layout }

func (i *Image) subresourceRange() core1_0.ImageSubresourceRange {
	return core1_0.ImageSubresourceRange{
		AspectMask: i.kind.Info().Aspect,
		LevelCount: 1,
		LayerCount: 1,
	}
}

// CreateImage creates a native image of the given kind, allocates and binds its memory and,
// if the kind requires one, creates its view. A failure at any step destroys whatever the
// earlier steps created and returns a *CreateError.
func CreateImage(dev device.Device, allocator *gpumem.Allocator, info ImageCreateInfo) (*Image, error) {
	kindInfo := info.Kind.Info()
	if info.Extent.Width < 1 || info.Extent.Height < 1 {
		return nil, &CreateError{
			Name:   info.Name,
			Kind:   info.Kind,
			Stage:  StageCreate,
			Result: core1_0.VKErrorUnknown,
			Err:    errors.Newf("image extent %dx%d is empty", info.Extent.Width, info.Extent.Height),
		}
	}

	handle, res, err := dev.CreateImage(device.ImageCreateInfo{
		ImageType:     core1_0.ImageType2D,
		Format:        info.Format,
		Extent:        core1_0.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        core1_0.ImageTilingOptimal,
		Usage:         kindInfo.Usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: kindInfo.InitialLayout,
	})
	if err != nil {
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageCreate, Result: res, Err: err}
	}

	image := &Image{
		name:   info.Name,
		kind:   info.Kind,
		format: info.Format,
		extent: info.Extent,
		layout: kindInfo.InitialLayout,
		handle: handle,
	}

	image.allocation, res, err = allocator.Allocate(dev.ImageMemoryRequirements(handle), gpumem.AllocationCreateInfo{
		Name:              info.Name,
		Location:          kindInfo.Location,
		SuballocationType: metadata.SuballocationImageOptimal,
	})
	if err != nil {
		dev.DestroyImage(handle)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageAllocate, Result: res, Err: err}
	}

	res, err = image.allocation.BindImageMemory(handle)
	if err != nil {
		image.rollback(dev, allocator)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageBind, Result: res, Err: err}
	}

	if kindInfo.ViewRequired {
		image.view, res, err = dev.CreateImageView(device.ImageViewCreateInfo{
			Image:            handle,
			ViewType:         core1_0.ImageViewType2D,
			Format:           info.Format,
			SubresourceRange: image.subresourceRange(),
		})
		if err != nil {
			image.rollback(dev, allocator)
			return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageView, Result: res, Err: err}
		}
	}

	return image, nil
}

func (i *Image) rollback(dev device.Device, allocator *gpumem.Allocator) {
	dev.DestroyImage(i.handle)
	i.handle = device.NullHandle

	err := allocator.Free(i.allocation)
	if err != nil {
		panic(errors.Wrapf(err, "failed to free the allocation of image %q during rollback", i.name))
	}
	i.allocation = nil
}

// Destroy destroys the view, then the image, then frees its memory. Destroying an image
// twice panics.
func (i *Image) Destroy(dev device.Device, allocator *gpumem.Allocator) {
	if i.handle == device.NullHandle {
		panic("resource: destroyed image " + i.name + ", which was already destroyed")
	}

	if i.view != device.NullHandle {
		dev.DestroyImageView(i.view)
		i.view = device.NullHandle
	}

	i.rollback(dev, allocator)
}

// transition records a full-image layout transition
func (i *Image) transition(dev device.CommandDevice, buffer device.CommandBuffer, newLayout core1_0.ImageLayout, srcAccess, dstAccess core1_0.AccessFlags, srcStage, dstStage core1_0.PipelineStageFlags) {
	dev.CmdPipelineBarrier(buffer, srcStage, dstStage, []device.ImageMemoryBarrier{
		{
			SrcAccessMask:    srcAccess,
			DstAccessMask:    dstAccess,
			OldLayout:        i.layout,
			NewLayout:        newLayout,
			Image:            i.handle,
			SubresourceRange: i.subresourceRange(),
		},
	})
	i.layout = newLayout
}

// Sampler is a native sampler
type Sampler struct {
	handle device.Sampler
}

func CreateSampler(dev device.ResourceDevice, info device.SamplerCreateInfo) (*Sampler, common.VkResult, error) {
	handle, res, err := dev.CreateSampler(info)
	if err != nil {
		return nil, res, errors.Wrap(err, "failed to create sampler")
	}

	return &Sampler{handle: handle}, res, nil
}

func (s *Sampler) Handle() device.Sampler { return s.handle }

func (s *Sampler) Destroy(dev device.Device) {
	if s.handle == device.NullHandle {
		panic("resource: destroyed a sampler that was already destroyed")
	}

	dev.DestroySampler(s.handle)
	s.handle = device.NullHandle
}

// Pipeline takes ownership of a pipeline and its layout built elsewhere, so that they can be
// released through a destruction queue like any other resource
type Pipeline struct {
	pipeline device.Pipeline
	layout   device.PipelineLayout
}

func AdoptPipeline(pipeline device.Pipeline, layout device.PipelineLayout) *Pipeline {
	return &Pipeline{pipeline: pipeline, layout: layout}
}

func (p *Pipeline) Handle() device.Pipeline       { return p.pipeline }
func (p *Pipeline) Layout() device.PipelineLayout { return p.layout }

// Destroy destroys the pipeline, then its layout
func (p *Pipeline) Destroy(dev device.Device) {
	if p.pipeline == device.NullHandle && p.layout == device.NullHandle {
		panic("resource: destroyed a pipeline that was already destroyed")
	}

	if p.pipeline != device.NullHandle {
		dev.DestroyPipeline(p.pipeline)
		p.pipeline = device.NullHandle
	}
	if p.layout != device.NullHandle {
		dev.DestroyPipelineLayout(p.layout)
		p.layout = device.NullHandle
	}
}
