package resource

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/memutils/metadata"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type BufferCreateInfo struct {
	// Name labels the buffer's allocation and appears in errors
	Name string
	Kind BufferKind
	Size int
}

// Buffer is a native buffer bound to its own allocation
type Buffer struct {
	name string
	kind BufferKind
	size int

	handle     device.Buffer
	allocation *gpumem.Allocation
}

func (b *Buffer) Name() string                   { return b.name }
func (b *Buffer) Kind() BufferKind               { return b.kind }
func (b *Buffer) Size() int                      { return b.size }
func (b *Buffer) Handle() device.Buffer          { return b.handle }
func (b *Buffer) Allocation() *gpumem.Allocation { return b.allocation }

// CreateBuffer creates a native buffer of the given kind and allocates and binds its memory.
// A failure at any step destroys whatever the earlier steps created and returns a
// *CreateError.
func CreateBuffer(dev device.Device, allocator *gpumem.Allocator, info BufferCreateInfo) (*Buffer, error) {
	kindInfo := info.Kind.Info()
	if info.Size < 1 {
		return nil, &CreateError{
			Name:   info.Name,
			Kind:   info.Kind,
			Stage:  StageCreate,
			Result: core1_0.VKErrorUnknown,
			Err:    errors.Newf("buffer size %d is not positive", info.Size),
		}
	}

	handle, res, err := dev.CreateBuffer(device.BufferCreateInfo{
		Size:        info.Size,
		Usage:       kindInfo.Usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageCreate, Result: res, Err: err}
	}

	buffer := &Buffer{
		name:   info.Name,
		kind:   info.Kind,
		size:   info.Size,
		handle: handle,
	}

	buffer.allocation, res, err = allocator.Allocate(dev.BufferMemoryRequirements(handle), gpumem.AllocationCreateInfo{
		Name:              info.Name,
		Location:          kindInfo.Location,
		SuballocationType: metadata.SuballocationBuffer,
	})
	if err != nil {
		dev.DestroyBuffer(handle)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageAllocate, Result: res, Err: err}
	}

	res, err = buffer.allocation.BindBufferMemory(handle)
	if err != nil {
		buffer.Destroy(dev, allocator)
		return nil, &CreateError{Name: info.Name, Kind: info.Kind, Stage: StageBind, Result: res, Err: err}
	}

	return buffer, nil
}

// Destroy destroys the buffer, then frees its memory. Destroying a buffer twice panics.
func (b *Buffer) Destroy(dev device.Device, allocator *gpumem.Allocator) {
	if b.handle == device.NullHandle {
		panic("resource: destroyed buffer " + b.name + ", which was already destroyed")
	}

	dev.DestroyBuffer(b.handle)
	b.handle = device.NullHandle

	err := allocator.Free(b.allocation)
	if err != nil {
		panic(errors.Wrapf(err, "failed to free the allocation of buffer %q", b.name))
	}
	b.allocation = nil
}

func (b *Buffer) hostBytes(offset, size int) ([]byte, error) {
	if b.handle == device.NullHandle {
		panic("resource: accessed buffer " + b.name + ", which was already destroyed")
	}
	if !b.kind.Info().Location.IsHostVisible() {
		return nil, errors.Newf("buffer %q is a %s, which is not host visible", b.name, b.kind)
	}
	if offset < 0 || size < 0 || offset+size > b.size {
		return nil, errors.Newf("range [%d, %d) is outside of buffer %q, which is %d bytes", offset, offset+size, b.name, b.size)
	}

	return b.allocation.Bytes()[offset : offset+size], nil
}

// Write copies data into the buffer at offset and makes it visible to the device. Only host
// visible kinds can be written.
func (b *Buffer) Write(offset int, data []byte) error {
	target, err := b.hostBytes(offset, len(data))
	if err != nil {
		return err
	}

	copy(target, data)
	_, err = b.allocation.Flush(offset, len(data))
	if err != nil {
		return errors.Wrapf(err, "failed to flush buffer %q", b.name)
	}

	return nil
}

// Read copies len(out) bytes starting at offset out of the buffer, after making device
// writes visible to the host. Only host visible kinds can be read.
func (b *Buffer) Read(offset int, out []byte) error {
	source, err := b.hostBytes(offset, len(out))
	if err != nil {
		return err
	}

	_, err = b.allocation.Invalidate(offset, len(out))
	if err != nil {
		return errors.Wrapf(err, "failed to invalidate buffer %q", b.name)
	}

	copy(out, source)
	return nil
}
