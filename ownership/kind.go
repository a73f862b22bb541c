// Package ownership enforces single ownership over native device objects that must be
// destroyed explicitly, with a live device in hand, before they are forgotten.
//
// Owned wraps a value that is destroyed right away with Destruct. Deferred wraps a value
// whose destruction may be handed off with Defer to a DestructionQueue, which runs it later
// against whatever device and allocator are alive at that point. Every wrapper and queue
// must be explicitly dropped, and dropping one that still owns something panics: a leaked
// native object corrupts the device's object tables for the rest of the process.
package ownership

import (
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
)

// Destroyable is a value that can tear itself down without any outside context
type Destroyable interface {
	Destroy()
}

// DeviceDestroyable is a value whose teardown releases native objects to a device
type DeviceDestroyable interface {
	Destroy(dev device.Device)
}

// AllocatorDestroyable is a value whose teardown releases native objects to a device and
// returns memory to an allocator, such as an image or buffer
type AllocatorDestroyable interface {
	Destroy(dev device.Device, allocator *gpumem.Allocator)
}

// Kind is the context a destructor needs when it runs
type Kind int32

const (
	KindNone Kind = iota
	KindDevice
	KindDeviceAllocator
)

var kindMapping = map[Kind]string{
	KindNone:            "KindNone",
	KindDevice:          "KindDevice",
	KindDeviceAllocator: "KindDeviceAllocator",
}

func (k Kind) String() string {
	str, ok := kindMapping[k]
	if !ok {
		return "unknown Kind"
	}

	return str
}

// kindOf classifies value by the shape of its Destroy method. Values with no Destroy method
// of a known shape can't be owned.
func kindOf(value any) Kind {
	switch value.(type) {
	case AllocatorDestroyable:
		return KindDeviceAllocator
	case DeviceDestroyable:
		return KindDevice
	case Destroyable:
		return KindNone
	}

	panic(fmt.Sprintf("ownership: %T has no Destroy method of a supported shape", value))
}

func checkContext(kind Kind, name string, dev device.Device, allocator *gpumem.Allocator) {
	switch kind {
	case KindNone:
	case KindDevice:
		if dev == nil {
			panic(fmt.Sprintf("ownership: destruct without context: %s needs a device", name))
		}
	case KindDeviceAllocator:
		if dev == nil || allocator == nil {
			panic(fmt.Sprintf("ownership: destruct without context: %s needs a device and an allocator", name))
		}
	default:
		panic(fmt.Sprintf("ownership: %s has invalid destructor kind %s", name, kind))
	}
}

func destroyValue(kind Kind, value any, dev device.Device, allocator *gpumem.Allocator) {
	switch kind {
	case KindNone:
		value.(Destroyable).Destroy()
	case KindDevice:
		value.(DeviceDestroyable).Destroy(dev)
	case KindDeviceAllocator:
		value.(AllocatorDestroyable).Destroy(dev, allocator)
	}
}
