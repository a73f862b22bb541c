package ownership

import (
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
)

// Owned is the sole owner of a value that must be destroyed exactly once. Once destroyed,
// every operation except Drop panics.
type Owned[T any] struct {
	value     T
	kind      Kind
	populated bool
}

// New takes ownership of value. T must implement Destroyable, DeviceDestroyable or
// AllocatorDestroyable.
func New[T any](value T) *Owned[T] {
	return &Owned[T]{
		value:     value,
		kind:      kindOf(value),
		populated: true,
	}
}

func (o *Owned[T]) checkPopulated(operation string) {
	if !o.populated {
		panic(fmt.Sprintf("ownership: %s on %T, which is already destroyed", operation, o.value))
	}
}

// Kind is the context the owned value's destructor needs
func (o *Owned[T]) Kind() Kind { return o.kind }

func (o *Owned[T]) IsPopulated() bool { return o.populated }

func (o *Owned[T]) Value() T {
	o.checkPopulated("Value")
	return o.value
}

// Destruct destroys the owned value with whatever context its Destroy method takes and
// leaves the wrapper empty. Context the value doesn't need may be nil.
func (o *Owned[T]) Destruct(dev device.Device, allocator *gpumem.Allocator) {
	o.checkPopulated("Destruct")

	name := fmt.Sprintf("%T", o.value)
	checkContext(o.kind, name, dev, allocator)
	destroyValue(o.kind, o.value, dev, allocator)

	var zero T
	o.value = zero
	o.populated = false
}

// Replace destroys the owned value and takes ownership of value in its place
func (o *Owned[T]) Replace(dev device.Device, allocator *gpumem.Allocator, value T) {
	o.Destruct(dev, allocator)

	o.value = value
	o.kind = kindOf(value)
	o.populated = true
}

// Drop releases the wrapper. It panics if the value was never destroyed.
func (o *Owned[T]) Drop() {
	if o.populated {
		panic(fmt.Sprintf("ownership: %T dropped while still populated", o.value))
	}
}
