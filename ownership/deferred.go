package ownership

import (
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
)

type State int32

const (
	// StateLive wrappers own their value
	StateLive State = iota
	// StateDeferred wrappers have handed their value to a Destructor that hasn't run yet
	StateDeferred
	// StateGone wrappers' values have been destroyed
	StateGone
)

var stateMapping = map[State]string{
	StateLive:     "StateLive",
	StateDeferred: "StateDeferred",
	StateGone:     "StateGone",
}

func (s State) String() string {
	str, ok := stateMapping[s]
	if !ok {
		return "unknown State"
	}

	return str
}

// Deferred owns a value that is either destroyed immediately with Destruct or handed off
// with Defer. Only one of the two may happen.
type Deferred[T any] struct {
	value T
	name  string
	kind  Kind
	state State
}

// NewDeferred takes ownership of value. T must implement Destroyable, DeviceDestroyable
// or AllocatorDestroyable.
func NewDeferred[T any](value T) *Deferred[T] {
	return &Deferred[T]{
		value: value,
		name:  fmt.Sprintf("%T", value),
		kind:  kindOf(value),
		state: StateLive,
	}
}

func (d *Deferred[T]) checkLive(operation string) {
	switch d.state {
	case StateDeferred:
		panic(fmt.Sprintf("ownership: %s on %s, which is already deferred", operation, d.name))
	case StateGone:
		panic(fmt.Sprintf("ownership: %s on %s, which is already destroyed", operation, d.name))
	}
}

func (d *Deferred[T]) State() State { return d.state }
func (d *Deferred[T]) Kind() Kind   { return d.kind }

func (d *Deferred[T]) Value() T {
	d.checkLive("Value")
	return d.value
}

// Defer moves the value into a Destructor and leaves the wrapper holding the zero value.
// The wrapper becomes StateGone when the Destructor runs, and running it a second time
// panics.
func (d *Deferred[T]) Defer() Destructor {
	d.checkLive("Defer")

	value := d.value
	var zero T
	d.value = zero
	d.state = StateDeferred

	kind := d.kind
	return Destructor{
		Kind: kind,
		Name: d.name,
		fn: func(dev device.Device, allocator *gpumem.Allocator) {
			// Destructors are values and can be copied, so a copy may already have run
			if d.state != StateDeferred {
				panic(fmt.Sprintf("ownership: ran the destructor of %s, which is already destroyed", d.name))
			}
			d.state = StateGone

			destroyValue(kind, value, dev, allocator)
		},
	}
}

// Destruct destroys the value immediately
func (d *Deferred[T]) Destruct(dev device.Device, allocator *gpumem.Allocator) {
	d.checkLive("Destruct")
	checkContext(d.kind, d.name, dev, allocator)

	destroyValue(d.kind, d.value, dev, allocator)

	var zero T
	d.value = zero
	d.state = StateGone
}

// Drop releases the wrapper. It panics if the value was neither destroyed nor deferred; a
// deferred value belongs to its queue, which enforces its own teardown.
func (d *Deferred[T]) Drop() {
	if d.state == StateLive {
		panic(fmt.Sprintf("ownership: %s dropped while still live", d.name))
	}
}
