package descriptor

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
)

// ErrPoolExhausted is reported when a pool has no room left for a set. Pools never grow:
// callers that need more sets must reset the pool or create a larger one.
var ErrPoolExhausted = errors.New("descriptor pool exhausted")

type PoolCreateInfo struct {
	// Name labels the pool in errors
	Name string
	// Counts is the number of descriptors of each type a single set is expected to use
	Counts TypeCounts
	// MaxSets is the number of sets the pool can hold at once. The pool's descriptor
	// capacity is Counts multiplied by MaxSets.
	MaxSets int
}

// Pool leases descriptor sets from a single native descriptor pool. Sets are never freed
// individually: Reset returns all of them at once.
type Pool struct {
	name   string
	handle device.DescriptorPool

	capacity      TypeCounts
	remaining     TypeCounts
	maxSets       int
	setsRemaining int

	issued *swiss.Map[device.DescriptorSet, *Layout]
}

func NewPool(dev device.DescriptorDevice, info PoolCreateInfo) (*Pool, common.VkResult, error) {
	if info.MaxSets < 1 {
		return nil, core1_0.VKErrorUnknown, errors.Newf("descriptor pool %q must allow at least one set, but MaxSets was %d", info.Name, info.MaxSets)
	}
	if info.Counts.IsZero() {
		return nil, core1_0.VKErrorUnknown, errors.Newf("descriptor pool %q has no descriptors", info.Name)
	}

	capacity := info.Counts.Scale(info.MaxSets)
	handle, res, err := dev.CreateDescriptorPool(device.DescriptorPoolCreateInfo{
		MaxSets:   info.MaxSets,
		PoolSizes: capacity.PoolSizes(),
	})
	if err != nil {
		return nil, res, errors.Wrapf(err, "failed to create descriptor pool %q", info.Name)
	}

	return &Pool{
		name:          info.Name,
		handle:        handle,
		capacity:      capacity,
		remaining:     capacity,
		maxSets:       info.MaxSets,
		setsRemaining: info.MaxSets,
		issued:        swiss.NewMap[device.DescriptorSet, *Layout](uint32(info.MaxSets)),
	}, res, nil
}

func (p *Pool) Name() string                  { return p.name }
func (p *Pool) Handle() device.DescriptorPool { return p.handle }
func (p *Pool) Capacity() TypeCounts          { return p.capacity }
func (p *Pool) Remaining() TypeCounts         { return p.remaining }
func (p *Pool) MaxSets() int                  { return p.maxSets }
func (p *Pool) SetsRemaining() int            { return p.setsRemaining }
func (p *Pool) SetCount() int                 { return p.issued.Count() }

// LayoutOf returns the layout a set leased from this pool was allocated with
func (p *Pool) LayoutOf(set device.DescriptorSet) (*Layout, bool) {
	return p.issued.Get(set)
}

// Allocate leases a set with the given layout. If the pool doesn't have room, the returned
// error matches ErrPoolExhausted with errors.Is, whether the shortfall was spotted locally
// or reported by the device.
func (p *Pool) Allocate(dev device.DescriptorDevice, layout *Layout) (device.DescriptorSet, common.VkResult, error) {
	if p.handle == device.NullHandle {
		panic("descriptor: allocated from a descriptor pool that was already destroyed")
	}

	needed := layout.Counts()
	if p.setsRemaining < 1 {
		return device.NullHandle, core1_1.VkErrorOutOfPoolMemory, errors.Wrapf(ErrPoolExhausted, "descriptor pool %q has handed out all %d sets", p.name, p.maxSets)
	}
	if !p.remaining.Fits(needed) {
		return device.NullHandle, core1_1.VkErrorOutOfPoolMemory, errors.Wrapf(ErrPoolExhausted, "descriptor pool %q has %s remaining, but the layout needs %s", p.name, p.remaining, needed)
	}

	set, res, err := dev.AllocateDescriptorSet(p.handle, layout.Handle())
	if err != nil {
		err = errors.Wrapf(err, "failed to allocate a descriptor set from pool %q", p.name)
		if res == core1_0.VKErrorFragmentedPool || res == core1_1.VkErrorOutOfPoolMemory {
			err = errors.Mark(err, ErrPoolExhausted)
		}
		return device.NullHandle, res, err
	}

	p.remaining = p.remaining.Sub(needed)
	p.setsRemaining--
	p.issued.Put(set, layout)

	return set, res, nil
}

// Reset returns every set leased from the pool. Sets allocated before the reset must not be
// used afterward.
func (p *Pool) Reset(dev device.DescriptorDevice) (common.VkResult, error) {
	if p.handle == device.NullHandle {
		panic("descriptor: reset a descriptor pool that was already destroyed")
	}

	res, err := dev.ResetDescriptorPool(p.handle)
	if err != nil {
		return res, errors.Wrapf(err, "failed to reset descriptor pool %q", p.name)
	}

	p.remaining = p.capacity
	p.setsRemaining = p.maxSets
	p.issued.Clear()

	return res, nil
}

// Destroy destroys the native pool along with every set leased from it
func (p *Pool) Destroy(dev device.Device) {
	if p.handle == device.NullHandle {
		panic("descriptor: destroyed a descriptor pool that was already destroyed")
	}

	dev.DestroyDescriptorPool(p.handle)
	p.handle = device.NullHandle
	p.issued.Clear()
}
