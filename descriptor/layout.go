package descriptor

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

// LayoutBuilder declares the bindings of a descriptor set layout and totals the descriptors
// they need as it goes
type LayoutBuilder struct {
	bindings []device.DescriptorSetLayoutBinding
	counts   TypeCounts
}

func NewLayoutBuilder() *LayoutBuilder {
	return &LayoutBuilder{}
}

// AddBinding declares count descriptors of descriptorType at binding, visible to stages.
// Declaring the same binding twice panics.
func (b *LayoutBuilder) AddBinding(binding int, descriptorType core1_0.DescriptorType, count int, stages core1_0.ShaderStageFlags) *LayoutBuilder {
	if count < 1 {
		panic(fmt.Sprintf("descriptor: binding %d declared with %d descriptors", binding, count))
	}
	for _, existing := range b.bindings {
		if existing.Binding == binding {
			panic(fmt.Sprintf("descriptor: binding %d declared twice", binding))
		}
	}

	b.counts.Add(descriptorType, count)
	b.bindings = append(b.bindings, device.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  descriptorType,
		DescriptorCount: count,
		StageFlags:      stages,
	})

	return b
}

// Counts is the number of descriptors of each type one set with this layout uses
func (b *LayoutBuilder) Counts() TypeCounts {
	return b.counts
}

func (b *LayoutBuilder) Build(dev device.DescriptorDevice) (*Layout, common.VkResult, error) {
	if len(b.bindings) == 0 {
		return nil, core1_0.VKErrorUnknown, errors.New("descriptor set layout has no bindings")
	}

	bindings := slices.Clone(b.bindings)
	handle, res, err := dev.CreateDescriptorSetLayout(device.DescriptorSetLayoutCreateInfo{
		Bindings: bindings,
	})
	if err != nil {
		return nil, res, errors.Wrap(err, "failed to create descriptor set layout")
	}

	return &Layout{
		handle:   handle,
		bindings: bindings,
		counts:   b.counts,
	}, res, nil
}

// Layout is a descriptor set layout along with the descriptor counts a set of that layout
// consumes from a pool
type Layout struct {
	handle   device.DescriptorSetLayout
	bindings []device.DescriptorSetLayoutBinding
	counts   TypeCounts
}

func (l *Layout) Handle() device.DescriptorSetLayout { return l.handle }
func (l *Layout) Counts() TypeCounts                 { return l.counts }

func (l *Layout) Binding(binding int) (device.DescriptorSetLayoutBinding, bool) {
	for _, candidate := range l.bindings {
		if candidate.Binding == binding {
			return candidate, true
		}
	}

	return device.DescriptorSetLayoutBinding{}, false
}

func (l *Layout) Destroy(dev device.Device) {
	if l.handle == device.NullHandle {
		panic("descriptor: destroyed a descriptor set layout that was already destroyed")
	}

	dev.DestroyDescriptorSetLayout(l.handle)
	l.handle = device.NullHandle
}
