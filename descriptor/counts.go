package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vkngwrapper/core/v2/core1_0"
)

type typeClass int

const (
	classSampler typeClass = iota
	classImage
	classBuffer
	classTexelBuffer
)

// descriptorTypeTable lists every supported descriptor type. A type's position in the table
// is its index into TypeCounts.
var descriptorTypeTable = [...]struct {
	descriptorType core1_0.DescriptorType
	class          typeClass
}{
	{core1_0.DescriptorTypeSampler, classSampler},
	{core1_0.DescriptorTypeCombinedImageSampler, classImage},
	{core1_0.DescriptorTypeSampledImage, classImage},
	{core1_0.DescriptorTypeStorageImage, classImage},
	{core1_0.DescriptorTypeUniformTexelBuffer, classTexelBuffer},
	{core1_0.DescriptorTypeStorageTexelBuffer, classTexelBuffer},
	{core1_0.DescriptorTypeUniformBuffer, classBuffer},
	{core1_0.DescriptorTypeStorageBuffer, classBuffer},
	{core1_0.DescriptorTypeUniformBufferDynamic, classBuffer},
	{core1_0.DescriptorTypeStorageBufferDynamic, classBuffer},
	{core1_0.DescriptorTypeInputAttachment, classImage},
}

const typeCount = len(descriptorTypeTable)

var descriptorTypeIndex = make(map[core1_0.DescriptorType]int, typeCount)

func init() {
	for index, entry := range descriptorTypeTable {
		descriptorTypeIndex[entry.descriptorType] = index
	}
}

func indexOf(descriptorType core1_0.DescriptorType) int {
	index, ok := descriptorTypeIndex[descriptorType]
	if !ok {
		panic(fmt.Sprintf("descriptor: unsupported descriptor type %s", descriptorType))
	}

	return index
}

// IsSupported reports whether descriptorType can be counted by TypeCounts
func IsSupported(descriptorType core1_0.DescriptorType) bool {
	_, ok := descriptorTypeIndex[descriptorType]
	return ok
}

func classOf(descriptorType core1_0.DescriptorType) typeClass {
	return descriptorTypeTable[indexOf(descriptorType)].class
}

// TypeCounts is a number of descriptors of each type. The zero value holds no descriptors.
type TypeCounts struct {
	counts [typeCount]int
}

// Add adds count descriptors of descriptorType. Unsupported types and negative counts
// panic.
func (c *TypeCounts) Add(descriptorType core1_0.DescriptorType, count int) {
	if count < 0 {
		panic(fmt.Sprintf("descriptor: added %d descriptors of type %s", count, descriptorType))
	}

	c.counts[indexOf(descriptorType)] += count
}

func (c TypeCounts) Get(descriptorType core1_0.DescriptorType) int {
	return c.counts[indexOf(descriptorType)]
}

// Scale multiplies every count by factor
func (c TypeCounts) Scale(factor int) TypeCounts {
	if factor < 0 {
		panic(fmt.Sprintf("descriptor: scaled descriptor counts by %d", factor))
	}

	var scaled TypeCounts
	for index, count := range c.counts {
		scaled.counts[index] = count * factor
	}

	return scaled
}

// Fits reports whether needed is no larger than c for every descriptor type
func (c TypeCounts) Fits(needed TypeCounts) bool {
	for index, count := range needed.counts {
		if count > c.counts[index] {
			return false
		}
	}

	return true
}

// Sub removes other from c. Subtracting more descriptors than c holds panics.
func (c TypeCounts) Sub(other TypeCounts) TypeCounts {
	if !c.Fits(other) {
		panic(fmt.Sprintf("descriptor: subtracted %s from %s", other, c))
	}

	var result TypeCounts
	for index := range c.counts {
		result.counts[index] = c.counts[index] - other.counts[index]
	}

	return result
}

// Total is the number of descriptors of all types
func (c TypeCounts) Total() int {
	total := 0
	for _, count := range c.counts {
		total += count
	}

	return total
}

func (c TypeCounts) IsZero() bool {
	return c.Total() == 0
}

// PoolSizes lists the nonzero counts, in a fixed type order, for pool creation
func (c TypeCounts) PoolSizes() []core1_0.DescriptorPoolSize {
	var sizes []core1_0.DescriptorPoolSize
	for index, count := range c.counts {
		if count == 0 {
			continue
		}

		sizes = append(sizes, core1_0.DescriptorPoolSize{
			Type:            descriptorTypeTable[index].descriptorType,
			DescriptorCount: count,
		})
	}

	return sizes
}

func (c TypeCounts) String() string {
	var builder strings.Builder
	builder.WriteByte('{')

	first := true
	for index, count := range c.counts {
		if count == 0 {
			continue
		}
		if !first {
			builder.WriteString(", ")
		}
		first = false

		builder.WriteString(descriptorTypeTable[index].descriptorType.String())
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(count))
	}

	builder.WriteByte('}')
	return builder.String()
}
