package devicetest

import (
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
)

func (d *Device) CreateDescriptorSetLayout(info device.DescriptorSetLayoutCreateInfo) (device.DescriptorSetLayout, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateDescriptorSetLayout"); failed {
		return device.NullHandle, res, res.ToError()
	}

	seen := make(map[int]bool, len(info.Bindings))
	for _, binding := range info.Bindings {
		if seen[binding.Binding] {
			d.violate("created a descriptor set layout with binding %d listed twice", binding.Binding)
		}
		seen[binding.Binding] = true
	}

	obj := d.newObject(KindDescriptorSetLayout)
	obj.bindings = append([]device.DescriptorSetLayoutBinding(nil), info.Bindings...)

	return device.DescriptorSetLayout(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyDescriptorSetLayout(layout device.DescriptorSetLayout) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.destroy(uint64(layout), KindDescriptorSetLayout)
}

func (d *Device) CreateDescriptorPool(info device.DescriptorPoolCreateInfo) (device.DescriptorPool, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateDescriptorPool"); failed {
		return device.NullHandle, res, res.ToError()
	}
	if info.MaxSets < 1 {
		d.violate("created a descriptor pool with MaxSets %d", info.MaxSets)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	obj := d.newObject(KindDescriptorPool)
	obj.maxSets = info.MaxSets
	obj.setsRemaining = info.MaxSets
	obj.capacity = make(map[core1_0.DescriptorType]int)
	obj.remaining = make(map[core1_0.DescriptorType]int)
	for _, poolSize := range info.PoolSizes {
		if poolSize.DescriptorCount < 1 {
			d.violate("created a descriptor pool with %d descriptors of type %s", poolSize.DescriptorCount, poolSize.Type)
		}
		obj.capacity[poolSize.Type] += poolSize.DescriptorCount
		obj.remaining[poolSize.Type] += poolSize.DescriptorCount
	}

	return device.DescriptorPool(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) releasePoolSets(pool *object) {
	for _, set := range pool.sets {
		d.objects.Delete(set)
	}
	pool.sets = nil
	pool.setsRemaining = pool.maxSets
	for descriptorType, count := range pool.capacity {
		pool.remaining[descriptorType] = count
	}
}

func (d *Device) DestroyDescriptorPool(pool device.DescriptorPool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.destroy(uint64(pool), KindDescriptorPool)
	if ok {
		d.releasePoolSets(obj)
	}
}

func (d *Device) ResetDescriptorPool(pool device.DescriptorPool) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("ResetDescriptorPool"); failed {
		return res, res.ToError()
	}

	obj, ok := d.lookup(uint64(pool), KindDescriptorPool)
	if !ok {
		d.violate("reset descriptor pool %d, which does not exist", pool)
		return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	d.releasePoolSets(obj)
	return core1_0.VKSuccess, nil
}

func (d *Device) AllocateDescriptorSet(pool device.DescriptorPool, layout device.DescriptorSetLayout) (device.DescriptorSet, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("AllocateDescriptorSet"); failed {
		return device.NullHandle, res, res.ToError()
	}

	poolObj, ok := d.lookup(uint64(pool), KindDescriptorPool)
	if !ok {
		d.violate("allocated a descriptor set from pool %d, which does not exist", pool)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}
	layoutObj, ok := d.lookup(uint64(layout), KindDescriptorSetLayout)
	if !ok {
		d.violate("allocated a descriptor set with layout %d, which does not exist", layout)
		return device.NullHandle, core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
	}

	if poolObj.setsRemaining < 1 {
		return device.NullHandle, core1_1.VkErrorOutOfPoolMemory, core1_1.VkErrorOutOfPoolMemory.ToError()
	}

	needed := make(map[core1_0.DescriptorType]int)
	for _, binding := range layoutObj.bindings {
		needed[binding.DescriptorType] += binding.DescriptorCount
	}
	for descriptorType, count := range needed {
		if poolObj.remaining[descriptorType] < count {
			return device.NullHandle, core1_1.VkErrorOutOfPoolMemory, core1_1.VkErrorOutOfPoolMemory.ToError()
		}
	}

	for descriptorType, count := range needed {
		poolObj.remaining[descriptorType] -= count
	}
	poolObj.setsRemaining--

	obj := d.newObject(KindDescriptorSet)
	obj.pool = poolObj.handle
	obj.bindings = layoutObj.bindings
	poolObj.sets = append(poolObj.sets, obj.handle)

	return device.DescriptorSet(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) UpdateDescriptorSets(writes []device.WriteDescriptorSet) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for _, write := range writes {
		setObj, ok := d.lookup(uint64(write.DstSet), KindDescriptorSet)
		if !ok {
			d.violate("wrote to descriptor set %d, which does not exist", write.DstSet)
			continue
		}

		found := false
		for _, binding := range setObj.bindings {
			if binding.Binding != write.DstBinding {
				continue
			}

			found = true
			if binding.DescriptorType != write.DescriptorType {
				d.violate("wrote descriptor type %s to binding %d of set %d, which holds %s", write.DescriptorType, write.DstBinding, write.DstSet, binding.DescriptorType)
			}
			count := len(write.ImageInfo) + len(write.BufferInfo)
			if write.DstArrayElement+count > binding.DescriptorCount {
				d.violate("wrote %d descriptors at element %d of binding %d of set %d, which holds %d", count, write.DstArrayElement, write.DstBinding, write.DstSet, binding.DescriptorCount)
			}
		}
		if !found {
			d.violate("wrote to binding %d of descriptor set %d, which has no such binding", write.DstBinding, write.DstSet)
		}

		for _, imageInfo := range write.ImageInfo {
			if imageInfo.ImageView != device.NullHandle && !d.objects.Has(uint64(imageInfo.ImageView)) {
				d.violate("wrote image view %d, which does not exist, to descriptor set %d", imageInfo.ImageView, write.DstSet)
			}
			if imageInfo.Sampler != device.NullHandle && !d.objects.Has(uint64(imageInfo.Sampler)) {
				d.violate("wrote sampler %d, which does not exist, to descriptor set %d", imageInfo.Sampler, write.DstSet)
			}
		}
		for _, bufferInfo := range write.BufferInfo {
			if !d.objects.Has(uint64(bufferInfo.Buffer)) {
				d.violate("wrote buffer %d, which does not exist, to descriptor set %d", bufferInfo.Buffer, write.DstSet)
			}
		}

		setObj.writes = append(setObj.writes, write)
	}
}

// DescriptorWrites lists every write made to a descriptor set since it was allocated
func (d *Device) DescriptorWrites(set device.DescriptorSet) []device.WriteDescriptorSet {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(set), KindDescriptorSet)
	if !ok {
		return nil
	}

	return append([]device.WriteDescriptorSet(nil), obj.writes...)
}

// DescriptorPoolSetCount is the number of sets currently allocated from a pool
func (d *Device) DescriptorPoolSetCount(pool device.DescriptorPool) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(pool), KindDescriptorPool)
	if !ok {
		return 0
	}

	return len(obj.sets)
}
