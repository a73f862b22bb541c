package devicetest

import (
	"time"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type submission struct {
	queue            device.Queue
	commandBuffers   []uint64
	waitSemaphores   []uint64
	signalSemaphores []uint64
	fence            uint64
}

func (d *Device) CreateSemaphore() (device.Semaphore, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateSemaphore"); failed {
		return device.NullHandle, res, res.ToError()
	}

	return device.Semaphore(d.newObject(KindSemaphore).handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroySemaphore(semaphore device.Semaphore) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(semaphore), KindSemaphore)
	if ok && obj.pendingSignal > 0 {
		d.violate("destroyed semaphore %d while a pending submission will signal it", semaphore)
	}

	d.destroy(uint64(semaphore), KindSemaphore)
}

func (d *Device) CreateFence(signaled bool) (device.Fence, common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("CreateFence"); failed {
		return device.NullHandle, res, res.ToError()
	}

	obj := d.newObject(KindFence)
	obj.signaled = signaled
	return device.Fence(obj.handle), core1_0.VKSuccess, nil
}

func (d *Device) DestroyFence(fence device.Fence) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(fence), KindFence)
	if ok && obj.pendingSignal > 0 {
		d.violate("destroyed fence %d while a pending submission will signal it", fence)
	}

	d.destroy(uint64(fence), KindFence)
}

func (d *Device) fencesReady(fences []device.Fence, waitAll bool) bool {
	if len(fences) == 0 {
		return true
	}

	for _, fence := range fences {
		obj, ok := d.lookup(uint64(fence), KindFence)
		signaled := ok && obj.signaled
		if !waitAll && signaled {
			return true
		} else if waitAll && !signaled {
			return false
		}
	}

	return waitAll
}

func (d *Device) WaitForFences(fences []device.Fence, waitAll bool, timeout time.Duration) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("WaitForFences"); failed {
		return res, res.ToError()
	}

	for _, fence := range fences {
		if _, ok := d.lookup(uint64(fence), KindFence); !ok {
			d.violate("waited on fence %d, which does not exist", fence)
			return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
		}
	}

	var deadline time.Time
	bounded := timeout != common.NoTimeout && timeout >= 0
	if bounded {
		deadline = time.Now().Add(timeout)
		timer := time.AfterFunc(timeout, func() {
			d.mutex.Lock()
			defer d.mutex.Unlock()
			d.cond.Broadcast()
		})
		defer timer.Stop()
	}

	for {
		if d.deviceLost {
			return core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError()
		}
		if d.fencesReady(fences, waitAll) {
			return core1_0.VKSuccess, nil
		}
		if bounded && !time.Now().Before(deadline) {
			return core1_0.VKTimeout, nil
		}

		d.waiters++
		d.cond.Wait()
		d.waiters--
	}
}

// BlockedWaiters is the number of goroutines currently parked in WaitForFences
func (d *Device) BlockedWaiters() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.waiters
}

func (d *Device) ResetFences(fences []device.Fence) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("ResetFences"); failed {
		return res, res.ToError()
	}

	for _, fence := range fences {
		obj, ok := d.lookup(uint64(fence), KindFence)
		if !ok {
			d.violate("reset fence %d, which does not exist", fence)
			continue
		}
		if obj.pendingSignal > 0 {
			d.violate("reset fence %d while a pending submission will signal it", fence)
		}
		obj.signaled = false
	}

	return core1_0.VKSuccess, nil
}

// FenceSignaled reports whether a fence is currently signaled
func (d *Device) FenceSignaled(fence device.Fence) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	obj, ok := d.lookup(uint64(fence), KindFence)
	return ok && obj.signaled
}

func (d *Device) QueueSubmit(queue device.Queue, submits []device.SubmitInfo, fence device.Fence) (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("QueueSubmit"); failed {
		return res, res.ToError()
	}
	if d.deviceLost {
		return core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError()
	}

	var fenceObj *object
	if fence != device.NullHandle {
		var ok bool
		fenceObj, ok = d.lookup(uint64(fence), KindFence)
		if !ok {
			d.violate("submitted with fence %d, which does not exist", fence)
			return core1_0.VKErrorUnknown, core1_0.VKErrorUnknown.ToError()
		}
		if fenceObj.signaled || fenceObj.pendingSignal > 0 {
			d.violate("submitted with fence %d, which is not unsignaled", fence)
		}
	}

	for submitIndex, submit := range submits {
		sub := &submission{queue: queue}
		if submitIndex == len(submits)-1 && fenceObj != nil {
			sub.fence = fenceObj.handle
			fenceObj.pendingSignal++
		}

		for _, buffer := range submit.CommandBuffers {
			obj, ok := d.lookup(uint64(buffer), KindCommandBuffer)
			if !ok {
				d.violate("submitted command buffer %d, which does not exist", buffer)
				continue
			}
			if obj.recording {
				d.violate("submitted command buffer %d, which is still recording", buffer)
			}
			if obj.pending > 0 {
				d.violate("submitted command buffer %d, which is already pending", buffer)
			}
			obj.pending++
			sub.commandBuffers = append(sub.commandBuffers, obj.handle)
		}

		for _, semaphore := range submit.WaitSemaphores {
			obj, ok := d.lookup(uint64(semaphore), KindSemaphore)
			if !ok {
				d.violate("submitted a wait on semaphore %d, which does not exist", semaphore)
				continue
			}
			if !obj.signaled && obj.pendingSignal == 0 {
				d.violate("submitted a wait on semaphore %d, which nothing will signal", semaphore)
			}
			sub.waitSemaphores = append(sub.waitSemaphores, obj.handle)
		}

		for _, semaphore := range submit.SignalSemaphores {
			obj, ok := d.lookup(uint64(semaphore), KindSemaphore)
			if !ok {
				d.violate("submitted a signal of semaphore %d, which does not exist", semaphore)
				continue
			}
			obj.pendingSignal++
			sub.signalSemaphores = append(sub.signalSemaphores, obj.handle)
		}

		d.pending = append(d.pending, sub)
	}

	if d.options.AutoComplete {
		for len(d.pending) > 0 {
			d.completeOldest()
		}
	}

	return core1_0.VKSuccess, nil
}

func (d *Device) completeOldest() {
	sub := d.pending[0]
	d.pending = d.pending[1:]

	for _, semaphore := range sub.waitSemaphores {
		if obj, ok := d.lookup(semaphore, KindSemaphore); ok {
			obj.signaled = false
		}
	}

	for _, buffer := range sub.commandBuffers {
		obj, ok := d.lookup(buffer, KindCommandBuffer)
		if !ok {
			d.violate("executed command buffer %d, which was freed while in flight", buffer)
			continue
		}
		for _, cmd := range obj.commands {
			cmd.run(d)
		}
		obj.pending--
	}

	for _, semaphore := range sub.signalSemaphores {
		if obj, ok := d.lookup(semaphore, KindSemaphore); ok {
			obj.pendingSignal--
			if obj.consumeOnSignal > 0 {
				obj.consumeOnSignal--
			} else {
				obj.signaled = true
			}
		}
	}

	if sub.fence != 0 {
		if obj, ok := d.lookup(sub.fence, KindFence); ok {
			obj.pendingSignal--
			obj.signaled = true
		}
	}

	d.cond.Broadcast()
}

// Signal completes the oldest pending submission: its commands execute, its semaphores and
// fence are signaled and any waiters wake up. It returns false if nothing was pending.
func (d *Device) Signal() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return false
	}

	d.completeOldest()
	return true
}

// SignalAll completes every pending submission in submission order
func (d *Device) SignalAll() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	count := 0
	for len(d.pending) > 0 {
		d.completeOldest()
		count++
	}

	return count
}

// Pending is the number of submissions that have not completed
func (d *Device) Pending() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return len(d.pending)
}

func (d *Device) DeviceWaitIdle() (common.VkResult, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if res, failed := d.takeFailure("DeviceWaitIdle"); failed {
		return res, res.ToError()
	}
	if d.deviceLost {
		return core1_0.VKErrorDeviceLost, core1_0.VKErrorDeviceLost.ToError()
	}

	for len(d.pending) > 0 {
		d.completeOldest()
	}

	return core1_0.VKSuccess, nil
}
