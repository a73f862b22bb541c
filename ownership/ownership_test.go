package ownership

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/devicetest"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

type recorded struct {
	name string
	log  *[]string
}

func (r *recorded) Destroy() {
	*r.log = append(*r.log, r.name)
}

type sampler struct {
	handle device.Sampler
}

func (s sampler) Destroy(dev device.Device) {
	dev.DestroySampler(s.handle)
}

type memoryRange struct {
	allocation *gpumem.Allocation
}

func (m memoryRange) Destroy(dev device.Device, allocator *gpumem.Allocator) {
	err := allocator.Free(m.allocation)
	if err != nil {
		panic(err)
	}
}

func testContext(t *testing.T) (*devicetest.Device, *gpumem.Allocator) {
	dev := devicetest.New(devicetest.DefaultOptions())
	allocator, err := gpumem.New(slog.New(slog.NewTextHandler(io.Discard)), dev, gpumem.CreateOptions{})
	require.NoError(t, err)

	return dev, allocator
}

func newSampler(t *testing.T, dev *devicetest.Device) sampler {
	handle, _, err := dev.CreateSampler(device.SamplerCreateInfo{})
	require.NoError(t, err)

	return sampler{handle: handle}
}

func newMemoryRange(t *testing.T, allocator *gpumem.Allocator) memoryRange {
	allocation, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           256,
		Alignment:      16,
		MemoryTypeBits: 0x7,
	}, gpumem.AllocationCreateInfo{Location: gpumem.LocationCPUToGPU})
	require.NoError(t, err)

	return memoryRange{allocation: allocation}
}

func TestKindOf(t *testing.T) {
	var log []string
	dev, allocator := testContext(t)

	require.Equal(t, KindNone, New(&recorded{log: &log}).Kind())
	require.Equal(t, KindDevice, New(newSampler(t, dev)).Kind())
	require.Equal(t, KindDeviceAllocator, New(newMemoryRange(t, allocator)).Kind())

	require.PanicsWithValue(t, "ownership: int has no Destroy method of a supported shape", func() {
		New(5)
	})
}

func TestOwnedDestruct(t *testing.T) {
	dev, allocator := testContext(t)

	owned := New(newSampler(t, dev))
	require.True(t, owned.IsPopulated())
	handle := owned.Value().handle

	owned.Destruct(dev, nil)
	require.False(t, owned.IsPopulated())
	require.False(t, dev.Exists(uint64(handle)))
	owned.Drop()

	memory := New(newMemoryRange(t, allocator))
	memory.Destruct(dev, allocator)
	memory.Drop()

	require.Equal(t, 0, allocator.LiveAllocationCount())
	require.Empty(t, dev.Violations())
}

func TestOwnedMisuse(t *testing.T) {
	testCases := map[string]struct {
		Misuse func(dev *devicetest.Device, owned *Owned[sampler])
		Panic  string
	}{
		"DropWhilePopulated": {
			Misuse: func(dev *devicetest.Device, owned *Owned[sampler]) {
				owned.Drop()
			},
			Panic: "ownership: ownership.sampler dropped while still populated",
		},
		"DoubleDestruct": {
			Misuse: func(dev *devicetest.Device, owned *Owned[sampler]) {
				owned.Destruct(dev, nil)
				owned.Destruct(dev, nil)
			},
			Panic: "ownership: Destruct on ownership.sampler, which is already destroyed",
		},
		"ValueAfterDestruct": {
			Misuse: func(dev *devicetest.Device, owned *Owned[sampler]) {
				owned.Destruct(dev, nil)
				owned.Value()
			},
			Panic: "ownership: Value on ownership.sampler, which is already destroyed",
		},
		"DestructWithoutContext": {
			Misuse: func(dev *devicetest.Device, owned *Owned[sampler]) {
				owned.Destruct(nil, nil)
			},
			Panic: "ownership: destruct without context: ownership.sampler needs a device",
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			dev := devicetest.New(devicetest.DefaultOptions())
			owned := New(newSampler(t, dev))

			require.PanicsWithValue(t, testCase.Panic, func() {
				testCase.Misuse(dev, owned)
			})
		})
	}
}

func TestOwnedDestructWithoutAllocator(t *testing.T) {
	dev, allocator := testContext(t)
	owned := New(newMemoryRange(t, allocator))

	require.PanicsWithValue(t, "ownership: destruct without context: ownership.memoryRange needs a device and an allocator", func() {
		owned.Destruct(dev, nil)
	})

	// Nothing was destroyed, so the value is still owned
	require.True(t, owned.IsPopulated())
	owned.Destruct(dev, allocator)
	owned.Drop()
}

func TestOwnedReplace(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())

	first := newSampler(t, dev)
	second := newSampler(t, dev)

	owned := New(first)
	owned.Replace(dev, nil, second)

	require.False(t, dev.Exists(uint64(first.handle)))
	require.Equal(t, second, owned.Value())

	owned.Destruct(dev, nil)
	owned.Drop()
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindSampler))
	require.Empty(t, dev.Violations())
}

func TestDeferredSequences(t *testing.T) {
	testCases := map[string]struct {
		Sequence  func(deferred *Deferred[*recorded], queue *DestructionQueue)
		Panic     string
		Destroyed int
	}{
		"Destruct": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				deferred.Destruct(nil, nil)
				deferred.Drop()
			},
			Destroyed: 1,
		},
		"DeferThenDispatch": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				queue.Push(deferred.Defer())
				deferred.Drop()
				queue.Dispatch(nil, nil)
			},
			Destroyed: 1,
		},
		"DropWhileLive": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				deferred.Drop()
			},
			Panic: "ownership: *ownership.recorded dropped while still live",
		},
		"DoubleDefer": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				queue.Push(deferred.Defer())
				queue.Push(deferred.Defer())
			},
			Panic: "ownership: Defer on *ownership.recorded, which is already deferred",
		},
		"DestructAfterDefer": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				queue.Push(deferred.Defer())
				deferred.Destruct(nil, nil)
			},
			Panic: "ownership: Destruct on *ownership.recorded, which is already deferred",
		},
		"DeferAfterDestruct": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				deferred.Destruct(nil, nil)
				deferred.Defer()
			},
			Panic:     "ownership: Defer on *ownership.recorded, which is already destroyed",
			Destroyed: 1,
		},
		"ValueAfterDefer": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				queue.Push(deferred.Defer())
				deferred.Value()
			},
			Panic: "ownership: Value on *ownership.recorded, which is already deferred",
		},
		"DoubleDispatch": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				destructor := deferred.Defer()
				queue.Push(destructor)
				queue.Push(destructor)
				queue.Dispatch(nil, nil)
			},
			Panic:     "ownership: ran the destructor of *ownership.recorded, which is already destroyed",
			Destroyed: 1,
		},
		"RunTwice": {
			Sequence: func(deferred *Deferred[*recorded], queue *DestructionQueue) {
				destructor := deferred.Defer()
				destructor.Run(nil, nil)
				destructor.Run(nil, nil)
			},
			Panic:     "ownership: ran the destructor of *ownership.recorded, which is already destroyed",
			Destroyed: 1,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			var log []string
			deferred := NewDeferred(&recorded{name: "value", log: &log})
			queue := NewDestructionQueue(slog.New(slog.NewTextHandler(io.Discard)))

			if testCase.Panic != "" {
				require.PanicsWithValue(t, testCase.Panic, func() {
					testCase.Sequence(deferred, queue)
				})
				require.Len(t, log, testCase.Destroyed)
				return
			}

			testCase.Sequence(deferred, queue)
			require.Equal(t, StateGone, deferred.State())
			require.Len(t, log, testCase.Destroyed)
			queue.Drop()
		})
	}
}

func TestDeferredStates(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())
	queue := NewDestructionQueue(nil)

	deferred := NewDeferred(newSampler(t, dev))
	require.Equal(t, StateLive, deferred.State())
	handle := deferred.Value().handle

	destructor := deferred.Defer()
	require.Equal(t, StateDeferred, deferred.State())
	require.Equal(t, KindDevice, destructor.Kind)
	require.Equal(t, "ownership.sampler", destructor.Name)

	// The handle is released only when the queue runs
	queue.Push(destructor)
	require.True(t, dev.Exists(uint64(handle)))

	queue.Dispatch(dev, nil)
	require.Equal(t, StateGone, deferred.State())
	require.False(t, dev.Exists(uint64(handle)))

	queue.Drop()
	deferred.Drop()
	require.Empty(t, dev.Violations())
}

func TestDispatchIsLIFO(t *testing.T) {
	var log []string
	queue := NewDestructionQueue(nil)

	for _, name := range []string{"A", "B", "C"} {
		queue.Push(NewDeferred(&recorded{name: name, log: &log}).Defer())
	}
	require.Equal(t, 3, queue.Len())

	queue.Dispatch(nil, nil)
	require.Equal(t, []string{"C", "B", "A"}, log)
	require.Equal(t, 0, queue.Len())

	queue.Drop()
}

func TestDispatchMixedContexts(t *testing.T) {
	dev, allocator := testContext(t)
	queue := NewDestructionQueue(nil)

	var log []string
	queue.Push(NewDeferred(newMemoryRange(t, allocator)).Defer())
	queue.Push(NewDeferred(newSampler(t, dev)).Defer())
	queue.Push(NewDeferred(&recorded{name: "marker", log: &log}).Defer())
	queue.PushFunc("callback", KindDevice, func(dev device.Device, allocator *gpumem.Allocator) {
		log = append(log, "callback")
	})

	queue.Dispatch(dev, allocator)
	require.Equal(t, []string{"callback", "marker"}, log)
	require.Equal(t, 0, allocator.LiveAllocationCount())
	require.Equal(t, 0, dev.LiveObjects(devicetest.KindSampler))

	queue.Drop()
	require.NoError(t, allocator.Destroy())
	require.Empty(t, dev.Violations())
}

func TestDispatchWithoutContextRunsNothing(t *testing.T) {
	dev, allocator := testContext(t)
	queue := NewDestructionQueue(nil)

	var log []string
	queue.Push(NewDeferred(newMemoryRange(t, allocator)).Defer())
	queue.Push(NewDeferred(&recorded{name: "marker", log: &log}).Defer())

	require.PanicsWithValue(t, "ownership: destruct without context: ownership.memoryRange needs a device and an allocator", func() {
		queue.Dispatch(dev, nil)
	})
	require.Empty(t, log)
	require.Equal(t, 2, queue.Len())

	queue.Dispatch(dev, allocator)
	require.Equal(t, []string{"marker"}, log)
	queue.Drop()
}

func TestDispatchDefersNewPushes(t *testing.T) {
	var log []string
	queue := NewDestructionQueue(nil)

	queue.PushFunc("outer", KindNone, func(device.Device, *gpumem.Allocator) {
		log = append(log, "outer")
		queue.Push(NewDeferred(&recorded{name: "inner", log: &log}).Defer())
	})

	queue.Dispatch(nil, nil)
	require.Equal(t, []string{"outer"}, log)
	require.Equal(t, 1, queue.Len())

	queue.Dispatch(nil, nil)
	require.Equal(t, []string{"outer", "inner"}, log)
	queue.Drop()
}

func TestDispatchPanicKeepsUnrunDestructors(t *testing.T) {
	var log []string
	var logs bytes.Buffer
	queue := NewDestructionQueue(slog.New(slog.NewTextHandler(&logs)))

	queue.Push(NewDeferred(&recorded{name: "first", log: &log}).Defer())
	queue.PushFunc("broken", KindNone, func(device.Device, *gpumem.Allocator) {
		panic("destructor failed")
	})
	queue.Push(NewDeferred(&recorded{name: "last", log: &log}).Defer())

	require.PanicsWithValue(t, "destructor failed", func() {
		queue.Dispatch(nil, nil)
	})
	require.Equal(t, []string{"last"}, log)
	require.Equal(t, 2, queue.Len())

	require.PanicsWithValue(t, "ownership: destruction queue dropped with 2 undispatched destructors", queue.Drop)
	require.Contains(t, logs.String(), "name=broken")
	require.Contains(t, logs.String(), "name=*ownership.recorded")
}

func TestPushFuncRunsOnce(t *testing.T) {
	dev := devicetest.New(devicetest.DefaultOptions())
	queue := NewDestructionQueue(nil)

	handle := newSampler(t, dev).handle
	queue.PushFunc("sampler", KindDevice, func(dev device.Device, allocator *gpumem.Allocator) {
		dev.DestroySampler(handle)
	})
	destructor := queue.entries[0]

	queue.Dispatch(dev, nil)
	require.False(t, dev.Exists(uint64(handle)))

	require.PanicsWithValue(t, "ownership: ran the destructor of sampler, which is already destroyed", func() {
		destructor.Run(dev, nil)
	})
	require.Empty(t, dev.Violations())
	queue.Drop()
}

func TestDropLeakedQueue(t *testing.T) {
	testCases := map[string]int{
		"Empty": 0,
		"One":   1,
		"Three": 3,
	}

	for testName, count := range testCases {
		t.Run(testName, func(t *testing.T) {
			var logs bytes.Buffer
			queue := NewDestructionQueue(slog.New(slog.NewTextHandler(&logs)))

			var log []string
			for i := 0; i < count; i++ {
				queue.Push(NewDeferred(&recorded{name: "leaked", log: &log}).Defer())
			}

			if count == 0 {
				require.NotPanics(t, queue.Drop)
				require.Empty(t, logs.String())
				return
			}

			require.Panics(t, queue.Drop)
			require.Equal(t, count, bytes.Count(logs.Bytes(), []byte("[UNRELEASED DESTRUCTOR]")))
			require.Contains(t, logs.String(), "*ownership.recorded")
			require.Empty(t, log)
		})
	}
}
