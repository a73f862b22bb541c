package gpumem

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/mocks"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

type AllocatorSetup struct {
	MemoryTypes      []core1_0.MemoryType
	MemoryHeaps      []core1_0.MemoryHeap
	Limits           device.Limits
	AllocatorOptions CreateOptions
}

func readyAllocator(t *testing.T, ctrl *gomock.Controller, setup AllocatorSetup) (*mocks.MockDevice, *Allocator) {
	mockDevice := mocks.NewMockDevice(ctrl)
	mockDevice.EXPECT().MemoryProperties().Return(device.MemoryProperties{
		MemoryTypes: setup.MemoryTypes,
		MemoryHeaps: setup.MemoryHeaps,
	}).AnyTimes()
	mockDevice.EXPECT().Limits().Return(setup.Limits).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard))
	allocator, err := New(logger, mockDevice, setup.AllocatorOptions)
	require.NoError(t, err)

	return mockDevice, allocator
}

var smallHeapSetup = AllocatorSetup{
	MemoryTypes: []core1_0.MemoryType{
		{
			PropertyFlags: core1_0.MemoryPropertyDeviceLocal,
			HeapIndex:     0,
		},
		{
			PropertyFlags: 0,
			HeapIndex:     1,
		},
	},
	MemoryHeaps: []core1_0.MemoryHeap{
		{
			Size:  1000000,
			Flags: core1_0.MemoryHeapDeviceLocal,
		},
		{
			Size:  1000000,
			Flags: 0,
		},
	},
	Limits: device.Limits{
		BufferImageGranularity: 1,
		NonCoherentAtomSize:    1,
	},
}

func TestAllocateMemory(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	// Expect a block to be allocated, the default preferred size for a 1MB heap is
	// 128KB (125024) but it will size down by half 3 times because the allocation is so small
	// resulting in 15628
	mockDevice.EXPECT().AllocateMemory(15628, 0).Return(device.Memory(1), core1_0.VKSuccess, nil)

	allocation, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Name:     "vertices",
		Location: LocationGPUOnly,
	})
	require.NoError(t, err)

	require.Equal(t, 1000, allocation.Size())
	require.Equal(t, 0, allocation.Offset())
	require.Equal(t, 0, allocation.MemoryTypeIndex())
	require.Equal(t, device.Memory(1), allocation.Memory())
	require.Equal(t, "vertices", allocation.Name())
	require.False(t, allocation.IsDedicated())
	require.Nil(t, allocation.Bytes())
	require.Equal(t, 1, allocator.LiveAllocationCount())

	mockDevice.EXPECT().FreeMemory(device.Memory(1))
	require.NoError(t, allocation.Free())
	require.Equal(t, 0, allocator.LiveAllocationCount())

	require.NoError(t, allocator.Destroy())
}

func TestAllocateMemoryDestroyWithoutFree(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	mockDevice.EXPECT().AllocateMemory(15628, 0).Return(device.Memory(1), core1_0.VKSuccess, nil)

	_, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
	})
	require.NoError(t, err)

	// The leaked block is left to the device, so FreeMemory is never called
	err = allocator.Destroy()
	require.EqualError(t, err, "1 allocations were not freed before the allocator was destroyed")
}

func TestAllocateDedicatedMemory(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	mockDevice.EXPECT().AllocateMemory(1000, 0).Return(device.Memory(1), core1_0.VKSuccess, nil)

	allocation, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
		Flags:    memutils.AllocationCreateDedicatedMemory,
	})
	require.NoError(t, err)
	require.True(t, allocation.IsDedicated())
	require.Equal(t, 0, allocation.Offset())
	require.Equal(t, 1, allocator.DeviceMemoryCount())

	mockDevice.EXPECT().FreeMemory(device.Memory(1))
	require.NoError(t, allocator.Free(allocation))
	require.Equal(t, 0, allocator.DeviceMemoryCount())
}

func TestAutoAllocateDedicatedMemory(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	// More than half of the 125024 byte preferred block size
	mockDevice.EXPECT().AllocateMemory(70000, 0).Return(device.Memory(1), core1_0.VKSuccess, nil)

	allocation, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           70000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
	})
	require.NoError(t, err)
	require.True(t, allocation.IsDedicated())

	mockDevice.EXPECT().FreeMemory(device.Memory(1))
	require.NoError(t, allocator.Free(allocation))
}

func TestAllocateFallsBackToNextMemoryType(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	// Type 0 refuses every block size the block list tries, then the dedicated fallback
	mockDevice.EXPECT().AllocateMemory(gomock.Any(), 0).Return(device.Memory(device.NullHandle), core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()).Times(3)
	mockDevice.EXPECT().AllocateMemory(62512, 1).Return(device.Memory(7), core1_0.VKSuccess, nil)

	allocation, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           20000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
	})
	require.NoError(t, err)
	require.Equal(t, 1, allocation.MemoryTypeIndex())
	require.Equal(t, device.Memory(7), allocation.Memory())

	mockDevice.EXPECT().FreeMemory(device.Memory(7))
	require.NoError(t, allocator.Free(allocation))
}

func TestCalculateStatistics(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice, allocator := readyAllocator(t, ctrl, smallHeapSetup)

	mockDevice.EXPECT().AllocateMemory(15628, 0).Return(device.Memory(1), core1_0.VKSuccess, nil)
	_, _, err := allocator.Allocate(core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
	})
	require.NoError(t, err)

	mockDevice.EXPECT().AllocateMemory(1000, 0).Return(device.Memory(2), core1_0.VKSuccess, nil)
	_, _, err = allocator.Allocate(core1_0.MemoryRequirements{
		Size:           1000,
		Alignment:      1,
		MemoryTypeBits: 0xffffffff,
	}, AllocationCreateInfo{
		Location: LocationGPUOnly,
		Flags:    memutils.AllocationCreateDedicatedMemory,
	})
	require.NoError(t, err)

	var stats AllocatorStatistics
	allocator.CalculateStatistics(&stats)

	empty := memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      0,
			AllocationCount: 0,
			BlockBytes:      0,
			AllocationBytes: 0,
		},
		UnusedRangeCount:   0,
		AllocationSizeMin:  math.MaxInt,
		AllocationSizeMax:  0,
		UnusedRangeSizeMin: math.MaxInt,
		UnusedRangeSizeMax: 0,
	}
	used := memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      2,
			AllocationCount: 2,
			BlockBytes:      16628,
			AllocationBytes: 2000,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  1000,
		AllocationSizeMax:  1000,
		UnusedRangeSizeMin: 14628,
		UnusedRangeSizeMax: 14628,
	}

	require.Equal(t, AllocatorStatistics{
		MemoryTypes: [common.MaxMemoryTypes]memutils.DetailedStatistics{
			used, empty, empty, empty, empty, empty, empty, empty,
			empty, empty, empty, empty, empty, empty, empty, empty,
			empty, empty, empty, empty, empty, empty, empty, empty,
			empty, empty, empty, empty, empty, empty, empty, empty,
		},
		MemoryHeaps: [common.MaxMemoryHeaps]memutils.DetailedStatistics{
			used, empty, empty, empty, empty, empty, empty, empty,
			empty, empty, empty, empty, empty, empty, empty, empty,
		},
		Total: used,
	}, stats)

	var totals memutils.Statistics
	allocator.Statistics(&totals)
	require.Equal(t, used.Statistics, totals)

	budgets := make([]HeapBudget, 2)
	allocator.HeapBudgets(budgets)
	require.Equal(t, HeapBudget{
		Statistics: memutils.Statistics{
			BlockCount:      2,
			AllocationCount: 2,
			BlockBytes:      16628,
			AllocationBytes: 2000,
		},
		Usage:  16628,
		Budget: 800000,
	}, budgets[0])
}

func TestAllocateInvalidRequirements(t *testing.T) {
	testCases := map[string]struct {
		Requirements core1_0.MemoryRequirements
		Location     Location
	}{
		"ZeroSize": {
			Requirements: core1_0.MemoryRequirements{Size: 0, Alignment: 1, MemoryTypeBits: 0xffffffff},
		},
		"AlignmentNotPow2": {
			Requirements: core1_0.MemoryRequirements{Size: 64, Alignment: 3, MemoryTypeBits: 0xffffffff},
		},
		"NoMemoryTypeBits": {
			Requirements: core1_0.MemoryRequirements{Size: 64, Alignment: 1, MemoryTypeBits: 0},
		},
		"NoHostVisibleType": {
			Requirements: core1_0.MemoryRequirements{Size: 64, Alignment: 1, MemoryTypeBits: 0xffffffff},
			Location:     LocationCPUToGPU,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			_, allocator := readyAllocator(t, ctrl, smallHeapSetup)

			_, _, err := allocator.Allocate(testCase.Requirements, AllocationCreateInfo{Location: testCase.Location})
			require.Error(t, err)
			require.Equal(t, 0, allocator.LiveAllocationCount())
		})
	}
}
