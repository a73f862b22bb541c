package gpumem

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// AllocatorStatistics breaks the allocator's memory use down by memory type and heap
type AllocatorStatistics struct {
	MemoryTypes [common.MaxMemoryTypes]memutils.DetailedStatistics
	MemoryHeaps [common.MaxMemoryHeaps]memutils.DetailedStatistics
	Total       memutils.DetailedStatistics
}

// CalculateStatistics walks every block and dedicated allocation. It is slower than
// HeapBudgets and is intended for debugging and tooling.
func (a *Allocator) CalculateStatistics(stats *AllocatorStatistics) {
	stats.Total.Clear()
	for typeIndex := 0; typeIndex < common.MaxMemoryTypes; typeIndex++ {
		stats.MemoryTypes[typeIndex].Clear()
	}
	for heapIndex := 0; heapIndex < common.MaxMemoryHeaps; heapIndex++ {
		stats.MemoryHeaps[heapIndex].Clear()
	}

	typeCount := a.deviceMemory.MemoryTypeCount()
	for typeIndex := 0; typeIndex < typeCount; typeIndex++ {
		a.memoryBlockLists[typeIndex].AddDetailedStatistics(&stats.MemoryTypes[typeIndex])
		a.dedicatedAllocations[typeIndex].AddDetailedStatistics(&stats.MemoryTypes[typeIndex])
	}

	for typeIndex := 0; typeIndex < typeCount; typeIndex++ {
		heapIndex := a.deviceMemory.MemoryTypeIndexToHeapIndex(typeIndex)
		stats.MemoryHeaps[heapIndex].AddDetailedStatistics(&stats.MemoryTypes[typeIndex])
	}

	heapCount := a.deviceMemory.MemoryHeapCount()
	for heapIndex := 0; heapIndex < heapCount; heapIndex++ {
		stats.Total.AddDetailedStatistics(&stats.MemoryHeaps[heapIndex])
	}
}

// Statistics adds the block and allocation totals across every memory type to stats. It
// skips the per-type breakdown and free range tracking that CalculateStatistics does.
func (a *Allocator) Statistics(stats *memutils.Statistics) {
	for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
		a.memoryBlockLists[typeIndex].AddStatistics(stats)
		a.dedicatedAllocations[typeIndex].AddStatistics(stats)
	}
}

// HeapBudgets fills budgets with the allocator's cheap running usage counters for each of
// the device's heaps. The slice must have room for every heap.
func (a *Allocator) HeapBudgets(budgets []HeapBudget) {
	heapCount := a.deviceMemory.MemoryHeapCount()
	if len(budgets) < heapCount {
		heapCount = len(budgets)
	}

	for heapIndex := 0; heapIndex < heapCount; heapIndex++ {
		a.deviceMemory.HeapBudget(heapIndex, &budgets[heapIndex])
	}
}

func printDetailedStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("BlockCount").Int(stats.BlockCount)
	json.Name("BlockBytes").Int(stats.BlockBytes)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("AllocationBytes").Int(stats.AllocationBytes)
	json.Name("UnusedRangeCount").Int(stats.UnusedRangeCount)

	if stats.AllocationCount > 0 {
		json.Name("AllocationSizeMin").Int(stats.AllocationSizeMin)
		json.Name("AllocationSizeMax").Int(stats.AllocationSizeMax)
	}
	if stats.UnusedRangeCount > 0 {
		json.Name("UnusedRangeSizeMin").Int(stats.UnusedRangeSizeMin)
		json.Name("UnusedRangeSizeMax").Int(stats.UnusedRangeSizeMax)
	}
}

func printMemoryPropertyFlags(json *jwriter.ObjectState, name string, flags core1_0.MemoryPropertyFlags) {
	arr := json.Name(name).Array()
	defer arr.End()

	for _, flag := range []core1_0.MemoryPropertyFlags{
		core1_0.MemoryPropertyDeviceLocal,
		core1_0.MemoryPropertyHostVisible,
		core1_0.MemoryPropertyHostCoherent,
		core1_0.MemoryPropertyHostCached,
		core1_0.MemoryPropertyLazilyAllocated,
	} {
		if flags&flag != 0 {
			arr.String(flag.String())
		}
	}
}

// BuildStatsString renders the allocator's statistics as JSON. With detailed set, every
// block's suballocation map and every dedicated allocation is included.
func (a *Allocator) BuildStatsString(detailed bool) string {
	var stats AllocatorStatistics
	a.CalculateStatistics(&stats)

	budgets := make([]HeapBudget, a.deviceMemory.MemoryHeapCount())
	a.HeapBudgets(budgets)

	writer := jwriter.NewWriter()
	root := writer.Object()

	totalObj := root.Name("Total").Object()
	printDetailedStatistics(&totalObj, &stats.Total)
	totalObj.End()

	root.Name("LiveAllocations").Int(a.LiveAllocationCount())
	root.Name("DeviceMemoryCount").Int(a.DeviceMemoryCount())

	heapsObj := root.Name("MemoryHeaps").Object()
	for heapIndex := 0; heapIndex < a.deviceMemory.MemoryHeapCount(); heapIndex++ {
		heapObj := heapsObj.Name("Heap " + strconv.Itoa(heapIndex)).Object()

		heapProps := a.deviceMemory.MemoryHeapProperties(heapIndex)
		heapObj.Name("Size").Int(heapProps.Size)

		budgetObj := heapObj.Name("Budget").Object()
		budgetObj.Name("BudgetBytes").Int(budgets[heapIndex].Budget)
		budgetObj.Name("UsageBytes").Int(budgets[heapIndex].Usage)
		budgetObj.End()

		statsObj := heapObj.Name("Stats").Object()
		printDetailedStatistics(&statsObj, &stats.MemoryHeaps[heapIndex])
		statsObj.End()

		typesObj := heapObj.Name("MemoryTypes").Object()
		for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
			if a.deviceMemory.MemoryTypeIndexToHeapIndex(typeIndex) != heapIndex {
				continue
			}

			typeObj := typesObj.Name("Type " + strconv.Itoa(typeIndex)).Object()
			printMemoryPropertyFlags(&typeObj, "Properties", a.deviceMemory.MemoryTypeProperties(typeIndex).PropertyFlags)

			typeStatsObj := typeObj.Name("Stats").Object()
			printDetailedStatistics(&typeStatsObj, &stats.MemoryTypes[typeIndex])
			typeStatsObj.End()

			typeObj.End()
		}
		typesObj.End()

		heapObj.End()
	}
	heapsObj.End()

	if detailed {
		mapObj := root.Name("DefaultPools").Object()
		for typeIndex := 0; typeIndex < a.deviceMemory.MemoryTypeCount(); typeIndex++ {
			typeObj := mapObj.Name("Type " + strconv.Itoa(typeIndex)).Object()
			typeObj.Name("PreferredBlockSize").Int(a.memoryBlockLists[typeIndex].PreferredBlockSize())
			a.memoryBlockLists[typeIndex].PrintDetailedMap(&typeObj)
			a.dedicatedAllocations[typeIndex].BuildStatsString(&typeObj)
			typeObj.End()
		}
		mapObj.End()
	}

	root.End()
	return string(writer.Bytes())
}
