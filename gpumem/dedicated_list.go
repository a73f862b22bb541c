package gpumem

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/memutils"
	"github.com/vkngwrapper/arsenal/resman/internal/utils"
)

// dedicatedAllocationList links together the allocations of one memory type that own
// their device memory object outright
type dedicatedAllocationList struct {
	mutex utils.OptionalRWMutex

	count int
	head  *Allocation
	tail  *Allocation
}

func newDedicatedAllocationList(useMutex bool) *dedicatedAllocationList {
	return &dedicatedAllocationList{
		mutex: utils.NewOptionalRWMutex(useMutex),
	}
}

func (l *dedicatedAllocationList) Validate() error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	actualCount := 0
	for alloc := l.head; alloc != nil; alloc = alloc.dedicatedData.next {
		if alloc.allocationType != allocationTypeDedicated {
			return errors.Newf("allocation %d in the dedicated list has type %s", alloc.id, alloc.allocationType)
		}
		actualCount++
	}

	if l.count != actualCount {
		return errors.Newf("the listed number of dedicated allocations in the list (%d) does not match the actual number of allocations (%d)", l.count, actualCount)
	}

	return nil
}

func (l *dedicatedAllocationList) Count() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.count
}

func (l *dedicatedAllocationList) IsEmpty() bool {
	return l.Count() == 0
}

func (l *dedicatedAllocationList) AddStatistics(stats *memutils.Statistics) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for alloc := l.head; alloc != nil; alloc = alloc.dedicatedData.next {
		stats.BlockCount++
		stats.BlockBytes += alloc.size
		stats.AllocationCount++
		stats.AllocationBytes += alloc.size
	}
}

func (l *dedicatedAllocationList) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for alloc := l.head; alloc != nil; alloc = alloc.dedicatedData.next {
		stats.Statistics.BlockCount++
		stats.Statistics.BlockBytes += alloc.size
		stats.AddAllocation(alloc.size)
	}
}

func (l *dedicatedAllocationList) BuildStatsString(json *jwriter.ObjectState) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	arr := json.Name("Dedicated").Array()
	defer arr.End()

	for alloc := l.head; alloc != nil; alloc = alloc.dedicatedData.next {
		obj := arr.Object()
		alloc.printParameters(&obj)
		obj.End()
	}
}

// Visit calls visitor on every allocation in the list. The visitor must not register or
// unregister allocations.
func (l *dedicatedAllocationList) Visit(visitor func(alloc *Allocation)) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for alloc := l.head; alloc != nil; alloc = alloc.dedicatedData.next {
		visitor(alloc)
	}
}

func (l *dedicatedAllocationList) Register(alloc *Allocation) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.count == 0 {
		l.head = alloc
		l.tail = alloc
		l.count = 1
		return
	}

	alloc.dedicatedData.prev = l.tail
	l.tail.dedicatedData.next = alloc
	l.tail = alloc
	l.count++
}

func (l *dedicatedAllocationList) Unregister(alloc *Allocation) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	prev := alloc.dedicatedData.prev
	next := alloc.dedicatedData.next

	if prev != nil {
		prev.dedicatedData.next = next
	} else {
		l.head = next
	}

	if next != nil {
		next.dedicatedData.prev = prev
	} else {
		l.tail = prev
	}

	alloc.dedicatedData.next = nil
	alloc.dedicatedData.prev = nil
	l.count--
}
