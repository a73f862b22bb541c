package devicetest

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slices"
)

// DumpObjects renders every live object as JSON, grouped by kind and ordered by handle. It
// is meant for failure messages in leak assertions.
func (d *Device) DumpObjects() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	byKind := make(map[ObjectKind][]*object)
	d.objects.Iter(func(handle uint64, obj *object) bool {
		byKind[obj.kind] = append(byKind[obj.kind], obj)
		return false
	})

	writer := jwriter.NewWriter()
	root := writer.Object()

	root.Name("Pending").Int(len(d.pending))
	root.Name("Violations").Int(len(d.violations))

	kindsObj := root.Name("Objects").Object()
	for kind := KindMemory; kind <= KindSwapchain; kind++ {
		objects := byKind[kind]
		if len(objects) == 0 {
			continue
		}
		slices.SortFunc(objects, func(left, right *object) bool {
			return left.handle < right.handle
		})

		arr := kindsObj.Name(kind.String()).Array()
		for _, obj := range objects {
			objState := arr.Object()
			objState.Name("Handle").String(strconv.FormatUint(obj.handle, 10))
			d.printObjectDetails(&objState, obj)
			objState.End()
		}
		arr.End()
	}
	kindsObj.End()

	root.End()
	return string(writer.Bytes())
}

func (d *Device) printObjectDetails(json *jwriter.ObjectState, obj *object) {
	switch obj.kind {
	case KindMemory:
		json.Name("Size").Int(obj.size)
		json.Name("MemoryTypeIndex").Int(obj.memoryTypeIndex)
		json.Name("Mapped").Bool(obj.mapped)
	case KindBuffer:
		json.Name("Size").Int(obj.size)
		json.Name("Bound").Bool(obj.bound)
	case KindImage:
		json.Name("Format").String(obj.imageInfo.Format.String())
		json.Name("Width").Int(obj.imageInfo.Extent.Width)
		json.Name("Height").Int(obj.imageInfo.Extent.Height)
		json.Name("Layout").String(obj.layout.String())
		json.Name("Swapchain").Bool(obj.swapchain)
	case KindDescriptorPool:
		json.Name("MaxSets").Int(obj.maxSets)
		json.Name("AllocatedSets").Int(len(obj.sets))
	case KindSemaphore, KindFence:
		json.Name("Signaled").Bool(obj.signaled)
		json.Name("PendingSignals").Int(obj.pendingSignal)
	case KindCommandBuffer:
		json.Name("Recording").Bool(obj.recording)
		json.Name("Pending").Int(obj.pending)
		json.Name("Commands").Int(len(obj.commands))
	case KindSwapchain:
		json.Name("Images").Int(len(obj.images))
		json.Name("OutOfDate").Bool(obj.outOfDate)
	}
}
