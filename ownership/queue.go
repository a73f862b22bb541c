package ownership

import (
	"context"
	"fmt"

	"github.com/vkngwrapper/arsenal/resman/device"
	"github.com/vkngwrapper/arsenal/resman/gpumem"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Destructor is a pending teardown, produced by Deferred.Defer or built with
// DestructionQueue.PushFunc
type Destructor struct {
	// Kind is the context the destructor needs when it runs
	Kind Kind
	// Name identifies what will be destroyed in logs and leak reports
	Name string

	fn func(dev device.Device, allocator *gpumem.Allocator)
}

// Run checks that the context the destructor needs was provided and runs it
func (d Destructor) Run(dev device.Device, allocator *gpumem.Allocator) {
	if d.fn == nil {
		panic("ownership: ran an empty Destructor")
	}

	checkContext(d.Kind, d.Name, dev, allocator)
	d.fn(dev, allocator)
}

// DestructionQueue holds destructors until Dispatch runs them, most recently pushed first.
// Resources created later usually depend on ones created earlier, so reverse order tears
// dependents down before the things they reference.
//
// The queue is not safe for concurrent use.
type DestructionQueue struct {
	logger *slog.Logger
	// Dispatch order: the last element is the front of the queue
	entries []Destructor
}

// NewDestructionQueue creates an empty queue. A nil logger logs through slog.Default.
func NewDestructionQueue(logger *slog.Logger) *DestructionQueue {
	if logger == nil {
		logger = slog.Default()
	}

	return &DestructionQueue{logger: logger}
}

// Push places destructor at the front of the queue
func (q *DestructionQueue) Push(destructor Destructor) {
	if destructor.fn == nil {
		panic("ownership: pushed an empty Destructor")
	}

	q.entries = append(q.entries, destructor)
}

// PushFunc places a destructor that runs fn at the front of the queue. The destructor
// panics if it is run more than once.
func (q *DestructionQueue) PushFunc(name string, kind Kind, fn func(dev device.Device, allocator *gpumem.Allocator)) {
	ran := false
	q.Push(Destructor{
		Kind: kind,
		Name: name,
		fn: func(dev device.Device, allocator *gpumem.Allocator) {
			if ran {
				panic(fmt.Sprintf("ownership: ran the destructor of %s, which is already destroyed", name))
			}
			ran = true

			fn(dev, allocator)
		},
	})
}

func (q *DestructionQueue) Len() int {
	return len(q.entries)
}

// Dispatch runs every queued destructor, most recently pushed first, and leaves the queue
// empty. If any destructor needs context that wasn't provided, Dispatch panics before
// running anything. Destructors pushed while Dispatch runs wait for the next Dispatch.
//
// Each destructor leaves the queue only once it has returned, so if one panics, it and
// everything behind it are still queued and will be reported by Drop.
func (q *DestructionQueue) Dispatch(dev device.Device, allocator *gpumem.Allocator) {
	for _, entry := range q.entries {
		checkContext(entry.Kind, entry.Name, dev, allocator)
	}

	// Entries pushed during dispatch land past pending
	for pending := len(q.entries); pending > 0; pending-- {
		entry := q.entries[pending-1]
		q.logger.Debug("DestructionQueue::Dispatch",
			slog.String("Name", entry.Name),
			slog.String("Kind", entry.Kind.String()),
		)
		entry.fn(dev, allocator)

		q.entries = slices.Delete(q.entries, pending-1, pending)
	}
}

// Drop releases the queue. A queue that still holds destructors has leaked them: each one
// is logged with an [UNRELEASED DESTRUCTOR] marker and Drop panics.
func (q *DestructionQueue) Drop() {
	if len(q.entries) == 0 {
		return
	}

	for i := len(q.entries) - 1; i >= 0; i-- {
		q.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED DESTRUCTOR] destruction queue dropped before dispatch",
			slog.String("name", q.entries[i].Name),
			slog.String("kind", q.entries[i].Kind.String()),
		)
	}

	panic(fmt.Sprintf("ownership: destruction queue dropped with %d undispatched destructors", len(q.entries)))
}
