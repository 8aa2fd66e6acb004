package bedrock

import (
	"reflect"
	"testing"
	"unsafe"
)

type trackedValue struct {
	tag int
}

func newDropCounter() (DropFn, *int) {
	count := 0
	return func(ptr unsafe.Pointer) {
		count++
	}, &count
}

func TestBlobVecPushAndGet(t *testing.T) {
	b := newBlobVec(reflect.TypeOf(trackedValue{}), nil, 2)

	i0 := b.Push(trackedValue{tag: 10})
	i1 := b.Push(trackedValue{tag: 20})

	if i0 != 0 || i1 != 1 {
		t.Fatalf("unexpected indices %d, %d", i0, i1)
	}
	if got := (*trackedValue)(b.GetUnchecked(0)).tag; got != 10 {
		t.Errorf("row 0 = %d, want 10", got)
	}
	if got := (*trackedValue)(b.GetUnchecked(1)).tag; got != 20 {
		t.Errorf("row 1 = %d, want 20", got)
	}
}

func TestBlobVecGrowsAndPreservesRows(t *testing.T) {
	b := newBlobVec(reflect.TypeOf(trackedValue{}), nil, 1)
	n := 50
	for i := 0; i < n; i++ {
		b.Push(trackedValue{tag: i})
	}
	for i := 0; i < n; i++ {
		if got := (*trackedValue)(b.GetUnchecked(i)).tag; got != i {
			t.Fatalf("row %d = %d, want %d", i, got, i)
		}
	}
}

func TestBlobVecSwapRemoveAndDrop(t *testing.T) {
	drop, count := newDropCounter()
	b := newBlobVec(reflect.TypeOf(trackedValue{}), drop, 4)
	b.Push(trackedValue{tag: 1})
	b.Push(trackedValue{tag: 2})
	b.Push(trackedValue{tag: 3})

	b.SwapRemoveAndDrop(0) // drops tag 1, moves tag 3 into slot 0

	if *count != 1 {
		t.Fatalf("drop count = %d, want 1", *count)
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if got := (*trackedValue)(b.GetUnchecked(0)).tag; got != 3 {
		t.Errorf("row 0 after swap-remove = %d, want 3 (moved from the end)", got)
	}
}

func TestBlobVecReplaceUncheckedDropsOldValueExactlyOnce(t *testing.T) {
	drop, count := newDropCounter()
	b := newBlobVec(reflect.TypeOf(trackedValue{}), drop, 2)
	b.Push(trackedValue{tag: 1})

	b.ReplaceUnchecked(0, trackedValue{tag: 99})

	if *count != 1 {
		t.Fatalf("drop count after one replace = %d, want 1", *count)
	}
	if got := (*trackedValue)(b.GetUnchecked(0)).tag; got != 99 {
		t.Errorf("row 0 after replace = %d, want 99", got)
	}
}

func TestBlobVecReplaceUncheckedDropsIncomingValueAndLeavesSlotUnchangedIfDropPanics(t *testing.T) {
	var droppedTags []int
	b := newBlobVec(reflect.TypeOf(trackedValue{}), func(ptr unsafe.Pointer) {
		droppedTags = append(droppedTags, (*trackedValue)(ptr).tag)
		panic("boom")
	}, 2)
	b.Push(trackedValue{tag: 1})

	func() {
		defer func() {
			recover()
		}()
		b.ReplaceUnchecked(0, trackedValue{tag: 99})
	}()

	if len(droppedTags) != 2 || droppedTags[0] != 1 || droppedTags[1] != 99 {
		t.Fatalf("dropped tags = %v, want [1 99] (old value drops first, then the incoming value so it isn't leaked)", droppedTags)
	}
	if got := (*trackedValue)(b.GetUnchecked(0)).tag; got != 1 {
		t.Fatalf("row 0 after panicking replace = %d, want 1 (old value must remain untouched)", got)
	}
	if b.Len() != 0 {
		t.Fatalf("len after panicking replace = %d, want 0 (held at zero so no row whose drop ran stays reachable)", b.Len())
	}
}

func TestBlobVecClearDropsEveryRowExactlyOnce(t *testing.T) {
	drop, count := newDropCounter()
	b := newBlobVec(reflect.TypeOf(trackedValue{}), drop, 4)
	b.Push(trackedValue{tag: 1})
	b.Push(trackedValue{tag: 2})
	b.Push(trackedValue{tag: 3})

	b.Clear()

	if *count != 3 {
		t.Fatalf("drop count after clear = %d, want 3", *count)
	}
	if b.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", b.Len())
	}
}

type zeroSized struct{}

func TestBlobVecZeroSizedComponent(t *testing.T) {
	b := newBlobVec(reflect.TypeOf(zeroSized{}), nil, 1)
	if !b.zeroSized {
		t.Fatal("expected zero-sized component to be detected")
	}
	for i := 0; i < 5; i++ {
		b.Push(zeroSized{})
	}
	if b.Len() != 5 {
		t.Fatalf("len = %d, want 5", b.Len())
	}
	b.SwapRemoveAndDrop(0)
	if b.Len() != 4 {
		t.Fatalf("len after swap-remove = %d, want 4", b.Len())
	}
}
