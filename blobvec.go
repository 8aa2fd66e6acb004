package bedrock

import (
	"reflect"
	"unsafe"
)

// BlobVec is a growable, type-erased column: one component type's
// values for every row of a single archetype, packed contiguously.
// Unlike a raw []byte buffer, the backing storage is a genuinely
// typed slice obtained through reflect.MakeSlice, so Go's GC can scan
// it for pointers the way it scans any other slice of T; only the
// row-indexing arithmetic is unsafe, following the idiom
// edwinsyarief-lazyecs uses for its archetype columns.
//
// Zero-sized component types (structs with no fields) carry no
// backing array at all; BlobVec only tracks a length for them.
type BlobVec struct {
	elemType  reflect.Type
	elemSize  uintptr
	zeroSized bool
	drop      DropFn

	backing reflect.Value // the live []T; kept alive so GC won't reclaim it
	base    unsafe.Pointer

	len int
	cap int
}

func newBlobVec(elemType reflect.Type, drop DropFn, initialCap int) *BlobVec {
	b := &BlobVec{
		elemType: elemType,
		elemSize: elemType.Size(),
		drop:     drop,
	}
	if b.elemSize == 0 {
		b.zeroSized = true
		return b
	}
	if initialCap < 1 {
		initialCap = 1
	}
	b.grow(initialCap)
	return b
}

func (b *BlobVec) grow(newCap int) {
	newBacking := reflect.MakeSlice(reflect.SliceOf(b.elemType), newCap, newCap)
	if b.len > 0 {
		reflect.Copy(newBacking, b.backing.Slice(0, b.len))
	}
	b.backing = newBacking
	b.base = newBacking.UnsafePointer()
	b.cap = newCap
}

// Len is the number of initialized rows.
func (b *BlobVec) Len() int { return b.len }

// Cap is the current row capacity of the backing array.
func (b *BlobVec) Cap() int { return b.cap }

// IsEmpty reports whether the column has no rows.
func (b *BlobVec) IsEmpty() bool { return b.len == 0 }

// ElemType is the reflect.Type of one row's value.
func (b *BlobVec) ElemType() reflect.Type { return b.elemType }

// Reserve ensures capacity for at least `additional` more rows beyond
// len, growing by doubling (at least enough to cover additional) when
// the backing array is too small. No-op for zero-sized types.
func (b *BlobVec) Reserve(additional int) {
	if b.zeroSized {
		return
	}
	needed := b.len + additional
	if needed <= b.cap {
		return
	}
	newCap := b.cap * 2
	if newCap < needed {
		newCap = needed
	}
	b.grow(newCap)
}

// ReserveExact is Reserve but grows to exactly len+additional instead
// of applying the doubling policy.
func (b *BlobVec) ReserveExact(additional int) {
	if b.zeroSized {
		return
	}
	needed := b.len + additional
	if needed <= b.cap {
		return
	}
	b.grow(needed)
}

func (b *BlobVec) index(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b.base) + uintptr(i)*b.elemSize)
}

// Push appends one initialized row carrying value, growing the
// column if necessary, and returns the row index. value's dynamic
// type must match ElemType(); callers go through ComponentAccessor or
// World.Spawn, which guarantee this.
func (b *BlobVec) Push(value any) int {
	b.Reserve(1)
	idx := b.len
	b.initializeUnchecked(idx, value)
	b.len++
	return idx
}

// initializeUnchecked writes value into a slot that is assumed to
// hold no live value needing a drop (a freshly grown, never-yet-used
// slot). It never calls the column's drop hook.
func (b *BlobVec) initializeUnchecked(idx int, value any) {
	if b.zeroSized {
		return
	}
	b.backing.Index(idx).Set(reflect.ValueOf(value))
}

// ReplaceUnchecked overwrites an already-initialized row with a new
// value. If the column has a drop hook, it is invoked on the old
// value before the new one is written.
//
// Panic safety mirrors the Rust original's replace_unchecked: if the
// drop hook panics on the old value, the incoming value was never
// going to be stored, so it is dropped too (never leaked) before the
// panic is allowed to propagate, and the slot keeps its old value
// untouched. len is held at zero for the duration of the drop(old)
// call and restored only once drop(old) returns normally, so nothing
// observing the column mid-drop ever sees the row being replaced as
// initialized.
func (b *BlobVec) ReplaceUnchecked(idx int, value any) {
	if b.zeroSized {
		return
	}
	if b.drop != nil {
		saved := b.len
		b.len = 0
		oldPtr := b.index(idx)
		func() {
			defer func() {
				if r := recover(); r != nil {
					incoming := reflect.New(b.elemType)
					incoming.Elem().Set(reflect.ValueOf(value))
					b.drop(incoming.UnsafePointer())
					panic(r)
				}
			}()
			b.drop(oldPtr)
		}()
		b.len = saved
	}
	b.backing.Index(idx).Set(reflect.ValueOf(value))
}

// GetUnchecked returns a pointer to row idx's value. The caller must
// ensure idx < Len(); it's paired with ComponentAccessor's typed
// (*T)(ptr) cast.
func (b *BlobVec) GetUnchecked(idx int) unsafe.Pointer {
	if b.zeroSized {
		return nil
	}
	return b.index(idx)
}

// SwapRemoveAndDrop removes row idx by invoking the drop hook (if
// any) on it, then moving the last row into idx's place (a raw move,
// not subject to drop), and finally shrinking len by one. Removing
// the last row is just a drop-and-shrink with no move.
func (b *BlobVec) SwapRemoveAndDrop(idx int) {
	last := b.len - 1
	if b.zeroSized {
		b.len--
		return
	}
	if b.drop != nil {
		b.drop(b.index(idx))
	}
	if idx != last {
		reflect.Copy(b.backing.Slice(idx, idx+1), b.backing.Slice(last, last+1))
	}
	b.len--
}

// SwapRemoveUnchecked removes row idx without invoking any drop hook,
// returning the row's value to the caller (who takes ownership of
// whatever cleanup it may need) before moving the last row into idx's
// place and shrinking len by one.
func (b *BlobVec) SwapRemoveUnchecked(idx int) any {
	last := b.len - 1
	if b.zeroSized {
		b.len--
		return nil
	}
	removed := b.backing.Index(idx).Interface()
	if idx != last {
		reflect.Copy(b.backing.Slice(idx, idx+1), b.backing.Slice(last, last+1))
	}
	b.len--
	return removed
}

// Clear drops every row (if the column has a drop hook) and resets
// len to zero, retaining capacity. Length is dropped to zero before
// the drop loop runs, mirroring the Rust original: if a drop hook
// panics partway through, the column is left in a state where no
// remaining row claims to be initialized, rather than one that still
// exposes a row whose value has already been torn down.
func (b *BlobVec) Clear() {
	if b.zeroSized {
		b.len = 0
		return
	}
	n := b.len
	b.len = 0
	if b.drop != nil {
		for i := 0; i < n; i++ {
			b.drop(b.index(i))
		}
	}
}
