package arena

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"testing"
)

func collect[K, V any](a *Arena[K, V]) ([]K, []V) {
	var keys []K
	var vals []V
	for k, v := range a.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return keys, vals
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("expected panic with %v, got %v", target, r)
		}
	}()
	fn()
}

func TestArena_New(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		a := New[string, int](0)

		if a.Len() != 0 {
			t.Errorf("expected Len=0, got %d", a.Len())
		}
		if !a.Front().IsEnd() || !a.Back().IsEnd() {
			t.Error("front and back of an empty arena should be end")
		}
	})

	t.Run("negative capacity", func(t *testing.T) {
		a := New[string, int](-5)
		a.Append("a", 1)

		if a.Len() != 1 {
			t.Errorf("expected Len=1, got %d", a.Len())
		}
	})
}

func TestArena_Append(t *testing.T) {
	a := New[string, int](4)
	ra := a.Append("a", 1)
	rb := a.Append("b", 2)
	rc := a.Append("c", 3)

	keys, vals := collect(a)
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Errorf("unexpected keys %v", keys)
	}
	if !slices.Equal(vals, []int{1, 2, 3}) {
		t.Errorf("unexpected values %v", vals)
	}
	if a.Front() != ra || a.Back() != rc {
		t.Error("front/back do not match appended refs")
	}
	if a.Next(ra) != rb || a.Prev(rc) != rb {
		t.Error("links do not follow append order")
	}
	if !a.Next(rc).IsEnd() || !a.Prev(ra).IsEnd() {
		t.Error("ends should link to the sentinel")
	}
	if a.Next(Ref{}) != ra || a.Prev(Ref{}) != rc {
		t.Error("end should wrap to front and back")
	}
}

func TestArena_Remove(t *testing.T) {
	t.Run("middle", func(t *testing.T) {
		a := New[string, int](0)
		a.Append("a", 1)
		rb := a.Append("b", 2)
		rc := a.Append("c", 3)

		next := a.Remove(rb)
		if next != rc {
			t.Errorf("expected next=%v, got %v", rc, next)
		}
		if a.Valid(rb) {
			t.Error("removed ref should be stale")
		}
		keys, _ := collect(a)
		if !slices.Equal(keys, []string{"a", "c"}) {
			t.Errorf("unexpected keys %v", keys)
		}
	})

	t.Run("last returns end", func(t *testing.T) {
		a := New[string, int](0)
		a.Append("a", 1)
		rb := a.Append("b", 2)

		if next := a.Remove(rb); !next.IsEnd() {
			t.Errorf("expected end, got %v", next)
		}
		if a.Len() != 1 {
			t.Errorf("expected Len=1, got %d", a.Len())
		}
	})

	t.Run("stale ref panics", func(t *testing.T) {
		a := New[string, int](0)
		r := a.Append("a", 1)
		a.Remove(r)

		expectPanic(t, ErrStaleRef, func() { a.Remove(r) })
		expectPanic(t, ErrStaleRef, func() { a.Key(r) })
		expectPanic(t, ErrStaleRef, func() { a.Remove(Ref{}) })
	})
}

func TestArena_SlotReuse(t *testing.T) {
	a := New[string, int](0)
	a.Append("a", 1)
	rb := a.Append("b", 2)
	a.Append("c", 3)

	a.Remove(rb)
	if a.FreeSlots() != 1 {
		t.Fatalf("expected 1 free slot, got %d", a.FreeSlots())
	}

	rd := a.Append("d", 4)
	if rd.Slot != rb.Slot {
		t.Errorf("expected slot %d to be reused, got %d", rb.Slot, rd.Slot)
	}
	if rd.Gen == rb.Gen {
		t.Error("reused slot must carry a new generation")
	}
	if a.Valid(rb) {
		t.Error("old ref must not resolve to the new entry")
	}
	if a.Slots() != 3 || a.FreeSlots() != 0 {
		t.Errorf("unexpected slot accounting: slots=%d free=%d", a.Slots(), a.FreeSlots())
	}

	// Reused slots still append at the tail.
	keys, _ := collect(a)
	if !slices.Equal(keys, []string{"a", "c", "d"}) {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestArena_AdvanceDistance(t *testing.T) {
	a := New[string, int](0)
	refs := []Ref{a.Append("a", 1), a.Append("b", 2), a.Append("c", 3)}

	for i, r := range refs {
		if got := a.Advance(i); got != r {
			t.Errorf("Advance(%d)=%v, want %v", i, got, r)
		}
		if got := a.Distance(r); got != i {
			t.Errorf("Distance(%v)=%d, want %d", r, got, i)
		}
	}
	if !a.Advance(3).IsEnd() || !a.Advance(-1).IsEnd() {
		t.Error("out of range positions should yield end")
	}
}

func TestArena_Sort(t *testing.T) {
	a := New[string, int](0)
	rc := a.Append("c", 1)
	ra := a.Append("a", 1)
	rb := a.Append("b", 0)

	a.Sort(func(_ string, av int, _ string, bv int) int { return cmp.Compare(av, bv) })

	keys, _ := collect(a)
	// "c" and "a" tie on value and keep their relative order.
	if !slices.Equal(keys, []string{"b", "c", "a"}) {
		t.Errorf("unexpected order %v", keys)
	}
	for _, r := range []Ref{ra, rb, rc} {
		if !a.Valid(r) {
			t.Errorf("ref %v invalidated by sort", r)
		}
	}
	if a.Key(ra) != "a" || a.Front() != rb || a.Back() != ra {
		t.Error("refs do not follow their entries after sort")
	}

	var back []string
	for k := range a.Backward() {
		back = append(back, k)
	}
	if !slices.Equal(back, []string{"a", "c", "b"}) {
		t.Errorf("backward links not rebuilt: %v", back)
	}
}

func TestArena_Clear(t *testing.T) {
	a := New[string, int](0)
	ra := a.Append("a", 1)
	a.Append("b", 2)

	a.Clear()
	if a.Len() != 0 || !a.Front().IsEnd() {
		t.Fatal("arena not empty after clear")
	}
	if a.Valid(ra) {
		t.Error("refs must be stale after clear")
	}

	rn := a.Append("n", 9)
	if a.Valid(ra) || !a.Valid(rn) {
		t.Error("slot reuse after clear must not revive old refs")
	}
}

func TestArena_IterStop(t *testing.T) {
	a := New[int, int](0)
	for i := range 10 {
		a.Append(i, i)
	}

	n := 0
	for range a.Refs() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected early stop at 3, got %d", n)
	}
}

func BenchmarkArena_Append(b *testing.B) {
	b.ReportAllocs()
	a := New[int, int](b.N)
	for i := 0; i < b.N; i++ {
		a.Append(i, i)
	}
}

func TestArena_GenerationWraps(t *testing.T) {
	a := New[string, int](0)
	first := a.Append("a", 1)
	a.Remove(first)
	old := a.Append("b", 2)
	if old.Slot != first.Slot || old.Gen != 2 {
		t.Fatalf("expected slot %d gen 2, got %+v", first.Slot, old)
	}

	a.nodes[old.Slot].gen = math.MaxUint32
	a.Remove(Ref{Slot: old.Slot, Gen: math.MaxUint32})
	if got := a.nodes[old.Slot].gen; got != 1 {
		t.Fatalf("generation should skip 0 on wrap, got %d", got)
	}

	reused := a.Append("c", 3)
	if reused.Gen != 1 || reused.Gen != first.Gen {
		t.Fatalf("expected reused gen to equal the first gen, got %+v", reused)
	}
	if !a.Valid(first) {
		t.Error("a ref from 2^32 generations ago matches again")
	}
}
