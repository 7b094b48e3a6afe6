package parallel

import (
	"testing"
	"time"
)

type scratchBuf struct {
	data []byte
	used bool
}

func TestBoundedPoolBorrowReturn(t *testing.T) {
	p := NewBoundedPool(2,
		func() *scratchBuf { return &scratchBuf{data: make([]byte, 16)} },
		func(b *scratchBuf) { b.used = false },
	)

	a := p.Borrow()
	a.used = true
	b := p.Borrow()
	b.used = true

	if p.Available() != 0 {
		t.Fatalf("Available() = %d, want 0", p.Available())
	}

	p.Return(a)
	if a.used {
		t.Fatal("reset callback should clear used flag on Return")
	}
	if p.Available() != 1 {
		t.Fatalf("Available() = %d, want 1", p.Available())
	}
}

func TestBoundedPoolBorrowBlocksUntilReturn(t *testing.T) {
	p := NewBoundedPool(1,
		func() *scratchBuf { return &scratchBuf{} },
		nil,
	)

	first := p.Borrow()

	gotSecond := make(chan *scratchBuf)
	go func() {
		gotSecond <- p.Borrow()
	}()

	select {
	case <-gotSecond:
		t.Fatal("Borrow should block while the pool is exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	p.Return(first)

	select {
	case item := <-gotSecond:
		if item == nil {
			t.Fatal("Borrow returned nil after Return unblocked it")
		}
	case <-time.After(time.Second):
		t.Fatal("Borrow did not unblock after Return")
	}
}

func TestBoundedPoolTryBorrow(t *testing.T) {
	p := NewBoundedPool(1,
		func() *scratchBuf { return &scratchBuf{} },
		nil,
	)

	item, ok := p.TryBorrow()
	if !ok || item == nil {
		t.Fatal("TryBorrow should succeed on a fresh pool")
	}

	if _, ok := p.TryBorrow(); ok {
		t.Fatal("TryBorrow should fail when the pool is exhausted")
	}

	p.Return(item)
	if _, ok := p.TryBorrow(); !ok {
		t.Fatal("TryBorrow should succeed again after Return")
	}
}

func TestBoundedPoolCapacity(t *testing.T) {
	p := NewBoundedPool(4, func() *scratchBuf { return &scratchBuf{} }, nil)
	if p.Capacity() != 4 {
		t.Fatalf("Capacity() = %d, want 4", p.Capacity())
	}
	if p.Available() != 4 {
		t.Fatalf("Available() = %d, want 4", p.Available())
	}
}
