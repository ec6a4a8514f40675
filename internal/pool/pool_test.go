package pool

import "testing"

type item struct {
	id       int
	disposed int
}

func newCounter() (func() *item, *int) {
	n := 0
	return func() *item {
		n++
		return &item{id: n}
	}, &n
}

func TestObtainCreatesOnMiss(t *testing.T) {
	newFn, made := newCounter()
	p := New(newFn, nil, 0)

	a := p.Obtain()
	b := p.Obtain()
	if a == b {
		t.Fatal("two obtains returned the same instance")
	}
	if *made != 2 {
		t.Errorf("expected 2 instances created, got %d", *made)
	}
}

func TestFreeThenObtainReuses(t *testing.T) {
	newFn, made := newCounter()
	p := New(newFn, nil, 0)

	a := p.Obtain()
	p.Free(a)
	b := p.Obtain()
	if a != b {
		t.Error("freed instance was not reused")
	}
	if *made != 1 {
		t.Errorf("expected 1 instance created, got %d", *made)
	}
}

func TestObtainedInstancesAreDistinct(t *testing.T) {
	newFn, _ := newCounter()
	p := New(newFn, nil, 0)
	p.Fill(3)

	seen := map[*item]bool{}
	for i := 0; i < 5; i++ {
		obj := p.Obtain()
		if seen[obj] {
			t.Fatalf("instance %d handed out twice while still held", obj.id)
		}
		seen[obj] = true
	}
}

func TestClearTearsDownEachOnce(t *testing.T) {
	newFn, _ := newCounter()
	p := New(newFn, func(it *item) { it.disposed++ }, 0)

	held := []*item{p.Obtain(), p.Obtain(), p.Obtain()}
	for _, it := range held {
		p.Free(it)
	}
	p.Clear()
	p.Clear()

	for _, it := range held {
		if it.disposed != 1 {
			t.Errorf("instance %d disposed %d times, want 1", it.id, it.disposed)
		}
	}
	if p.Len() != 0 {
		t.Errorf("pool still holds %d instances", p.Len())
	}
	if p.Peak() != 3 {
		t.Errorf("Peak() = %d, want 3", p.Peak())
	}
}

func TestFreeBeyondMaxTearsDown(t *testing.T) {
	newFn, _ := newCounter()
	p := New(newFn, func(it *item) { it.disposed++ }, 1)

	a, b := p.Obtain(), p.Obtain()
	p.Free(a)
	p.Free(b)
	if a.disposed != 0 || b.disposed != 1 {
		t.Errorf("disposed counts a=%d b=%d, want 0 and 1", a.disposed, b.disposed)
	}
}
