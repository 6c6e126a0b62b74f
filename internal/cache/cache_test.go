package cache

import (
	"errors"
	"testing"
)

func TestGetOrCreateOnce(t *testing.T) {
	c := New[string, int]()
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestGetOrCreateError(t *testing.T) {
	c := New[int, string]()
	boom := errors.New("boom")
	if _, err := c.GetOrCreate(1, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrCreate() error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed create, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("failed create left an entry")
	}
}

func TestRangeInsertionOrder(t *testing.T) {
	c := New[int, int]()
	for _, k := range []int{5, 1, 9, 3} {
		c.Set(k, k*10)
	}
	c.Set(1, 11)

	var keys []int
	c.Range(func(k, v int) bool {
		keys = append(keys, k)
		return true
	})
	want := []int{5, 1, 9, 3}
	if len(keys) != len(want) {
		t.Fatalf("Range() visited %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Range() visited %v, want %v", keys, want)
		}
	}
	if v, _ := c.Get(1); v != 11 {
		t.Errorf("Get(1) = %d, want 11", v)
	}

	visited := 0
	c.Range(func(int, int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Range() stopped after %d entries, want 1", visited)
	}
}

func TestClearReleases(t *testing.T) {
	c := New[int, int]()
	c.Set(1, 10)
	c.Set(2, 20)

	var released []int
	c.Clear(func(v int) { released = append(released, v) })
	if len(released) != 2 || released[0] != 10 || released[1] != 20 {
		t.Errorf("released = %v, want [10 20]", released)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	c.Clear(nil)
}
