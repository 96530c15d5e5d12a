package cache

import "testing"

func TestCache(t *testing.T) {
	c, err := New[int](2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache returned a value")
	}
	c.Add("a", 1)
	c.Add("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	// "b" is now the least recently used entry and gets evicted.
	c.Add("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
}

func TestCache_BadSize(t *testing.T) {
	if _, err := New[int](0); err == nil {
		t.Fatal("expected an error for size 0")
	}
}
