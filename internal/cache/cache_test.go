package cache

import "testing"

func TestGetMissing(t *testing.T) {
	t.Parallel()

	c := New[int]()

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	c := New[string]()
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want %q, true", got, ok, "v")
	}
}

func TestGetOrComputeRunsOnce(t *testing.T) {
	t.Parallel()

	c := New[int]()
	calls := 0
	compute := func() int {
		calls++

		return 42
	}

	if got := c.GetOrCompute("k", compute); got != 42 {
		t.Fatalf("first GetOrCompute = %d; want 42", got)
	}

	if got := c.GetOrCompute("k", compute); got != 42 {
		t.Fatalf("second GetOrCompute = %d; want 42", got)
	}

	if calls != 1 {
		t.Fatalf("compute ran %d times; want 1", calls)
	}
}
