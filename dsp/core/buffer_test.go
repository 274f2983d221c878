package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float32, 4, 8)
	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}
	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrows(t *testing.T) {
	buf := make([]float32, 2)
	out := EnsureLen(buf, 16)
	if len(out) != 16 {
		t.Fatalf("len = %d, want 16", len(out))
	}
	if len(EnsureLen(out, 0)) != 0 {
		t.Fatal("EnsureLen(0) should return an empty slice")
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float32, 2)
	n := CopyInto(dst, []float32{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
