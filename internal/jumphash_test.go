package internal

import "testing"

func TestJumpHashRange(t *testing.T) {
	for _, buckets := range []int{1, 2, 7, 64} {
		for key := uint64(0); key < 1000; key++ {
			b := JumpHash(key*0x9e3779b97f4a7c15, buckets)
			if b < 0 || b >= buckets {
				t.Fatalf("JumpHash(%d, %d) = %d out of range", key, buckets, b)
			}
		}
	}
}

func TestJumpHashNoBuckets(t *testing.T) {
	if got := JumpHash(42, 0); got != 0 {
		t.Errorf("JumpHash(42, 0) = %d, want 0", got)
	}
	if got := JumpHash(42, -3); got != 0 {
		t.Errorf("JumpHash(42, -3) = %d, want 0", got)
	}
}

func TestJumpHashStable(t *testing.T) {
	// Growing from n to n+1 buckets only moves keys to the new bucket.
	for key := uint64(1); key < 500; key++ {
		k := key * 0x9e3779b97f4a7c15
		before := JumpHash(k, 8)
		after := JumpHash(k, 9)
		if after != before && after != 8 {
			t.Fatalf("key %d moved from %d to %d", k, before, after)
		}
	}
}
