package adc

import "testing"

func TestByteBufferPool(t *testing.T) {
	p := newByteBufferPool(32)

	buf := p.Get()
	if buf.Len() != 0 || buf.Cap() < 32 {
		t.Fatalf("unexpected fresh buffer: len=%d cap=%d", buf.Len(), buf.Cap())
	}

	buf.WriteString("BSTA AAAB 000\n")
	p.Put(buf)

	buf = p.Get()
	if buf.Len() != 0 {
		t.Errorf("pooled buffer not reset: %q", buf.String())
	}
	p.Put(buf)
}

func TestByteBufferPool_DropsLargeBuffers(t *testing.T) {
	p := newByteBufferPool(32)

	buf := p.Get()
	buf.Grow(2 * maxPooledBuffer)
	buf.WriteString("x")
	p.Put(buf)

	// Dropped, so its content is not reset.
	if buf.Len() != 1 {
		t.Errorf("large buffer should not be reset, len=%d", buf.Len())
	}
}
