package testutils

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrWriteFailed is returned by a ConnectionMock set up with FailWrites.
var ErrWriteFailed = errors.New("testutils: write failed")

// ConnectionMock is a mock implementation of net.Conn carrying ADC lines.
// Reads drain the lines given at creation; writes are recorded.
type ConnectionMock struct {
	mu         sync.Mutex
	readBuf    *bytes.Buffer
	writeBuf   *bytes.Buffer
	writes     int
	failWrites bool
	closed     bool
}

// NewConnectionMock creates a mock connection that reads back the given
// lines, concatenated as-is (terminators must be included).
func NewConnectionMock(lines ...string) *ConnectionMock {
	return &ConnectionMock{
		readBuf:  bytes.NewBufferString(strings.Join(lines, "")),
		writeBuf: &bytes.Buffer{},
	}
}

// FailWrites makes every following Write return ErrWriteFailed.
func (m *ConnectionMock) FailWrites() {
	m.mu.Lock()
	m.failWrites = true
	m.mu.Unlock()
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return 0, ErrWriteFailed
	}
	m.writes++
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1511}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// Written returns everything written to the mock connection.
func (m *ConnectionMock) Written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeBuf.String()
}

// WriteCalls returns the number of successful Write calls.
func (m *ConnectionMock) WriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// IsClosed reports whether Close was called.
func (m *ConnectionMock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
