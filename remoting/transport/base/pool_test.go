package base

import (
	"fmt"
	"net"
	"testing"
)

// pipeConn returns one half of an in-memory connection
func pipeConn() net.Conn {
	client, server := net.Pipe()
	go func() {
		// Drain and drop, the pool tests never exchange data
		buf := make([]byte, 64)
		for {
			if _, err := server.Read(buf); err != nil {
				return
			}
		}
	}()
	return client
}

// countingFactory creates pipe-backed connections and counts invocations
func countingFactory() (func() (*brokerConn, error), *int) {
	count := new(int)
	factory := func() (*brokerConn, error) {
		*count++
		return &brokerConn{conn: pipeConn(), endpoint: fmt.Sprintf("ep-%d", *count)}, nil
	}
	return factory, count
}

// TestPoolCreatesOnEmpty tests that an empty pool delegates to the factory
func TestPoolCreatesOnEmpty(t *testing.T) {
	factory, count := countingFactory()
	p := newConnPool(4, factory)
	defer p.close()

	c1, err := p.acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	c2, err := p.acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if *count != 2 {
		t.Errorf("Expected 2 factory calls, got %d", *count)
	}
	if c1 == c2 {
		t.Error("Two concurrent owners got the same connection")
	}
}

// TestPoolReusesHealthy tests that a healthy release makes the connection
// available for the next acquire
func TestPoolReusesHealthy(t *testing.T) {
	factory, count := countingFactory()
	p := newConnPool(4, factory)
	defer p.close()

	c, _ := p.acquire()
	p.release(c, true)

	again, err := p.acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if again != c {
		t.Error("Healthy connection was not reused")
	}
	if *count != 1 {
		t.Errorf("Expected 1 factory call, got %d", *count)
	}
}

// TestPoolDiscardsUnhealthy tests that a failed connection is never handed
// out again - the next acquire is forced through the factory
func TestPoolDiscardsUnhealthy(t *testing.T) {
	factory, count := countingFactory()
	p := newConnPool(4, factory)
	defer p.close()

	c, _ := p.acquire()
	p.release(c, false)

	again, err := p.acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if again == c {
		t.Error("Unhealthy connection was reused")
	}
	if *count != 2 {
		t.Errorf("Expected 2 factory calls, got %d", *count)
	}

	// The discarded connection must be closed
	if _, err := c.conn.Write([]byte("x")); err == nil {
		t.Error("Discarded connection is still open")
	}
}

// TestPoolCloseIdempotent tests that closing twice is safe and that idle
// connections are closed
func TestPoolCloseIdempotent(t *testing.T) {
	factory, _ := countingFactory()
	p := newConnPool(4, factory)

	c, _ := p.acquire()
	p.release(c, true)

	p.close()
	p.close()

	if _, err := c.conn.Write([]byte("x")); err == nil {
		t.Error("Idle connection not closed on pool close")
	}

	// A connection released after close is closed instead of pooled
	late, _ := factory()
	p.release(late, true)
	if _, err := late.conn.Write([]byte("x")); err == nil {
		t.Error("Connection released after close is still open")
	}
}
