package base

import (
	"net"
	"sync"
)

// --------------------------------------------------------------------------
// Pooled Connection
// --------------------------------------------------------------------------

// brokerConn is a live connection pinned to the endpoint chosen at creation
// time for its entire lifetime. It is owned exclusively by at most one
// in-flight request at a time, otherwise by the pool's idle set.
type brokerConn struct {
	conn     net.Conn
	endpoint string
}

func (c *brokerConn) close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// --------------------------------------------------------------------------
// Connection Pool
// --------------------------------------------------------------------------

// defaultIdleSize bounds the idle set of a pool when the owner does not
// specify a size
const defaultIdleSize = 16

// connPool supplies ready-to-use connections for a single owner, amortizing
// handshake cost across requests. The pool has no endpoint or protocol
// knowledge - creating a connection is delegated to the owner's factory,
// which is where round-robin endpoint selection happens.
//
// The idle set is a buffered channel: goroutine-safe, no hand-out order
// guarantee beyond FIFO on the channel itself.
type connPool struct {
	idle    chan *brokerConn
	factory func() (*brokerConn, error)

	mu     sync.Mutex
	closed bool
}

// newConnPool creates a pool with the given idle set size and factory
func newConnPool(size int, factory func() (*brokerConn, error)) *connPool {
	if size <= 0 {
		size = defaultIdleSize
	}
	return &connPool{
		idle:    make(chan *brokerConn, size),
		factory: factory,
	}
}

// acquire returns an idle connection if one exists, otherwise it invokes the
// factory to create a new one. A factory timeout surfaces as
// common.ErrConnectTimeout (wrapped by the factory itself).
func (p *connPool) acquire() (*brokerConn, error) {
	select {
	case c := <-p.idle:
		return c, nil
	default:
		return p.factory()
	}
}

// release returns a healthy connection to the idle set for reuse. An
// unhealthy connection is closed and discarded, so a future acquire is forced
// through the factory and rolls to the next endpoint. A healthy connection
// that does not fit the idle set is closed too.
func (p *connPool) release(c *brokerConn, healthy bool) {
	if c == nil {
		return
	}
	if !healthy {
		c.close()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		c.close()
		return
	}
	select {
	case p.idle <- c:
	default:
		c.close()
	}
}

// close closes every idle connection and marks the pool closed. It is
// idempotent; connections released after close are closed on release.
func (p *connPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	for {
		select {
		case c := <-p.idle:
			c.close()
		default:
			return
		}
	}
}
