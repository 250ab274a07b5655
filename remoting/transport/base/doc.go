// Package base provides the protocol-agnostic core of the cluster transport:
// the connection pool, the round-robin endpoint selection, the signed
// request/response exchange and the failover policy. It serves as a base
// layer that is extended with protocol-specific connectors (see the tcp
// package).
//
// Key Components:
//
//   - brokerTransport: Core client implementation for one cluster member. It
//     holds the ordered endpoint list, performs round-robin endpoint
//     selection whenever the pool must create a new connection and walks all
//     endpoints once on failure before surfacing the last error.
//
//   - connPool: Bounded set of reusable connections. The pool itself has no
//     endpoint knowledge - creation is delegated to the owner's factory. A
//     connection that failed is discarded instead of returned, which forces
//     the next acquire through the factory and thus onto the next endpoint.
//
// Concurrency:
//
//	All public methods are safe for concurrent use. The round-robin cursor is
//	an atomic counter, the idle set is a buffered channel, and a checked-out
//	connection is owned exclusively by its request until released. Each
//	request blocks its calling goroutine for the whole round trip - this is a
//	blocking, call-per-connection model, not a multiplexed one.
package base
