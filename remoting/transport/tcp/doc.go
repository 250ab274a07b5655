// Package tcp implements the TCP socket connector for the cluster transport.
// It provides a concrete implementation of the transport package's IConnector
// interface, with a bounded dial timeout and the socket tuning options from
// the client configuration (TCP_NODELAY, buffer sizes, keep-alive, linger).
//
// See the base package documentation for the pooling, round-robin and
// failover mechanics this connector plugs into.
package tcp
