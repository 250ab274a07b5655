package transport

import (
	"net"
	"time"

	"github.com/tbruckner/dMQ/remoting/common"
)

// --------------------------------------------------------------------------
// Cluster Transport
// --------------------------------------------------------------------------

// IBrokerTransport is the interface for the client side cluster transport.
// One instance serves one logical cluster member and is safe for concurrent
// use from multiple goroutines. Each in-flight request blocks its caller for
// the duration of the network round trip.
type IBrokerTransport interface {
	// Connect initializes the transport with the given configuration. The
	// endpoint list must be non-empty and is immutable afterwards.
	Connect(config common.ClientConfig) error

	// Invoke builds a command with the given operation code, encodes the body
	// (nil, raw bytes, or any value serialized to JSON bytes), merges the
	// extra fields into the header and executes the round trip. A non-zero
	// result code is translated into a *common.ResponseError.
	Invoke(code int32, body any, fields map[string]any) (*common.Command, error)

	// Send executes the signed request/response exchange for a prepared
	// command with failover across all configured endpoints.
	Send(cmd *common.Command) (*common.Command, error)

	// Close tears the transport down, closing every pooled connection.
	// It is idempotent.
	Close() error
}

// --------------------------------------------------------------------------
// Connector (dependency injection for the transport medium)
// --------------------------------------------------------------------------

// IConnector defines the interface for transport-specific connection operations
type IConnector interface {
	// Connect establishes a single connection to the endpoint within the
	// given timeout. A timeout must surface common.ErrConnectTimeout.
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}
