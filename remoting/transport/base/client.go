package base

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/tbruckner/dMQ/remoting/auth"
	"github.com/tbruckner/dMQ/remoting/codec"
	"github.com/tbruckner/dMQ/remoting/common"
	"github.com/tbruckner/dMQ/remoting/transport"
)

var Logger = logger.GetLogger("remoting/transport")

// --------------------------------------------------------------------------
// Cluster Transport
// --------------------------------------------------------------------------

// brokerTransport implements the core cluster transport functionality
// independent of the specific transport medium. It owns the endpoint list of
// one cluster member, the connection pool, the round-robin cursor and the
// signing context.
type brokerTransport struct {
	connector transport.IConnector
	codec     codec.ICommandCodec
	config    common.ClientConfig
	signer    *auth.Signer

	pool   *connPool
	cursor uint64 // Atomic counter for round-robin endpoint selection

	mu     sync.Mutex
	closed bool
}

// --------------------------------------------------------------------------
// Transport Factory Method (used for tcp, etc.)
// --------------------------------------------------------------------------

// NewBaseTransport creates a new base cluster transport with the specified
// connector and codec
func NewBaseTransport(connector transport.IConnector, commandCodec codec.ICommandCodec) transport.IBrokerTransport {
	return &brokerTransport{
		connector: connector,
		codec:     commandCodec,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IBrokerTransport)
// --------------------------------------------------------------------------

func (t *brokerTransport) Connect(config common.ClientConfig) error {
	if len(config.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	signer, err := auth.NewSigner(config.Credentials)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pool != nil && !t.closed {
		return fmt.Errorf("transport already connected")
	}

	t.config = config
	t.signer = signer
	t.closed = false
	t.pool = newConnPool(len(config.Endpoints), t.newConnection)

	Logger.Infof("Transport for %d endpoints ready (%s, %s)",
		len(config.Endpoints), t.connector.GetName(), t.mode())

	return nil
}

func (t *brokerTransport) Send(cmd *common.Command) (*common.Command, error) {
	t.mu.Lock()
	if t.pool == nil || t.closed {
		t.mu.Unlock()
		return nil, fmt.Errorf("transport not connected")
	}
	pool := t.pool
	t.mu.Unlock()

	// Assign the correlation identifier exactly once per request
	if cmd.Opaque == 0 {
		cmd.Opaque = common.NextOpaque()
	}

	// Enrich, then sign: the signature covers the final field set
	t.signer.Enrich(cmd)
	t.signer.Sign(cmd)

	payload, err := t.codec.Encode(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %v", err)
	}

	metrics.GetOrCreateCounter("dmq_requests_total").Inc()

	// Failover loop: one attempt per configured endpoint. The pool creates
	// connections through the round-robin factory, so every forced recreate
	// after a failure lands on the next endpoint.
	var lastErr error
	attempts := len(t.config.Endpoints)

	for i := 0; i < attempts; i++ {
		conn, err := pool.acquire()
		if err != nil {
			lastErr = err
			Logger.Debugf("Attempt %d/%d failed to connect: %v", i+1, attempts, err)
			metrics.GetOrCreateCounter("dmq_request_failures_total").Inc()
			continue
		}

		resp, err := t.exchange(conn, payload)
		if err == nil {
			pool.release(conn, true)
			return resp, nil
		}

		// Discard the connection and roll to the next endpoint
		pool.release(conn, false)
		lastErr = err
		Logger.Debugf("Attempt %d/%d against %s failed: %v", i+1, attempts, conn.endpoint, err)
		metrics.GetOrCreateCounter("dmq_failovers_total").Inc()
	}

	return nil, fmt.Errorf("all %d endpoints failed: %w", attempts, lastErr)
}

func (t *brokerTransport) Invoke(code int32, body any, fields map[string]any) (*common.Command, error) {
	cmd := common.NewCommand(code)

	switch b := body.(type) {
	case nil:
	case []byte:
		cmd.Body = b
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %v", err)
		}
		cmd.Body = encoded
	}

	if len(fields) > 0 {
		cmd.Fields.Merge(fields, nil)
	}

	resp, err := t.Send(cmd)
	if err != nil {
		return nil, err
	}

	// A non-zero result code is a broker-side failure, never retried here
	if !resp.IsSuccess() {
		return nil, &common.ResponseError{
			Code:    resp.Code,
			Message: common.ShortRemark(resp.Remark),
		}
	}
	return resp, nil
}

func (t *brokerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.pool != nil {
		t.pool.close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// newConnection is the pool's connection factory. It atomically advances the
// round-robin cursor, selects the endpoint and opens a connection with a
// bounded connect timeout. The connection stays pinned to that endpoint for
// its entire lifetime.
func (t *brokerTransport) newConnection() (*brokerConn, error) {
	endpoints := t.config.Endpoints
	idx := (atomic.AddUint64(&t.cursor, 1) - 1) % uint64(len(endpoints))
	endpoint := endpoints[idx]

	conn, err := t.connector.Connect(endpoint, t.config.ConnectTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to upgrade connection to %s: %v", endpoint, err)
	}

	metrics.GetOrCreateCounter(
		fmt.Sprintf(`dmq_connections_created_total{endpoint=%q}`, endpoint)).Inc()
	Logger.Debugf("Created connection to %s", endpoint)

	return &brokerConn{conn: conn, endpoint: endpoint}, nil
}

// exchange writes the command and synchronously reads the response from the
// same connection. Write-then-read is strictly sequential, no pipelining.
func (t *brokerTransport) exchange(conn *brokerConn, payload []byte) (*common.Command, error) {
	if t.config.TimeoutSecond > 0 {
		deadline := time.Now().Add(time.Duration(t.config.TimeoutSecond) * time.Second)
		conn.conn.SetDeadline(deadline)
	}

	if err := writeFrame(conn.conn, payload); err != nil {
		return nil, err
	}

	data, err := readFrame(conn.conn)
	if err != nil {
		return nil, err
	}

	resp := &common.Command{}
	if err := t.codec.Decode(data, resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}
	return resp, nil
}

// mode names the deployment variant for logging
func (t *brokerTransport) mode() string {
	if t.signer != nil {
		return "secured"
	}
	return "unsecured"
}
