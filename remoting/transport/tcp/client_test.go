package tcp

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/tbruckner/dMQ/remoting/common"
)

// TestConnectorDial tests connecting to a live endpoint and applying the
// socket tuning options
func TestConnectorDial(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	c := &clientConnector{}
	conn, err := c.Connect(listener.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()

	config := common.ClientConfig{
		Transport: common.TransportConf{
			SocketConf: common.SocketConf{WriteBufferSize: 64 * 1024, ReadBufferSize: 64 * 1024},
			TCPConf:    common.TCPConf{TCPNoDelay: true, TCPKeepAliveSec: 10, TCPLingerSec: 1},
		},
	}
	if err := c.UpgradeConnection(conn, config); err != nil {
		t.Errorf("UpgradeConnection failed: %v", err)
	}
}

// TestConnectorRefused tests that a dead endpoint fails without being
// misreported as a timeout
func TestConnectorRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	c := &clientConnector{}
	_, err = c.Connect(addr, time.Second)
	if err == nil {
		t.Fatal("Expected connect failure")
	}
	if errors.Is(err, common.ErrConnectTimeout) {
		t.Errorf("Refused connection misreported as timeout: %v", err)
	}
}
