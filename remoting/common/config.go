package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration structs
// --------------------------------------------------------------------------

const (
	// DefaultConnectTimeoutMs bounds a single connect attempt
	DefaultConnectTimeoutMs = 3000

	// DefaultChannel is the channel identifier used for signed requests when
	// the credentials do not name one
	DefaultChannel = "CLOUD"
)

// Credentials enables the secured deployment mode. The transport signs every
// outgoing request when credentials are configured; without them requests are
// sent unsigned. The choice is made once at construction, never per call.
type Credentials struct {
	AccessKey string
	SecretKey string
	Channel   string
}

// Validate checks that both credential halves are present and applies the
// default channel. A half-configured credential is a configuration error.
func (c *Credentials) Validate() error {
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("credentials require both access key and secret key")
	}
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
	return nil
}

// SocketConf holds generic socket tuning options
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific tuning options
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// TransportConf groups the socket level settings of the client transport
type TransportConf struct {
	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters for one cluster transport.
// The endpoint list is fixed at construction and immutable afterwards, its
// order is only the round-robin cycle basis, not a priority.
type ClientConfig struct {
	// Endpoints is the ordered address list (host:port) of one cluster member
	Endpoints []string

	// ConnectTimeoutMs bounds a single connect attempt (default 3000 ms)
	ConnectTimeoutMs int

	// TimeoutSecond is the per-request write/read deadline (0 = none)
	TimeoutSecond int

	// Credentials enables request signing when set
	Credentials *Credentials

	// Transport holds socket level settings
	Transport TransportConf

	// Logging configuration
	LogLevel string
}

// ConnectTimeout returns the connect timeout as a duration, applying the default
func (c *ClientConfig) ConnectTimeout() time.Duration {
	ms := c.ConnectTimeoutMs
	if ms <= 0 {
		ms = DefaultConnectTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Secured reports whether the config selects the secured deployment mode
func (c *ClientConfig) Secured() bool {
	return c.Credentials != nil
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General client settings
	addSection("Client Configuration")
	addField("Connect Timeout", fmt.Sprintf("%d ms", c.ConnectTimeoutMs))
	addField("Request Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	if c.Secured() {
		addField("Mode", "secured")
		addField("Access Key", c.Credentials.AccessKey)
		addField("Channel", c.Credentials.Channel)
	} else {
		addField("Mode", "unsecured")
	}

	// Socket settings
	addSection("Transport")
	addField("TCP NoDelay", fmt.Sprintf("%t", c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
