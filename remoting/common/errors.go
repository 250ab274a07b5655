package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Taxonomy
// --------------------------------------------------------------------------

// ErrConnectTimeout is returned by the connection factory when a connect
// attempt does not complete within the configured bound. The failover loop
// treats it like any other connectivity failure and rolls to the next endpoint.
var ErrConnectTimeout = errors.New("connect timeout")

// ResponseError is a successfully delivered request whose broker-side
// processing failed. It carries the broker's result code and a shortened
// remark. It is a semantic failure and is never retried by the transport.
type ResponseError struct {
	Code    int32
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("broker returned code %d: %s", e.Code, e.Message)
}
