package common

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Command Structure
// --------------------------------------------------------------------------

// Command represents a single protocol unit used for both requests and responses.
// A request carries an operation code, a response carries a result code (0 = success).
type Command struct {
	// Code is the operation code (request) or result code (response)
	Code int32 `json:"code"`

	// Opaque is the correlation identifier, assigned once per request and non-zero
	Opaque int32 `json:"opaque"`

	// Fields holds the extension fields of the header in insertion order
	Fields *Fields `json:"extFields,omitempty"`

	// Remark is a human-readable message, set by the broker on responses
	Remark string `json:"remark,omitempty"`

	// Body is the optional binary payload
	Body []byte `json:"body,omitempty"`
}

// --------------------------------------------------------------------------
// Command Factory Functions
// --------------------------------------------------------------------------

// NewCommand creates a new request command with the given operation code
func NewCommand(code int32) *Command {
	return &Command{
		Code:   code,
		Fields: NewFields(),
	}
}

// NewResponse creates a new response command with the given result code and remark
func NewResponse(code int32, remark string) *Command {
	return &Command{
		Code:   code,
		Fields: NewFields(),
		Remark: remark,
	}
}

// --------------------------------------------------------------------------
// Command Methods
// --------------------------------------------------------------------------

// EnsureFields initializes the extension field bag if it is nil
func (c *Command) EnsureFields() *Fields {
	if c.Fields == nil {
		c.Fields = NewFields()
	}
	return c.Fields
}

// IsSuccess reports whether a response carries the success result code
func (c *Command) IsSuccess() bool {
	return c.Code == CodeSuccess
}

// String returns a short representation for logging
func (c *Command) String() string {
	return fmt.Sprintf("Command{code=%d, opaque=%d, fields=%d, body=%d bytes}",
		c.Code, c.Opaque, c.Fields.Len(), len(c.Body))
}

// --------------------------------------------------------------------------
// Correlation Identifier
// --------------------------------------------------------------------------

var opaqueCounter int32

// NextOpaque returns the next correlation identifier. The identifier is never
// zero so a caller can distinguish "unset" from "assigned". Round trips are
// strictly synchronous per connection, so the counter is not used to
// demultiplex responses - it only has to be unique enough for request matching
// by the caller.
func NextOpaque() int32 {
	for {
		id := atomic.AddInt32(&opaqueCounter, 1)
		if id != 0 {
			return id
		}
	}
}

// --------------------------------------------------------------------------
// Result Codes
// --------------------------------------------------------------------------

const (
	// CodeSuccess indicates successful broker-side processing
	CodeSuccess int32 = 0
)

// exceptionMarker separates the exception class prefix from the actual error
// message in broker remarks (e.g. "com.foo.Exception: bad request, at ...")
const exceptionMarker = "Exception: "

// ShortRemark shortens a broker remark to the human-readable part between the
// exception marker and the next comma. Remarks without the marker are returned
// unchanged. This is best-effort cosmetics, not parsing.
func ShortRemark(remark string) string {
	idx := strings.Index(remark, exceptionMarker)
	if idx < 0 {
		return remark
	}
	msg := remark[idx+len(exceptionMarker):]
	if comma := strings.Index(msg, ","); comma >= 0 {
		msg = msg[:comma]
	}
	return strings.TrimSpace(msg)
}
