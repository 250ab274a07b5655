// Package codec provides command serialization with multiple format options
// (JSON, GOB) for converting between Command objects and byte arrays. The
// exact byte layout on the wire is the broker protocol's concern - the
// transport treats Encode/Decode as opaque operations and only adds length
// framing around the result.
package codec
