// Package common contains the core data structures shared across the remoting
// layer: the Command protocol unit, the ordered extension field bag, the client
// configuration structs, the error taxonomy and the logging setup.
//
// Key Components:
//
//   - Command: the request/response unit consisting of a header (operation or
//     result code, correlation identifier, extension fields, remark) and an
//     optional binary body.
//
//   - Fields: an insertion-ordered bag of extension fields. The order is part
//     of the protocol contract because the request signature covers all field
//     values in iteration order.
//
//   - ClientConfig / Credentials: configuration surface of one cluster
//     transport, including the explicit secured/unsecured mode selection.
//
//   - ResponseError / ErrConnectTimeout: the typed failures surfaced to
//     callers.
package common
