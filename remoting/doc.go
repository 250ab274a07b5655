// Package remoting provides the client-side transport layer for a
// distributed message-broker cluster. It turns a logical request (a typed
// command with a header and optional binary body) into a reliably delivered
// round trip against one of several broker endpoints, transparently handling
// endpoint selection, connection reuse, request signing for secured
// deployments and failover across endpoints.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures used across the remoting layer, including
//     the Command protocol unit, configuration structures and logging.
//
//   - transport: Network communication abstractions with the protocol-agnostic
//     base implementation and the TCP connector.
//
//   - codec: Command serialization with multiple format options (JSON, GOB)
//     for converting between Command objects and byte arrays.
//
//   - auth: Request signing (HMAC-SHA1) for the secured deployment mode.
//
//   - registry: Lazily constructed, shared transports per cluster member,
//     fed by a pluggable discovery mechanism.
package remoting
