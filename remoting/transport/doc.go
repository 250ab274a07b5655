// Package transport defines the interfaces and abstractions of the client
// side cluster transport. It provides a common contract that all transport
// implementations must fulfill, independent of the network medium.
//
// Key Components:
//
//   - IBrokerTransport: Interface for the cluster transport that executes the
//     request/response protocol with connection pooling and failover across
//     the endpoints of one cluster member.
//
//   - IConnector: Interface for protocol-specific connection operations,
//     allowing the base transport to be extended with different network
//     protocols.
package transport
