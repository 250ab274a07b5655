// Package registry maps logical destination names to shared cluster
// transports. One transport per member name is constructed lazily and exactly
// once, even under concurrent first access: entries are inserted unstarted
// via an insert-if-absent map operation and connected through a sync.Once, so
// the loser of a construction race is discarded without ever being started.
//
// Endpoint lists come from an IDiscovery implementation (a static table or
// the HTTP address server of the managed deployment). The registry verifies
// that discovery produced a non-empty endpoint list before a transport is
// started - an empty list is a configuration error, not a transport concern.
package registry
