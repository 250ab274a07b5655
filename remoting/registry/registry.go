package registry

import (
	"fmt"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tbruckner/dMQ/remoting/codec"
	"github.com/tbruckner/dMQ/remoting/common"
	"github.com/tbruckner/dMQ/remoting/transport"
	"github.com/tbruckner/dMQ/remoting/transport/tcp"
)

var Logger = logger.GetLogger("remoting/registry")

// --------------------------------------------------------------------------
// Broker Registry
// --------------------------------------------------------------------------

// TransportFactory creates an unstarted cluster transport
type TransportFactory func() transport.IBrokerTransport

// Registry caches one cluster transport per member name, created lazily and
// shared. A concurrent first access resolves to a single winner: the entry is
// inserted unstarted and connected exactly once, so a losing instance is
// never started or leaked.
type Registry struct {
	discovery IDiscovery
	config    common.ClientConfig
	factory   TransportFactory

	entries *xsync.MapOf[string, *registryEntry]

	mu     sync.Mutex
	closed bool
}

// registryEntry connects its transport exactly once, everyone else waits
type registryEntry struct {
	transport transport.IBrokerTransport
	once      sync.Once
	err       error
}

// NewRegistry creates a registry using the given discovery and base client
// configuration. The endpoint list of the config is ignored - endpoints come
// from discovery per member.
func NewRegistry(discovery IDiscovery, config common.ClientConfig) *Registry {
	return &Registry{
		discovery: discovery,
		config:    config,
		factory: func() transport.IBrokerTransport {
			return tcp.NewTCPTransport(codec.NewJSONCodec())
		},
		entries: xsync.NewMapOf[string, *registryEntry](),
	}
}

// SetTransportFactory overrides how transports are constructed. Must be
// called before the first Get.
func (r *Registry) SetTransportFactory(factory TransportFactory) {
	r.factory = factory
}

// Get returns the shared cluster transport for the given member name,
// constructing and starting it on first access. The member is looked up in
// the routes of the given logical destination name.
func (r *Registry) Get(logicalName, memberName string) (transport.IBrokerTransport, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, fmt.Errorf("registry closed")
	}
	r.mu.Unlock()

	// Insert-if-absent with an unstarted transport. The loser's instance is
	// discarded without ever being connected. The connect below runs exactly
	// once per entry, every other caller waits for its outcome.
	entry, _ := r.entries.LoadOrStore(memberName, &registryEntry{
		transport: r.factory(),
	})

	t, err := entry.startedWith(func() error {
		endpoints, err := r.resolveEndpoints(logicalName, memberName)
		if err != nil {
			return err
		}

		config := r.config
		config.Endpoints = endpoints
		return entry.transport.Connect(config)
	})
	if err != nil {
		// A transport that never came up must not stay registered
		r.entries.Delete(memberName)
		return nil, err
	}
	return t, nil
}

// CloseAll tears down every registered transport. It is idempotent.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	var lastErr error
	r.entries.Range(func(name string, entry *registryEntry) bool {
		if err := entry.transport.Close(); err != nil {
			Logger.Warningf("Failed to close transport for %s: %v", name, err)
			lastErr = err
		}
		r.entries.Delete(name)
		return true
	})
	return lastErr
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// resolveEndpoints asks discovery for the member's endpoint list. An empty
// list is a configuration error, surfaced before the transport is started.
func (r *Registry) resolveEndpoints(logicalName, memberName string) ([]string, error) {
	routes, err := r.discovery.Resolve(logicalName)
	if err != nil {
		return nil, fmt.Errorf("discovery failed for %q: %v", logicalName, err)
	}

	for _, route := range routes {
		if route.MemberName != memberName {
			continue
		}
		if len(route.Endpoints) == 0 {
			return nil, fmt.Errorf("empty endpoint list for member %q", memberName)
		}
		return route.Endpoints, nil
	}
	return nil, fmt.Errorf("member %q not found in routes of %q", memberName, logicalName)
}

// startedWith runs connect exactly once for this entry and returns the result
func (e *registryEntry) startedWith(connect func() error) (transport.IBrokerTransport, error) {
	e.once.Do(func() {
		e.err = connect()
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.transport, nil
}
