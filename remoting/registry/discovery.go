package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --------------------------------------------------------------------------
// Discovery Boundary
// --------------------------------------------------------------------------

// MemberRoute is one discovered cluster member with its ordered endpoint list
type MemberRoute struct {
	MemberName string   `json:"memberName"`
	Endpoints  []string `json:"endpoints"`
}

// IDiscovery resolves a logical destination name into the cluster members
// that serve it. The registry consults it before a transport is started; the
// transport itself never talks to discovery.
type IDiscovery interface {
	// Resolve returns the ordered set of member routes for the logical name
	Resolve(logicalName string) ([]MemberRoute, error)
}

// --------------------------------------------------------------------------
// Static Discovery
// --------------------------------------------------------------------------

// NewStaticDiscovery creates a discovery backed by a fixed route table,
// typically sourced from configuration
func NewStaticDiscovery(routes map[string][]MemberRoute) IDiscovery {
	return &staticDiscovery{routes: routes}
}

type staticDiscovery struct {
	routes map[string][]MemberRoute
}

func (d *staticDiscovery) Resolve(logicalName string) ([]MemberRoute, error) {
	routes, ok := d.routes[logicalName]
	if !ok {
		return nil, fmt.Errorf("no routes for %q", logicalName)
	}
	return routes, nil
}

// --------------------------------------------------------------------------
// HTTP Discovery (managed cloud variant)
// --------------------------------------------------------------------------

// NewHTTPDiscovery creates a discovery that resolves routes via an HTTP
// address server, as used by the managed deployment. The server is expected
// to answer GET <baseURL>?name=<logicalName> with a JSON array of member
// routes.
func NewHTTPDiscovery(baseURL string, timeout time.Duration) IDiscovery {
	return &httpDiscovery{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type httpDiscovery struct {
	baseURL string
	client  *http.Client
}

func (d *httpDiscovery) Resolve(logicalName string) ([]MemberRoute, error) {
	requestURL := fmt.Sprintf("%s?name=%s", d.baseURL, url.QueryEscape(logicalName))

	resp, err := d.client.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var routes []MemberRoute
	if err := json.Unmarshal(body, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode discovery response: %v", err)
	}
	return routes, nil
}
