package registry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestStaticDiscovery tests resolution from a fixed route table
func TestStaticDiscovery(t *testing.T) {
	d := NewStaticDiscovery(map[string][]MemberRoute{
		"orders": {{MemberName: "broker-a", Endpoints: []string{"10.0.0.1:9876"}}},
	})

	routes, err := d.Resolve("orders")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(routes) != 1 || routes[0].MemberName != "broker-a" {
		t.Errorf("Unexpected routes: %v", routes)
	}

	if _, err := d.Resolve("unknown"); err == nil {
		t.Error("Expected error for unknown name")
	}
}

// TestHTTPDiscovery tests resolution against an HTTP address server
func TestHTTPDiscovery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "orders" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]MemberRoute{
			{MemberName: "broker-a", Endpoints: []string{"10.0.0.1:9876", "10.0.0.2:9876"}},
		})
	}))
	defer server.Close()

	d := NewHTTPDiscovery(server.URL, time.Second)

	routes, err := d.Resolve("orders")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(routes) != 1 || len(routes[0].Endpoints) != 2 {
		t.Errorf("Unexpected routes: %v", routes)
	}

	if _, err := d.Resolve("unknown"); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

// TestHTTPDiscoveryBadPayload tests handling of malformed discovery responses
func TestHTTPDiscoveryBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	d := NewHTTPDiscovery(server.URL, time.Second)
	if _, err := d.Resolve("orders"); err == nil {
		t.Error("Expected error for malformed payload")
	}
}
