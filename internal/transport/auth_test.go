package transport

import (
	"net/http"
	"net/url"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req)

	// Should not have any authentication headers
	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{Token: "test-api-token"}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req)

	authHeader := req.Header.Get("Authorization")
	expected := "Bearer test-api-token"
	if authHeader != expected {
		t.Errorf("Expected Authorization header '%s', got '%s'", expected, authHeader)
	}
}

// TestBearerAuthEmptyToken tests that an empty token adds no header.
func TestBearerAuthEmptyToken(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req)

	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header for empty token")
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "token", Key: "test-api-token"}

	reqURL, _ := url.Parse("https://recherche-entreprises.api.gouv.fr/search?q=acme")
	req := &http.Request{
		URL:    reqURL,
		Header: make(http.Header),
	}

	auth.Apply(req)

	query := req.URL.Query()
	if query.Get("token") != "test-api-token" {
		t.Errorf("Expected token query param 'test-api-token', got '%s'", query.Get("token"))
	}

	// Existing query parameters must survive
	if query.Get("q") != "acme" {
		t.Errorf("Expected existing q param to survive, got '%s'", query.Get("q"))
	}
}

// TestQueryAuthNilURL tests that a nil URL does not panic.
func TestQueryAuthNilURL(t *testing.T) {
	auth := &QueryAuth{Param: "token", Key: "test-api-token"}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req)
	// No panic means success
}
