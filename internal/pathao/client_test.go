package pathao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/aladdin/api/v1/issue-token":
			atomic.AddInt32(tokenCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
		case r.URL.Path == "/aladdin/api/v1/city-list":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"data":[{"city_id":1,"city_name":"Dhaka"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestExpiredTokenTriggersExactlyOneFetch(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(server.URL, Credentials{ClientID: "id", ClientSecret: "secret", Username: "u", Password: "p"})

	status, body, _, err := client.CityList(context.Background())
	if err != nil {
		t.Fatalf("CityList returned error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(body), "Dhaka") {
		t.Fatalf("unexpected body: %s", body)
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Fatalf("expected exactly 1 token fetch, got %d", got)
	}
}

func TestValidTokenTriggersZeroFetches(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(server.URL, Credentials{})
	client.token = "tok-1"
	client.expiresAt = time.Now().Add(time.Hour)

	if _, _, _, err := client.CityList(context.Background()); err != nil {
		t.Fatalf("CityList returned error: %v", err)
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 0 {
		t.Fatalf("expected zero token fetches for a valid token, got %d", got)
	}
}

func TestTokenIsReusedAcrossCalls(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(server.URL, Credentials{})

	for i := 0; i < 3; i++ {
		if _, _, _, err := client.CityList(context.Background()); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Fatalf("expected 1 token fetch across 3 calls, got %d", got)
	}
}

func TestConcurrentRefreshIsDeduplicated(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(server.URL, Credentials{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.CityList(context.Background())
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Fatalf("expected concurrent refreshes to collapse into 1 fetch, got %d", got)
	}
}

func TestTokenFetchFailureRelaysUpstreamResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Credentials{})

	status, body, _, err := client.CityList(context.Background())
	if err != nil {
		t.Fatalf("expected relayed upstream error, got transport error: %v", err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("expected upstream 401 to be relayed, got %d", status)
	}
	if !strings.Contains(string(body), "invalid credentials") {
		t.Fatalf("expected upstream body to be relayed, got %s", body)
	}
}

func TestExpiryRefreshesToken(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(server.URL, Credentials{})
	client.token = "tok-1"
	client.expiresAt = time.Now().Add(-time.Minute)

	if _, _, _, err := client.CityList(context.Background()); err != nil {
		t.Fatalf("CityList returned error: %v", err)
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Fatalf("expected expired token to trigger one refresh, got %d", got)
	}
}
