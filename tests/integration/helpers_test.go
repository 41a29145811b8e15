package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

// baseURL returns the base URL of the running service. Override with
// QUICKEATS_URL when the service is not on the default port.
func baseURL() string {
	if v := os.Getenv("QUICKEATS_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// uniqueUUID generates a random UUID v4 string for test identities.
// Not cryptographically secure, which is fine for tests.
func uniqueUUID() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// skipIfNotRunning performs a quick liveness check against the service.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/healthz")
	if err != nil {
		t.Skipf("service not reachable (Docker not running?): %v", err)
	}
	resp.Body.Close()
}

// httpGet performs a GET as the given user and returns the status code and
// decoded JSON body.
func httpGet(t *testing.T, path, userID string) (int, map[string]any) {
	t.Helper()
	return doJSONRequest(t, http.MethodGet, path, nil, userID)
}

// httpPost performs a POST with a JSON body as the given user.
func httpPost(t *testing.T, path string, body any, userID string) (int, map[string]any) {
	t.Helper()
	return doJSONRequest(t, http.MethodPost, path, body, userID)
}

// httpDelete performs a DELETE as the given user.
func httpDelete(t *testing.T, path, userID string) (int, map[string]any) {
	t.Helper()
	return doJSONRequest(t, http.MethodDelete, path, nil, userID)
}

func doJSONRequest(t *testing.T, method, path string, body any, userID string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL()+path, reader)
	if err != nil {
		t.Fatalf("create %s request for %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) == 0 {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return decoded
}

func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d", want, got)
	}
}

// extractData returns the "data" field of an envelope response.
func extractData(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}

// firstSeededRestaurant returns a restaurant that has at least one product,
// skipping the test when the database has no seed data.
func firstSeededRestaurant(t *testing.T, userID string) (map[string]any, []any) {
	t.Helper()

	status, body := httpGet(t, "/api/v1/restaurants?per_page=20", userID)
	requireStatus(t, status, 200)

	data, ok := body["data"].([]any)
	if !ok || len(data) == 0 {
		t.Skip("no restaurants in database; run scripts/seed_demo_data.go first")
	}

	for _, entry := range data {
		restaurant, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := restaurant["id"].(string)
		status, body := httpGet(t, "/api/v1/restaurants/"+id+"/products", userID)
		if status != 200 {
			continue
		}
		products, ok := body["data"].([]any)
		if ok && len(products) > 0 {
			return restaurant, products
		}
	}

	t.Skip("no restaurant with products found; run scripts/seed_demo_data.go first")
	return nil, nil
}
