package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"klontong/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) *httpclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := httpclient.NewClient(httpclient.Config{BaseURL: server.URL}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return client
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Ciki ciki"}]`))
	}))

	var out []map[string]any
	require.NoError(t, client.Get(context.Background(), "/products", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Ciki ciki", out[0]["name"])
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Teh botol", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"Teh botol"}`))
	}))

	var out map[string]any
	require.NoError(t, client.Post(context.Background(), "/products", map[string]string{"name": "Teh botol"}, &out))
	assert.Equal(t, "Teh botol", out["name"])
}

func TestClient_NonSuccessStatusIsAnAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))

	err := client.Get(context.Background(), "/products/missing", nil)
	require.Error(t, err)

	var apiErr *httpclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "no such product")
}

func TestClient_DeleteIgnoresResponseBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.Delete(context.Background(), "/products/1"))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := httpclient.NewClient(httpclient.Config{}, zap.NewNop().Sugar())
	assert.Error(t, err)
}
