package github_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ghpkg "github.com/sgaunet/auto-close/pkg/github"
	"github.com/stretchr/testify/require"
)

const (
	owner = "testowner"
	repo  = "testrepo"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *ghpkg.Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := ghpkg.NewClientFromHTTP(server.Client(), server.URL+"/")
	require.NoError(t, err)
	client.SetRetryPolicy(3, time.Millisecond)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}
