package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/config"
	api "github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	handler, err := newHandler(cfg, prometheus.NewRegistry())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestServer_ExportAndMetrics(t *testing.T) {
	server := newTestServer(t, &config.Config{
		Port:               8080,
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		MetricsNamespace:   "billsplit",
	})

	client := apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL)
	resp, err := client.ExportSummary(context.Background(), connect.NewRequest(&api.ExportSummaryRequest{
		Bill: &api.Bill{
			TotalAmount:   90,
			TipPercentage: 10,
			Participants: []*api.Participant{
				{Name: "A"}, {Name: "B"}, {Name: "C"},
			},
		},
	}))
	require.NoError(t, err)
	assert.Contains(t, resp.Msg.Text, "Total: $99.00\n")
	assert.Contains(t, resp.Msg.Text, "A: $33.00\n")

	metricsResp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()

	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `billsplit_split_calculations_total{mode="equal",result="ok"} 1`)
	assert.Contains(t, string(body), "billsplit_split_exports_total 1")
}

func TestServer_MetricsDisabled(t *testing.T) {
	server := newTestServer(t, &config.Config{
		CORSAllowedOrigins: []string{"*"},
	})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>split</h1>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log('split')"), 0o644))

	server := newTestServer(t, &config.Config{
		StaticPath:         dir,
		CORSAllowedOrigins: []string{"*"},
	})

	tests := []struct {
		path string
		want string
	}{
		{"/", "<h1>split</h1>"},
		{"/split", "<h1>split</h1>"},
		{"/assets", "<h1>split</h1>"},
		{"/assets/app.js", "console.log('split')"},
	}

	for _, tt := range tests {
		resp, err := http.Get(server.URL + tt.path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", tt.path)
		assert.True(t, strings.Contains(string(body), tt.want), "path %s served %q", tt.path, body)
	}

	resp, err := http.Get(server.URL + "/" + apiconnect.SplitServiceName + "/Unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CORSPreflight(t *testing.T) {
	server := newTestServer(t, &config.Config{
		CORSAllowedOrigins: []string{"https://split.example"},
	})

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.SplitServiceCalculateSplitProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://split.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "https://split.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
