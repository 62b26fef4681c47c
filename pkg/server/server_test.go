package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/csr"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/observability"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

const (
	scenarioSNAP = "# FromNodeId\tToNodeId\n0\t1\n1\t0\n0\t1\n2\t2\n"
	symmetricAdj = "AdjacencyGraph\n3\n2\n0\n1\n2\n1\n0\n"
	scenarioAdj  = "AdjacencyGraph\n3\n3\n0\n2\n2\n1\n2\n0\n"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, log.New(io.Discard))
	s := New(runner, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestBuild(t *testing.T) {
	_, ts := newTestServer(t)
	url := ts.URL + "/v1/build?symmetric=true"

	resp := post(t, url, scenarioSNAP)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, readAll(t, resp))
	}
	if got := readAll(t, resp); got != symmetricAdj {
		t.Errorf("body = %q, want %q", got, symmetricAdj)
	}
	h := resp.Header
	if h.Get(HeaderVertices) != "3" || h.Get(HeaderEdges) != "2" {
		t.Errorf("size headers = %s/%s, want 3/2", h.Get(HeaderVertices), h.Get(HeaderEdges))
	}
	if h.Get(HeaderRunID) == "" {
		t.Error("missing run id header")
	}
	if h.Get(HeaderCache) != "miss" {
		t.Errorf("first build %s = %q, want miss", HeaderCache, h.Get(HeaderCache))
	}

	again := post(t, url, scenarioSNAP)
	if again.Header.Get(HeaderCache) != "hit" {
		t.Errorf("second build %s = %q, want hit", HeaderCache, again.Header.Get(HeaderCache))
	}
	if again.Header.Get(HeaderRunID) == h.Get(HeaderRunID) {
		t.Error("each request should get its own run id")
	}
}

func TestBuildEdgeArray(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/build?format=edges", "EdgeArray\n0 1\n1 0\n")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if want := "AdjacencyGraph\n2\n2\n0\n1\n1\n0\n"; readAll(t, resp) != want {
		t.Errorf("unexpected adjacency body")
	}
}

func TestBuildErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   gerrors.Code
	}{
		{"malformed edge", "", "0 1\n1 zz\n", http.StatusBadRequest, gerrors.ErrCodeInvalidFormat},
		{"negative id", "", "0 -1\n", http.StatusBadRequest, gerrors.ErrCodeInvalidFormat},
		{"bad symmetric", "?symmetric=maybe", scenarioSNAP, http.StatusBadRequest, gerrors.ErrCodeInvalidInput},
		{"bad format", "?format=csv", scenarioSNAP, http.StatusBadRequest, gerrors.ErrCodeInvalidInput},
		{"edge array without header", "?format=edges", "0 1\n", http.StatusBadRequest, gerrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/build"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code || e.Error == "" {
				t.Errorf("error body = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s, ts := newTestServer(t)
	s.MaxBodyBytes = 8

	resp := post(t, ts.URL+"/v1/build", scenarioSNAP)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStat(t *testing.T) {
	_, ts := newTestServer(t)

	for i := range 2 { // second request is served from the cache
		resp := post(t, ts.URL+"/v1/stat", scenarioAdj)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d: %s", i, resp.StatusCode, readAll(t, resp))
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var s csr.Summary
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			t.Fatal(err)
		}
		if s.Vertices != 3 || s.Edges != 3 || s.OutDegree.Max != 2 || s.Isolated != 0 {
			t.Errorf("request %d: summary = %+v", i, s)
		}
		if s.Weights != nil {
			t.Error("unweighted summary should omit weights")
		}
	}
}

func TestStatWeighted(t *testing.T) {
	_, ts := newTestServer(t)

	body := "WeightedAdjacencyGraph\n2\n1\n0\n1\n1\n5\n"
	resp := post(t, ts.URL+"/v1/stat?weighted=true", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	var s csr.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if s.Weights == nil || s.Weights.Sum != 5 {
		t.Errorf("weights = %+v, want sum 5", s.Weights)
	}

	bad := post(t, ts.URL+"/v1/stat", body)
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("weighted body read as unweighted: status = %d, want 400", bad.StatusCode)
	}
}

func TestRenderDOT(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/render?format=dot", scenarioAdj)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	body := readAll(t, resp)
	if !strings.HasPrefix(body, "digraph G {") || !strings.Contains(body, "2 -> 0;") {
		t.Errorf("unexpected DOT:\n%s", body)
	}

	bad := post(t, ts.URL+"/v1/render?format=png", scenarioAdj)
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("png status = %d, want 400", bad.StatusCode)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gerrors.New(gerrors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{gerrors.New(gerrors.ErrCodeOutOfRange, "x"), http.StatusBadRequest},
		{gerrors.New(gerrors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{gerrors.New(gerrors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{gerrors.New(gerrors.ErrCodeIO, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	requests int
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	_, ts := newTestServer(t)
	post(t, ts.URL+"/v1/build", scenarioSNAP)
	post(t, ts.URL+"/v1/build", "0 x\n")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.requests != 2 {
		t.Errorf("requests = %d, want 2", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}

func TestListenAndServeStops(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}

	if err := s.ListenAndServe(context.Background(), "nohost"); !gerrors.Is(err, gerrors.ErrCodeInvalidInput) {
		t.Errorf("bad addr error = %v, want INVALID_INPUT", err)
	}
}
