package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/observability"
)

const scenarioSNAP = "# Directed graph\n# FromNodeId\tToNodeId\n0\t1\n1\t0\n0\t1\n2\t2\n"

const (
	directedAdj  = "AdjacencyGraph\n3\n3\n0\n1\n2\n1\n0\n2\n"
	symmetricAdj = "AdjacencyGraph\n3\n2\n0\n1\n2\n1\n0\n"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func scenarioList() edges.EdgeList {
	return edges.New([]edges.Edge{{U: 0, V: 1}, {U: 1, V: 0}, {U: 0, V: 1}, {U: 2, V: 2}}, 3, 3)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		symmetric bool
		block     []int
	}{
		{"directed", false, []int{3, 3, 0, 1, 2, 1, 0, 2}},
		{"symmetric", true, []int{3, 2, 0, 1, 2, 1, 0}},
	}

	r := NewRunner(nil, nil, quietLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioList()
			g, stats, err := r.Build(context.Background(), in, tt.symmetric)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if !slices.Equal(g.Block(), tt.block) {
				t.Errorf("block = %v, want %v", g.Block(), tt.block)
			}
			if stats.InputEdges != 4 || stats.Vertices != 3 || stats.Edges != g.M() {
				t.Errorf("stats = %+v", stats)
			}
			if in.NonZeros() != 4 {
				t.Error("Build must not release the caller's edge buffer")
			}
		})
	}
}

func TestBuildOutOfRange(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	l := edges.New([]edges.Edge{{U: 0, V: 5}}, 2, 2)
	if _, _, err := r.Build(context.Background(), l, false); !gerrors.Is(err, gerrors.ErrCodeOutOfRange) {
		t.Errorf("Build error = %v, want OUT_OF_RANGE", err)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, quietLogger())
	if _, _, err := r.Build(ctx, scenarioList(), false); !errors.Is(err, context.Canceled) {
		t.Errorf("Build error = %v, want context.Canceled", err)
	}
}

type stageEvent struct {
	stage string
	done  bool
}

type recordingHooks struct {
	mu     sync.Mutex
	events []stageEvent
}

func (h *recordingHooks) OnStageStart(_ context.Context, stage string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, stageEvent{stage, false})
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, stageEvent{stage, true})
}

func TestProcessReportsStages(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Process(context.Background(), []byte(scenarioSNAP), Options{Symmetric: true}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	var got []string
	for _, e := range hooks.events {
		if e.done {
			got = append(got, e.stage)
		}
	}
	want := []string{
		observability.StageParse,
		observability.StageDedup,
		observability.StageSymmetrize,
		observability.StageBuild,
		observability.StageSerialize,
	}
	if !slices.Equal(got, want) {
		t.Errorf("completed stages = %v, want %v", got, want)
	}
	if len(hooks.events) != 2*len(want) {
		t.Errorf("got %d events, want %d", len(hooks.events), 2*len(want))
	}
}

func TestProcessEdgeArray(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Process(context.Background(), []byte("EdgeArray\n0 1\n1 0\n0 1\n2 2\n"), Options{Format: FormatEdges})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if string(res.Adjacency) != directedAdj {
		t.Errorf("Adjacency = %q, want %q", res.Adjacency, directedAdj)
	}
}

func TestProcessMalformed(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Process(context.Background(), []byte("0 1\n2 x\n"), Options{})
	if !gerrors.Is(err, gerrors.ErrCodeInvalidFormat) {
		t.Errorf("Process error = %v, want INVALID_FORMAT", err)
	}
}

func TestExecuteCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	t.Cleanup(func() { r.Close() })

	input := writeFile(t, "graph.txt", scenarioSNAP)
	output := filepath.Join(t.TempDir(), "graph.adj")
	opts := Options{Input: input, Output: output, Symmetric: true}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if got, _ := os.ReadFile(output); string(got) != symmetricAdj {
		t.Errorf("output = %q, want %q", got, symmetricAdj)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.InputHash != first.InputHash {
		t.Errorf("input hash changed: %s != %s", second.InputHash, first.InputHash)
	}
	if second.RunID == first.RunID {
		t.Error("runs should get distinct ids")
	}
	if !slices.Equal(second.Graph.Block(), first.Graph.Block()) {
		t.Errorf("cached graph %v differs from built graph %v", second.Graph.Block(), first.Graph.Block())
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	opts.Refresh, opts.Symmetric = false, false
	directed, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("directed Execute: %v", err)
	}
	if directed.CacheHit {
		t.Error("symmetric flag must be part of the cache key")
	}
}

func TestExecuteCorruptCacheEntry(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())

	input := writeFile(t, "graph.txt", scenarioSNAP)
	key := r.Keyer.GraphKey(cache.Hash([]byte(scenarioSNAP)), cache.GraphKeyOpts{Format: FormatSNAP})
	if err := c.Set(context.Background(), key, []byte("not an adjacency file"), time.Hour); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(context.Background(), Options{Input: input})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheHit {
		t.Error("unreadable entry should be rebuilt")
	}
	if string(res.Adjacency) != directedAdj {
		t.Errorf("Adjacency = %q, want %q", res.Adjacency, directedAdj)
	}
}

func TestExecuteWritesResultAdjacency(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	t.Cleanup(func() { r.Close() })

	input := writeFile(t, "graph.txt", scenarioSNAP)
	output := filepath.Join(t.TempDir(), "graph.adj")
	for _, name := range []string{"build", "cached"} {
		res, err := r.Execute(context.Background(), Options{Input: input, Output: output})
		if err != nil {
			t.Fatalf("%s: Execute: %v", name, err)
		}
		got, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if string(got) != string(res.Adjacency) || string(got) != directedAdj {
			t.Errorf("%s: file = %q, Adjacency = %q, want %q", name, got, res.Adjacency, directedAdj)
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	dir := t.TempDir()

	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(dir, "missing.txt")})
	if !gerrors.Is(err, gerrors.ErrCodeFileNotFound) {
		t.Errorf("missing input error = %v, want FILE_NOT_FOUND", err)
	}

	input := writeFile(t, "graph.txt", scenarioSNAP)
	_, err = r.Execute(context.Background(), Options{Input: input, Output: filepath.Join(dir, "no", "such", "dir.adj")})
	if !gerrors.Is(err, gerrors.ErrCodeIO) {
		t.Errorf("unwritable output error = %v, want IO_ERROR", err)
	}
}
