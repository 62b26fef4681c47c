package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).With("run", "1a2b3c4d").Info("built graph", "vertices", 3)

	out := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("output %q should start with an HH:MM:SS.cc timestamp", out)
	}
	for _, want := range []string{"built graph", "run=1a2b3c4d", "vertices=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewLoggerStageTimings(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantStage bool
	}{
		{"info hides stages", log.InfoLevel, false},
		{"debug shows stages", log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := pipeline.NewRunner(nil, nil, newLogger(&buf, tt.level))
			defer r.Close()

			_, err := r.Process(context.Background(), []byte("0 1\n1 0\n0 1\n"), pipeline.Options{Symmetric: true})
			if err != nil {
				t.Fatalf("Process: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "built graph") || !strings.Contains(out, "run=") {
				t.Errorf("output %q should carry the build summary and run id", out)
			}
			for _, stage := range []string{"removed duplicates", "symmetrized"} {
				if got := strings.Contains(out, stage); got != tt.wantStage {
					t.Errorf("%q logged = %v, want %v", stage, got, tt.wantStage)
				}
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("read adjacency file", "vertices", 875713, "edges", 5105039)

	out := buf.String()
	for _, want := range []string{"read adjacency file", "vertices=875713", "edges=5105039", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressFilteredAtWarn(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("converted edges", "edges", 3)
	if buf.Len() != 0 {
		t.Errorf("progress should log at info, got %q at warn level", buf.String())
	}
}
