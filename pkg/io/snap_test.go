package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/csrgraph/pkg/edges"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

func TestReadSNAP(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       []edges.Edge
		rows, cols int
	}{
		{
			name:  "comments and tabs",
			input: "# Directed graph: web-Google.txt\n# Nodes: 4 Edges: 3\n0\t1\n1\t3\n2\t0\n",
			want:  []edges.Edge{{U: 0, V: 1}, {U: 1, V: 3}, {U: 2, V: 0}},
			rows:  4, cols: 4,
		},
		{
			name:  "no comments",
			input: "5 1\n1 5\n",
			want:  []edges.Edge{{U: 5, V: 1}, {U: 1, V: 5}},
			rows:  6, cols: 6,
		},
		{
			name:  "odd trailing token ignored",
			input: "0 1 2",
			want:  []edges.Edge{{U: 0, V: 1}},
			rows:  2, cols: 2,
		},
		{
			name:  "only comments",
			input: "# nothing here\n#\n",
			want:  []edges.Edge{},
			rows:  0, cols: 0,
		},
		{
			name:  "comment without newline",
			input: "# trailing",
			want:  []edges.Edge{},
		},
		{
			name:  "empty",
			input: "",
			want:  []edges.Edge{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ReadSNAP(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadSNAP: %v", err)
			}
			if !slices.Equal(l.Edges, tt.want) {
				t.Errorf("edges = %v, want %v", l.Edges, tt.want)
			}
			if l.Rows != tt.rows || l.Cols != tt.cols {
				t.Errorf("dimensions = %dx%d, want %dx%d", l.Rows, l.Cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestReadSNAPRejects(t *testing.T) {
	for _, input := range []string{"0 x\n", "1 -2\n", "# c\n3 4.5\n", "0 9223372036854775807\n", "9223372036854775807 0\n"} {
		_, err := ReadSNAP(strings.NewReader(input))
		if !gerrors.Is(err, gerrors.ErrCodeInvalidFormat) {
			t.Errorf("ReadSNAP(%q) err = %v, want INVALID_FORMAT", input, err)
		}
	}
}

func TestSNAPRoundTrip(t *testing.T) {
	l := edges.New([]edges.Edge{{U: 0, V: 12}, {U: 7, V: 3}, {U: 12, V: 0}}, 13, 13)

	var buf bytes.Buffer
	if err := WriteSNAP(l, &buf, WithChunkSize(2)); err != nil {
		t.Fatalf("WriteSNAP: %v", err)
	}
	want := "# Nodes: 13 Edges: 3\n# FromNodeId\tToNodeId\n0\t12\n7\t3\n12\t0\n"
	if buf.String() != want {
		t.Errorf("WriteSNAP = %q, want %q", buf.String(), want)
	}

	got, err := ReadSNAP(&buf)
	if err != nil {
		t.Fatalf("ReadSNAP: %v", err)
	}
	if !slices.Equal(got.Edges, l.Edges) || got.Rows != 13 {
		t.Errorf("round trip = %v (%d rows)", got.Edges, got.Rows)
	}
}

func TestImportSNAPMissing(t *testing.T) {
	_, err := ImportSNAP(filepath.Join(t.TempDir(), "web-Google.txt"))
	if !gerrors.Is(err, gerrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEdgeArrayRoundTrip(t *testing.T) {
	l := edges.New([]edges.Edge{{U: 3, V: 1}, {U: 0, V: 0}, {U: 1, V: 2}}, 4, 4)
	path := filepath.Join(t.TempDir(), "graph.edges")

	if err := ExportEdges(l, path); err != nil {
		t.Fatalf("ExportEdges: %v", err)
	}
	got, err := ImportEdges(path)
	if err != nil {
		t.Fatalf("ImportEdges: %v", err)
	}
	if !slices.Equal(got.Edges, l.Edges) {
		t.Errorf("edges = %v, want %v", got.Edges, l.Edges)
	}
	if got.Rows != 4 || got.Cols != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", got.Rows, got.Cols)
	}
}

func TestWriteEdges(t *testing.T) {
	var buf bytes.Buffer
	l := edges.New([]edges.Edge{{U: 10, V: 2}, {U: 0, V: 1}}, 11, 11)
	if err := WriteEdges(l, &buf); err != nil {
		t.Fatal(err)
	}
	if want := "EdgeArray\n10 2\n0 1\n"; buf.String() != want {
		t.Errorf("WriteEdges = %q, want %q", buf.String(), want)
	}
}

func TestReadEdgesRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing header", "0 1\n"},
		{"wrong header", "AdjacencyGraph\n0 1\n"},
		{"odd endpoints", "EdgeArray\n0 1\n2\n"},
		{"bad token", "EdgeArray\n0 one\n"},
		{"id at max int", "EdgeArray\n0 9223372036854775807\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdges(strings.NewReader(tt.input))
			if !gerrors.Is(err, gerrors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want INVALID_FORMAT", err)
			}
		})
	}
}
