package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/csrgraph/pkg/buildinfo"
	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/csr"
	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
	"github.com/matzehuels/csrgraph/pkg/render"
)

// Response headers set by the build handler.
const (
	HeaderVertices = "X-Graph-Vertices"
	HeaderEdges    = "X-Graph-Edges"
	HeaderRunID    = "X-Run-ID"
	HeaderCache    = "X-Cache"
)

type errorResponse struct {
	Code  gerrors.Code `json:"code"`
	Error string       `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	symmetric, err := boolParam(r, "symmetric")
	if err != nil {
		s.writeError(w, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Runner.Process(r.Context(), body, pipeline.Options{
		Format:    r.URL.Query().Get("format"),
		Symmetric: symmetric,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set(HeaderVertices, strconv.Itoa(res.Graph.N()))
	h.Set(HeaderEdges, strconv.Itoa(res.Graph.M()))
	h.Set(HeaderRunID, res.RunID.String())
	if res.CacheHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Adjacency)
}

func (s *Server) handleStat(w http.ResponseWriter, r *http.Request) {
	weighted, err := boolParam(r, "weighted")
	if err != nil {
		s.writeError(w, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	key := s.Runner.Keyer.SummaryKey(cache.Hash(body) + ":" + strconv.FormatBool(weighted))
	if data, hit, err := s.Runner.Cache.Get(ctx, key); err == nil && hit {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	var summary csr.Summary
	if weighted {
		g, rerr := csrio.ReadWeightedAdjacency(bytes.NewReader(body))
		if rerr != nil {
			s.writeError(w, rerr)
			return
		}
		summary, err = csr.SummarizeWeighted(g)
	} else {
		g, rerr := csrio.ReadAdjacency(bytes.NewReader(body))
		if rerr != nil {
			s.writeError(w, rerr)
			return
		}
		summary, err = csr.Summarize(g)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		s.writeError(w, gerrors.Wrap(gerrors.ErrCodeInternal, err, "encode summary"))
		return
	}
	if err := s.Runner.Cache.Set(ctx, key, data, s.Runner.CacheTTL()); err != nil {
		s.Logger.Warn("failed to cache summary", "err", err)
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	undirected, err := boolParam(r, "undirected")
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "dot" {
		s.writeError(w, gerrors.New(gerrors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format))
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	g, err := csrio.ReadAdjacency(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, err)
		return
	}
	dot, err := render.ToDOT(g, render.Options{Undirected: undirected})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = io.WriteString(w, dot)
		return
	}

	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// readBody reads the whole request body, mapping an oversized body to
// INVALID_INPUT.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
	}
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "read request body")
	}
	return body, nil
}

// boolParam parses an optional boolean query parameter.
func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, gerrors.New(gerrors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return b, nil
}

// statusOf maps error codes to HTTP status codes.
func statusOf(err error) int {
	switch gerrors.GetCode(err) {
	case gerrors.ErrCodeInvalidInput, gerrors.ErrCodeInvalidFormat, gerrors.ErrCodeOutOfRange:
		return http.StatusBadRequest
	case gerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	code := gerrors.GetCode(err)
	if code == "" {
		code = gerrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Error: gerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, data)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
