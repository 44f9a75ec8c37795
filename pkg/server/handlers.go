package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/pipeline"
	"github.com/matzehuels/fanchart/pkg/render/sink"
)

// chartRequest is the body of the layout and render endpoints.
type chartRequest struct {
	Chart   *chart.Config    `json:"chart"`
	Options pipeline.Options `json:"options"`
}

func (s *Server) decodeChart(w http.ResponseWriter, r *http.Request) (chartRequest, error) {
	var req chartRequest
	if err := decodeBody(w, r, &req); err != nil {
		return req, err
	}
	if req.Chart == nil {
		return req, errors.New(errors.ErrCodeInvalidInput, "request has no chart")
	}
	return req, nil
}

// layoutResponse is the layout JSON plus the issues that were logged.
type layoutResponse struct {
	ChartHash string          `json:"chart_hash"`
	Cached    bool            `json:"cached"`
	Issues    []layout.Issue  `json:"issues"`
	Layout    json.RawMessage `json:"layout"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), req.Chart, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hash, err := pipeline.ChartHash(req.Chart)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	issues := l.Issues()
	if issues == nil {
		issues = []layout.Issue{}
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		ChartHash: hash,
		Cached:    hit,
		Issues:    issues,
		Layout:    data,
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{format}
	res, err := s.runner.Execute(r.Context(), req.Chart, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Chart-Hash", res.ChartHash)
	if len(res.Issues) > 0 {
		w.Header().Set("X-Layout-Issues", strconv.Itoa(len(res.Issues)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// allocateRequest is the body of the allocate endpoints. Index and Value
// are used by set, insert and remove as their names suggest.
type allocateRequest struct {
	Values []float64 `json:"values"`
	Index  *int      `json:"index,omitempty"`
	Value  *float64  `json:"value,omitempty"`
}

type allocateResponse struct {
	Values []float64 `json:"values"`
	Sum    float64   `json:"sum"`
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := allocate(chi.URLParam(r, "op"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, allocateResponse{Values: out, Sum: alloc.Sum(alloc.Percents(out))})
}

func allocate(op string, req allocateRequest) ([]float64, error) {
	for i, v := range req.Values {
		if err := checkShare("values["+strconv.Itoa(i)+"]", v); err != nil {
			return nil, err
		}
	}
	if req.Value != nil {
		if err := checkShare("value", *req.Value); err != nil {
			return nil, err
		}
	}
	items := alloc.Percents(req.Values)
	index := func() (int, error) {
		if req.Index == nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "%s needs an index", op)
		}
		if *req.Index < 0 || *req.Index >= len(items) {
			return 0, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", *req.Index, len(items))
		}
		return *req.Index, nil
	}

	switch op {
	case "normalize":
		return alloc.Values(alloc.Normalize(items)), nil
	case "set":
		i, err := index()
		if err != nil {
			return nil, err
		}
		if req.Value == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "set needs a value")
		}
		return alloc.Values(alloc.SetOneAndRescaleOthers(items, i, *req.Value)), nil
	case "insert":
		p := alloc.EqualShare(len(items))
		if req.Value != nil {
			p = *req.Value
		}
		at := len(items)
		if req.Index != nil {
			at = *req.Index
		}
		return alloc.Values(alloc.InsertAt(items, at, alloc.Percent(p))), nil
	case "remove":
		i, err := index()
		if err != nil {
			return nil, err
		}
		return alloc.Values(alloc.RemoveAndRenormalize(items, i)), nil
	default:
		return nil, errors.New(errors.ErrCodeNotFound, "unknown allocation %q (want normalize, set, insert or remove)", op)
	}
}

// checkShare rejects values the allocation model does not sanitize itself.
func checkShare(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "%s is not a finite number", name)
	}
	if v < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s is negative (%g)", name, v)
	}
	return nil
}
