package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	ts := httptest.NewServer(New(runner, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/layout", map[string]any{"chart": chart.Default()})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		ChartHash string          `json:"chart_hash"`
		Issues    []any           `json:"issues"`
		Layout    json.RawMessage `json:"layout"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ChartHash == "" {
		t.Error("missing chart hash")
	}
	if body.Issues == nil || len(body.Issues) != 0 {
		t.Errorf("issues = %v, want empty list", body.Issues)
	}
	if !bytes.Contains(body.Layout, []byte(`"closing_ratio"`)) {
		t.Errorf("layout JSON lacks closing_ratio: %s", body.Layout)
	}
}

func TestLayoutReportsIssues(t *testing.T) {
	ts := newTestServer(t)
	cfg := chart.Default()
	cfg.Layers[2].Segments[0].Percent = 10

	resp := post(t, ts.URL+"/v1/layout", map[string]any{"chart": cfg})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Issues []struct {
			Layer string `json:"layer"`
			Kind  string `json:"kind"`
		} `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Issues) == 0 || body.Issues[0].Kind != "percent-sum" {
		t.Errorf("issues = %+v", body.Issues)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render/"+tt.format, map[string]any{
				"chart":   chart.Default(),
				"options": map[string]any{"style": "print"},
			})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("body starts with %q, want %q", string(data[:min(8, len(data))]), tt.prefix)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	invalid := chart.Default()
	invalid.Canvas.Height = -1

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   errors.Code
	}{
		{"bad format", "/v1/render/gif", map[string]any{"chart": chart.Default()}, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"no chart", "/v1/render/svg", map[string]any{}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/render/svg", map[string]any{"chart": chart.Default(), "extra": 1}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"invalid chart", "/v1/render/svg", map[string]any{"chart": invalid}, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad style", "/v1/render/svg", map[string]any{"chart": chart.Default(), "options": map[string]any{"style": "neon"}}, http.StatusBadRequest, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
		})
	}
}

func TestAllocate(t *testing.T) {
	ts := newTestServer(t)
	intp := func(i int) *int { return &i }
	fp := func(f float64) *float64 { return &f }

	tests := []struct {
		op   string
		req  allocateRequest
		want []float64
	}{
		{"normalize", allocateRequest{Values: []float64{1, 1, 2}}, []float64{25, 25, 50}},
		{"set", allocateRequest{Values: []float64{20, 30, 50}, Index: intp(0), Value: fp(60)}, []float64{60, 15, 25}},
		{"insert", allocateRequest{Values: []float64{50, 50}}, []float64{100.0 / 3, 100.0 / 3, 100.0 / 3}},
		{"insert", allocateRequest{Values: []float64{50, 50}, Index: intp(0), Value: fp(20)}, []float64{20, 40, 40}},
		{"remove", allocateRequest{Values: []float64{20, 30, 50}, Index: intp(2)}, []float64{40, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/allocate/"+tt.op, tt.req)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
			}
			var body allocateResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if len(body.Values) != len(tt.want) {
				t.Fatalf("values = %v, want %v", body.Values, tt.want)
			}
			for i := range tt.want {
				if math.Abs(body.Values[i]-tt.want[i]) > 1e-9 {
					t.Errorf("values = %v, want %v", body.Values, tt.want)
					break
				}
			}
			if math.Abs(body.Sum-100) > 1e-9 {
				t.Errorf("sum = %g", body.Sum)
			}
		})
	}
}

func TestAllocateErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		op     string
		body   any
		status int
	}{
		{"split", allocateRequest{Values: []float64{50, 50}}, http.StatusNotFound},
		{"set", allocateRequest{Values: []float64{50, 50}}, http.StatusBadRequest},
		{"remove", map[string]any{"values": []float64{50, 50}, "index": 5}, http.StatusBadRequest},
		{"normalize", allocateRequest{Values: []float64{-50, 100}}, http.StatusBadRequest},
		{"set", map[string]any{"values": []float64{50, 50}, "index": 0, "value": -10}, http.StatusBadRequest},
		{"insert", map[string]any{"values": []float64{50, 50}, "value": -1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp := post(t, ts.URL+"/v1/allocate/"+tt.op, tt.body)
		if resp.StatusCode != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.op, resp.StatusCode, tt.status)
		}
	}
}

func TestAllocateRejectsUnsanitizedValues(t *testing.T) {
	neg := -10.0
	tests := []struct {
		name string
		req  allocateRequest
	}{
		{"negative value", allocateRequest{Values: []float64{-50, 100}}},
		{"nan value", allocateRequest{Values: []float64{50, math.NaN()}}},
		{"infinite value", allocateRequest{Values: []float64{math.Inf(1)}}},
		{"negative target", allocateRequest{Values: []float64{50, 50}, Value: &neg}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := allocate("normalize", tt.req)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
			if out != nil {
				t.Errorf("out = %v, want nil", out)
			}
		})
	}

	out, err := allocate("normalize", allocateRequest{Values: []float64{0, 25, 25}})
	if err != nil {
		t.Fatalf("zero share rejected: %v", err)
	}
	if len(out) != 3 || out[1] != 50 {
		t.Errorf("out = %v", out)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeInvalidConfig: http.StatusBadRequest,
		errors.ErrCodeNotFound:      http.StatusNotFound,
		errors.ErrCodeNetwork:       http.StatusBadGateway,
		errors.ErrCodeInternal:      http.StatusInternalServerError,
		"":                          http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%q) = %d, want %d", code, got, want)
		}
	}
}
