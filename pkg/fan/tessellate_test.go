package fan

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/fanchart/pkg/geom"
)

// wideBottom has topWidth=200, bottomWidth=400 and height 100.
var wideBottom = Trapezoid{
	Origin:      geom.Point{X: 0, Y: 100},
	TopLeft:     geom.Point{X: 200, Y: 0},
	TopRight:    geom.Point{X: 400, Y: 0},
	BottomRight: geom.Point{X: 400, Y: 100},
}

// pureTriangle has bottomWidth=0: Origin sits on the right edge.
var pureTriangle = Trapezoid{
	Origin:      geom.Point{X: 400, Y: 100},
	TopLeft:     geom.Point{X: 200, Y: 0},
	TopRight:    geom.Point{X: 400, Y: 0},
	BottomRight: geom.Point{X: 400, Y: 100},
}

func TestTrapezoidMeasures(t *testing.T) {
	tr := wideBottom
	if got := tr.TopWidth(); got != 200 {
		t.Errorf("TopWidth() = %v, want 200", got)
	}
	if got := tr.BottomWidth(); got != 400 {
		t.Errorf("BottomWidth() = %v, want 400", got)
	}
	if got := tr.Height(); got != 100 {
		t.Errorf("Height() = %v, want 100", got)
	}
	if got := tr.MaxTopEdgeArea(); got != 10000 {
		t.Errorf("MaxTopEdgeArea() = %v, want 10000", got)
	}
	if got := tr.TotalArea(); got != 30000 {
		t.Errorf("TotalArea() = %v, want 30000", got)
	}
	if got, want := tr.TotalArea(), tr.Polygon().Area(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalArea() = %v, shoelace = %v", got, want)
	}
}

func TestRatioForArea(t *testing.T) {
	tests := []struct {
		name string
		tr   Trapezoid
		f    float64
		want float64
	}{
		{"zero", wideBottom, 0, 0},
		{"negative", wideBottom, -0.5, 0},
		{"on top edge", wideBottom, 0.3, 0.9},
		{"top-right corner", wideBottom, 1.0 / 3, 1},
		{"on right edge", wideBottom, 0.6, 1.4},
		{"full closes at far corner", wideBottom, 1, 2},
		{"beyond full", wideBottom, 1.5, 2},
		{"triangle half", pureTriangle, 0.5, 0.5},
		{"triangle full closes at top-right", pureTriangle, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.RatioForArea(tt.f); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RatioForArea(%v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestAreaForRatioInvertsRatioForArea(t *testing.T) {
	for _, tr := range []Trapezoid{wideBottom, pureTriangle} {
		total := tr.TotalArea()
		for i := 0; i <= 100; i++ {
			f := float64(i) / 100
			got := tr.AreaForRatio(tr.RatioForArea(f)) / total
			if math.Abs(got-f) > 1e-12 {
				t.Errorf("area fraction for f=%v = %v", f, got)
			}
		}
	}
}

func TestPointAt(t *testing.T) {
	tr := wideBottom
	tests := []struct {
		r    float64
		want geom.Point
	}{
		{0, tr.TopLeft},
		{0.5, geom.Point{X: 300, Y: 0}},
		{1, tr.TopRight},
		{1.25, geom.Point{X: 400, Y: 25}},
		{2, tr.BottomRight},
	}
	for _, tt := range tests {
		if got := tr.PointAt(tt.r); got != tt.want {
			t.Errorf("PointAt(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestTessellateAreaFidelity(t *testing.T) {
	tess := Tessellate(wideBottom, []float64{30, 30, 40})

	if len(tess.Pieces) != 3 {
		t.Fatalf("got %d pieces, want 3", len(tess.Pieces))
	}

	wantKinds := []geom.Kind{geom.Triangle, geom.Quad, geom.Triangle}
	wantFractions := []float64{0.30, 0.30, 0.40}
	total := wideBottom.TotalArea()
	for i, p := range tess.Pieces {
		if p.Polygon.Kind != wantKinds[i] {
			t.Errorf("piece %d kind = %v, want %v", i, p.Polygon.Kind, wantKinds[i])
		}
		if got := p.Polygon.Area() / total; math.Abs(got-wantFractions[i]) > 0.001 {
			t.Errorf("piece %d area fraction = %v, want %v", i, got, wantFractions[i])
		}
	}
	if !tess.Report.OK() {
		t.Errorf("unexpected issues: %v", tess.Report.Issues)
	}
}

func TestTessellateDegenerateTriangle(t *testing.T) {
	tess := Tessellate(pureTriangle, []float64{50, 50})

	if got := tess.Pieces[0].EndRatio; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("mid ratio = %v, want 0.5", got)
	}
	if got := tess.Pieces[1].EndRatio; got != 1 {
		t.Errorf("closing ratio = %v, want exactly 1", got)
	}
	for i, p := range tess.Pieces {
		if p.StartRatio > 1 || p.EndRatio > 1 {
			t.Errorf("piece %d left the top edge: %v..%v", i, p.StartRatio, p.EndRatio)
		}
		if p.Polygon.Kind != geom.Triangle {
			t.Errorf("piece %d kind = %v, want triangle", i, p.Polygon.Kind)
		}
	}
	if !tess.Report.OK() {
		t.Errorf("unexpected issues: %v", tess.Report.Issues)
	}
}

func TestTessellateAlwaysCloses(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 500; trial++ {
		n := 1 + r.IntN(8)
		ps := make([]float64, n)
		var sum float64
		for i := range ps {
			ps[i] = r.Float64()
			sum += ps[i]
		}
		for i := range ps {
			ps[i] = ps[i] / sum * 100
		}

		tess := Tessellate(wideBottom, ps)
		last := tess.Pieces[n-1]
		if last.EndRatio != 2 {
			t.Fatalf("trial %d: last EndRatio = %v, want exactly 2", trial, last.EndRatio)
		}
		if got := last.Polygon.Vertices[len(last.Polygon.Vertices)-1]; got != wideBottom.BottomRight {
			t.Fatalf("trial %d: last vertex = %v, want bottom-right corner", trial, got)
		}
		if tess.Report.Has(IssueAreaMismatch) {
			t.Fatalf("trial %d: area mismatch: %v", trial, tess.Report.Issues)
		}
	}
}

func TestTessellateContiguous(t *testing.T) {
	tess := Tessellate(wideBottom, []float64{10, 25, 5, 60})

	if len(tess.CutPoints) != 3 {
		t.Fatalf("got %d cut points, want 3", len(tess.CutPoints))
	}
	for i := 1; i < len(tess.Pieces); i++ {
		if tess.Pieces[i].StartRatio != tess.Pieces[i-1].EndRatio {
			t.Errorf("piece %d starts at %v, previous ends at %v", i, tess.Pieces[i].StartRatio, tess.Pieces[i-1].EndRatio)
		}
		if got, want := tess.CutPoints[i-1], wideBottom.PointAt(tess.Pieces[i].StartRatio); got != want {
			t.Errorf("cut point %d = %v, want %v", i-1, got, want)
		}
	}

	var areas float64
	for _, p := range tess.Pieces {
		areas += p.Polygon.Area()
	}
	if math.Abs(areas-wideBottom.TotalArea()) > 1e-6 {
		t.Errorf("pieces cover %v, trapezoid is %v", areas, wideBottom.TotalArea())
	}
}

func TestTessellateLabelAnchors(t *testing.T) {
	tess := Tessellate(wideBottom, []float64{30, 30, 40})
	want := make([]geom.Point, len(tess.Pieces))
	for i, p := range tess.Pieces {
		want[i] = geom.Centroid(p.Polygon.Vertices)
	}
	if diff := cmp.Diff(want, tess.LabelAnchors, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("label anchors mismatch (-want +got):\n%s", diff)
	}
}

func TestTessellateEmpty(t *testing.T) {
	tess := Tessellate(wideBottom, nil)
	if len(tess.Pieces) != 0 || len(tess.CutPoints) != 0 || len(tess.LabelAnchors) != 0 {
		t.Errorf("empty input produced %+v", tess)
	}
	if !tess.Report.OK() {
		t.Errorf("empty input reported issues: %v", tess.Report.Issues)
	}
}

func TestTessellateZeroHeight(t *testing.T) {
	flat := Trapezoid{
		Origin:      geom.Point{X: 0, Y: 50},
		TopLeft:     geom.Point{X: 0, Y: 50},
		TopRight:    geom.Point{X: 100, Y: 50},
		BottomRight: geom.Point{X: 100, Y: 50},
	}
	tess := Tessellate(flat, []float64{50, 50})
	for i, p := range tess.Pieces {
		if math.IsNaN(p.StartRatio) || math.IsNaN(p.EndRatio) {
			t.Fatalf("piece %d has NaN ratios", i)
		}
		if a := p.Polygon.Area(); a != 0 {
			t.Errorf("piece %d area = %v, want 0", i, a)
		}
	}
}

func TestTessellatePercentSumIssue(t *testing.T) {
	tess := Tessellate(wideBottom, []float64{30, 30})

	if !tess.Report.Has(IssuePercentSum) {
		t.Fatalf("expected percent-sum issue, got %v", tess.Report.Issues)
	}
	if tess.Report.Has(IssueAreaMismatch) {
		t.Errorf("normalization problem reported as area mismatch: %v", tess.Report.Issues)
	}
	if got := tess.Pieces[1].EndRatio; got != 2 {
		t.Errorf("unnormalized input should still close, EndRatio = %v", got)
	}
}

func TestVerifyFlagsAreaMismatch(t *testing.T) {
	tess := Tessellate(wideBottom, []float64{30, 30, 40})
	pieces := append([]Piece(nil), tess.Pieces...)
	pieces[0].EndRatio = 0.8
	pieces[1].StartRatio = 0.8

	r := verify(wideBottom, pieces, 100, options{sumTol: DefaultSumTolerance, areaTol: DefaultAreaTolerance})
	if r.Has(IssuePercentSum) {
		t.Errorf("unexpected percent-sum issue: %v", r.Issues)
	}
	if len(r.Issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(r.Issues), r.Issues)
	}
	for i, issue := range r.Issues {
		if issue.Kind != IssueAreaMismatch || issue.Segment != i {
			t.Errorf("issue %d = %v", i, issue)
		}
	}
}

func TestTessellateTolerances(t *testing.T) {
	percents := []float64{30, 30, 39.95}

	if tess := Tessellate(wideBottom, percents); !tess.Report.Has(IssuePercentSum) {
		t.Errorf("default tolerance should flag a 0.05 shortfall, got %v", tess.Report.Issues)
	}
	if tess := Tessellate(wideBottom, percents, WithSumTolerance(0.1)); !tess.Report.OK() {
		t.Errorf("loose tolerance should accept a 0.05 shortfall, got %v", tess.Report.Issues)
	}
}

func TestTessellateToleratedShortfallIsNotAreaMismatch(t *testing.T) {
	tests := []struct {
		name     string
		percents []float64
		sumTol   float64
		wantSum  bool
	}{
		{"within tolerance", []float64{50, 49.5}, 1, false},
		{"beyond tolerance", []float64{50, 49.5}, 0.1, true},
		{"single piece", []float64{90}, 20, false},
		{"overshoot", []float64{60, 40.5}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tess := Tessellate(wideBottom, tt.percents, WithSumTolerance(tt.sumTol))
			if tess.Report.Has(IssueAreaMismatch) {
				t.Errorf("residual reported as area mismatch: %v", tess.Report.Issues)
			}
			if got := tess.Report.Has(IssuePercentSum); got != tt.wantSum {
				t.Errorf("percent-sum issue = %v, want %v (%v)", got, tt.wantSum, tess.Report.Issues)
			}
		})
	}
}
