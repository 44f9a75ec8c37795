package fan

import (
	"math"

	"github.com/matzehuels/fanchart/pkg/geom"
)

// Piece is the polygon covering one segment of a layer.
type Piece struct {
	Index      int          `json:"index"`
	Percent    float64      `json:"percent"`
	StartRatio float64      `json:"start_ratio"`
	EndRatio   float64      `json:"end_ratio"`
	Polygon    geom.Polygon `json:"polygon"`
}

// Tessellation is the result of partitioning one trapezoid.
type Tessellation struct {
	Pieces       []Piece      `json:"pieces"`
	CutPoints    []geom.Point `json:"cut_points"`    // internal boundaries, len(Pieces)-1
	LabelAnchors []geom.Point `json:"label_anchors"` // one per piece
	Report       Report       `json:"report"`
}

// Option configures [Tessellate].
type Option func(*options)

type options struct {
	sumTol  float64
	areaTol float64
}

// WithSumTolerance sets how far, in percentage points, the percents may sum
// away from 100 before [IssuePercentSum] is reported.
func WithSumTolerance(tol float64) Option { return func(o *options) { o.sumTol = tol } }

// WithAreaTolerance sets how far, in percentage points, a polygon's area may
// diverge from its percent before [IssueAreaMismatch] is reported.
func WithAreaTolerance(tol float64) Option { return func(o *options) { o.areaTol = tol } }

// Tessellate partitions t into one polygon per entry of percents, in order,
// so that each polygon's area is that percent of the trapezoid's area.
//
// The last segment ends at [Trapezoid.ClosingRatio] exactly. An empty
// percents slice yields an empty tessellation.
func Tessellate(t Trapezoid, percents []float64, opts ...Option) Tessellation {
	o := options{sumTol: DefaultSumTolerance, areaTol: DefaultAreaTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(percents)
	tess := Tessellation{
		Pieces:       make([]Piece, 0, n),
		CutPoints:    make([]geom.Point, 0, max(n-1, 0)),
		LabelAnchors: make([]geom.Point, 0, n),
	}
	if n == 0 {
		return tess
	}

	closing := t.ClosingRatio()
	var cumulative, sum float64
	start := 0.0
	for i, p := range percents {
		sum += p
		cumulative += p / 100

		end := t.RatioForArea(cumulative)
		if i == n-1 {
			end = closing
		}

		poly := piecePolygon(t, start, end)
		tess.Pieces = append(tess.Pieces, Piece{
			Index:      i,
			Percent:    p,
			StartRatio: start,
			EndRatio:   end,
			Polygon:    poly,
		})
		tess.LabelAnchors = append(tess.LabelAnchors, poly.Centroid())
		if i < n-1 {
			tess.CutPoints = append(tess.CutPoints, t.PointAt(end))
		}
		start = end
	}

	tess.Report = verify(t, tess.Pieces, sum, o)
	return tess
}

// piecePolygon builds the region between two sweep ratios. A region that
// straddles the top-right corner needs that corner as a fourth vertex.
func piecePolygon(t Trapezoid, start, end float64) geom.Polygon {
	a, b := t.PointAt(start), t.PointAt(end)
	if start <= 1 && end > 1 {
		return geom.NewQuad(t.Origin, a, t.TopRight, b)
	}
	return geom.NewTriangle(t.Origin, a, b)
}

// verify compares each piece's swept area with its requested percent. The
// forced closure of the last piece absorbs whatever the percents miss of 100,
// so that piece is held to its percent plus the residual; the residual itself
// is a sum problem, never an area mismatch.
func verify(t Trapezoid, pieces []Piece, sum float64, o options) Report {
	var r Report
	sumOK := math.Abs(sum-100) <= o.sumTol
	if !sumOK {
		r.add(Issue{Kind: IssuePercentSum, Segment: -1, Expected: 100, Actual: sum})
	}

	total := t.TotalArea()
	if total <= eps {
		return r
	}
	for i, p := range pieces {
		want := p.Percent
		if i == len(pieces)-1 {
			want += 100 - sum
		}
		actual := (t.AreaForRatio(p.EndRatio) - t.AreaForRatio(p.StartRatio)) / total * 100
		if math.Abs(actual-want) > o.areaTol {
			r.add(Issue{Kind: IssueAreaMismatch, Segment: i, Expected: want, Actual: actual})
		}
	}
	return r
}
