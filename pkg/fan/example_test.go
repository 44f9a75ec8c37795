package fan_test

import (
	"fmt"

	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/geom"
)

func ExampleTessellate() {
	t := fan.Trapezoid{
		Origin:      geom.Point{X: 0, Y: 100},
		TopLeft:     geom.Point{X: 200, Y: 0},
		TopRight:    geom.Point{X: 400, Y: 0},
		BottomRight: geom.Point{X: 400, Y: 100},
	}

	tess := fan.Tessellate(t, []float64{30, 30, 40})
	for _, p := range tess.Pieces {
		fmt.Printf("%-8s %.2f..%.2f area %.0f%%\n",
			p.Polygon.Kind, p.StartRatio, p.EndRatio, 100*p.Polygon.Area()/t.TotalArea())
	}
	fmt.Println("ok:", tess.Report.OK())
	// Output:
	// triangle 0.00..0.90 area 30%
	// quad     0.90..1.40 area 30%
	// triangle 1.40..2.00 area 40%
	// ok: true
}

func ExamplePartitionLayers() {
	for _, s := range fan.PartitionLayers(0, 400, []float64{25, 25, 50}) {
		fmt.Printf("%.0f-%.0f\n", s.Top, s.Bottom)
	}
	// Output:
	// 0-100
	// 100-200
	// 200-400
}
