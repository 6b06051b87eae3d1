package optimizer_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/topology"
)

// ExampleOptimizer_Step widens the only gap of a single spring by stiffening it.
func ExampleOptimizer_Step() {
	pos, _ := geometry.New([]geometry.Vec{{0.2, 0.5}, {0.5, 0.5}}, geometry.UnitBox)
	e := topology.Edge{I: 0, J: 1}
	s := &optimizer.State{Positions: pos, Edges: []topology.Edge{e}, Stiffness: topology.Stiffness{e: 1}}

	p := optimizer.DefaultParams()
	p.EtaK = 0.5
	o, _ := optimizer.New(p)

	res, _ := o.Step(context.Background(), s)
	fmt.Printf("evaluations: %d\n", res.Evaluations)
	fmt.Printf("gap before: %.4f\n", res.Gap)
	fmt.Printf("stiffened: %v\n", s.Stiffness[e] > 1)
	// Output:
	// evaluations: 11
	// gap before: 1.4142
	// stiffened: true
}
