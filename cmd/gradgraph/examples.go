package main

import (
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/autodiff"
)

type example struct {
	title string
	run   func(retainGrad bool)
}

var examples = map[string]example{
	"scenario": {"y = x0 + (x0 + x1) at x0 = x1 = 1", runScenario},
	"diamond":  {"y = a + (a + a), three paths from a to y", runDiamond},
	"chain":    {"y = square(exp(square(x))) at x = 0.5", runChain},
	"nograd":   {"forward only, no graph recorded", runNoGrad},
}

func runScenario(retainGrad bool) {
	x0 := must.M1(autodiff.NewNode(1.0, "x0"))
	x1 := must.M1(autodiff.NewNode(1.0, "x1"))
	t := must.M1(autodiff.Add(x0, x1)).SetName("t")
	y := must.M1(autodiff.Add(x0, t)).SetName("y")

	printStats(y)
	must.M(y.Backward(retainGrad))
	printNodes(x0, x1, t, y)
	printStats(y)
}

func runDiamond(retainGrad bool) {
	a := must.M1(autodiff.NewNode(2.0, "a"))
	t := must.M1(autodiff.Add(a, a)).SetName("t")
	y := must.M1(autodiff.Add(a, t)).SetName("y")

	must.M(y.Backward(retainGrad))
	printNodes(a, t, y)
}

func runChain(retainGrad bool) {
	x := must.M1(autodiff.NewNode(0.5, "x"))
	a := must.M1(autodiff.Square(x)).SetName("a")
	b := must.M1(autodiff.Exp(a)).SetName("b")
	y := must.M1(autodiff.Square(b)).SetName("y")

	must.M(y.Backward(retainGrad))
	printNodes(x, a, b, y)
	printStats(y)
}

func runNoGrad(bool) {
	x := must.M1(autodiff.NewNode([]float64{1, 2, 3}, "x"))
	var y *autodiff.Node
	autodiff.NoGrad(func() {
		h := x
		for range 100 {
			h = must.M1(autodiff.Mul(h, 1.01))
		}
		y = h.SetName("y")
	})
	klog.V(1).Infof("nograd: y has creator: %t", y.Creator() != nil)

	must.M(y.Backward(false))
	printNodes(x, y)
	printStats(y)
}
