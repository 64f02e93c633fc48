package autodiff_test

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/tensor"
)

func leaf(t *testing.T, v any) *autodiff.Node {
	t.Helper()
	n, err := autodiff.NewNode(v)
	require.NoError(t, err)
	return n
}

func slice(t *testing.T, data []float64, shape ...int) *autodiff.Node {
	t.Helper()
	raw, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return leaf(t, raw)
}

func item(t *testing.T, raw *tensor.RawTensor) float64 {
	t.Helper()
	require.NotNil(t, raw)
	return raw.Item()
}

// TestNewNode_ScalarPromotion tests that bare scalars become zero-dim arrays.
func TestNewNode_ScalarPromotion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		dtype tensor.DataType
	}{
		{"float64", 1.5, tensor.Float64},
		{"float32", float32(1.5), tensor.Float32},
		{"int", 3, tensor.Int64},
		{"int32", int32(3), tensor.Int32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := leaf(t, tt.value)
			assert.Equal(t, 0, n.NDim())
			assert.Equal(t, 1, n.Size())
			assert.Equal(t, tt.dtype, n.DType())
			assert.Empty(t, n.Shape())
			assert.Equal(t, 0, n.Len())
			assert.True(t, n.IsLeaf())
			assert.Equal(t, 0, n.Generation())
			assert.Nil(t, n.Grad())
		})
	}
}

// TestNewNode_Array tests shape introspection delegated to the value.
func TestNewNode_Array(t *testing.T) {
	n := slice(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, tensor.Shape{2, 3}, n.Shape())
	assert.Equal(t, 2, n.NDim())
	assert.Equal(t, 6, n.Size())
	assert.Equal(t, 2, n.Len())
	assert.Equal(t, tensor.Float64, n.DType())

	v := leaf(t, []float32{1, 2, 3})
	assert.Equal(t, tensor.Shape{3}, v.Shape())
	assert.Equal(t, tensor.Float32, v.DType())
}

// TestNewNode_TypeMismatch tests construction from values that are not arrays.
func TestNewNode_TypeMismatch(t *testing.T) {
	for _, v := range []any{"1.0", nil, []string{"a"}, map[string]int{}, struct{}{}} {
		_, err := autodiff.NewNode(v)
		require.ErrorIs(t, err, autodiff.ErrTypeMismatch, "value %#v", v)
	}

	n := leaf(t, 1.0)
	_, err := autodiff.NewNode(n)
	require.ErrorIs(t, err, autodiff.ErrTypeMismatch)
}

func TestNode_Name(t *testing.T) {
	n, err := autodiff.NewNode(2.0, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", n.Name())
	assert.Contains(t, n.String(), "x")

	n.SetName("y")
	assert.Equal(t, "y", n.Name())
}

// TestAdd_Gradient: for y = a + b, both gradients are ones.
func TestAdd_Gradient(t *testing.T) {
	a := slice(t, []float64{1, 2, 3}, 3)
	b := slice(t, []float64{4, 5, 6}, 3)

	y, err := autodiff.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, y.Value().Float64s())

	require.NoError(t, y.Backward(false))
	assert.True(t, tensor.Equal(tensor.OnesLike(a.Value()), a.Grad()))
	assert.True(t, tensor.Equal(tensor.OnesLike(b.Value()), b.Grad()))
}

// TestMul_Gradient: for y = a * b, a.grad = b and b.grad = a.
func TestMul_Gradient(t *testing.T) {
	a := slice(t, []float64{1, 2, 3}, 3)
	b := slice(t, []float64{4, 5, 6}, 3)

	y, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, y.Value().Float64s())

	require.NoError(t, y.Backward(false))
	assert.True(t, tensor.Equal(b.Value(), a.Grad()))
	assert.True(t, tensor.Equal(a.Value(), b.Grad()))
}

// TestBackward_Diamond: t = a + a, y = a + t has three paths from a to y.
func TestBackward_Diamond(t *testing.T) {
	a := leaf(t, 2.0)
	tt, err := autodiff.Add(a, a)
	require.NoError(t, err)
	y, err := autodiff.Add(a, tt)
	require.NoError(t, err)

	require.NoError(t, y.Backward(false))
	assert.Equal(t, 3.0, item(t, a.Grad()))
}

// TestBackward_DeepDiamond: the classic a -> square -> (square, square) -> add
// graph from the generation-ordering chapter. y = (a²)² + (a²)² = 2a⁴,
// dy/da = 8a³.
func TestBackward_DeepDiamond(t *testing.T) {
	x := leaf(t, 2.0)
	a, err := autodiff.Square(x)
	require.NoError(t, err)
	b, err := autodiff.Square(a)
	require.NoError(t, err)
	c, err := autodiff.Square(a)
	require.NoError(t, err)
	y, err := autodiff.Add(b, c)
	require.NoError(t, err)

	assert.Equal(t, 32.0, item(t, y.Value()))
	require.NoError(t, y.Backward(false))
	assert.Equal(t, 64.0, item(t, x.Grad()))
}

// TestBackward_ConcreteScenario walks the worked example from the docs.
func TestBackward_ConcreteScenario(t *testing.T) {
	x0 := leaf(t, 1.0)
	x1 := leaf(t, 1.0)
	tt, err := autodiff.Add(x0, x1)
	require.NoError(t, err)
	y, err := autodiff.Add(x0, tt)
	require.NoError(t, err)

	assert.Equal(t, 2.0, item(t, tt.Value()))
	assert.Equal(t, 3.0, item(t, y.Value()))

	require.NoError(t, y.Backward(true))
	assert.Equal(t, 1.0, item(t, y.Grad()))
	assert.Equal(t, 1.0, item(t, tt.Grad()))
	assert.Equal(t, 2.0, item(t, x0.Grad()))
	assert.Equal(t, 1.0, item(t, x1.Grad()))
}

// TestBackward_ReleasesIntermediateGradients tests retainGrad=false.
func TestBackward_ReleasesIntermediateGradients(t *testing.T) {
	x0 := leaf(t, 1.0)
	x1 := leaf(t, 1.0)
	tt, err := autodiff.Add(x0, x1)
	require.NoError(t, err)
	y, err := autodiff.Add(x0, tt)
	require.NoError(t, err)

	require.NoError(t, y.Backward(false))
	assert.Nil(t, tt.Grad(), "intermediate gradient must be released")
	assert.Equal(t, 1.0, item(t, y.Grad()), "root keeps its gradient")
	assert.Equal(t, 2.0, item(t, x0.Grad()))
	assert.Equal(t, 1.0, item(t, x1.Grad()))
}

// TestBackward_Idempotent tests that a reset-and-rerun gives the same result.
func TestBackward_Idempotent(t *testing.T) {
	x := slice(t, []float64{0.5, -1, 2}, 3)
	a, err := autodiff.Square(x)
	require.NoError(t, err)
	b, err := autodiff.Exp(a)
	require.NoError(t, err)
	y, err := autodiff.Square(b)
	require.NoError(t, err)

	require.NoError(t, y.Backward(false))
	first := x.Grad().Clone()

	autodiff.ClearGrads(y)
	assert.Nil(t, x.Grad())
	assert.Nil(t, y.Grad())

	require.NoError(t, y.Backward(false))
	assert.True(t, tensor.Equal(first, x.Grad()))
}

// TestBackward_AccumulatesAcrossCalls: without a reset, leaf gradients sum.
func TestBackward_AccumulatesAcrossCalls(t *testing.T) {
	x := leaf(t, 3.0)
	y, err := autodiff.Mul(x, x)
	require.NoError(t, err)

	require.NoError(t, y.Backward(false))
	assert.Equal(t, 6.0, item(t, x.Grad()))

	require.NoError(t, y.Backward(false))
	assert.Equal(t, 12.0, item(t, x.Grad()))

	x.ClearGrad()
	y.ClearGrad()
	require.NoError(t, y.Backward(false))
	assert.Equal(t, 6.0, item(t, x.Grad()))
}

// TestBackward_Leaf tests that Backward on a leaf only seeds its gradient.
func TestBackward_Leaf(t *testing.T) {
	x := slice(t, []float64{1, 2}, 2)
	require.NoError(t, x.Backward(false))
	assert.Equal(t, []float64{1, 1}, x.Grad().Float64s())
}

// TestBackward_CustomSeed tests that a gradient set before Backward is used
// as the seed.
func TestBackward_CustomSeed(t *testing.T) {
	x := leaf(t, 3.0)
	y, err := autodiff.Mul(x, 2.0)
	require.NoError(t, err)

	seed, err := tensor.FromScalar(10.0)
	require.NoError(t, err)
	require.NoError(t, y.SetGrad(seed))
	require.NoError(t, y.Backward(false))
	assert.Equal(t, 20.0, item(t, x.Grad()))

	wrong, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	require.ErrorIs(t, y.SetGrad(wrong), autodiff.ErrTypeMismatch)

	narrow, err := tensor.FromScalar(float32(1))
	require.NoError(t, err)
	require.ErrorIs(t, y.SetGrad(narrow), autodiff.ErrTypeMismatch)

	// The rejected seeds leave the node usable.
	x.ClearGrad()
	y.ClearGrad()
	require.NoError(t, y.Backward(false))
	assert.Equal(t, 2.0, item(t, x.Grad()))
}

// TestScalarArguments_NotRepresentable tests that a bare scalar which cannot
// be stored in the other operand's dtype fails like an explicit Node would.
func TestScalarArguments_NotRepresentable(t *testing.T) {
	i32 := leaf(t, int32(2))
	f16 := leaf(t, float16.Fromfloat32(1))

	tests := []struct {
		name string
		x    *autodiff.Node
		s    any
	}{
		{"fraction into int32", i32, 1.5},
		{"overflow int32", i32, int64(1) << 40},
		{"overflow float16", f16, 1e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := autodiff.Add(tt.x, tt.s)
			require.ErrorIs(t, err, autodiff.ErrTypeMismatch)

			_, err = autodiff.Add(tt.x, leaf(t, tt.s))
			require.ErrorIs(t, err, autodiff.ErrTypeMismatch)
		})
	}

	y, err := autodiff.Add(i32, 3.0)
	require.NoError(t, err)
	assert.Equal(t, []int32{5}, y.Value().AsInt32())
}

// TestScalarArguments: a bare 1.0 behaves like an explicit zero-dim Node.
func TestScalarArguments(t *testing.T) {
	x := leaf(t, 4.0)

	y1, err := autodiff.Add(x, 1.0)
	require.NoError(t, err)
	require.NoError(t, y1.Backward(false))
	g1 := item(t, x.Grad())
	x.ClearGrad()

	one := leaf(t, 1.0)
	y2, err := autodiff.Add(x, one)
	require.NoError(t, err)
	require.NoError(t, y2.Backward(false))
	g2 := item(t, x.Grad())

	assert.Equal(t, item(t, y1.Value()), item(t, y2.Value()))
	assert.Equal(t, y1.Shape(), y2.Shape())
	assert.Equal(t, g1, g2)

	// Scalars first work too.
	y3, err := autodiff.Mul(2.0, x)
	require.NoError(t, err)
	assert.Equal(t, 8.0, item(t, y3.Value()))
}

// TestScalarArguments_AdoptNodeDType tests that scalars take the dtype of the
// Node they meet.
func TestScalarArguments_AdoptNodeDType(t *testing.T) {
	x := leaf(t, []float32{1, 2})
	y, err := autodiff.Mul(x, 3.0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, y.DType())
	assert.Equal(t, []float64{3, 6}, y.Value().Float64s())

	require.NoError(t, y.Backward(false))
	assert.Equal(t, tensor.Float32, x.Grad().DType())
	assert.Equal(t, []float64{3, 3}, x.Grad().Float64s())
}

// TestBroadcast_GradientShape tests that a broadcast operand gets a gradient
// of its own shape.
func TestBroadcast_GradientShape(t *testing.T) {
	a := slice(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := leaf(t, 2.0)

	y, err := autodiff.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, y.Shape())

	require.NoError(t, y.Backward(false))
	assert.Empty(t, b.Grad().Shape())
	assert.Equal(t, 21.0, item(t, b.Grad()))
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2}, a.Grad().Float64s())

	row := slice(t, []float64{10, 20, 30}, 3)
	z, err := autodiff.Add(a, row)
	require.NoError(t, err)
	require.NoError(t, z.Backward(false))
	assert.Equal(t, []float64{2, 2, 2}, row.Grad().Float64s())
}

// TestOperation_DTypeMismatch tests that mixed dtypes are rejected.
func TestOperation_DTypeMismatch(t *testing.T) {
	a := leaf(t, []float32{1, 2})
	b := leaf(t, []int64{1, 2})
	_, err := autodiff.Add(a, b)
	require.ErrorIs(t, err, autodiff.ErrTypeMismatch)

	_, err = autodiff.Add(a, "two")
	require.ErrorIs(t, err, autodiff.ErrTypeMismatch)

	_, err = autodiff.Exp(leaf(t, 3))
	require.ErrorIs(t, err, autodiff.ErrTypeMismatch)
}

// TestOperation_InvalidArity tests forward arity validation.
func TestOperation_InvalidArity(t *testing.T) {
	x := leaf(t, 1.0)

	_, err := autodiff.Call1(ops.Add{}, x)
	require.ErrorIs(t, err, autodiff.ErrInvalidArity)

	_, err = autodiff.Call1(ops.Square{}, x, x)
	require.ErrorIs(t, err, autodiff.ErrInvalidArity)
}

// TestGeneration tests generation bookkeeping.
func TestGeneration(t *testing.T) {
	x0 := leaf(t, 1.0)
	x1 := leaf(t, 1.0)
	tt, err := autodiff.Add(x0, x1)
	require.NoError(t, err)
	y, err := autodiff.Add(x0, tt)
	require.NoError(t, err)

	assert.Equal(t, 0, tt.Creator().Generation())
	assert.Equal(t, 1, tt.Generation())
	assert.Equal(t, 1, y.Creator().Generation())
	assert.Equal(t, 2, y.Generation())

	f := y.Creator()
	assert.Equal(t, "add", f.Op().Name())
	assert.Equal(t, []*autodiff.Node{x0, tt}, f.Inputs())
	assert.Equal(t, []*autodiff.Node{y}, f.Outputs())
}

// TestNoGrad tests that no graph is built while recording is disabled.
func TestNoGrad(t *testing.T) {
	require.True(t, autodiff.GradientRecording())

	x := leaf(t, 2.0)
	var y *autodiff.Node
	autodiff.NoGrad(func() {
		assert.False(t, autodiff.GradientRecording())
		var err error
		y, err = autodiff.Mul(x, x)
		require.NoError(t, err)
	})
	require.True(t, autodiff.GradientRecording())

	assert.Equal(t, 4.0, item(t, y.Value()))
	assert.Nil(t, y.Creator())
	assert.True(t, y.IsLeaf())
	assert.Equal(t, 0, y.Generation())

	require.NoError(t, y.Backward(false))
	assert.Nil(t, x.Grad(), "backward through an unrecorded op must not reach its inputs")
	assert.Equal(t, 1.0, item(t, y.Grad()))
}

// TestNoGrad_RestoresOnPanic tests that an abrupt exit does not leak the
// disabled state.
func TestNoGrad_RestoresOnPanic(t *testing.T) {
	exception := exceptions.Try(func() {
		autodiff.NoGrad(func() {
			panic("boom")
		})
	})
	require.Equal(t, "boom", exception)
	assert.True(t, autodiff.GradientRecording())
}

// TestNoGrad_Nested tests that nested scopes restore the right value.
func TestNoGrad_Nested(t *testing.T) {
	restore := autodiff.SetGradientRecording(false)
	autodiff.NoGrad(func() {
		func() {
			defer autodiff.SetGradientRecording(true)()
			assert.True(t, autodiff.GradientRecording())
		}()
		assert.False(t, autodiff.GradientRecording())
	})
	assert.False(t, autodiff.GradientRecording())
	restore()
	assert.True(t, autodiff.GradientRecording())

	err := autodiff.NoGradE(func() error {
		_, err := autodiff.Add(1.0, 2.0)
		return err
	})
	require.NoError(t, err)
	assert.True(t, autodiff.GradientRecording())
}

// TestChain_SquareExpSquare tests the y = (exp(x²))² chain with a known
// derivative: dy/dx = 4x·exp(2x²).
func TestChain_SquareExpSquare(t *testing.T) {
	x := leaf(t, 0.5)
	a, err := autodiff.Square(x)
	require.NoError(t, err)
	b, err := autodiff.Exp(a)
	require.NoError(t, err)
	y, err := autodiff.Square(b)
	require.NoError(t, err)

	require.NoError(t, y.Backward(false))
	assert.InDelta(t, 3.297442541400256, item(t, x.Grad()), 1e-12)
}

func TestStats(t *testing.T) {
	x0 := leaf(t, 1.0)
	x1 := leaf(t, 1.0)
	tt, err := autodiff.Add(x0, x1)
	require.NoError(t, err)
	y, err := autodiff.Add(x0, tt)
	require.NoError(t, err)

	s := autodiff.Stats(y)
	assert.Equal(t, 2, s.Functions)
	assert.Equal(t, 4, s.Nodes)
	assert.Equal(t, 2, s.Leaves)
	assert.Equal(t, 2, s.MaxGeneration)
	assert.Equal(t, 32, s.ValueBytes)
	assert.Equal(t, 0, s.GradBytes)

	require.NoError(t, y.Backward(true))
	s = autodiff.Stats(y)
	assert.Equal(t, 32, s.GradBytes)
	assert.Contains(t, s.String(), "2 functions")
	assert.Contains(t, s.String(), "32 B")

	assert.Equal(t, autodiff.GraphStats{Nodes: 1, Leaves: 1, ValueBytes: 8}, autodiff.Stats(x0))
}

func TestWalk_StopsEarly(t *testing.T) {
	x := leaf(t, 1.0)
	y := x
	for range 5 {
		var err error
		y, err = autodiff.Square(y)
		require.NoError(t, err)
	}

	var visited int
	autodiff.Walk(y, func(*autodiff.Function) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}
