package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 2}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, raw.Shape())
	assert.Equal(t, []int{2, 1}, raw.Strides())
	assert.Equal(t, 2, raw.NDim())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	assert.Equal(t, CPU, raw.Device())
	assert.Equal(t, make([]float32, 6), raw.AsFloat32())

	_, err = NewRaw(Shape{3, 0}, Float32, CPU)
	require.Error(t, err)
}

func TestRawTensor_ZeroCopyViews(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Int64, CPU)
	require.NoError(t, err)

	data := raw.AsInt64()
	data[0] = 42
	assert.Equal(t, int64(42), raw.AsInt64()[0], "AsInt64 should return zero-copy slice")

	assert.Panics(t, func() { raw.AsFloat32() })
	assert.Panics(t, func() { raw.AsFloat64() })
	assert.Panics(t, func() { raw.AsFloat16() })
	assert.Panics(t, func() { raw.AsInt32() })
}

func TestRawTensor_ZeroDim(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.NDim())
	assert.Equal(t, 1, raw.NumElements())
	assert.Empty(t, raw.Strides())

	raw.AsFloat64()[0] = 2.5
	assert.Equal(t, 2.5, raw.Item())
	assert.Equal(t, "2.5(float64)", raw.String())
}

func TestRawTensor_Clone(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2}, Shape{2})
	require.NoError(t, err)

	clone := raw.Clone()
	clone.AsFloat32()[0] = 9
	assert.Equal(t, float32(1), raw.AsFloat32()[0], "clone must not share memory")
	assert.Equal(t, raw.Shape(), clone.Shape())
}

func TestRawTensor_Float64s(t *testing.T) {
	h, err := FromSlice([]float16.Float16{float16.Fromfloat32(0.5)}, Shape{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, h.Float64s())

	i, err := FromSlice([]int32{-3, 4}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 4}, i.Float64s())
	assert.Equal(t, "[-3 4](int32[2])", i.String())

	assert.Panics(t, func() { i.Item() })
}

func TestDataType(t *testing.T) {
	tests := []struct {
		dtype   DataType
		name    string
		size    int
		isFloat bool
	}{
		{Float32, "float32", 4, true},
		{Float64, "float64", 8, true},
		{Float16, "float16", 2, true},
		{Int32, "int32", 4, false},
		{Int64, "int64", 8, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.dtype.String())
		assert.Equal(t, tt.size, tt.dtype.Size())
		assert.Equal(t, tt.isFloat, tt.dtype.IsFloat())
	}
	assert.Equal(t, "unknown", DataType(99).String())
	assert.Panics(t, func() { DataType(99).Size() })
}
