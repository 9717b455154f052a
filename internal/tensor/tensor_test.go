package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralnet/internal/parallel"
)

func TestShape(t *testing.T) {
	s := Shape{3, 4}
	assert.Equal(t, 12, s.NumElements())
	assert.NoError(t, s.Validate())
	assert.True(t, s.Equal(Shape{3, 4}))
	assert.False(t, s.Equal(Shape{4, 3}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 3, s[0], "Clone must not alias")

	assert.Error(t, Shape{0, 2}.Validate())
	assert.Error(t, Shape{2}.Validate())
	assert.Error(t, Shape{1, 2, 3}.Validate())
}

func TestNew(t *testing.T) {
	x, err := New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, x.Data())

	_, err = New(0, 3)
	assert.Error(t, err)
	_, err = New(2, -1)
	assert.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	x, err := FromSlice(src, Shape{2, 2})
	require.NoError(t, err)
	src[0] = 100
	assert.Equal(t, 1.0, x.At(0, 0), "FromSlice must copy")

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	assert.Error(t, err)
}

func TestFromRows(t *testing.T) {
	x, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, 6.0, x.At(1, 2))
	assert.Equal(t, []float64{4, 5, 6}, x.Row(1))
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, x.ToRows())

	_, err = FromRows(nil)
	assert.Error(t, err)
	_, err = FromRows([][]float64{{}})
	assert.Error(t, err)
	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestAtSetPanics(t *testing.T) {
	x := Zeros(Shape{2, 2})
	x.Set(7, 1, 0)
	assert.Equal(t, 7.0, x.At(1, 0))
	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.Set(1, 0, -1) })
}

func TestMatMul(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := FromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := a.MatMul(b)
	require.NoError(t, err)
	want, _ := FromRows([][]float64{{58, 64}, {139, 154}})
	assert.True(t, c.Equal(want, 1e-12), "got %v", c)

	_, err = a.MatMul(a)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMatMul_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := Random(Shape{97, 13}, Normal{StdDev: 1}, rng)
	b := Random(Shape{13, 11}, Normal{StdDev: 1}, rng)

	prev := ParallelConfig()
	defer SetParallelConfig(prev)

	SetParallelConfig(parallel.Sequential())
	seq, err := a.MatMul(b)
	require.NoError(t, err)

	SetParallelConfig(parallel.WithWorkers(4))
	par, err := a.MatMul(b)
	require.NoError(t, err)

	assert.True(t, seq.Equal(par, 0))
}

func TestTranspose(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	at := a.Transpose()
	assert.Equal(t, Shape{3, 2}, at.Shape())
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at.ToRows())
}

func TestElementwise(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := FromRows([][]float64{{5, 6}, {7, 8}})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 8, 10, 12}, sum.Data())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-4, -4, -4, -4}, diff.Data())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 12, 21, 32}, prod.Data())

	other := Zeros(Shape{1, 2})
	_, err = a.Add(other)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestAddRowVector(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	row, _ := RowVector(10, 20)

	out, err := a.AddRowVector(row)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 13, 24, 15, 26}, out.Data())

	bad, _ := RowVector(1, 2, 3)
	_, err = a.AddRowVector(bad)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestReductions(t *testing.T) {
	a, _ := FromRows([][]float64{{1, -2}, {3, 4}})
	assert.Equal(t, []float64{4, 2}, a.SumRows().Data())
	assert.Equal(t, 6.0, a.Sum())
	assert.Equal(t, 4.0, a.Max())
	assert.Equal(t, []float64{2, -4, 6, 8}, a.Scale(2).Data())
}

func TestInPlace(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	b, _ := FromRows([][]float64{{3, 4}})

	require.NoError(t, a.AddInPlace(b))
	assert.Equal(t, []float64{4, 6}, a.Data())

	a.ScaleInPlace(0.5)
	assert.Equal(t, []float64{2, 3}, a.Data())

	require.NoError(t, a.CopyFrom(b))
	assert.Equal(t, []float64{3, 4}, a.Data())

	assert.Error(t, a.CopyFrom(Zeros(Shape{2, 2})))
}

func TestClone(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	c := a.Clone()
	c.Set(9, 0, 0)
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	u := Random(Shape{20, 20}, Uniform{Low: -0.5, High: 0.5}, rng)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.5)
	}

	a := Random(Shape{3, 3}, Normal{StdDev: 1}, rand.New(rand.NewSource(5)))
	b := Random(Shape{3, 3}, Normal{StdDev: 1}, rand.New(rand.NewSource(5)))
	assert.True(t, a.Equal(b, 0), "same seed must give the same tensor")
}

func TestFull(t *testing.T) {
	f := Full(Shape{2, 2}, 3.5)
	assert.Equal(t, []float64{3.5, 3.5, 3.5, 3.5}, f.Data())
	assert.Panics(t, func() { Zeros(Shape{0, 1}) })
}

func TestString(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	assert.Equal(t, "Tensor[1 2][[1 2]]", a.String())
}
