package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralnet/internal/activation"
	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/tensor"
)

func mustRows(t *testing.T, rows [][]float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromRows(rows)
	require.NoError(t, err)
	return x
}

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	data := mustRows(t, [][]float64{{1, 2, 3}})
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Nil(t, param.Grad())

	grad := mustRows(t, [][]float64{{0.1, 0.2, 0.3}})
	param.SetGrad(grad)
	assert.Same(t, grad, param.Grad())

	param.ZeroGrad()
	assert.Nil(t, param.Grad())
}

func TestLayer_Forward(t *testing.T) {
	w := mustRows(t, [][]float64{{1, -1}, {2, 0.5}})
	b := mustRows(t, [][]float64{{0.5, -0.5}})
	layer, err := nn.NewLayer(activation.Identity{}, w, b)
	require.NoError(t, err)
	assert.Equal(t, 2, layer.Inputs())
	assert.Equal(t, 2, layer.Neurons())

	x := mustRows(t, [][]float64{{1, 1}, {0, 2}})
	out, err := layer.Forward(x)
	require.NoError(t, err)
	// [1,1]@W = [3, -0.5] + b = [3.5, -1]; [0,2]@W = [4, 1] + b = [4.5, 0.5]
	assert.Equal(t, [][]float64{{3.5, -1}, {4.5, 0.5}}, out.ToRows())
	assert.Same(t, out, layer.Output())

	relu, err := nn.NewLayer(activation.Rectifier{}, w, b)
	require.NoError(t, err)
	out, err = relu.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3.5, 0}, {4.5, 0.5}}, out.ToRows())

	_, err = layer.Forward(mustRows(t, [][]float64{{1, 2, 3}}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestLayer_Validation(t *testing.T) {
	w := tensor.Zeros(tensor.Shape{2, 3})

	_, err := nn.NewLayer(nil, w, nil)
	assert.Error(t, err)

	_, err = nn.NewLayer(activation.Sigmoid{}, w, tensor.Zeros(tensor.Shape{1, 2}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	layer, err := nn.NewLayer(activation.Sigmoid{}, w, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3}, layer.Bias().Tensor().Shape())

	_, err = layer.Backward(tensor.Zeros(tensor.Shape{1, 3}))
	assert.ErrorIs(t, err, nn.ErrNoForward)

	_, err = nn.NewRandomLayer(activation.Sigmoid{}, 0, 3, nil, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

// numericalGradient perturbs every parameter element and measures the loss change.
func numericalGradient(t *testing.T, net *nn.Network, x, y *tensor.Tensor, loss nn.Loss, p *nn.Parameter) []float64 {
	t.Helper()
	const h = 1e-6
	data := p.Tensor().Data()
	grad := make([]float64, len(data))
	for i := range data {
		orig := data[i]

		data[i] = orig + h
		out, err := net.Forward(x)
		require.NoError(t, err)
		plus, err := loss.Compute(out, y)
		require.NoError(t, err)

		data[i] = orig - h
		out, err = net.Forward(x)
		require.NoError(t, err)
		minus, err := loss.Compute(out, y)
		require.NoError(t, err)

		data[i] = orig
		grad[i] = (plus - minus) / (2 * h)
	}
	return grad
}

func TestNetwork_BackwardMatchesNumericalGradient(t *testing.T) {
	for _, tc := range []struct {
		name   string
		hidden activation.Activation
		out    activation.Activation
		loss   nn.Loss
	}{
		{"sigmoid/half_sse", activation.Sigmoid{}, activation.Sigmoid{}, nn.HalfSSE{}},
		{"tanh/mse", activation.TanH{}, activation.Identity{}, nn.MSE{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			net, err := nn.NewBuilder(3).
				WithRand(rand.New(rand.NewSource(11))).
				Layer(4, tc.hidden).
				Output(2, tc.out)
			require.NoError(t, err)

			x := mustRows(t, [][]float64{{0.1, -0.4, 0.9}, {1.2, 0.3, -0.7}})
			y := mustRows(t, [][]float64{{0.2, 0.8}, {0.9, 0.1}})

			// Analytical gradients are stored on the parameters; copy them
			// before the numerical pass reruns Forward.
			_, err = net.Backward(x, y, tc.loss)
			require.NoError(t, err)
			analytical := make([][]float64, 0)
			for _, p := range net.Parameters() {
				require.NotNil(t, p.Grad(), p.Name())
				analytical = append(analytical, append([]float64(nil), p.Grad().Data()...))
			}

			for i, p := range net.Parameters() {
				numeric := numericalGradient(t, net, x, y, tc.loss, p)
				for j := range numeric {
					assert.InDelta(t, numeric[j], analytical[i][j], 1e-6, "param %d (%s) element %d", i, p.Name(), j)
				}
			}
		})
	}
}

func TestNetwork_NoLayers(t *testing.T) {
	net, err := nn.NewNetwork()
	require.NoError(t, err)
	_, err = net.Forward(mustRows(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, nn.ErrNoLayers)
	assert.Equal(t, 0, net.Inputs())
	assert.Equal(t, 0, net.Outputs())
}

func TestNetwork_Mismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a, _ := nn.NewRandomLayer(activation.Sigmoid{}, 2, 3, nil, rng)
	b, _ := nn.NewRandomLayer(activation.Sigmoid{}, 4, 1, nil, rng)
	_, err := nn.NewNetwork(a, b)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNetwork_PredictIsACopy(t *testing.T) {
	net, err := nn.NewBuilder(2).WithRand(rand.New(rand.NewSource(3))).Output(1, activation.Sigmoid{})
	require.NoError(t, err)

	first, err := net.Predict(mustRows(t, [][]float64{{1, 0}}))
	require.NoError(t, err)
	before := first.At(0, 0)

	_, err = net.Predict(mustRows(t, [][]float64{{0, 1}}))
	require.NoError(t, err)
	assert.Equal(t, before, first.At(0, 0))
}

func TestBuilder(t *testing.T) {
	net, err := nn.NewBuilder(2).
		WithRand(rand.New(rand.NewSource(42))).
		Layer(3, activation.Sigmoid{}).
		Layer(4, activation.TanH{}).
		Output(1, activation.Identity{})
	require.NoError(t, err)

	require.Len(t, net.Layers(), 3)
	assert.Equal(t, 2, net.Inputs())
	assert.Equal(t, 1, net.Outputs())
	assert.Equal(t, tensor.Shape{2, 3}, net.Layers()[0].Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{3, 4}, net.Layers()[1].Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{4, 1}, net.Layers()[2].Weight().Tensor().Shape())
	assert.Len(t, net.Parameters(), 6)

	// Xavier bound for 2→3 is sqrt(6/5).
	bound := math.Sqrt(6.0 / 5.0)
	for _, v := range net.Layers()[0].Weight().Tensor().Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}
}

func TestBuilder_Errors(t *testing.T) {
	_, err := nn.NewBuilder(0).Output(1, activation.Sigmoid{})
	assert.ErrorIs(t, err, nn.ErrNoInputs)

	_, err = nn.NewBuilder(2).Layer(0, activation.Sigmoid{}).Output(1, activation.Sigmoid{})
	assert.Error(t, err)

	_, err = nn.NewBuilder(2).Output(1, nil)
	assert.Error(t, err)
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() *nn.Network {
		net, err := nn.NewBuilder(2).
			WithRand(rand.New(rand.NewSource(9))).
			WithInitializer(nn.RandomNormal{StdDev: 0.5}).
			Layer(2, activation.Sigmoid{}).
			Output(1, activation.Sigmoid{})
		require.NoError(t, err)
		return net
	}
	a, b := build(), build()
	for key, ta := range a.StateDict() {
		assert.True(t, ta.Equal(b.StateDict()[key], 0), key)
	}
}

func TestStateDict_RoundTrip(t *testing.T) {
	src, err := nn.NewBuilder(2).WithRand(rand.New(rand.NewSource(1))).Layer(3, activation.TanH{}).Output(1, activation.Sigmoid{})
	require.NoError(t, err)
	dst, err := nn.NewBuilder(2).WithRand(rand.New(rand.NewSource(2))).Layer(3, activation.TanH{}).Output(1, activation.Sigmoid{})
	require.NoError(t, err)

	state := src.StateDict()
	assert.Len(t, state, 4)
	assert.Contains(t, state, "0.weight")
	assert.Contains(t, state, "1.bias")

	require.NoError(t, dst.LoadStateDict(state))

	x := mustRows(t, [][]float64{{0.3, 0.7}})
	a, _ := src.Predict(x)
	b, _ := dst.Predict(x)
	assert.True(t, a.Equal(b, 0))

	assert.Error(t, dst.LoadStateDict(map[string]*tensor.Tensor{"7.weight": tensor.Zeros(tensor.Shape{1, 1})}))
	assert.Error(t, dst.LoadStateDict(map[string]*tensor.Tensor{"weight": tensor.Zeros(tensor.Shape{1, 1})}))

	bad := src.StateDict()
	bad["0.weight"] = tensor.Zeros(tensor.Shape{3, 2})
	assert.ErrorIs(t, dst.LoadStateDict(bad), tensor.ErrShapeMismatch)
}

func TestLosses(t *testing.T) {
	p := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	y := mustRows(t, [][]float64{{0, 2}, {5, 4}})

	mse, err := nn.MSE{}.Compute(p, y)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/4.0, mse, 1e-12)

	g, err := nn.MSE{}.Gradient(p, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0, -1, 0}, g.Data())

	sse, err := nn.HalfSSE{}.Compute(p, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, sse, 1e-12)

	g, err = nn.HalfSSE{}.Gradient(p, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, -2, 0}, g.Data())

	_, err = nn.MSE{}.Compute(p, mustRows(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	l, err := nn.LossByName("MSE")
	require.NoError(t, err)
	assert.Equal(t, "mse", l.Name())
	_, err = nn.LossByName("hinge")
	assert.ErrorIs(t, err, nn.ErrUnknownLoss)
}
