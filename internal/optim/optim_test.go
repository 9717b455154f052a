package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralnet/internal/nn"
	"github.com/born-ml/neuralnet/internal/optim"
	"github.com/born-ml/neuralnet/internal/tensor"
)

func scalarParam(t *testing.T, name string, v float64) *nn.Parameter {
	t.Helper()
	x, err := tensor.RowVector(v)
	require.NoError(t, err)
	return nn.NewParameter(name, x)
}

func setGrad(t *testing.T, p *nn.Parameter, g float64) {
	t.Helper()
	x, err := tensor.RowVector(g)
	require.NoError(t, err)
	p.SetGrad(x)
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := scalarParam(t, "x", 2.0)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	setGrad(t, param, 4.0)
	sgd.Step([]*nn.Parameter{param})

	// 2.0 - 0.1*4.0 = 1.6
	assert.InDelta(t, 1.6, param.Tensor().Data()[0], 1e-12)
}

// TestSGD_Momentum tests velocity accumulation.
func TestSGD_Momentum(t *testing.T) {
	param := scalarParam(t, "x", 1.0)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	params := []*nn.Parameter{param}

	setGrad(t, param, 1.0)
	sgd.Step(params) // v = 1, x = 1 - 0.1 = 0.9
	assert.InDelta(t, 0.9, param.Tensor().Data()[0], 1e-12)

	setGrad(t, param, 1.0)
	sgd.Step(params) // v = 0.9 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	assert.InDelta(t, 0.71, param.Tensor().Data()[0], 1e-12)
}

// TestSGD_MinimizesQuadratic minimizes f(x) = (x-3)².
func TestSGD_MinimizesQuadratic(t *testing.T) {
	param := scalarParam(t, "x", 0.0)
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	params := []*nn.Parameter{param}

	for i := 0; i < 200; i++ {
		x := param.Tensor().Data()[0]
		setGrad(t, param, 2*(x-3))
		sgd.Step(params)
		sgd.ZeroGrad(params)
	}
	assert.InDelta(t, 3.0, param.Tensor().Data()[0], 1e-6)
	assert.Nil(t, param.Grad())
}

func TestSGD_SkipsMissingGradient(t *testing.T) {
	param := scalarParam(t, "x", 5.0)
	optim.NewSGD(optim.SGDConfig{LR: 1}).Step([]*nn.Parameter{param})
	assert.Equal(t, 5.0, param.Tensor().Data()[0])
}

func TestSGD_Defaults(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{})
	assert.Equal(t, 0.01, sgd.LR())
	sgd.SetLR(0.5)
	assert.Equal(t, 0.5, sgd.LR())
	assert.Equal(t, "sgd", sgd.Name())
}

// TestAdam_FirstStep checks the bias-corrected first step equals lr*sign(g).
func TestAdam_FirstStep(t *testing.T) {
	param := scalarParam(t, "x", 1.0)
	adam := optim.NewAdam(optim.AdamConfig{LR: 0.01})

	setGrad(t, param, 0.5)
	adam.Step([]*nn.Parameter{param})

	assert.Equal(t, 1, adam.Timestep())
	assert.InDelta(t, 1.0-0.01, param.Tensor().Data()[0], 1e-6)
}

// TestAdam_MinimizesQuadratic minimizes f(x) = (x+2)².
func TestAdam_MinimizesQuadratic(t *testing.T) {
	param := scalarParam(t, "x", 5.0)
	adam := optim.NewAdam(optim.AdamConfig{LR: 0.1})
	params := []*nn.Parameter{param}

	for i := 0; i < 2000; i++ {
		x := param.Tensor().Data()[0]
		setGrad(t, param, 2*(x+2))
		adam.Step(params)
	}
	assert.Less(t, math.Abs(param.Tensor().Data()[0]+2), 0.05)
}

func TestByName(t *testing.T) {
	o, err := optim.ByName("SGD", optim.Config{LR: 0.3, Momentum: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.3, o.LR())
	assert.Equal(t, 0.5, o.(*optim.SGD).Momentum())

	o, err = optim.ByName("adam", optim.Config{})
	require.NoError(t, err)
	assert.Equal(t, 0.001, o.LR())
	assert.Equal(t, "adam", o.Name())

	_, err = optim.ByName("lbfgs", optim.Config{})
	assert.ErrorIs(t, err, optim.ErrUnknownOptimizer)
}
