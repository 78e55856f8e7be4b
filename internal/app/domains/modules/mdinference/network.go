package mdinference

import (
	"context"
	"fmt"
	"math"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
)

// Activation is an elementwise (or, for softmax, vector-wide) nonlinearity.
type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
	ActivationELU     Activation = "elu"
	ActivationSoftmax Activation = "softmax"
)

func parseActivation(name string) (Activation, error) {
	switch Activation(name) {
	case "", "None", ActivationLinear:
		return ActivationLinear, nil
	case ActivationReLU, ActivationSigmoid, ActivationTanh, ActivationELU, ActivationSoftmax:
		return Activation(name), nil
	default:
		return "", fmt.Errorf("unsupported activation %q", name)
	}
}

// DenseLayer is a fully connected layer. Kernel is row-major [In][Units].
type DenseLayer struct {
	Name       string
	In         int
	Units      int
	Kernel     []float64
	Bias       []float64
	Activation Activation
}

func (l *DenseLayer) forward(in []float64) []float64 {
	out := make([]float64, l.Units)
	for j := 0; j < l.Units; j++ {
		sum := 0.0
		if l.Bias != nil {
			sum = l.Bias[j]
		}
		for i, x := range in {
			sum += x * l.Kernel[i*l.Units+j]
		}
		out[j] = sum
	}
	activate(l.Activation, out)
	return out
}

func activate(a Activation, v []float64) {
	switch a {
	case ActivationReLU:
		for i, x := range v {
			if x < 0 {
				v[i] = 0
			}
		}
	case ActivationSigmoid:
		for i, x := range v {
			v[i] = 1 / (1 + math.Exp(-x))
		}
	case ActivationTanh:
		for i, x := range v {
			v[i] = math.Tanh(x)
		}
	case ActivationELU:
		for i, x := range v {
			if x < 0 {
				v[i] = math.Exp(x) - 1
			}
		}
	case ActivationSoftmax:
		maxV := math.Inf(-1)
		for _, x := range v {
			maxV = math.Max(maxV, x)
		}
		sum := 0.0
		for i, x := range v {
			v[i] = math.Exp(x - maxV)
			sum += v[i]
		}
		for i := range v {
			v[i] /= sum
		}
	}
}

// Network is a sequential stack of dense layers producing a single output unit.
// It holds no mutable state and is safe for concurrent use.
type Network struct {
	layers []*DenseLayer
}

var _ etassessment.Classifier = (*Network)(nil)

// NewNetwork checks that consecutive layer widths line up and the head has one unit.
func NewNetwork(layers []*DenseLayer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("network has no dense layers")
	}
	for i, l := range layers {
		if l.In <= 0 || l.Units <= 0 {
			return nil, fmt.Errorf("layer %s: invalid shape [%d,%d]", l.Name, l.In, l.Units)
		}
		if len(l.Kernel) != l.In*l.Units {
			return nil, fmt.Errorf("layer %s: kernel has %d values, want %d", l.Name, len(l.Kernel), l.In*l.Units)
		}
		if l.Bias != nil && len(l.Bias) != l.Units {
			return nil, fmt.Errorf("layer %s: bias has %d values, want %d", l.Name, len(l.Bias), l.Units)
		}
		if i > 0 && layers[i-1].Units != l.In {
			return nil, fmt.Errorf("layer %s: expects %d inputs, previous layer emits %d", l.Name, l.In, layers[i-1].Units)
		}
	}
	if head := layers[len(layers)-1]; head.Units != 1 {
		return nil, fmt.Errorf("output layer %s has %d units, want 1", head.Name, head.Units)
	}
	return &Network{layers: layers}, nil
}

// InputWidth is the number of features the first layer consumes.
func (n *Network) InputWidth() int {
	return n.layers[0].In
}

// Predict runs a single-row forward pass.
func (n *Network) Predict(ctx context.Context, row []float64) (float64, error) {
	if len(row) != n.InputWidth() {
		return 0, fmt.Errorf("input has %d values, model expects %d", len(row), n.InputWidth())
	}

	act := row
	for _, l := range n.layers {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		act = l.forward(act)
	}
	return act[0], nil
}
