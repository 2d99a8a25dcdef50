package predictor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearModel is a fitted linear predictor over scaled feature vectors:
// one weight per schema slot plus a bias.
type LinearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Predict returns bias + sum(w_i * x_i). It does not modify the model and is
// safe for concurrent use.
func (m *LinearModel) Predict(x Vector) (float64, error) {
	if m == nil {
		return 0, ErrModelNotLoaded
	}
	if len(x) != len(m.Weights) {
		return 0, &VectorWidthError{Got: len(x), Want: len(m.Weights)}
	}
	sum := m.Bias
	for i, w := range m.Weights {
		sum += w * x[i]
	}
	return sum, nil
}

// FitLinear fits ordinary least squares with an intercept. X and y are
// centred, the minimum-norm solution is taken from an SVD (so collinear or
// constant columns get a defined, reproducible answer) and the intercept is
// recovered as mean(y) - mean(X)·w.
func FitLinear(X []Vector, y []float64) (*LinearModel, error) {
	n := len(X)
	if n == 0 {
		return nil, ErrEmptyDataset
	}
	if len(y) != n {
		return nil, fmt.Errorf("linear fit: %d rows but %d targets", n, len(y))
	}
	p := len(X[0])
	if p == 0 {
		return nil, errors.New("linear fit: rows have no features")
	}

	xMean := make([]float64, p)
	for i, row := range X {
		if len(row) != p {
			return nil, fmt.Errorf("linear fit: row %d: %w", i, &VectorWidthError{Got: len(row), Want: p})
		}
		for j, v := range row {
			xMean[j] += v
		}
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)

	a := mat.NewDense(n, p, nil)
	b := mat.NewDense(n, 1, nil)
	for i, row := range X {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.Set(i, 0, y[i]-yMean)
	}

	m := &LinearModel{Weights: make([]float64, p), Bias: yMean}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("linear fit: SVD did not converge")
	}
	eps := math.Nextafter(1, 2) - 1
	rank := svd.Rank(eps * float64(max(n, p)))
	if rank == 0 {
		// every column is constant: the best fit is the mean
		return m, nil
	}
	var coef mat.Dense
	svd.SolveTo(&coef, b, rank)
	for j := range m.Weights {
		m.Weights[j] = coef.At(j, 0)
		m.Bias -= xMean[j] * m.Weights[j]
	}
	return m, nil
}

// Score returns the coefficient of determination R^2 of m on (X, y).
func (m *LinearModel) Score(X []Vector, y []float64) (float64, error) {
	if len(X) == 0 || len(X) != len(y) {
		return 0, fmt.Errorf("score: %d rows, %d targets", len(X), len(y))
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(len(y))
	var ssRes, ssTot float64
	for i, row := range X {
		pred, err := m.Predict(row)
		if err != nil {
			return 0, err
		}
		d := y[i] - pred
		ssRes += d * d
		t := y[i] - yMean
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}

// Validate checks that m has one finite weight per schema slot.
func (m *LinearModel) Validate(schema *Schema) error {
	if m == nil {
		return ErrModelNotLoaded
	}
	if len(m.Weights) != schema.Width() {
		return &VectorWidthError{Got: len(m.Weights), Want: schema.Width()}
	}
	for i, w := range m.Weights {
		if !finite(w) {
			return fmt.Errorf("model weight %d is not finite", i)
		}
	}
	if !finite(m.Bias) {
		return errors.New("model bias is not finite")
	}
	return nil
}
