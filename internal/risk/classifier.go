// internal/risk/classifier.go
package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultClassIndex is the position of the "default" class in a predicted distribution.
const DefaultClassIndex = 1

// Classifier kinds understood by the artifact loader.
const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
	KindGradientBoosting   = "gradient_boosting"
)

// Classifier returns a probability distribution over {no-default, default} for one vector.
type Classifier interface {
	PredictProba(x []float64) ([]float64, error)
	NumFeatures() int
}

// LogisticRegression is a fitted binary linear model.
type LogisticRegression struct {
	coef      []float64
	intercept float64
}

func NewLogisticRegression(coef []float64, intercept float64) (*LogisticRegression, error) {
	if len(coef) == 0 {
		return nil, &SchemaError{Reason: "logistic regression has no coefficients"}
	}
	for i, c := range coef {
		if !finite(c) {
			return nil, &SchemaError{Reason: fmt.Sprintf("coefficient %d is not finite", i)}
		}
	}
	if !finite(intercept) {
		return nil, &SchemaError{Reason: "intercept is not finite"}
	}
	return &LogisticRegression{coef: append([]float64(nil), coef...), intercept: intercept}, nil
}

func (m *LogisticRegression) NumFeatures() int { return len(m.coef) }

func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if err := checkInput(x, len(m.coef)); err != nil {
		return nil, err
	}
	p := sigmoid(m.intercept + floats.Dot(m.coef, x))
	return []float64{1 - p, p}, nil
}

// TreeEnsemble is either a random forest (averaged leaf distributions)
// or a gradient boosted model (summed leaf margins through a sigmoid).
type TreeEnsemble struct {
	kind        string
	trees       []*Tree
	numFeatures int
	baseScore   float64
}

func NewRandomForest(trees []*Tree, numFeatures int) (*TreeEnsemble, error) {
	e := &TreeEnsemble{kind: KindRandomForest, trees: trees, numFeatures: numFeatures}
	return e, e.validate(2)
}

func NewGradientBoosting(trees []*Tree, numFeatures int, baseScore float64) (*TreeEnsemble, error) {
	if !finite(baseScore) {
		return nil, &SchemaError{Reason: "base score is not finite"}
	}
	e := &TreeEnsemble{kind: KindGradientBoosting, trees: trees, numFeatures: numFeatures, baseScore: baseScore}
	return e, e.validate(1)
}

func (e *TreeEnsemble) validate(leafWidth int) error {
	if len(e.trees) == 0 {
		return &SchemaError{Reason: e.kind + " has no trees"}
	}
	if e.numFeatures <= 0 {
		return &SchemaError{Reason: e.kind + " has no features"}
	}
	for i, t := range e.trees {
		if t == nil {
			return &SchemaError{Reason: fmt.Sprintf("tree %d is missing", i)}
		}
		if err := t.Validate(e.numFeatures, leafWidth); err != nil {
			return &SchemaError{Reason: fmt.Sprintf("tree %d: %v", i, err)}
		}
	}
	return nil
}

func (e *TreeEnsemble) Kind() string { return e.kind }

func (e *TreeEnsemble) NumFeatures() int { return e.numFeatures }

func (e *TreeEnsemble) PredictProba(x []float64) ([]float64, error) {
	if err := checkInput(x, e.numFeatures); err != nil {
		return nil, err
	}

	if e.kind == KindGradientBoosting {
		margin := e.baseScore
		for _, t := range e.trees {
			margin += t.Leaf(x)[0]
		}
		p := sigmoid(margin)
		return []float64{1 - p, p}, nil
	}

	acc := make([]float64, 2)
	for _, t := range e.trees {
		floats.Add(acc, t.Leaf(x))
	}
	floats.Scale(1/float64(len(e.trees)), acc)
	return acc, nil
}

func checkInput(x []float64, want int) error {
	if len(x) != want {
		return &PredictionError{Reason: fmt.Sprintf("vector has %d features, classifier expects %d", len(x), want)}
	}
	if floats.HasNaN(x) {
		return &PredictionError{Reason: "vector contains NaN"}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
