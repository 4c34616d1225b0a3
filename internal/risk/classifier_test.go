package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression(t *testing.T) {
	m, err := NewLogisticRegression([]float64{0, 0}, math.Log(3))
	require.NoError(t, err)

	dist, err := m.PredictProba([]float64{10, -4})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, dist[0], 1e-12)
	assert.InDelta(t, 0.75, dist[1], 1e-12)

	m, err = NewLogisticRegression([]float64{1, -2}, 0)
	require.NoError(t, err)
	dist, err = m.PredictProba([]float64{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dist[1], 1e-12)
}

func TestLogisticRegression_Invalid(t *testing.T) {
	_, err := NewLogisticRegression(nil, 0)
	assert.Error(t, err)
	_, err = NewLogisticRegression([]float64{math.NaN()}, 0)
	assert.Error(t, err)
	_, err = NewLogisticRegression([]float64{1}, math.Inf(-1))
	assert.Error(t, err)

	m, err := NewLogisticRegression([]float64{1, 1}, 0)
	require.NoError(t, err)
	_, err = m.PredictProba([]float64{1})
	var predErr *PredictionError
	assert.True(t, errors.As(err, &predErr))
	_, err = m.PredictProba([]float64{1, math.NaN()})
	assert.True(t, errors.As(err, &predErr))
}

// stump splits on feature 0 at 0.5 and returns the given leaves.
func stump(left, right []float64) *Tree {
	return &Tree{Nodes: []Node{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: left},
		{Left: -1, Right: -1, Value: right},
	}}
}

func TestRandomForest(t *testing.T) {
	f, err := NewRandomForest([]*Tree{
		stump([]float64{0.9, 0.1}, []float64{0.2, 0.8}),
		stump([]float64{0.7, 0.3}, []float64{0.4, 0.6}),
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, KindRandomForest, f.Kind())

	dist, err := f.PredictProba([]float64{0.5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, dist[1], 1e-12)

	dist, err = f.PredictProba([]float64{0.51, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, dist[1], 1e-12)
	assert.InDelta(t, 1.0, dist[0]+dist[1], 1e-12)
}

func TestGradientBoosting(t *testing.T) {
	g, err := NewGradientBoosting([]*Tree{
		stump([]float64{-0.5}, []float64{0.5}),
		stump([]float64{-0.25}, []float64{0.25}),
	}, 1, 0)
	require.NoError(t, err)

	dist, err := g.PredictProba([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-0.75)), dist[1], 1e-12)

	dist, err = g.PredictProba([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(0.75)), dist[1], 1e-12)
}

func TestTreeValidation(t *testing.T) {
	tests := []struct {
		name string
		tree *Tree
	}{
		{"empty", &Tree{}},
		{"feature out of range", &Tree{Nodes: []Node{
			{Feature: 5, Threshold: 0, Left: 1, Right: 2},
			{Left: -1, Value: []float64{0.5, 0.5}},
			{Left: -1, Value: []float64{0.5, 0.5}},
		}}},
		{"child out of range", &Tree{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 9},
			{Left: -1, Value: []float64{0.5, 0.5}},
		}}},
		{"back edge", &Tree{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 2},
			{Feature: 0, Threshold: 0, Left: 0, Right: 2},
			{Left: -1, Value: []float64{0.5, 0.5}},
		}}},
		{"shared child", &Tree{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 1},
			{Left: -1, Value: []float64{0.5, 0.5}},
		}}},
		{"wrong leaf width", &Tree{Nodes: []Node{
			{Left: -1, Value: []float64{1}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRandomForest([]*Tree{tt.tree}, 2)
			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr))
		})
	}

	_, err := NewRandomForest(nil, 2)
	assert.Error(t, err)
	_, err = NewGradientBoosting([]*Tree{stump([]float64{0}, []float64{0})}, 1, math.NaN())
	assert.Error(t, err)
}

func TestScorer(t *testing.T) {
	vec := &FeatureVector{Columns: []string{"a", "b"}, Values: []float64{1, 2}}

	p, err := NewScorer(&stubClassifier{dist: []float64{0.77, 0.23}, n: 2}).Score(vec)
	require.NoError(t, err)
	assert.Equal(t, 0.23, p)

	bad := []struct {
		name string
		c    *stubClassifier
		vec  *FeatureVector
	}{
		{"three classes", &stubClassifier{dist: []float64{0.2, 0.3, 0.5}}, vec},
		{"negative", &stubClassifier{dist: []float64{1.1, -0.1}}, vec},
		{"nan", &stubClassifier{dist: []float64{0.5, math.NaN()}}, vec},
		{"classifier error", &stubClassifier{err: &PredictionError{Reason: "boom"}}, vec},
		{"empty vector", &stubClassifier{dist: []float64{0.5, 0.5}}, &FeatureVector{}},
		{"ragged vector", &stubClassifier{dist: []float64{0.5, 0.5}}, &FeatureVector{Columns: []string{"a"}, Values: []float64{1, 2}}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScorer(tt.c).Score(tt.vec)
			var predErr *PredictionError
			assert.True(t, errors.As(err, &predErr))
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		p        float64
		expected string
	}{
		{0.0, "LOW_RISK"},
		{0.199999, "LOW_RISK"},
		{0.20, "HIGH_RISK"},
		{math.Nextafter(0.20, 1), "HIGH_RISK"},
		{1.0, "HIGH_RISK"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(Decide(tt.p)), "p=%v", tt.p)
	}
}
