// internal/risk/scorer.go
package risk

import "fmt"

// Scorer reads the default-class probability off the classifier output.
type Scorer struct {
	classifier Classifier
}

func NewScorer(c Classifier) *Scorer {
	return &Scorer{classifier: c}
}

// Score returns P(default). Failures are not retried.
func (s *Scorer) Score(v *FeatureVector) (float64, error) {
	if v == nil || len(v.Values) == 0 {
		return 0, &PredictionError{Reason: "empty feature vector"}
	}
	if len(v.Columns) != len(v.Values) {
		return 0, &PredictionError{Reason: "feature vector columns and values differ in length"}
	}

	dist, err := s.classifier.PredictProba(v.Values)
	if err != nil {
		return 0, err
	}
	if len(dist) != 2 {
		return 0, &PredictionError{Reason: fmt.Sprintf("classifier returned %d classes, expected 2", len(dist))}
	}
	for i, p := range dist {
		if !finite(p) || p < 0 || p > 1 {
			return 0, &PredictionError{Reason: fmt.Sprintf("class %d probability %v is outside [0,1]", i, p)}
		}
	}
	return dist[DefaultClassIndex], nil
}
