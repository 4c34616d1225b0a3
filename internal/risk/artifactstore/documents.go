// internal/risk/artifactstore/documents.go
package artifactstore

import (
	"fmt"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

// Artifact names, used as file names and as Redis key suffixes.
const (
	ModelFile                   = "model.json"
	ScalerFile                  = "standard_scaler.json"
	FeatureNamesFile            = "feature_names.json"
	HomeOwnershipMappingFile    = "person_home_ownership_mapping.json"
	PreviousDefaultsMappingFile = "previous_loan_defaults_on_file_mapping.json"
)

// ArtifactNames lists every artifact a bundle is built from.
var ArtifactNames = []string{
	ModelFile,
	ScalerFile,
	FeatureNamesFile,
	HomeOwnershipMappingFile,
	PreviousDefaultsMappingFile,
}

type treeDocument struct {
	Nodes []risk.Node `json:"nodes"`
}

type modelDocument struct {
	Kind      string         `json:"kind"`
	Version   string         `json:"version"`
	NFeatures int            `json:"n_features"`
	Classes   []int          `json:"classes"`
	Coef      []float64      `json:"coef"`
	Intercept float64        `json:"intercept"`
	BaseScore float64        `json:"base_score"`
	Trees     []treeDocument `json:"trees"`
}

type scalerDocument struct {
	FeatureNamesIn []string  `json:"feature_names_in"`
	Mean           []float64 `json:"mean"`
	Scale          []float64 `json:"scale"`
}

// classifier builds the classifier described by the document.
// Class order must be [0, 1] so that index 1 is the default class.
func (d modelDocument) classifier() (risk.Classifier, error) {
	if len(d.Classes) != 2 || d.Classes[0] != 0 || d.Classes[risk.DefaultClassIndex] != 1 {
		return nil, &risk.SchemaError{Reason: fmt.Sprintf("classes must be [0 1], got %v", d.Classes)}
	}

	switch d.Kind {
	case risk.KindLogisticRegression:
		if len(d.Coef) != d.NFeatures {
			return nil, &risk.SchemaError{Reason: fmt.Sprintf(
				"model declares %d features but has %d coefficients", d.NFeatures, len(d.Coef))}
		}
		return risk.NewLogisticRegression(d.Coef, d.Intercept)
	case risk.KindRandomForest:
		return risk.NewRandomForest(d.trees(), d.NFeatures)
	case risk.KindGradientBoosting:
		return risk.NewGradientBoosting(d.trees(), d.NFeatures, d.BaseScore)
	default:
		return nil, &risk.SchemaError{Reason: fmt.Sprintf("unsupported classifier kind %q", d.Kind)}
	}
}

func (d modelDocument) trees() []*risk.Tree {
	out := make([]*risk.Tree, len(d.Trees))
	for i, t := range d.Trees {
		out[i] = &risk.Tree{Nodes: t.Nodes}
	}
	return out
}
