// internal/risk/artifactstore/store.go
package artifactstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
	apperrors "github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

// Store loads the artifact bundle from a source.
type Store struct {
	source       Source
	logger       logger.Logger
	modelVersion string
}

// NewStore creates a store. A non-empty modelVersion overrides the version in model.json.
func NewStore(source Source, log logger.Logger, modelVersion string) *Store {
	return &Store{source: source, logger: log, modelVersion: modelVersion}
}

// NewSourceFromConfig picks the artifact source named in config.
func NewSourceFromConfig(cfg config.ArtifactsConfig, client redis.Cmdable) (Source, error) {
	switch cfg.Source {
	case config.ArtifactSourceFile, "":
		return NewFileSource(cfg.Dir), nil
	case config.ArtifactSourceRedis:
		if client == nil {
			return nil, fmt.Errorf("redis artifact source needs a redis client")
		}
		return NewRedisSource(client, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown artifact source %q", cfg.Source)
	}
}

// Load reads, validates and assembles every artifact. Any failure is fatal for startup
// and is returned as an ARTIFACT_LOAD_FAILED StandardError wrapping the cause.
func (s *Store) Load(ctx context.Context) (*risk.Bundle, error) {
	var (
		model        modelDocument
		scaler       scalerDocument
		featureNames []string
		homeCodes    map[string]float64
		priorCodes   map[string]float64
	)

	targets := map[string]interface{}{
		ModelFile:                   &model,
		ScalerFile:                  &scaler,
		FeatureNamesFile:            &featureNames,
		HomeOwnershipMappingFile:    &homeCodes,
		PreviousDefaultsMappingFile: &priorCodes,
	}
	for _, name := range ArtifactNames {
		if err := s.readDocument(ctx, name, targets[name]); err != nil {
			return nil, apperrors.NewArtifactLoadFailedError(name, err)
		}
	}

	classifier, err := model.classifier()
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(ModelFile, err)
	}
	stdScaler, err := risk.NewStandardScaler(scaler.FeatureNamesIn, scaler.Mean, scaler.Scale)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(ScalerFile, err)
	}
	home, err := risk.NewCategoryMapping(models.ColumnHomeOwnership, homeCodes)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(HomeOwnershipMappingFile, err)
	}
	prior, err := risk.NewCategoryMapping(models.ColumnPreviousDefaults, priorCodes)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError(PreviousDefaultsMappingFile, err)
	}

	version := model.Version
	if s.modelVersion != "" {
		version = s.modelVersion
	}
	if version == "" {
		version = "unversioned"
	}

	bundle, err := risk.NewBundle(classifier, stdScaler, home, prior, featureNames, version)
	if err != nil {
		return nil, apperrors.NewArtifactLoadFailedError("bundle", err)
	}

	metrics.ArtifactBundleLoaded.WithLabelValues(s.source.Describe(), version).Set(1)
	s.logger.Info("Artifact bundle loaded", map[string]interface{}{
		"source":       s.source.Describe(),
		"modelKind":    model.Kind,
		"modelVersion": version,
		"features":     len(featureNames),
	})
	return bundle, nil
}

func (s *Store) readDocument(ctx context.Context, name string, target interface{}) error {
	data, err := s.source.Read(ctx, name)
	if err != nil {
		return err
	}
	if err := validateDocument(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Publish checks that src holds a loadable bundle, then copies every document to dst.
func Publish(ctx context.Context, src Source, dst *RedisSource, log logger.Logger) (*risk.Bundle, error) {
	bundle, err := NewStore(src, log, "").Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range ArtifactNames {
		data, err := src.Read(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := dst.Write(ctx, name, data); err != nil {
			return nil, err
		}
		log.Info("Artifact published", map[string]interface{}{
			"artifact": name,
			"key":      dst.Key(name),
			"bytes":    len(data),
		})
	}
	return bundle, nil
}
