package reviewdex

import (
	"github.com/kailas-cloud/reviewdex/internal/domain"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation        = domain.ErrValidation
	ErrEmptyText         = domain.ErrEmptyText
	ErrNotFound          = domain.ErrNotFound
	ErrProductNotFound   = domain.ErrProductNotFound
	ErrInternal          = domain.ErrInternal
	ErrCorruptArtifact   = artifact.ErrCorruptArtifact
	ErrDimensionMismatch = artifact.ErrDimensionMismatch
)
