package storage

import (
	"context"

	"dexdepth/internal/model"
)

// Storage defines a sink for assessment records.
type Storage interface {
	PutAssessments(ctx context.Context, assessments []model.Assessment) error
}

// Multi fans one batch out to several sinks, e.g. JSONL plus Postgres.
// The first sink error stops the fan-out.
type Multi []Storage

func (m Multi) PutAssessments(ctx context.Context, assessments []model.Assessment) error {
	for _, s := range m {
		if err := s.PutAssessments(ctx, assessments); err != nil {
			return err
		}
	}
	return nil
}
