package recorder

import "DealScout/internal/model"

// NoopRecorder is a no-op implementation used when no database is
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *Run, _ []*model.Evaluation) error { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
