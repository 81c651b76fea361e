package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ittyan/family-outings/internal/domain"
)

// IngestSink adapts a SpotRepo to the ingest pipeline's sink contract.
// Records without coordinates cannot satisfy the spots table and are
// skipped with a warning; they still reach the snapshot file.
type IngestSink struct {
	spots  SpotRepo
	logger *slog.Logger
}

// NewIngestSink returns a sink that upserts normalized records through spots.
func NewIngestSink(spots SpotRepo, logger *slog.Logger) *IngestSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IngestSink{spots: spots, logger: logger}
}

// UpsertSpots writes every record that has both lat and lng.
func (s *IngestSink) UpsertSpots(ctx context.Context, records []domain.SpotRecord) error {
	keep := make([]domain.SpotRecord, 0, len(records))
	for _, rec := range records {
		if rec.Lat == nil || rec.Lng == nil {
			s.logger.WarnContext(ctx, "skipping spot without coordinates",
				"spot_id", rec.ID,
				"source", rec.Source,
			)
			continue
		}
		keep = append(keep, rec)
	}

	if err := s.spots.UpsertMany(ctx, keep); err != nil {
		return fmt.Errorf("repo.IngestSink.UpsertSpots: %w", err)
	}
	s.logger.InfoContext(ctx, "spots upserted",
		"written", len(keep),
		"skipped", len(records)-len(keep),
	)
	return nil
}
