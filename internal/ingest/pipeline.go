package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ittyan/family-outings/internal/domain"
)

// Sink persists canonical records with upsert-by-id semantics.
// repo.NewIngestSink adapts the Postgres spot repo to this interface.
type Sink interface {
	UpsertSpots(ctx context.Context, records []domain.SpotRecord) error
}

// SnapshotWriter serializes the records of a run to a durable artifact.
type SnapshotWriter interface {
	WriteSnapshot(records []domain.SpotRecord) error
}

// SourceFetchError records a source that failed during the fetch stage.
// It matches both domain.ErrSourceFetch and the underlying cause with errors.Is.
type SourceFetchError struct {
	Source string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("source %q: %v: %v", e.Source, domain.ErrSourceFetch, e.Err)
}

func (e *SourceFetchError) Unwrap() []error {
	return []error{domain.ErrSourceFetch, e.Err}
}

// Report summarizes one pipeline run.
type Report struct {
	// Fetched counts raw records across all sources that succeeded.
	Fetched int
	// Deduped is the number of records handed to the sink and snapshot.
	Deduped int
	// Failed lists the sources that were skipped, in the order they ran.
	Failed []*SourceFetchError
	// PersistErr and SnapshotErr are reported independently; one failing
	// never hides or prevents the other.
	PersistErr  error
	SnapshotErr error
}

// Pipeline runs fetch → normalize → dedupe → persist + snapshot.
// A Pipeline is meant to run as a single non-concurrent batch job.
type Pipeline struct {
	sink     Sink
	snapshot SnapshotWriter
	log      *slog.Logger
	now      func() time.Time
}

// NewPipeline constructs a Pipeline writing to sink and snapshot.
// A nil logger discards log output.
func NewPipeline(sink Sink, snapshot SnapshotWriter, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{sink: sink, snapshot: snapshot, log: log, now: time.Now}
}

// WithClock replaces the clock used to stamp last_seen. Intended for tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run executes one ingestion pass over sources.
//
// Source failures are isolated: the failing source is recorded in
// Report.Failed and the remaining sources still run. Normalization and
// dedupe cannot fail. The deduped records are then given to both the sink
// and the snapshot writer; the returned error joins whichever of the two
// failed (wrapping domain.ErrPersistence and domain.ErrSnapshot) and is nil
// when both succeed.
func (p *Pipeline) Run(ctx context.Context, sources ...Source) (Report, error) {
	var (
		report     Report
		normalized []domain.SpotRecord
	)

	for _, src := range sources {
		raws, err := fetch(ctx, src)
		if err != nil {
			fe := &SourceFetchError{Source: src.Name(), Err: err}
			report.Failed = append(report.Failed, fe)
			p.log.WarnContext(ctx, "ingest source failed", "source", src.Name(), "error", err)
			continue
		}
		now := p.now()
		for _, raw := range raws {
			normalized = append(normalized, Normalize(raw, src.Name(), now))
		}
		report.Fetched += len(raws)
		p.log.InfoContext(ctx, "ingest source fetched", "source", src.Name(), "records", len(raws))
	}

	deduped := Dedupe(normalized)
	report.Deduped = len(deduped)

	if err := p.sink.UpsertSpots(ctx, deduped); err != nil {
		report.PersistErr = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		p.log.ErrorContext(ctx, "ingest persist failed", "error", err)
	}
	if err := p.snapshot.WriteSnapshot(deduped); err != nil {
		report.SnapshotErr = fmt.Errorf("%w: %w", domain.ErrSnapshot, err)
		p.log.ErrorContext(ctx, "ingest snapshot failed", "error", err)
	}

	p.log.InfoContext(ctx, "ingest run complete",
		"fetched", report.Fetched,
		"deduped", report.Deduped,
		"failed_sources", len(report.Failed),
	)

	if err := errors.Join(report.PersistErr, report.SnapshotErr); err != nil {
		return report, fmt.Errorf("ingest.Pipeline.Run: %w", err)
	}
	return report, nil
}

// fetch drains src, converting a panic inside the source into an error so a
// misbehaving feed cannot take down the whole run.
func fetch(ctx context.Context, src Source) (raws []RawRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return src.Fetch(ctx)
}
