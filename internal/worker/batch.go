// Package worker fans record processing out over a bounded number of
// goroutines. Each record is independent and the reference table is
// read-only, so no coordination beyond the semaphore is needed.
package worker

import (
	"context"
	"sync"

	"github.com/rbastos/kdpipe/internal/model"
)

// Processor classifies and prices one financing record
type Processor interface {
	ProcessRecord(record model.FinancingRecord) model.RecordResult
}

// BatchProcessor processes record batches concurrently while keeping
// results in input order, so report rows stay stable across runs.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessRecords runs every record through the processor. Results land at
// the index of their record. On cancellation, unprocessed records are
// returned as unidentified with an absent Kd rather than dropped, keeping
// the one-result-per-record invariant.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, records []model.FinancingRecord) []model.RecordResult {
	if len(records) == 0 {
		return []model.RecordResult{}
	}

	results := make([]model.RecordResult, len(records))
	semaphore := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	for i, record := range records {
		wg.Add(1)
		go func(idx int, rec model.FinancingRecord) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = skippedResult(rec)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = b.processor.ProcessRecord(rec)
		}(i, record)
	}

	wg.Wait()
	return results
}

// skippedResult stands in for a record the batch never reached
func skippedResult(rec model.FinancingRecord) model.RecordResult {
	return model.RecordResult{
		Record: rec,
		Classification: model.ClassificationResult{
			Indexer:  model.IndexerUnidentified,
			Period:   model.PeriodUnknown,
			Original: rec.Description,
		},
		Kd: model.KdResult{Reason: model.ReasonUnidentifiedIndexer},
	}
}
