package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	dp "github.com/nhermab/DICOMPolice-sub004"
)

// BatchValidator provides a simple interface for batch validation.
type BatchValidator struct {
	validate ValidateFunc
	workers  int
}

// NewBatchValidator creates a new batch validator.
func NewBatchValidator(validate ValidateFunc, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{
		validate: validate,
		workers:  workers,
	}
}

// ValidateBatch validates multiple objects in parallel, preserving input order.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, objects [][]byte) *BatchResult {
	if len(objects) == 0 {
		return &BatchResult{
			Results:       make([]*JobResult, 0),
			TotalJobs:     0,
			CompletedJobs: 0,
		}
	}

	// For small batches, parallelism is not worth the setup cost
	if len(objects) <= 2 {
		return bv.validateSequential(ctx, objects)
	}

	return bv.validateParallel(ctx, objects)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, objects [][]byte) *BatchResult {
	results := make([]*JobResult, 0, len(objects))
	failed := 0

	for i, object := range objects {
		select {
		case <-ctx.Done():
			return &BatchResult{
				Results:       results,
				TotalJobs:     len(objects),
				CompletedJobs: len(results),
				FailedJobs:    failed,
			}
		default:
		}

		result, err := bv.validate(ctx, object)
		if err != nil {
			failed++
		}
		results = append(results, &JobResult{
			ID:     strconv.Itoa(i),
			Result: result,
			Error:  err,
		})
	}

	return &BatchResult{
		Results:       results,
		TotalJobs:     len(objects),
		CompletedJobs: len(results),
		FailedJobs:    failed,
	}
}

func (bv *BatchValidator) validateParallel(ctx context.Context, objects [][]byte) *BatchResult {
	numWorkers := bv.workers
	if numWorkers > len(objects) {
		numWorkers = len(objects)
	}

	jobs := make(chan indexedObject, len(objects))
	resultsChan := make(chan *indexedResult, len(objects))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := bv.validate(ctx, job.object)
				resultsChan <- &indexedResult{
					index:  job.index,
					result: result,
					err:    err,
				}
			}
		}()
	}

	go func() {
		for i, object := range objects {
			select {
			case <-ctx.Done():
				break
			case jobs <- indexedObject{index: i, object: object}:
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results back into input order
	results := make([]*JobResult, len(objects))
	completed := 0
	failed := 0

	for ir := range resultsChan {
		results[ir.index] = &JobResult{
			ID:     strconv.Itoa(ir.index),
			Result: ir.result,
			Error:  ir.err,
		}
		completed++
		if ir.err != nil {
			failed++
		}
	}

	return &BatchResult{
		Results:       results,
		TotalJobs:     len(objects),
		CompletedJobs: completed,
		FailedJobs:    failed,
	}
}

type indexedObject struct {
	index  int
	object []byte
}

type indexedResult struct {
	index  int
	result *dp.Result
	err    error
}

// ValidateBatchSimple is a convenience function for batch validation.
func ValidateBatchSimple(ctx context.Context, validate ValidateFunc, objects [][]byte) *BatchResult {
	bv := NewBatchValidator(validate, runtime.NumCPU())
	return bv.ValidateBatch(ctx, objects)
}
