// Package worker provides a worker pool for parallel batch validation.
//
// The worker pool enables efficient validation of many evidence manifests
// in parallel, taking advantage of multi-core processors.
//
// Example usage:
//
//	// Create a worker pool with 4 workers
//	pool := worker.NewPool(validator.Validate, 4)
//
//	// Submit jobs
//	for _, path := range paths {
//	    raw, _ := os.ReadFile(path)
//	    pool.Submit(worker.Job{ID: path, Object: raw})
//	}
//
//	// Collect results
//	batch := pool.CloseAndWait()
//	for _, result := range batch.Results {
//	    if result.Error != nil {
//	        // Handle processing error
//	    }
//	    // Inspect result.Result
//	}
package worker
