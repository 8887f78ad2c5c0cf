// Package resilience provides the fault-tolerance primitives voicecheck
// puts around classifier calls and public endpoints:
//
//   - Bulkhead: caps concurrent classifications so CPU-bound analysis
//     cannot starve the server
//   - CircuitBreaker: fails fast while a remote classifier is unhealthy
//   - RateLimiter: token bucket used per client by the HTTP middleware
//
// Nothing here retries. A failed call surfaces to the caller once.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "classifier", MaxConcurrent: 8})
//	res, err := resilience.ExecuteWithResult(bh, ctx, func() (*Result, error) {
//	    return cls.Classify(ctx, in)
//	})
package resilience
