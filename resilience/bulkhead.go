package resilience

import (
	"context"
	"errors"
	"time"
)

// Common bulkhead errors.
var (
	ErrBulkheadFull    = errors.New("bulkhead is full")
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name identifies this bulkhead for metrics/logging.
	Name string
	// MaxConcurrent is the maximum number of concurrent calls.
	MaxConcurrent int
	// MaxWait is how long to wait for a slot. 0 means fail immediately.
	MaxWait time.Duration
	// OnReject is called with the rejection error when no slot was acquired.
	OnReject func(name string, err error)
}

// Bulkhead limits the number of concurrent calls through it.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a new bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Execute runs fn once a slot is free.
// Returns ErrBulkheadFull, ErrBulkheadTimeout or the context error when no
// slot could be acquired; fn is not called in that case.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	if err := b.acquire(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name, err)
		}
		return err
	}
	defer func() { <-b.sem }()
	return fn()
}

// ExecuteWithResult runs a function that returns a value.
func ExecuteWithResult[T any](b *Bulkhead, ctx context.Context, fn func() (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		return ErrBulkheadFull
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBulkheadTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
