package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds ordinary lookups and single-row writes.
const DefaultQueryTimeout = 30 * time.Second

// RollupQueryTimeout bounds the grouped aggregation queries behind the
// roll-up and progress-curve reads, which scan whole proposals.
const RollupQueryTimeout = 60 * time.Second

// QueryContext returns a context with the given timeout for database work.
// A nil parent falls back to context.Background().
func QueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// DefaultQueryContext returns a context with the default timeout.
func DefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return QueryContext(parentCtx, DefaultQueryTimeout)
}

// RollupQueryContext returns a context sized for the aggregation queries.
func RollupQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return QueryContext(parentCtx, RollupQueryTimeout)
}
