package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Totals folds the whole transaction log into aggregate buckets. Reads
	// never mutate the log; two calls without an intervening commit return
	// identical rows.
	Totals(ctx context.Context, groupBy GroupBy) ([]TotalsRow, error)

	List(ctx context.Context, limit, offset int) ([]TransactionRecord, error)
}

var ErrInvalidGroupBy = errors.New("invalid_group_by")
