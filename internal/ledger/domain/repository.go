package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Insert appends one record. It is the only write path into the log and
	// is expected to run inside the caller's transaction.
	Insert(ctx context.Context, db *gorm.DB, record *TransactionRecord) error

	ListAll(ctx context.Context, db *gorm.DB) ([]TransactionRecord, error)
	List(ctx context.Context, db *gorm.DB, limit, offset int) ([]TransactionRecord, error)

	// ActorNames resolves employee ids to display names for actor grouping.
	ActorNames(ctx context.Context, db *gorm.DB) (map[int64]string, error)
}
