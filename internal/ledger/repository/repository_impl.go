package repository

import (
	"context"

	"github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.TransactionRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO fuel_transactions (id, employee_id, grade_name, amount, liters, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.EmployeeID,
		record.GradeName,
		record.Amount,
		record.Liters,
		record.CreatedAt,
	).Error
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.TransactionRecord, error) {
	var records []domain.TransactionRecord
	err := db.WithContext(ctx).
		Model(&domain.TransactionRecord{}).
		Order("created_at asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.TransactionRecord, error) {
	var records []domain.TransactionRecord
	err := db.WithContext(ctx).
		Model(&domain.TransactionRecord{}).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ActorNames(ctx context.Context, db *gorm.DB) (map[int64]string, error) {
	type row struct {
		ID   int64
		Name string
	}
	var rows []row
	err := db.WithContext(ctx).Raw(`SELECT id, name FROM employees`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
