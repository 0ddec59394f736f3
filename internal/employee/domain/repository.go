package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employee *Employee) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Employee, error)
	List(ctx context.Context, db *gorm.DB) ([]Employee, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
