package repository

import (
	"context"

	"github.com/jetrefuels/fuelpos/internal/employee/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO employees (id, name, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		employee.ID,
		employee.Name,
		employee.PasswordHash,
		employee.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, password_hash, created_at
		 FROM employees WHERE id = ?`,
		id,
	).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Order("id asc").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM employees WHERE id = ?`, id).Error
}
