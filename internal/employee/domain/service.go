package domain

import (
	"context"
	"errors"
)

type CreateEmployeeRequest struct {
	ID       int64
	Name     string
	Password string
}

type Service interface {
	// Authenticate verifies an operator's credentials. It returns the
	// employee on success and ErrInvalidCredentials otherwise; callers must
	// not learn whether the id or the secret was wrong.
	Authenticate(ctx context.Context, id int64, secret string) (*Employee, error)

	GetByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)
	Remove(ctx context.Context, id int64) error
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidID          = errors.New("invalid_employee_id")
	ErrInvalidName        = errors.New("invalid_employee_name")
	ErrInvalidPassword    = errors.New("invalid_employee_password")
	ErrNotFound           = errors.New("employee_not_found")
	ErrAlreadyExists      = errors.New("employee_exists")
)
