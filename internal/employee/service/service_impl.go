package service

import (
	"context"
	"strings"

	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/employee/domain"
	"github.com/jetrefuels/fuelpos/internal/employee/password"
	"github.com/jetrefuels/fuelpos/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("employee.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Authenticate(ctx context.Context, id int64, secret string) (*domain.Employee, error) {
	if id <= 0 || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil || !password.Verify(secret, employee.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return employee, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if req.ID <= 0 {
		return nil, domain.ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Password == "" {
		return nil, domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		ID:           req.ID,
		Name:         name,
		PasswordHash: hashed,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, employee); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	s.log.Info("employee created", zap.Int64("employee_id", employee.ID))
	return employee, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.log.Info("employee removed", zap.Int64("employee_id", id))
	return nil
}
