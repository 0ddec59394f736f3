package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("ledger.service"),
		repo: p.Repo,
	}
}

// Totals aggregates in process rather than with SQL SUM. Summing a numeric
// affinity column degrades to float on sqlite, and the ledger carries money.
func (s *Service) Totals(ctx context.Context, groupBy domain.GroupBy) ([]domain.TotalsRow, error) {
	if groupBy != domain.GroupByGrade && groupBy != domain.GroupByActor {
		return nil, domain.ErrInvalidGroupBy
	}

	records, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var names map[int64]string
	if groupBy == domain.GroupByActor {
		names, err = s.repo.ActorNames(ctx, s.db)
		if err != nil {
			return nil, err
		}
	}

	// Actor buckets key on the numeric id, never the display name: names
	// are not unique and a removed employee must not merge with another.
	type bucketKey struct {
		grade    string
		employee int64
	}
	buckets := make(map[bucketKey]*domain.TotalsRow)
	for _, rec := range records {
		var bk bucketKey
		if groupBy == domain.GroupByGrade {
			bk.grade = rec.GradeName
		} else {
			bk.employee = rec.EmployeeID
		}

		row, ok := buckets[bk]
		if !ok {
			row = &domain.TotalsRow{
				TotalAmount: decimal.Zero,
				TotalLiters: decimal.Zero,
			}
			if groupBy == domain.GroupByGrade {
				row.Key = rec.GradeName
			} else {
				row.EmployeeID = rec.EmployeeID
				row.Key = names[rec.EmployeeID]
				if row.Key == "" {
					row.Key = fmt.Sprintf("employee %d", rec.EmployeeID)
				}
			}
			buckets[bk] = row
		}
		row.Count++
		row.TotalAmount = row.TotalAmount.Add(rec.Amount)
		row.TotalLiters = row.TotalLiters.Add(rec.Liters)
		if rec.CreatedAt.After(row.LastAt) {
			row.LastAt = rec.CreatedAt
		}
	}

	rows := make([]domain.TotalsRow, 0, len(buckets))
	for _, row := range buckets {
		row.AvgAmount = row.TotalAmount.DivRound(decimal.NewFromInt(row.Count), money.CurrencyScale)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Key != rows[j].Key {
			return rows[i].Key < rows[j].Key
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, s.db, limit, offset)
}
