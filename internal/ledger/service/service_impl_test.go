package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	"github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/ledger/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	repo domain.Repository
	db   *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&domain.TransactionRecord{}, &employeedomain.Employee{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide()
	return &fixture{
		svc: NewService(Params{
			DB:   conn,
			Log:  zaptest.NewLogger(t),
			Repo: repo,
		}),
		repo: repo,
		db:   conn,
		node: node,
	}
}

func (f *fixture) append(t *testing.T, employeeID int64, grade, amount, liters string, at time.Time) {
	t.Helper()
	require.NoError(t, f.repo.Insert(context.Background(), f.db, &domain.TransactionRecord{
		ID:         f.node.Generate(),
		EmployeeID: employeeID,
		GradeName:  grade,
		Amount:     decimal.RequireFromString(amount),
		Liters:     decimal.RequireFromString(liters),
		CreatedAt:  at,
	}))
}

func (f *fixture) addEmployee(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, f.db.Exec(
		`INSERT INTO employees (id, name, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		id, name, "x", time.Now().UTC(),
	).Error)
}

func TestTotalsByGrade(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.append(t, 123456, "diesel", "175.00", "10.00", base)
	f.append(t, 789012, "diesel", "87.50", "5.00", base.Add(time.Minute))
	f.append(t, 123456, "regular", "100.02", "6.00", base.Add(2*time.Minute))

	rows, err := f.svc.Totals(context.Background(), domain.GroupByGrade)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "diesel", rows[0].Key)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("262.50")))
	assert.True(t, rows[0].TotalLiters.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, rows[0].AvgAmount.Equal(decimal.RequireFromString("131.25")))
	assert.True(t, rows[0].LastAt.UTC().Equal(base.Add(time.Minute)))

	assert.Equal(t, "regular", rows[1].Key)
	assert.Equal(t, int64(1), rows[1].Count)
}

func TestTotalsByActor(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.addEmployee(t, 123456, "Pluto")
	f.addEmployee(t, 789012, "Mickey")

	f.append(t, 123456, "diesel", "175.00", "10.00", base)
	f.append(t, 123456, "regular", "50.01", "3.00", base.Add(time.Minute))
	f.append(t, 789012, "diesel", "87.50", "5.00", base.Add(2*time.Minute))

	rows, err := f.svc.Totals(context.Background(), domain.GroupByActor)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Mickey", rows[0].Key)
	assert.Equal(t, int64(789012), rows[0].EmployeeID)
	assert.Equal(t, int64(1), rows[0].Count)

	assert.Equal(t, "Pluto", rows[1].Key)
	assert.Equal(t, int64(123456), rows[1].EmployeeID)
	assert.True(t, rows[1].TotalAmount.Equal(decimal.RequireFromString("225.01")))
}

func TestTotalsByActor_DuplicateNamesStayDistinct(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.addEmployee(t, 111111, "Alex")
	f.addEmployee(t, 222222, "Alex")

	f.append(t, 111111, "diesel", "175.00", "10.00", base)
	f.append(t, 222222, "diesel", "87.50", "5.00", base.Add(time.Minute))

	rows, err := f.svc.Totals(context.Background(), domain.GroupByActor)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(111111), rows[0].EmployeeID)
	assert.Equal(t, "Alex", rows[0].Key)
	assert.Equal(t, int64(1), rows[0].Count)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("175.00")))

	assert.Equal(t, int64(222222), rows[1].EmployeeID)
	assert.Equal(t, "Alex", rows[1].Key)
	assert.Equal(t, int64(1), rows[1].Count)
}

func TestTotalsByActor_RemovedActorsKeepTheirRows(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.addEmployee(t, 123456, "Pluto")

	// Records from two employees deleted since; the ledger outlives them and
	// their rows must not collapse into one bucket.
	f.append(t, 123456, "diesel", "175.00", "10.00", base)
	f.append(t, 900001, "diesel", "35.00", "2.00", base.Add(time.Minute))
	f.append(t, 900002, "regular", "50.01", "3.00", base.Add(2*time.Minute))

	rows, err := f.svc.Totals(context.Background(), domain.GroupByActor)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byID := make(map[int64]domain.TotalsRow, len(rows))
	for _, row := range rows {
		byID[row.EmployeeID] = row
	}
	assert.Equal(t, "Pluto", byID[123456].Key)
	assert.Equal(t, "employee 900001", byID[900001].Key)
	assert.Equal(t, "employee 900002", byID[900002].Key)
	assert.Equal(t, int64(1), byID[900001].Count)
	assert.True(t, byID[900002].TotalAmount.Equal(decimal.RequireFromString("50.01")))
}

func TestTotals_ReadsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	f.append(t, 123456, "diesel", "175.00", "10.00", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	first, err := f.svc.Totals(context.Background(), domain.GroupByGrade)
	require.NoError(t, err)
	second, err := f.svc.Totals(context.Background(), domain.GroupByGrade)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTotals_InvalidGroupBy(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Totals(context.Background(), domain.GroupBy("vehicle"))
	assert.ErrorIs(t, err, domain.ErrInvalidGroupBy)
}

func TestList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	f.append(t, 123456, "diesel", "175.00", "10.00", base)
	f.append(t, 123456, "regular", "50.01", "3.00", base.Add(time.Minute))
	f.append(t, 789012, "premium", "94.95", "5.00", base.Add(2*time.Minute))

	page, err := f.svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "premium", page[0].GradeName)
	assert.Equal(t, "regular", page[1].GradeName)

	rest, err := f.svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "diesel", rest[0].GradeName)
}
