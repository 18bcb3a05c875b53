package postgres

import (
	"context"
	"database/sql"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestApplyExecutesAllMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	for range migrations {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplyStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(sql.ErrConnDone)

	err = Apply(context.Background(), db)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.ErrorContains(t, err, "migration 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCalculation(t *testing.T) {
	store, mock := newMock(t)
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	mock.ExpectExec("INSERT INTO calculations").
		WithArgs(sqlmock.AnyArg(), "u1", "buy-vs-rent", []byte(`{"a":1}`), []byte(`{"b":2}`), created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	calc, err := store.SaveCalculation(context.Background(), domain.Calculation{
		UserID:         "u1",
		CalculatorType: domain.CalculatorBuyVsRent,
		Input:          []byte(`{"a":1}`),
		Result:         []byte(`{"b":2}`),
		CreatedAt:      created,
	})
	require.NoError(t, err)
	assert.Len(t, calc.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCalculation_UnknownUser(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("INSERT INTO calculations").
		WillReturnError(&pq.Error{Code: foreignKeyViolation})

	_, err := store.SaveCalculation(context.Background(), domain.Calculation{UserID: "ghost", Input: []byte(`{}`)})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetCalculation(t *testing.T) {
	store, mock := newMock(t)
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	cols := []string{"id", "user_id", "calculator_type", "input_data", "result_data", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM calculations")).
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "u1", "compound-interest", []byte(`{"years":30}`), nil, created))

	calc, err := store.GetCalculation(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.CalculatorCompoundInterest, calc.CalculatorType)
	assert.JSONEq(t, `{"years":30}`, string(calc.Input))
	assert.Nil(t, calc.Result)
	assert.Equal(t, created, calc.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM calculations")).
		WithArgs("c2", "u1").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = store.GetCalculation(context.Background(), "u1", "c2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAndCountCalculations(t *testing.T) {
	store, mock := newMock(t)
	cols := []string{"id", "user_id", "calculator_type", "input_data", "result_data", "created_at"}
	now := time.Now().UTC()

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("u1", "buy-vs-rent", storage.DefaultHistoryLimit).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c2", "u1", "buy-vs-rent", []byte(`{}`), []byte(`{}`), now).
			AddRow("c1", "u1", "buy-vs-rent", []byte(`{}`), []byte(`{}`), now.Add(-time.Hour)))

	list, err := store.ListCalculations(context.Background(), "u1", domain.CalculatorBuyVsRent, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM calculations")).
		WithArgs("u1", "buy-vs-rent").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := store.CountCalculations(context.Background(), "u1", domain.CalculatorBuyVsRent)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers(t *testing.T) {
	store, mock := newMock(t)
	cols := []string{"id", "email", "has_lifetime_access", "subscription_date", "created_at"}
	created := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u1", "a@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "a@example.com", false, nil, created))

	u, err := store.EnsureUser(context.Background(), domain.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.False(t, u.HasLifetimeAccess)
	assert.Nil(t, u.SubscriptionDate)

	mock.ExpectQuery("UPDATE users").
		WithArgs("u1", paid).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "a@example.com", true, paid, created))

	u, err = store.GrantLifetimeAccess(context.Background(), "u1", paid)
	require.NoError(t, err)
	assert.True(t, u.HasLifetimeAccess)
	require.NotNil(t, u.SubscriptionDate)
	assert.Equal(t, paid, *u.SubscriptionDate)

	mock.ExpectQuery("UPDATE users").
		WithArgs("ghost", paid).
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = store.GrantLifetimeAccess(context.Background(), "ghost", paid)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = store.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.EnsureUser(context.Background(), domain.User{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Apply(ctx, db))

	store := New(db)
	userID := "it-" + time.Now().Format("150405.000000")
	_, err = store.EnsureUser(ctx, domain.User{ID: userID})
	require.NoError(t, err)

	calc, err := store.SaveCalculation(ctx, domain.Calculation{
		UserID:         userID,
		CalculatorType: domain.CalculatorCompoundInterest,
		Input:          []byte(`{"years":10}`),
		Result:         []byte(`{"finalNominalValue":1}`),
	})
	require.NoError(t, err)

	got, err := store.GetCalculation(ctx, userID, calc.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"years":10}`, string(got.Input))

	n, err := store.CountCalculations(ctx, userID, domain.CalculatorCompoundInterest)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
