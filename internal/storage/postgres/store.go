// Package postgres implements the storage interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

// foreignKeyViolation is the SQLSTATE raised when a calculation names an unknown user.
const foreignKeyViolation = "23503"

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// --- CalculationStore -------------------------------------------------------

func (s *Store) SaveCalculation(ctx context.Context, calc domain.Calculation) (domain.Calculation, error) {
	if calc.ID == "" {
		calc.ID = uuid.NewString()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	var result any
	if len(calc.Result) > 0 {
		result = []byte(calc.Result)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, user_id, calculator_type, input_data, result_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, calc.ID, calc.UserID, string(calc.CalculatorType), []byte(calc.Input), result, calc.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return domain.Calculation{}, fmt.Errorf("user %s: %w", calc.UserID, storage.ErrNotFound)
		}
		return domain.Calculation{}, fmt.Errorf("insert calculation: %w", err)
	}
	return calc, nil
}

func (s *Store) GetCalculation(ctx context.Context, userID, id string) (domain.Calculation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, calculator_type, input_data, result_data, created_at
		FROM calculations
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	calc, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Calculation{}, fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}
	return calc, err
}

func (s *Store) ListCalculations(ctx context.Context, userID string, calcType domain.CalculatorType, limit int) ([]domain.Calculation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, calculator_type, input_data, result_data, created_at
		FROM calculations
		WHERE user_id = $1 AND ($2 = '' OR calculator_type = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, string(calcType), storage.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var out []domain.Calculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, calc)
	}
	return out, rows.Err()
}

func (s *Store) CountCalculations(ctx context.Context, userID string, calcType domain.CalculatorType) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM calculations WHERE user_id = $1 AND calculator_type = $2
	`, userID, string(calcType)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count calculations: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (domain.Calculation, error) {
	var (
		calc     domain.Calculation
		calcType string
		input    []byte
		result   []byte
	)
	if err := row.Scan(&calc.ID, &calc.UserID, &calcType, &input, &result, &calc.CreatedAt); err != nil {
		return domain.Calculation{}, err
	}
	calc.CalculatorType = domain.CalculatorType(calcType)
	calc.Input = input
	if len(result) > 0 {
		calc.Result = result
	}
	return calc, nil
}

// --- UserStore --------------------------------------------------------------

const userColumns = `id, email, has_lifetime_access, subscription_date, created_at`

func (s *Store) EnsureUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		return domain.User{}, fmt.Errorf("user id is required")
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = CASE WHEN users.email = '' THEN EXCLUDED.email ELSE users.email END
		RETURNING `+userColumns,
		user.ID, user.Email, time.Now().UTC())
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("ensure user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return u, err
}

func (s *Store) GrantLifetimeAccess(ctx context.Context, userID string, at time.Time) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET has_lifetime_access = TRUE, subscription_date = COALESCE(subscription_date, $2)
		WHERE id = $1
		RETURNING `+userColumns,
		userID, at.UTC())
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return u, err
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u   domain.User
		sub sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.HasLifetimeAccess, &sub, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	if sub.Valid {
		t := sub.Time
		u.SubscriptionDate = &t
	}
	return u, nil
}
