package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamposv/edcora-finance-sub000/internal/domain/transaction"
)

// TransactionRepository implementa a interface transaction.Repository
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository cria uma nova instância de TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) transaction.Repository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, organization_id, type, amount, category, description, date, created_at, updated_at`

// Create implementa transaction.Repository.Create
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	var orgID interface{}
	if t.OrganizationID != "" {
		orgID = t.OrganizationID
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.UserID, orgID, t.Type, t.Amount, t.Category,
		t.Description, t.Date, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar transação: %w", err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var orgID *string
	err := row.Scan(&t.ID, &t.UserID, &orgID, &t.Type, &t.Amount,
		&t.Category, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar transação: %w", err)
	}
	if orgID != nil {
		t.OrganizationID = *orgID
	}
	return &t, nil
}

// FindByID implementa transaction.Repository.FindByID
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	return scanTransaction(r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

// FindRecentByUser implementa transaction.Repository.FindRecentByUser
func (r *TransactionRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar transações: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// FindLastByUser implementa transaction.Repository.FindLastByUser
func (r *TransactionRepository) FindLastByUser(ctx context.Context, userID string) (*transaction.Transaction, error) {
	return scanTransaction(r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		userID))
}

// List implementa transaction.Repository.List
func (r *TransactionRepository) List(ctx context.Context, userID string, limit, offset int) ([]*transaction.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar transações: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*transaction.Transaction, error) {
	var result []*transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		var orgID *string
		if err := rows.Scan(&t.ID, &t.UserID, &orgID, &t.Type, &t.Amount,
			&t.Category, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler transação: %w", err)
		}
		if orgID != nil {
			t.OrganizationID = *orgID
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer transações: %w", err)
	}
	return result, nil
}

// Delete implementa transaction.Repository.Delete
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover transação: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrNotFound
	}
	return nil
}

// SumByCategory implementa transaction.Repository.SumByCategory
func (r *TransactionRepository) SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]transaction.CategoryTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2 AND date <= $3
		GROUP BY category
		ORDER BY SUM(amount) DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar transações: %w", err)
	}
	defer rows.Close()

	var result []transaction.CategoryTotal
	for rows.Next() {
		var ct transaction.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("erro ao ler agregado: %w", err)
		}
		result = append(result, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer agregados: %w", err)
	}
	return result, nil
}

// SumExpenses implementa transaction.Repository.SumExpenses
func (r *TransactionRepository) SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $3 AND date <= $4
			AND ($2 = ''
				OR LOWER($2) IN ('general', 'todos', 'all')
				OR category ILIKE '%' || $2 || '%'
				OR $2 ILIKE '%' || category || '%')`,
		userID, category, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("erro ao somar gastos: %w", err)
	}
	return total, nil
}
