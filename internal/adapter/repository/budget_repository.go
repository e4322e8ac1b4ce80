package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamposv/edcora-finance-sub000/internal/domain/budget"
)

// BudgetRepository implementa a interface budget.Repository
type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository cria uma nova instância de BudgetRepository
func NewBudgetRepository(db *pgxpool.Pool) budget.Repository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, organization_id, name, category, amount, period, start_date, end_date, alert_percentage, status, created_at, updated_at`

// Create implementa budget.Repository.Create
func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	var orgID interface{}
	if b.OrganizationID != "" {
		orgID = b.OrganizationID
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO budgets (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.UserID, orgID, b.Name, b.Category, b.Amount, b.Period,
		b.StartDate, b.EndDate, b.AlertPercentage, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar orçamento: %w", err)
	}
	return nil
}

func scanBudget(row pgx.Row) (*budget.Budget, error) {
	var b budget.Budget
	var orgID *string
	err := row.Scan(&b.ID, &b.UserID, &orgID, &b.Name, &b.Category, &b.Amount,
		&b.Period, &b.StartDate, &b.EndDate, &b.AlertPercentage, &b.Status,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, budget.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar orçamento: %w", err)
	}
	if orgID != nil {
		b.OrganizationID = *orgID
	}
	return &b, nil
}

func collectBudgets(rows pgx.Rows) ([]*budget.Budget, error) {
	var result []*budget.Budget
	for rows.Next() {
		var b budget.Budget
		var orgID *string
		if err := rows.Scan(&b.ID, &b.UserID, &orgID, &b.Name, &b.Category,
			&b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.AlertPercentage,
			&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler orçamento: %w", err)
		}
		if orgID != nil {
			b.OrganizationID = *orgID
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer orçamentos: %w", err)
	}
	return result, nil
}

// FindByID implementa budget.Repository.FindByID
func (r *BudgetRepository) FindByID(ctx context.Context, id string) (*budget.Budget, error) {
	return scanBudget(r.db.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id))
}

// FindActiveByUser implementa budget.Repository.FindActiveByUser
func (r *BudgetRepository) FindActiveByUser(ctx context.Context, userID string, at time.Time) ([]*budget.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = $1 AND status = 'active'
			AND start_date <= $2 AND end_date > $2
		ORDER BY created_at DESC`,
		userID, at)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar orçamentos: %w", err)
	}
	defer rows.Close()
	return collectBudgets(rows)
}

// FindActiveByCategory implementa budget.Repository.FindActiveByCategory.
// Orçamentos "general"/"todos"/"all" cobrem qualquer categoria.
func (r *BudgetRepository) FindActiveByCategory(ctx context.Context, userID, category string, at time.Time) ([]*budget.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = $1 AND status = 'active'
			AND start_date <= $3 AND end_date > $3
			AND (LOWER(category) IN ('general', 'todos', 'all')
				OR category ILIKE '%' || $2 || '%'
				OR $2 ILIKE '%' || category || '%')
		ORDER BY created_at DESC`,
		userID, category, at)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar orçamentos: %w", err)
	}
	defer rows.Close()
	return collectBudgets(rows)
}

// List implementa budget.Repository.List
func (r *BudgetRepository) List(ctx context.Context, userID string, limit, offset int) ([]*budget.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar orçamentos: %w", err)
	}
	defer rows.Close()
	return collectBudgets(rows)
}

// Update implementa budget.Repository.Update
func (r *BudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE budgets SET name = $2, category = $3, amount = $4, period = $5,
			start_date = $6, end_date = $7, alert_percentage = $8, status = $9,
			updated_at = $10
		WHERE id = $1`,
		b.ID, b.Name, b.Category, b.Amount, b.Period, b.StartDate, b.EndDate,
		b.AlertPercentage, b.Status, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar orçamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}
	return nil
}

// UpdateStatus implementa budget.Repository.UpdateStatus
func (r *BudgetRepository) UpdateStatus(ctx context.Context, id string, status budget.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE budgets SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}
	return nil
}

// Delete implementa budget.Repository.Delete
func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover orçamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}
	return nil
}

// HasAlertAtThreshold implementa budget.Repository.HasAlertAtThreshold
func (r *BudgetRepository) HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM budget_alerts
			WHERE budget_id = $1 AND percentage_spent >= $2)`,
		budgetID, threshold).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar alerta: %w", err)
	}
	return exists, nil
}

// CreateAlert implementa budget.Repository.CreateAlert. A violação da
// restrição única (budget_id, period_start) vira budget.ErrDuplicateAlert;
// com gastos concorrentes, só o primeiro insert vence.
func (r *BudgetRepository) CreateAlert(ctx context.Context, a *budget.Alert) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO budget_alerts (id, budget_id, period_start, percentage_spent, amount_spent, message_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.BudgetID, a.PeriodStart, a.PercentageSpent, a.AmountSpent,
		a.MessageSent, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return budget.ErrDuplicateAlert
		}
		return fmt.Errorf("erro ao criar alerta: %w", err)
	}
	return nil
}

// ListAlerts implementa budget.Repository.ListAlerts
func (r *BudgetRepository) ListAlerts(ctx context.Context, budgetID string) ([]*budget.Alert, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, budget_id, period_start, percentage_spent, amount_spent, message_sent, created_at
		FROM budget_alerts
		WHERE budget_id = $1
		ORDER BY created_at DESC`,
		budgetID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar alertas: %w", err)
	}
	defer rows.Close()

	var result []*budget.Alert
	for rows.Next() {
		var a budget.Alert
		if err := rows.Scan(&a.ID, &a.BudgetID, &a.PeriodStart, &a.PercentageSpent,
			&a.AmountSpent, &a.MessageSent, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler alerta: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer alertas: %w", err)
	}
	return result, nil
}
